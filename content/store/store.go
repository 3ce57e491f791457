// Package store provides pluggable activation-history backends for
// content.Manager: every Enable/Disable transition can be durably
// recorded so a process restart can replay the set of content
// directories that were enabled when it last shut down.
package store

import (
	"time"

	"github.com/goccy/go-json"
)

// Store is the activation-history persistence contract. content.Manager
// depends on this shape (as ActivationRecorder) rather than on this
// package directly, so wiring a store is opt-in.
type Store interface {
	RecordActivation(label string, enabled bool, at time.Time) error
	LastKnownEnabled() ([]string, error)
	Close() error
}

// record is the row shape both backends persist. detail is reserved
// for forward-compatible metadata (e.g. which host made the change)
// and is encoded with goccy/go-json rather than encoding/json, since
// this is the one place in contentvfs where row volume (one record per
// transition, potentially replayed at startup) makes the faster
// encoder worth a second JSON dependency.
type record struct {
	Label      string    `json:"label"`
	Enabled    bool      `json:"enabled"`
	RecordedAt time.Time `json:"recorded_at"`
}

func encodeDetail(r record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
