// Package consulsync publishes a Manager's enabled-label set to Consul
// KV and watches it for changes made by other cluster members, so a
// group of content.Manager processes can agree on which content
// directories are active without their own direct coordination.
package consulsync

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"

	"github.com/mwantia/contentvfs/log"
)

// Config configures a Syncer's connection to Consul.
type Config struct {
	// Address of the Consul HTTP API (default "127.0.0.1:8500").
	Address string
	// Token for ACL authentication, if required.
	Token string
	// KVKey is the single Consul KV key the enabled-label set is
	// published under, as a comma-joined string.
	KVKey string
}

// Syncer publishes and watches a comma-joined enabled-label set under
// one Consul KV key.
type Syncer struct {
	mu sync.Mutex

	client *api.Client
	kv     *api.KV
	key    string

	log *log.Logger
}

// NewSyncer constructs a Syncer connected to the Consul agent
// described by cfg.
func NewSyncer(cfg Config, logger *log.Logger) (*Syncer, error) {
	if logger == nil {
		logger = log.NewLogger("content/consulsync", log.Warn, "", false)
	}

	clientConfig := api.DefaultConfig()
	if cfg.Address != "" {
		clientConfig.Address = cfg.Address
	}
	if cfg.Token != "" {
		clientConfig.Token = cfg.Token
	}

	key := cfg.KVKey
	if key == "" {
		key = "contentvfs/enabled"
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &Syncer{
		client: client,
		kv:     client.KV(),
		key:    key,
		log:    logger,
	}, nil
}

// Publish writes labels to the configured KV key as a comma-joined
// value, implementing content.Manager's EnabledSync interface.
func (s *Syncer) Publish(labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := &api.KVPair{
		Key:   s.key,
		Value: []byte(strings.Join(labels, ",")),
	}
	_, err := s.kv.Put(pair, nil)
	return err
}

// Watch blocks, polling Consul's blocking-query mechanism for changes
// to the enabled-label key, and invokes onChange with the newly
// observed label set each time it differs from what was last seen.
// Returns when ctx is canceled.
func (s *Syncer) Watch(ctx context.Context, onChange func(labels []string)) error {
	var lastIndex uint64
	var lastValue string
	seen := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		opts := (&api.QueryOptions{WaitIndex: lastIndex}).WithContext(ctx)
		pair, meta, err := s.kv.Get(s.key, opts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("consul watch query failed: %v", err)
			continue
		}

		lastIndex = meta.LastIndex
		if pair == nil {
			continue
		}

		value := string(pair.Value)
		if seen && value == lastValue {
			continue
		}
		seen, lastValue = true, value

		var labels []string
		for _, label := range strings.Split(value, ",") {
			if label != "" {
				labels = append(labels, label)
			}
		}
		onChange(labels)
	}
}
