package path

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mwantia/contentvfs/log"
)

// DefaultMemoSize bounds the normalization memo table. Unbounded growth
// here is a real risk for long-lived processes that resolve many
// distinct paths over a session; an LRU trades perfect recall of stale
// entries for a fixed memory ceiling.
const DefaultMemoSize = 4096

// Normalized is the canonical form produced by Normalize: the reduced
// path value plus whether it descends from the relative-root marker.
type Normalized struct {
	Value    string
	Relative bool
}

// Normalizer memoizes Normalize calls behind a bounded LRU cache, as
// recommended for implementations where content enumeration is a hot
// path (many repeated lookups of the same handful of relative paths).
type Normalizer struct {
	mu    sync.Mutex
	cache *lru.Cache[string, Normalized]
	log   *log.Logger
}

// NewNormalizer creates a Normalizer with the given memo table size.
// A size of zero falls back to DefaultMemoSize.
func NewNormalizer(size int, logger *log.Logger) *Normalizer {
	if size <= 0 {
		size = DefaultMemoSize
	}
	if logger == nil {
		logger = log.NewLogger("path", log.Warn, "", false)
	}

	cache, _ := lru.New[string, Normalized](size)
	return &Normalizer{
		cache: cache,
		log:   logger,
	}
}

// defaultNormalizer backs the package-level Normalize convenience
// function so callers that don't need a dedicated memo table (tests,
// one-off tools) can still call Normalize(path) directly.
var defaultNormalizer = NewNormalizer(DefaultMemoSize, nil)

// Normalize reduces p to its canonical form using the package-level
// default memo table. See Normalizer.Normalize for the algorithm.
func Normalize(p string) Normalized {
	return defaultNormalizer.Normalize(p)
}

// windowsVolume returns a leading drive-letter volume prefix ("C:") if
// present, so it can be preserved verbatim through normalization
// instead of being treated as an ordinary path element.
func windowsVolume(p string) string {
	if len(p) >= 2 && p[1] == ':' {
		c := p[0]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return p[:2]
		}
	}
	return ""
}

// Normalize reduces path to its canonical form: "." is dropped, ".."
// consumes one following non-".." element, the relative-root marker is
// dropped (but flags the result as relative), and empty fragments are
// dropped. The algorithm walks fragments in reverse, maintaining a
// pending-dot-dot counter exactly as the original VFS's
// NormalizePathFrom does, so behavior (including the "too many .. than
// real segments collapses to empty" edge case) matches exactly.
//
// An empty input path normalizes to itself; this is logged as a
// warning rather than treated as an error, matching upstream behavior.
func (n *Normalizer) Normalize(p string) Normalized {
	if p == "" {
		n.log.Warn("attempt to normalize empty path")
		return Normalized{Value: p}
	}

	n.mu.Lock()
	if cached, ok := n.cache.Get(p); ok {
		n.mu.Unlock()
		return cached
	}
	n.mu.Unlock()

	volume := windowsVolume(p)
	rest := p
	if volume != "" {
		rest = p[len(volume):]
	}

	elements := strings.Split(rest, "/")

	pendingDotDot := 0
	relative := false
	result := make([]string, 0, len(elements))

	for i := len(elements) - 1; i >= 0; i-- {
		element := elements[i]
		if element == "" {
			continue
		}

		switch Classify(element) {
		case Dot:
			continue
		case RelativeRoot:
			relative = true
			continue
		case DotDot:
			pendingDotDot++
		default:
			if pendingDotDot > 0 {
				pendingDotDot--
				continue
			}
			result = append(result, element)
		}
	}

	// result was built back-to-front; reverse it in place.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	normalized := Normalized{
		Value:    volume + strings.Join(result, "/"),
		Relative: relative,
	}

	n.mu.Lock()
	n.cache.Add(p, normalized)
	n.mu.Unlock()

	return normalized
}
