package traversal

import "time"

// ContentOrigin identifies the source that actually supplied the content for
// a fetch. The set is open ended; the engine only distinguishes the cache
// case.
type ContentOrigin string

// Known content origins.
const (
	// ContentOriginRemote means the body came fresh from the origin server.
	ContentOriginRemote ContentOrigin = "origin"
	// ContentOriginCache means a stored copy was confirmed to still match
	// the origin's current content.
	ContentOriginCache ContentOrigin = "cacheOfOrigin"
	// ContentOriginStorage means the body was served from the local store
	// without consulting the origin.
	ContentOriginStorage ContentOrigin = "storage"
)

// DocumentInfo is the stored-document metadata the engine consults.
type DocumentInfo struct {
	// ProcessedAt is when the stored copy was last processed.
	ProcessedAt time.Time
	// Version is the processor version recorded at that time, nil when the
	// document has never been processed under a versioned policy.
	Version *int
}

// Request describes one completed fetch. It is produced by the fetch
// collaborator and consumed, never owned, by the engine.
type Request struct {
	Origin   ContentOrigin
	Document DocumentInfo
}

// Source names where the fetch pipeline should look for content.
type Source string

// Fetch sources.
const (
	SourceStorage Source = "storage"
	SourceOrigin  Source = "origin"
	// SourceNone means there is no further place to look.
	SourceNone Source = "none"
)

// Clock supplies the current time to numeric freshness decisions.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Engine answers the four traversal questions for a policy. All methods are
// pure functions of their inputs plus the injected clock; they perform no
// I/O, hold no state, and are safe for concurrent use.
type Engine struct {
	clock Clock
}

// NewEngine builds an Engine. A nil clock defaults to the system clock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = systemClock{}
	}
	return &Engine{clock: clock}
}

// ShouldProcess reports whether the fetched resource requires (re)processing
// under the policy's freshness rule. version is the current processor
// version, compared against the version recorded on the stored document.
func (e *Engine) ShouldProcess(policy Value, req Request, version int) (bool, error) {
	switch policy.Freshness.Rule {
	case RuleAlways:
		return true, nil
	case RuleMatch:
		// A cache hit means the stored copy still matches the origin, so
		// nothing new needs processing.
		return req.Origin != ContentOriginCache, nil
	case RuleAfterDays:
		elapsed := e.clock.Now().Sub(req.Document.ProcessedAt)
		return elapsed.Hours() > float64(policy.Freshness.Days)*24, nil
	case RuleVersion, RuleMatchOrVersion:
		recorded := req.Document.Version
		return recorded == nil || *recorded < version, nil
	default:
		return false, &ConfigurationError{Field: "freshness", Value: string(policy.Freshness.Rule)}
	}
}

// ShouldTraverse reports whether discovery should continue into resources
// referenced by the current one. Traversal is independent of whether the
// resource itself needs processing.
func (e *Engine) ShouldTraverse(policy Value) bool {
	return policy.Transitivity != TransitivityShallow
}

// ShouldFetchExisting reports whether a stored body should be materialized
// even though it is already known to match the origin. Under match freshness
// the match itself settles the processing question, so the body is only
// worth loading when deep traversal needs it for link discovery.
func (e *Engine) ShouldFetchExisting(policy Value) bool {
	return policy.Freshness.Rule != RuleMatch && policy.Transitivity != TransitivityShallow
}

// InitialFetch maps the policy's fetch mode to the source for the first
// fetch attempt.
func (e *Engine) InitialFetch(policy Value) (Source, error) {
	switch policy.Fetch {
	case FetchStorageOnly, FetchStorageOriginIfMissing:
		return SourceStorage, nil
	case FetchOriginStorage, FetchOriginOnly:
		return SourceOrigin, nil
	default:
		return "", &ConfigurationError{Field: "fetch", Value: string(policy.Fetch)}
	}
}

// MissingFetch maps the policy's fetch mode to the fallback source consulted
// when the initial fetch found nothing. SourceNone means give up.
func (e *Engine) MissingFetch(policy Value) (Source, error) {
	switch policy.Fetch {
	case FetchStorageOnly, FetchOriginOnly:
		return SourceNone, nil
	case FetchOriginStorage, FetchStorageOriginIfMissing:
		return SourceOrigin, nil
	default:
		return "", &ConfigurationError{Field: "fetch", Value: string(policy.Fetch)}
	}
}
