package traversal

import "fmt"

// FetchMode selects where a resource's content is fetched from.
type FetchMode string

// Fetch modes.
const (
	// FetchStorageOnly serves content from the local store and never
	// contacts the origin.
	FetchStorageOnly FetchMode = "storageOnly"
	// FetchOriginStorage fetches from the origin and persists the result.
	FetchOriginStorage FetchMode = "originStorage"
	// FetchStorageOriginIfMissing tries the local store first and falls
	// back to the origin when nothing is stored.
	FetchStorageOriginIfMissing FetchMode = "storageOriginIfMissing"
	// FetchOriginOnly fetches from the origin without a storage fallback.
	FetchOriginOnly FetchMode = "originOnly"
)

// FreshnessRule names the criterion deciding whether an already-fetched
// resource still requires (re)processing.
type FreshnessRule string

// Freshness rules.
const (
	RuleAlways         FreshnessRule = "always"
	RuleMatch          FreshnessRule = "match"
	RuleVersion        FreshnessRule = "version"
	RuleMatchOrVersion FreshnessRule = "matchOrVersion"
	RuleAfterDays      FreshnessRule = "afterDays"
)

// Freshness is either one of the named rules or a non-negative number of
// days (RuleAfterDays) after which a stored document goes stale.
type Freshness struct {
	Rule FreshnessRule `json:"rule"`
	Days int           `json:"days,omitempty"`
}

// Named freshness values.
var (
	FreshnessAlways         = Freshness{Rule: RuleAlways}
	FreshnessMatch          = Freshness{Rule: RuleMatch}
	FreshnessVersion        = Freshness{Rule: RuleVersion}
	FreshnessMatchOrVersion = Freshness{Rule: RuleMatchOrVersion}
)

// FreshnessAfterDays returns a numeric freshness of the given day threshold.
func FreshnessAfterDays(days int) Freshness {
	return Freshness{Rule: RuleAfterDays, Days: days}
}

// String renders the rule name, with the day threshold for afterDays.
func (f Freshness) String() string {
	if f.Rule == RuleAfterDays {
		return fmt.Sprintf("%s(%d)", f.Rule, f.Days)
	}
	return string(f.Rule)
}

// Processing controls how far discovery propagates from a resource.
type Processing string

// Processing depths.
const (
	ProcessDocumentAndRelated  Processing = "documentAndRelated"
	ProcessDocumentAndChildren Processing = "documentAndChildren"
	ProcessDocumentOnly        Processing = "documentOnly"
)

// Transitivity controls how deep traversal continues through resources
// referenced by the current one.
type Transitivity string

// Transitivity levels.
const (
	TransitivityShallow     Transitivity = "shallow"
	TransitivityDeepShallow Transitivity = "deepShallow"
	TransitivityDeepDeep    Transitivity = "deepDeep"
)

// Value is one immutable traversal policy. Instances are plain values:
// copying yields an independent policy, so they may be shared across any
// number of workers without synchronization. Treat the fields as read-only
// after construction; derive new policies via Clone, PolicyForRoot or
// PolicyForChild instead of mutating in place.
type Value struct {
	Fetch        FetchMode    `json:"fetch"`
	Freshness    Freshness    `json:"freshness"`
	Processing   Processing   `json:"processing"`
	Transitivity Transitivity `json:"transitivity"`
}

// New builds a Value and validates all four fields, so a malformed policy
// fails at construction rather than on first use.
func New(fetch FetchMode, freshness Freshness, processing Processing, transitivity Transitivity) (Value, error) {
	v := Value{
		Fetch:        fetch,
		Freshness:    freshness,
		Processing:   processing,
		Transitivity: transitivity,
	}
	if err := v.Validate(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Clone returns an independent copy with identical field values.
func (v Value) Clone() Value {
	return v
}

// Validate checks every field against its enumeration. The decision methods
// repeat the relevant check so that a Value assembled without New still fails
// fast instead of decaying into silent misbehavior.
func (v Value) Validate() error {
	switch v.Fetch {
	case FetchStorageOnly, FetchOriginStorage, FetchStorageOriginIfMissing, FetchOriginOnly:
	default:
		return &ConfigurationError{Field: "fetch", Value: string(v.Fetch)}
	}
	switch v.Freshness.Rule {
	case RuleAlways, RuleMatch, RuleVersion, RuleMatchOrVersion:
	case RuleAfterDays:
		if v.Freshness.Days < 0 {
			return &ConfigurationError{Field: "freshness", Value: "negative day threshold"}
		}
	default:
		return &ConfigurationError{Field: "freshness", Value: string(v.Freshness.Rule)}
	}
	switch v.Processing {
	case ProcessDocumentAndRelated, ProcessDocumentAndChildren, ProcessDocumentOnly:
	default:
		return &ConfigurationError{Field: "processing", Value: string(v.Processing)}
	}
	switch v.Transitivity {
	case TransitivityShallow, TransitivityDeepShallow, TransitivityDeepDeep:
	default:
		return &ConfigurationError{Field: "transitivity", Value: string(v.Transitivity)}
	}
	return nil
}
