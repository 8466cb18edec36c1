package traversal

import "sort"

// presets maps preset names to construction functions. Each call builds a
// fresh Value, so callers never share or mutate catalog state.
var presets = map[string]func() Value{
	"default": func() Value {
		return Value{
			Fetch:        FetchOriginStorage,
			Freshness:    FreshnessMatch,
			Processing:   ProcessDocumentAndRelated,
			Transitivity: TransitivityShallow,
		}
	},
	"refresh": func() Value {
		return Value{
			Fetch:        FetchOriginStorage,
			Freshness:    FreshnessMatch,
			Processing:   ProcessDocumentAndRelated,
			Transitivity: TransitivityDeepShallow,
		}
	},
	"reprocess": func() Value {
		return Value{
			Fetch:        FetchStorageOnly,
			Freshness:    FreshnessVersion,
			Processing:   ProcessDocumentAndRelated,
			Transitivity: TransitivityShallow,
		}
	},
	"reprocessAndDiscover": func() Value {
		return Value{
			Fetch:        FetchStorageOriginIfMissing,
			Freshness:    FreshnessVersion,
			Processing:   ProcessDocumentAndRelated,
			Transitivity: TransitivityDeepDeep,
		}
	},
	"reprocessAndUpdate": func() Value {
		return Value{
			Fetch:        FetchOriginStorage,
			Freshness:    FreshnessMatchOrVersion,
			Processing:   ProcessDocumentAndRelated,
			Transitivity: TransitivityDeepDeep,
		}
	},
}

func init() {
	// Event-feed crawls run under the standard policy.
	presets["events"] = presets["default"]
}

// Lookup returns the named preset. Unknown names yield (zero, false) rather
// than an error; the caller decides whether a missing preset matters.
func Lookup(name string) (Value, bool) {
	factory, ok := presets[name]
	if !ok {
		return Value{}, false
	}
	return factory(), true
}

// Names returns the registered preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
