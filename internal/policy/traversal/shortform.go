package traversal

// ShortForm renders the policy as a compact four-character signature in
// fetch+freshness+processing+transitivity order, e.g. the default preset
// encodes as "oMrS". Signatures are used as log fields and dedup keys. An
// unmapped field value is a configuration fault, never silently omitted.
func (v Value) ShortForm() (string, error) {
	var fetch byte
	switch v.Fetch {
	case FetchStorageOnly:
		fetch = 'S'
	case FetchStorageOriginIfMissing:
		fetch = 's'
	case FetchOriginOnly:
		fetch = 'O'
	case FetchOriginStorage:
		fetch = 'o'
	default:
		return "", &ConfigurationError{Field: "fetch", Value: string(v.Fetch)}
	}

	var freshness byte
	switch v.Freshness.Rule {
	case RuleAlways:
		freshness = 'A'
	case RuleMatch:
		freshness = 'M'
	case RuleVersion:
		freshness = 'V'
	case RuleMatchOrVersion:
		freshness = 'm'
	case RuleAfterDays:
		freshness = 'N'
	default:
		return "", &ConfigurationError{Field: "freshness", Value: string(v.Freshness.Rule)}
	}

	var processing byte
	switch v.Processing {
	case ProcessDocumentOnly:
		processing = 'D'
	case ProcessDocumentAndRelated:
		processing = 'r'
	case ProcessDocumentAndChildren:
		processing = 'c'
	default:
		return "", &ConfigurationError{Field: "processing", Value: string(v.Processing)}
	}

	var transitivity byte
	switch v.Transitivity {
	case TransitivityShallow:
		transitivity = 'S'
	case TransitivityDeepShallow:
		transitivity = 'd'
	case TransitivityDeepDeep:
		transitivity = 'D'
	default:
		return "", &ConfigurationError{Field: "transitivity", Value: string(v.Transitivity)}
	}

	return string([]byte{fetch, freshness, processing, transitivity}), nil
}
