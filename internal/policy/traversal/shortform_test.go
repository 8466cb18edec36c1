package traversal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortFormPresets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		preset string
		want   string
	}{
		{"default", "oMrS"},
		{"events", "oMrS"},
		{"refresh", "oMrd"},
		{"reprocess", "SVrS"},
		{"reprocessAndDiscover", "sVrD"},
		{"reprocessAndUpdate", "omrD"},
	}
	for _, tc := range tests {
		policy, ok := Lookup(tc.preset)
		require.True(t, ok, tc.preset)
		got, err := policy.ShortForm()
		require.NoError(t, err)
		require.Equal(t, tc.want, got, tc.preset)
	}
}

func TestShortFormNumericFreshness(t *testing.T) {
	t.Parallel()

	policy := Value{
		Fetch:        FetchOriginOnly,
		Freshness:    FreshnessAfterDays(14),
		Processing:   ProcessDocumentOnly,
		Transitivity: TransitivityDeepDeep,
	}
	got, err := policy.ShortForm()
	require.NoError(t, err)
	require.Equal(t, "ONDD", got)
}

func TestShortFormRejectsUnmappedValues(t *testing.T) {
	t.Parallel()

	valid := Value{
		Fetch:        FetchStorageOnly,
		Freshness:    FreshnessAlways,
		Processing:   ProcessDocumentAndChildren,
		Transitivity: TransitivityDeepShallow,
	}
	got, err := valid.ShortForm()
	require.NoError(t, err)
	require.Equal(t, "SAcd", got)

	tests := []struct {
		name   string
		mutate func(*Value)
		field  string
	}{
		{"fetch", func(v *Value) { v.Fetch = "smoke-signal" }, "fetch"},
		{"freshness", func(v *Value) { v.Freshness = Freshness{Rule: "stale"} }, "freshness"},
		{"processing", func(v *Value) { v.Processing = "grandchildren" }, "processing"},
		{"transitivity", func(v *Value) { v.Transitivity = "abyssal" }, "transitivity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			policy := valid
			tc.mutate(&policy)
			_, err := policy.ShortForm()
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tc.field, cfgErr.Field)
		})
	}
}
