package traversal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidatesAllFields(t *testing.T) {
	t.Parallel()

	v, err := New(FetchOriginStorage, FreshnessMatch, ProcessDocumentAndRelated, TransitivityShallow)
	require.NoError(t, err)
	require.Equal(t, FetchOriginStorage, v.Fetch)

	tests := []struct {
		name  string
		build func() (Value, error)
		field string
	}{
		{
			name: "bad fetch",
			build: func() (Value, error) {
				return New("teleport", FreshnessMatch, ProcessDocumentAndRelated, TransitivityShallow)
			},
			field: "fetch",
		},
		{
			name: "bad freshness rule",
			build: func() (Value, error) {
				return New(FetchOriginStorage, Freshness{Rule: "sometimes"}, ProcessDocumentAndRelated, TransitivityShallow)
			},
			field: "freshness",
		},
		{
			name: "negative day threshold",
			build: func() (Value, error) {
				return New(FetchOriginStorage, FreshnessAfterDays(-1), ProcessDocumentAndRelated, TransitivityShallow)
			},
			field: "freshness",
		},
		{
			name: "bad processing",
			build: func() (Value, error) {
				return New(FetchOriginStorage, FreshnessMatch, "everything", TransitivityShallow)
			},
			field: "processing",
		},
		{
			name: "bad transitivity",
			build: func() (Value, error) {
				return New(FetchOriginStorage, FreshnessMatch, ProcessDocumentAndRelated, "bottomless")
			},
			field: "transitivity",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.build()
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestNumericFreshnessIsValid(t *testing.T) {
	t.Parallel()

	v, err := New(FetchOriginStorage, FreshnessAfterDays(7), ProcessDocumentAndRelated, TransitivityShallow)
	require.NoError(t, err)
	require.Equal(t, RuleAfterDays, v.Freshness.Rule)
	require.Equal(t, 7, v.Freshness.Days)

	_, err = New(FetchOriginStorage, FreshnessAfterDays(0), ProcessDocumentAndRelated, TransitivityShallow)
	require.NoError(t, err)
}

func TestCloneYieldsEqualIndependentValue(t *testing.T) {
	t.Parallel()

	original, ok := Lookup("reprocessAndUpdate")
	require.True(t, ok)

	clone := original.Clone()
	require.Equal(t, original, clone)

	wantForm, err := original.ShortForm()
	require.NoError(t, err)
	gotForm, err := clone.ShortForm()
	require.NoError(t, err)
	require.Equal(t, wantForm, gotForm)

	clone.Transitivity = TransitivityShallow
	require.Equal(t, TransitivityDeepDeep, original.Transitivity)
}
