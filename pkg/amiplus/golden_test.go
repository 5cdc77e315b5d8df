package amiplus

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d21d3q/amiplus/internal/testutil"
)

func TestAmiplusGolden(t *testing.T) {
	fixtures := []struct {
		name     string
		noValues bool
	}{
		{name: "full"},
		{name: "production_only"},
		{name: "truncated_voltage"},
		{name: "no_registers", noValues: true},
	}
	for _, tc := range fixtures {
		t.Run(tc.name, func(t *testing.T) {
			hexStr := testutil.LoadHex(t, "amiplus/"+tc.name+".hex")
			result, err := DecodeHex(hexStr)
			if tc.noValues {
				require.ErrorIs(t, err, ErrNoValues)
				require.Empty(t, result.Fields)
				return
			}
			require.NoError(t, err)
			var expected map[string]float64
			testutil.LoadJSON(t, "amiplus/"+tc.name+".json", &expected)
			require.Equal(t, "", diffMaps(expected, result.Fields))
		})
	}
}

func TestAmiplusGoldenYAMLCatalog(t *testing.T) {
	cat, err := LoadCatalogFile("../../testdata/catalog/amiplus.yaml")
	require.NoError(t, err)
	hexStr := testutil.LoadHex(t, "amiplus/full.hex")
	result, err := DecodeHexWithOptions(hexStr, Options{Catalog: cat})
	require.NoError(t, err)
	var expected map[string]float64
	testutil.LoadJSON(t, "amiplus/full.json", &expected)
	require.Equal(t, "", diffMaps(expected, result.Fields))
}

func diffMaps(expected, actual map[string]float64) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("len mismatch expected %d actual %d", len(expected), len(actual))
	}
	for k, ev := range expected {
		av, ok := actual[k]
		if !ok {
			return fmt.Sprintf("missing key %s", k)
		}
		if math.Abs(ev-av) > 1e-9 {
			return fmt.Sprintf("key %s mismatch expected %v got %v", k, ev, av)
		}
	}
	return ""
}
