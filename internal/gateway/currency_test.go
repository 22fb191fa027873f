package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsspay/ipay-go/internal/domain"
)

func TestResolveCurrency(t *testing.T) {
	tests := []struct {
		code        string
		wantNumeric string
		wantDigits  uint8
	}{
		{code: "KWD", wantNumeric: "414", wantDigits: 3},
		{code: "USD", wantNumeric: "840", wantDigits: 2},
		{code: "BHD", wantNumeric: "048", wantDigits: 3},
		{code: "JPY", wantNumeric: "392", wantDigits: 0},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			numeric, digits, err := resolveCurrency(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNumeric, numeric)
			assert.Equal(t, tt.wantDigits, digits)
		})
	}
}

func TestResolveCurrency_Unknown(t *testing.T) {
	for _, code := range []string{"", "ZZZ", "kwd", "KUWAIT"} {
		_, _, err := resolveCurrency(code)
		require.Error(t, err, "code %q", code)
		assert.True(t, domain.IsValidationError(err))
	}
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "USA", resolveLanguage("en"))
	assert.Equal(t, "ARA", resolveLanguage("ar"))
	assert.Equal(t, "USA", resolveLanguage(""))
	assert.Equal(t, "USA", resolveLanguage("fr"))
}
