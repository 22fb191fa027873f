package gateway

import (
	"fmt"

	"github.com/bojanz/currency"

	"github.com/fsspay/ipay-go/internal/domain"
)

// DefaultCurrency is the currency the terminals are provisioned with unless
// the caller overrides it.
const DefaultCurrency = "KWD"

// langCodes maps caller-facing language selectors to the bank-specific
// langid values understood by the hosted pages.
var langCodes = map[string]string{
	"en": "USA",
	"ar": "ARA",
}

const defaultLangCode = "USA"

// resolveLanguage returns the bank langid for a caller language selector,
// falling back to English for unknown values.
func resolveLanguage(lang string) string {
	if code, ok := langCodes[lang]; ok {
		return code
	}
	return defaultLangCode
}

// resolveCurrency converts an ISO 4217 alphabetic code to its numeric code
// and minor-unit digit count (KWD -> "414", 3 digits).
func resolveCurrency(code string) (numeric string, digits uint8, err error) {
	numeric, ok := currency.GetNumericCode(code)
	if !ok {
		return "", 0, domain.NewDomainError(domain.ErrorCodeMissingField,
			fmt.Sprintf("unknown ISO 4217 currency code %q", code))
	}
	digits, _ = currency.GetDigits(code)
	return numeric, digits, nil
}
