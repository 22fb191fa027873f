package gateway

import (
	"net/url"
	"strings"

	"github.com/fsspay/ipay-go/internal/domain"
)

// filterChars is the denylist of punctuation the gateway rejects in user
// defined fields.
const filterChars = "!#$%^&*()+[]\\';,{}|\":<>?~`"

// sanitize strips every denylisted character and trims the result. The trim
// runs after the strip so that removing an edge character cannot expose new
// leading or trailing whitespace; sanitize(sanitize(s)) == sanitize(s).
func sanitize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(filterChars, r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(stripped)
}

// validateCallbackURL enforces the gateway's rules for response and error
// URLs: http or https scheme, and no query string (the gateway appends its
// own parameters). The input is returned unchanged when valid.
func validateCallbackURL(s string) (string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", domain.WrapError(domain.ErrorCodeInvalidURL, "callback URL does not parse", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", domain.NewDomainError(domain.ErrorCodeInvalidURL, "callback URL scheme must be http or https").
			WithDetail("scheme", u.Scheme)
	}
	if u.RawQuery != "" {
		return "", domain.NewDomainError(domain.ErrorCodeInvalidURL, "callback URL cannot have a query string")
	}
	return s, nil
}

// encodeParams URL-encodes an ordered parameter list, skipping empty values.
// ':' and '/' are left unescaped: the gateway compares the response and
// error URLs inside the encrypted payload byte-for-byte against the
// cleartext ones, so they must survive encoding intact.
func encodeParams(params []param) string {
	var b strings.Builder
	for _, p := range params {
		if p.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(escapeKeepingURLChars(p.value))
	}
	return b.String()
}

func escapeKeepingURLChars(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "%3A", ":")
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	return escaped
}

type param struct {
	key   string
	value string
}
