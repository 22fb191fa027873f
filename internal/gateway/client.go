// Package gateway implements the hosted-transaction client for the bank's
// terminal integration kit. A Client is constructed per transaction: it
// loads the terminal credentials from the encrypted resource bundle, builds
// the encrypted redirect URL the customer is sent to, and later decodes the
// gateway's callback into a flat result map.
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/internal/domain/ports"
	"github.com/fsspay/ipay-go/internal/resource"
	"github.com/fsspay/ipay-go/pkg/crypto"
)

const udfCount = 5

// Options configures a Client. Keys, BundlePath (or Bundle) and Alias are
// required; the rest default to the kit's conventions.
type Options struct {
	// Keys loads the bundle decryption key from the merchant's keystore.
	Keys ports.KeyLoader

	// KeyName is the keystore alias of the bundle key. Defaults to "pgkey".
	KeyName string

	// BundlePath is the filesystem path of the encrypted resource bundle.
	// Ignored when Bundle is set.
	BundlePath string

	// Bundle holds the encrypted resource bundle bytes directly.
	Bundle []byte

	// Alias is the friendly name of the terminal inside the bundle.
	Alias string

	// Amount to charge. Formatted with the currency's minor-unit precision
	// (3 decimal places for KWD).
	Amount decimal.Decimal

	// Language selects the hosted-page language: "en" or "ar". Unknown
	// values fall back to English.
	Language string

	// Currency is the ISO 4217 alphabetic code. Defaults to KWD; the
	// terminal must support whatever is chosen.
	Currency string

	// TrackingID correlates the request with its callback. When empty the
	// current Unix timestamp is used, which has second resolution; supply
	// your own id (or UUIDTrackingID) when constructing clients in bursts.
	TrackingID string

	Logger *zap.Logger
}

// Client drives one hosted transaction. It is not safe for concurrent use;
// guard it externally if multiple goroutines must touch the same instance.
type Client struct {
	terminal domain.TerminalConfig

	amount         decimal.Decimal
	currency       string // numeric ISO 4217 code
	currencyDigits uint8
	language       string
	trackingID     string

	udfs        [udfCount]string
	responseURL string
	errorURL    string

	logger *zap.Logger
}

// New loads the terminal configuration and returns a Client ready for URL
// setup. Any failure (key lookup, bundle read, decryption, malformed
// config) aborts construction entirely.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Keys == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeMissingField, "a key loader is required")
	}
	if opts.Alias == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeMissingField, "a terminal alias is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keyName := opts.KeyName
	if keyName == "" {
		keyName = ports.DefaultKeyName
	}
	key, err := opts.Keys.LoadKey(ctx, keyName)
	if err != nil {
		return nil, err
	}

	bundle := opts.Bundle
	if bundle == nil {
		bundle, err = os.ReadFile(opts.BundlePath)
		if err != nil {
			return nil, domain.WrapError(domain.ErrorCodeResourceRead, "reading resource bundle", err)
		}
	}

	terminal, err := resource.ExtractTerminalConfig(key, bundle, opts.Alias)
	if err != nil {
		return nil, err
	}

	currencyCode := opts.Currency
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	numeric, digits, err := resolveCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	trackingID := opts.TrackingID
	if trackingID == "" {
		trackingID = defaultTrackingID()
	}

	logger.Debug("terminal configuration loaded",
		zap.String("alias", opts.Alias),
		zap.String("portal_id", terminal.PortalID),
		zap.String("currency", currencyCode),
	)

	return &Client{
		terminal:       *terminal,
		amount:         opts.Amount,
		currency:       numeric,
		currencyDigits: digits,
		language:       resolveLanguage(opts.Language),
		trackingID:     trackingID,
		logger:         logger,
	}, nil
}

// Terminal returns the decrypted terminal configuration.
func (c *Client) Terminal() domain.TerminalConfig {
	return c.terminal
}

// TrackingID returns the id correlating this transaction with its callback.
func (c *Client) TrackingID() string {
	return c.trackingID
}

// SetUDF sets user defined field n (1..5). The value is trimmed and
// stripped of denylisted punctuation before it is stored.
func (c *Client) SetUDF(n int, value string) error {
	if n < 1 || n > udfCount {
		return domain.NewDomainError(domain.ErrorCodeMissingField,
			fmt.Sprintf("udf index must be 1..%d, got %d", udfCount, n))
	}
	c.udfs[n-1] = sanitize(value)
	return nil
}

// UDF returns the sanitized value of user defined field n, or "" for an
// index out of range.
func (c *Client) UDF(n int) string {
	if n < 1 || n > udfCount {
		return ""
	}
	return c.udfs[n-1]
}

// SetResponseURL sets the URL the gateway redirects to with the transaction
// result. It must be http(s) and carry no query string.
func (c *Client) SetResponseURL(s string) error {
	validated, err := validateCallbackURL(s)
	if err != nil {
		return err
	}
	c.responseURL = validated
	return nil
}

// SetErrorURL sets the URL the gateway redirects to on processing errors.
// Same validation rules as SetResponseURL.
func (c *Client) SetErrorURL(s string) error {
	validated, err := validateCallbackURL(s)
	if err != nil {
		return err
	}
	c.errorURL = validated
	return nil
}

// ResponseURL returns the configured response URL, or "" if unset.
func (c *Client) ResponseURL() string { return c.responseURL }

// ErrorURL returns the configured error URL, or "" if unset.
func (c *Client) ErrorURL() string { return c.errorURL }

// GeneratePurchaseRequest builds the redirect URL for a purchase. Both
// callback URLs must have been set.
func (c *Client) GeneratePurchaseRequest() (string, error) {
	return c.GenerateRequest(domain.ActionPurchase)
}

// GenerateRequest builds the redirect URL for the given action code. All
// actions share the purchase parameter layout. The method is re-enterable:
// calling it again produces a fresh payload from the current state.
func (c *Client) GenerateRequest(action domain.Action) (string, error) {
	if !action.Valid() {
		return "", domain.NewDomainError(domain.ErrorCodeMissingField,
			fmt.Sprintf("unknown action code %d", int(action)))
	}
	if err := c.checkURLsSet(); err != nil {
		return "", err
	}

	encoded := encodeParams(c.buildParams(action))
	payload, err := crypto.EncryptPayload(encoded, c.terminal.ResourceKey)
	if err != nil {
		return "", err
	}

	c.logger.Debug("redirect payload built",
		zap.String("action", action.String()),
		zap.String("track_id", c.trackingID),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%s/PaymentHTTP.htm?param=paymentInit&trandata=%s", c.terminal.WebAddress, payload)
	fmt.Fprintf(&b, "&tranportalId=%s&responseURL=%s&errorURL=%s", c.terminal.PortalID, c.responseURL, c.errorURL)
	return b.String(), nil
}

// buildParams returns the ordered parameter list for an action. The
// ordering is fixed by the kit; empty values are dropped at encode time.
func (c *Client) buildParams(action domain.Action) []param {
	return []param{
		{"action", action.Code()},
		{"id", c.terminal.PortalID},
		{"password", c.terminal.Password},
		{"langid", c.language},
		{"currencycode", c.currency},
		{"trackid", c.trackingID},
		{"amt", c.amount.StringFixed(int32(c.currencyDigits))},
		{"udf1", c.udfs[0]},
		{"udf2", c.udfs[1]},
		{"udf3", c.udfs[2]},
		{"udf4", c.udfs[3]},
		{"udf5", c.udfs[4]},
		{"responseURL", c.responseURL},
		{"errorURL", c.errorURL},
	}
}

func (c *Client) checkURLsSet() error {
	var missing []string
	if c.responseURL == "" {
		missing = append(missing, "response_url")
	}
	if c.errorURL == "" {
		missing = append(missing, "error_url")
	}
	if len(missing) > 0 {
		return domain.NewDomainError(domain.ErrorCodePreconditionFailed,
			fmt.Sprintf("%s must be set before a request can be generated", strings.Join(missing, ", "))).
			WithDetail("missing", missing)
	}
	return nil
}

// ParseResult decodes the raw callback query string the gateway posts back.
// The trandata field is extracted and decrypted with the terminal's
// resource key; cleartext fields win over decrypted ones on key collision.
func (c *Client) ParseResult(rawQuery string) (map[string]string, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeInvalidGatewayResponse, "callback is not a valid query string", err)
	}

	encrypted := values.Get("trandata")
	if encrypted == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeInvalidGatewayResponse,
			"invalid response from the gateway, missing encrypted data")
	}
	values.Del("trandata")

	plaintext, err := crypto.DecryptPayload(encrypted, c.terminal.ResourceKey)
	if err != nil {
		return nil, err
	}
	decrypted, err := url.ParseQuery(plaintext)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeInvalidGatewayResponse, "decrypted payload is not a valid query string", err)
	}

	// Blank fields are dropped rather than kept as empty strings, so a
	// missing field and a blank one look the same to the caller.
	result := make(map[string]string, len(values)+len(decrypted))
	for k, v := range values {
		if len(v) > 0 && v[0] != "" {
			result[k] = v[0]
		}
	}
	for k, v := range decrypted {
		if _, exists := result[k]; !exists && len(v) > 0 && v[0] != "" {
			result[k] = v[0]
		}
	}
	return result, nil
}
