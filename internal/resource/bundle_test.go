package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/internal/testutil/fixtures"
)

var bundleKey = []byte("0123456789abcdef")

func TestExtractTerminalConfig(t *testing.T) {
	bundle, err := fixtures.NewBundle(bundleKey).
		WithTerminal("shop", fixtures.TerminalFields{
			"password":    "secret",
			"resourceKey": "aaaabbbbccccdddd",
			"id":          "T042",
			"webaddress":  "https://gw.example.com",
		}).
		Build()
	require.NoError(t, err)

	cfg, err := ExtractTerminalConfig(bundleKey, bundle, "shop")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "aaaabbbbccccdddd", cfg.ResourceKey)
	assert.Equal(t, "T042", cfg.PortalID)
	assert.Equal(t, "https://gw.example.com", cfg.WebAddress)
}

func TestExtractTerminalConfig_MultipleTerminals(t *testing.T) {
	bundle, err := fixtures.NewBundle(bundleKey).
		WithTerminal("shop", fixtures.DefaultTerminal("aaaabbbbccccdddd")).
		WithTerminal("kiosk", fixtures.TerminalFields{
			"password":    "other",
			"resourceKey": "ddddccccbbbbaaaa",
			"id":          "T043",
			"webaddress":  "https://gw2.example.com",
		}).
		Build()
	require.NoError(t, err)

	cfg, err := ExtractTerminalConfig(bundleKey, bundle, "kiosk")
	require.NoError(t, err)
	assert.Equal(t, "T043", cfg.PortalID)
}

func TestExtractTerminalConfig_UnknownAlias(t *testing.T) {
	bundle, err := fixtures.NewBundle(bundleKey).
		WithTerminal("shop", fixtures.DefaultTerminal("aaaabbbbccccdddd")).
		WithTerminal("kiosk", fixtures.DefaultTerminal("ddddccccbbbbaaaa")).
		Build()
	require.NoError(t, err)

	_, err = ExtractTerminalConfig(bundleKey, bundle, "warehouse")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeInvalidAlias))

	// The error lists the known entries for diagnostics.
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, []string{"kiosk.xml", "shop.xml"}, domainErr.Details["known_entries"])
}

func TestExtractTerminalConfig_MissingRequiredTag(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{name: "no password", missing: "password"},
		{name: "no resourceKey", missing: "resourceKey"},
		{name: "no id", missing: "id"},
		{name: "no webaddress", missing: "webaddress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fixtures.DefaultTerminal("aaaabbbbccccdddd")
			delete(fields, tt.missing)

			bundle, err := fixtures.NewBundle(bundleKey).
				WithTerminal("shop", fields).
				Build()
			require.NoError(t, err)

			_, err = ExtractTerminalConfig(bundleKey, bundle, "shop")
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrorCodeMissingField), "got %v", err)
		})
	}
}

func TestExtractTerminalConfig_WrongKey(t *testing.T) {
	bundle, err := fixtures.NewBundle(bundleKey).
		WithTerminal("shop", fixtures.DefaultTerminal("aaaabbbbccccdddd")).
		Build()
	require.NoError(t, err)

	_, err = ExtractTerminalConfig([]byte("fedcba9876543210"), bundle, "shop")
	require.Error(t, err)
}

func TestExtractTerminalConfig_GarbageBundle(t *testing.T) {
	_, err := ExtractTerminalConfig(bundleKey, []byte("definitely not a bundle"), "shop")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeDecryptionFailed))
}

func TestParseFlatDocument(t *testing.T) {
	doc := []byte(`<terminal>
		<password>pw</password>
		<resourceKey>key</resourceKey>
		<id>T001</id>
		<webaddress>https://gw.example.com</webaddress>
	</terminal>`)

	fields, err := parseFlatDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"password":    "pw",
		"resourceKey": "key",
		"id":          "T001",
		"webaddress":  "https://gw.example.com",
	}, fields)
}

func TestParseFlatDocument_Malformed(t *testing.T) {
	_, err := parseFlatDocument([]byte("<terminal><id>T001</terminal>"))
	require.Error(t, err)
}
