package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTerminal() TerminalConfig {
	return TerminalConfig{
		Password:    "pw",
		ResourceKey: "aaaabbbbccccdddd",
		PortalID:    "T001",
		WebAddress:  "https://gw.example.com",
	}
}

func TestTerminalConfig_Validate(t *testing.T) {
	require.NoError(t, validTerminal().Validate())
}

func TestTerminalConfig_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TerminalConfig)
	}{
		{name: "no password", mutate: func(c *TerminalConfig) { c.Password = "" }},
		{name: "no resource key", mutate: func(c *TerminalConfig) { c.ResourceKey = "" }},
		{name: "no portal id", mutate: func(c *TerminalConfig) { c.PortalID = "" }},
		{name: "no web address", mutate: func(c *TerminalConfig) { c.WebAddress = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTerminal()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, IsDomainError(err, ErrorCodeMissingField))
		})
	}
}
