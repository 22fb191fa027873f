package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TerminalConfig holds the per-terminal credentials recovered from the
// bank-issued resource bundle. It is built once during client construction
// and never mutated afterwards.
type TerminalConfig struct {
	// Password authenticates the terminal against the gateway.
	Password string

	// ResourceKey is the AES key used for the trandata payload cipher.
	ResourceKey string

	// PortalID identifies the terminal (tranportalId on the wire).
	PortalID string

	// WebAddress is the base URL of the hosted payment gateway.
	WebAddress string
}

// Validate checks that every credential the gateway handshake needs was
// present in the decrypted configuration document.
func (c TerminalConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.ResourceKey, validation.Required),
		validation.Field(&c.PortalID, validation.Required),
		validation.Field(&c.WebAddress, validation.Required),
	)
	if err != nil {
		return WrapError(ErrorCodeMissingField, "terminal configuration is incomplete", err)
	}
	return nil
}
