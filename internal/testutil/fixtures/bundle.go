// Package fixtures builds encrypted resource bundles for tests, mirroring
// what the bank ships to merchants: a TripleDES-encrypted zip archive with
// one encrypted "{alias}.xml" terminal document per entry.
package fixtures

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/fsspay/ipay-go/pkg/crypto"
)

// TerminalFields are the tag/value pairs of one terminal document. Tests
// omit entries to exercise the missing-field paths.
type TerminalFields map[string]string

// DefaultTerminal returns a complete terminal document with the given
// resource key.
func DefaultTerminal(resourceKey string) TerminalFields {
	return TerminalFields{
		"password":    "pw",
		"resourceKey": resourceKey,
		"id":          "T001",
		"webaddress":  "https://gw.example.com",
	}
}

// BundleBuilder provides a fluent API for building encrypted test bundles.
type BundleBuilder struct {
	key     []byte
	entries []bundleEntry
}

type bundleEntry struct {
	alias  string
	fields TerminalFields
	order  []string
}

// NewBundle creates a builder that encrypts with the given keystore key.
func NewBundle(key []byte) *BundleBuilder {
	return &BundleBuilder{key: key}
}

// WithTerminal adds one terminal document under "{alias}.xml".
func (b *BundleBuilder) WithTerminal(alias string, fields TerminalFields) *BundleBuilder {
	order := []string{"password", "resourceKey", "id", "webaddress"}
	b.entries = append(b.entries, bundleEntry{alias: alias, fields: fields, order: order})
	return b
}

// Build renders, encrypts and archives every terminal document, then
// encrypts the archive, producing bundle bytes as the bank would ship them.
func (b *BundleBuilder) Build() ([]byte, error) {
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)

	for _, e := range b.entries {
		doc := renderTerminalXML(e.fields, e.order)
		encrypted, err := crypto.EncryptBundle(b.key, doc)
		if err != nil {
			return nil, fmt.Errorf("encrypting entry %s: %w", e.alias, err)
		}
		w, err := zw.Create(e.alias + ".xml")
		if err != nil {
			return nil, fmt.Errorf("creating entry %s: %w", e.alias, err)
		}
		if _, err := w.Write(encrypted); err != nil {
			return nil, fmt.Errorf("writing entry %s: %w", e.alias, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return crypto.EncryptBundle(b.key, archive.Bytes())
}

func renderTerminalXML(fields TerminalFields, order []string) []byte {
	var doc bytes.Buffer
	doc.WriteString("<terminal>")
	written := make(map[string]bool)
	for _, tag := range order {
		if v, ok := fields[tag]; ok {
			fmt.Fprintf(&doc, "<%s>%s</%s>", tag, v, tag)
			written[tag] = true
		}
	}
	for tag, v := range fields {
		if !written[tag] {
			fmt.Fprintf(&doc, "<%s>%s</%s>", tag, v, tag)
		}
	}
	doc.WriteString("</terminal>")
	return doc.Bytes()
}
