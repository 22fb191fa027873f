// Package resource extracts per-terminal credentials from the bank-issued
// encrypted resource bundle. The bundle decrypts to a zip archive holding
// one "{alias}.xml" entry per terminal; each entry is itself encrypted with
// the same keystore key and parses as a flat tag/value document.
package resource

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/pkg/crypto"
)

// ExtractTerminalConfig decrypts the bundle, locates the entry for alias and
// parses it into a validated TerminalConfig. The same key decrypts both the
// outer bundle and the inner entry.
func ExtractTerminalConfig(key, bundle []byte, alias string) (*domain.TerminalConfig, error) {
	archive, err := crypto.DecryptBundle(key, bundle)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeDecryptionFailed, "decrypted bundle is not a zip archive", err)
	}

	entry, err := findEntry(zr, alias)
	if err != nil {
		return nil, err
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeResourceRead, "opening bundle entry", err)
	}
	defer rc.Close()

	encrypted, err := io.ReadAll(rc)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeResourceRead, "reading bundle entry", err)
	}

	document, err := crypto.DecryptBundle(key, encrypted)
	if err != nil {
		return nil, err
	}

	fields, err := parseFlatDocument(document)
	if err != nil {
		return nil, err
	}

	cfg := &domain.TerminalConfig{
		Password:    fields["password"],
		ResourceKey: fields["resourceKey"],
		PortalID:    fields["id"],
		WebAddress:  fields["webaddress"],
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findEntry(zr *zip.Reader, alias string) (*zip.File, error) {
	want := alias + ".xml"
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		if f.Name == want {
			return f, nil
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return nil, domain.NewDomainError(domain.ErrorCodeInvalidAlias,
		fmt.Sprintf("alias %q does not exist in the resource bundle", alias)).
		WithDetail("known_entries", names)
}

// parseFlatDocument reads the terminal-configuration document: every
// top-level child of the root element contributes one key/value pair, the
// tag name as key and its text content as value.
func parseFlatDocument(doc []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	fields := make(map[string]string)
	depth := 0
	var key string
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.WrapError(domain.ErrorCodeDecryptionFailed, "terminal configuration is not well-formed XML", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				key = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				fields[key] = strings.TrimSpace(text.String())
			}
			depth--
		}
	}
	return fields, nil
}
