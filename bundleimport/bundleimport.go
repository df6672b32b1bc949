// Package bundleimport converts an existing go-i18n TOML message bundle
// into catalog text-format entries, for projects migrating off that
// ecosystem. It mirrors the teacher's own bundle-loading shape
// (i18n.NewBundle + toml.Unmarshal registration) but only accepts message
// IDs that already satisfy the catalog token grammar — a human-readable
// go-i18n message ID like "welcome_message" isn't a valid hex or style_
// token, so those are reported as skipped rather than silently renamed.
package bundleimport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Result reports the outcome of importing one bundle file.
type Result struct {
	// Lines holds one rendered catalog line ("token: template") per accepted
	// message ID, in deterministic (sorted by token) order.
	Lines []string
	// Skipped lists message IDs that did not satisfy the catalog token
	// grammar, paired with the reason.
	Skipped []SkippedMessage
}

// SkippedMessage names a go-i18n message ID that could not be imported.
type SkippedMessage struct {
	MessageID string
	Reason    string
}

// tokenValidator is satisfied by the catalog package's exported
// IsValidToken; it is injected rather than imported, so this package does
// not depend on the catalog package (callers pass catalog.IsValidToken to
// ImportFile).
type tokenValidator func(raw string) bool

// ImportFile loads a go-i18n TOML message file for lang and converts each
// message whose ID already satisfies isValidToken into a catalog text-line.
// Message IDs that are parameterized ({{.Name}}-style) are rejected: the
// catalog's %N/@ref placeholder grammar is not go-i18n's, and silently
// guessing a translation would risk corrupting the template.
func ImportFile(path string, lang language.Tag, isValidToken tokenValidator) (Result, error) {
	bundle := i18n.NewBundle(lang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	messageFile, err := bundle.LoadMessageFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("load message file %s: %w", path, err)
	}

	var result Result
	type row struct {
		token, line string
	}
	var rows []row

	for _, msg := range messageFile.Messages {
		if strings.Contains(msg.ID, "{{") {
			result.Skipped = append(result.Skipped, SkippedMessage{
				MessageID: msg.ID,
				Reason:    "parameterized message id has no catalog placeholder equivalent",
			})
			continue
		}
		if !isValidToken(msg.ID) {
			result.Skipped = append(result.Skipped, SkippedMessage{
				MessageID: msg.ID,
				Reason:    "message id is not a valid hex or style_ catalog token",
			})
			continue
		}

		template := msg.Other
		if template == "" {
			template = msg.One
		}
		rows = append(rows, row{token: msg.ID, line: msg.ID + ": " + escapeForCatalog(template)})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].token < rows[j].token })
	for _, r := range rows {
		result.Lines = append(result.Lines, r.line)
	}

	return result, nil
}

// escapeForCatalog backslash-escapes the catalog text format's special
// characters (colon, backslash) so an imported go-i18n template round-trips
// through the catalog text parser's unescape step.
func escapeForCatalog(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ":", "\\:")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
