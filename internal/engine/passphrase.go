package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/campusops/caseledger/internal/sheets"
)

// zero-width characters that survive copy-paste from chat apps and sheets
var zeroWidth = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// NormalizePassphrase strips the invisible junk that sneaks into
// spreadsheet cells and pasted values: fullwidth spaces become ASCII
// spaces, zero-width characters are dropped, and the result is trimmed.
// Applied to both the stored cell and any presented value so the two sides
// compare like for like.
func NormalizePassphrase(s string) string {
	s = strings.ReplaceAll(s, "\u3000", " ")
	s = zeroWidth.Replace(s)
	return strings.TrimSpace(s)
}

// Passphrase returns the normalized admin passphrase from cell A1 of the
// config table. Empty means auth is disabled. Read fresh on every call so
// an operator changing the cell takes effect immediately.
func (e *Engine) Passphrase(ctx context.Context) (string, error) {
	raw, err := e.store.ReadCell(ctx, e.configTable, 1, 1)
	if err != nil {
		if errors.Is(err, sheets.ErrTableNotFound) {
			return "", &SchemaError{Table: e.configTable, Err: err}
		}
		return "", &ConnectError{Op: "read passphrase", Err: err}
	}
	return NormalizePassphrase(raw), nil
}
