package sheets

import (
	"context"
	"errors"
)

// ErrTableNotFound reports that a named table (worksheet) does not exist in
// the backing spreadsheet.
var ErrTableNotFound = errors.New("table not found")

// TableStore is the backing tabular store consumed by the engine. Tables
// are addressed by name. Row and column indexes on the cell operations are
// 1-based, matching spreadsheet conventions; row 1 is the header.
//
// Implementations must be safe for concurrent reads. They are not expected
// to provide any multi-cell transaction: a sequence of UpdateCell calls can
// fail partway through and leave the row inconsistent, which the engine's
// callers recover from by re-issuing the same key-matched write.
type TableStore interface {
	// ReadRows returns every row of the named table, header row first.
	// Rows may be ragged; short rows are not padded.
	ReadRows(ctx context.Context, table string) ([][]string, error)

	// AppendRow appends one row after the last data row of the table.
	AppendRow(ctx context.Context, table string, row []string) error

	// UpdateCell overwrites a single cell in place.
	UpdateCell(ctx context.Context, table string, row, col int, value string) error

	// ReadCell returns a single cell value, "" if the cell is empty.
	ReadCell(ctx context.Context, table string, row, col int) (string, error)
}
