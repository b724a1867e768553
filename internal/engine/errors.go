package engine

import (
	"fmt"
	"strings"
)

// The engine surfaces three error kinds. Timestamp and cell parse failures
// are not among them: reads substitute empty values and carry on, while
// writes refuse to guess — the asymmetry is deliberate.

// ConnectError reports that the backing store could not be reached or
// rejected the credentials. Fatal for the calling operation; the engine
// never retries it, and no partial or stale view is returned in its place.
type ConnectError struct {
	Op  string
	Err error
}

func (e *ConnectError) Error() string { return fmt.Sprintf("store connect: %s: %v", e.Op, e.Err) }
func (e *ConnectError) Unwrap() error { return e.Err }

// SchemaError reports a missing table, or a required column absent from the
// live header on the write path. Never retried: without the column there is
// no unambiguous write target. The read path instead defaults missing
// columns to empty strings.
type SchemaError struct {
	Table   string
	Missing []string
	Err     error
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema: table %q missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("schema: table %q: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// WriteError reports a partial or total upsert failure. The store has no
// multi-cell transaction, so an interrupted update can leave a row half
// written; re-issuing the same upsert locates the row by case id and
// completes the remaining cells, so read-verify-retry is always safe.
type WriteError struct {
	Op     string
	CaseID string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write: %s (case %q): %v", e.Op, e.CaseID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
