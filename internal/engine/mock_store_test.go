package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/campusops/caseledger/internal/sheets"
)

// mockStore is a small in-memory TableStore for unit tests, with counters
// and failure injection. Intentionally minimal, not production-grade.
type mockStore struct {
	mu     sync.Mutex
	tables map[string][][]string

	readCalls   int
	appendCalls int
	updateCalls int

	failReads   error // every ReadRows/ReadCell fails with this
	failAppends error // every AppendRow fails with this
	failUpdateN int   // fail the Nth UpdateCell call (1-based); 0 = never
	updateSeen  int
}

func newMockStore() *mockStore {
	return &mockStore{tables: map[string][][]string{}}
}

func (m *mockStore) ReadRows(ctx context.Context, table string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCalls++
	if m.failReads != nil {
		return nil, m.failReads
	}
	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", sheets.ErrTableNotFound, table)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *mockStore) AppendRow(ctx context.Context, table string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendCalls++
	if m.failAppends != nil {
		return m.failAppends
	}
	if _, ok := m.tables[table]; !ok {
		return fmt.Errorf("%w: %q", sheets.ErrTableNotFound, table)
	}
	m.tables[table] = append(m.tables[table], append([]string(nil), row...))
	return nil
}

func (m *mockStore) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	m.updateSeen++
	if m.failUpdateN > 0 && m.updateSeen == m.failUpdateN {
		return fmt.Errorf("injected update failure (call %d)", m.updateSeen)
	}
	rows, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %q", sheets.ErrTableNotFound, table)
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	r := rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	rows[row-1] = r
	return nil
}

func (m *mockStore) ReadCell(ctx context.Context, table string, row, col int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCalls++
	if m.failReads != nil {
		return "", m.failReads
	}
	rows, ok := m.tables[table]
	if !ok {
		return "", fmt.Errorf("%w: %q", sheets.ErrTableNotFound, table)
	}
	if row < 1 || row > len(rows) || col < 1 || col > len(rows[row-1]) {
		return "", nil
	}
	return rows[row-1][col-1], nil
}

// rowCount reports data rows (header excluded).
func (m *mockStore) rowCount(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tables[table]) == 0 {
		return 0
	}
	return len(m.tables[table]) - 1
}

func (m *mockStore) cell(table string, row, col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.tables[table][row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}
