// Package ledger holds the pure core of the case tracker: tolerant schema
// projection of loosely-structured tabular logs, key-based compaction, the
// case/status join, and timestamp normalization. Nothing in this package
// touches the backing store.
package ledger

import "strings"

// Row is one projected data row keyed by expected column name. Every
// expected column is present, possibly with an empty value.
type Row map[string]string

// Project maps raw store rows onto the expected column set. The first raw
// row is treated as the header; remaining rows are data. Operator-edited
// headers are routine in this domain (extra blank columns, duplicated
// names), so projection degrades instead of failing: duplicate and blank
// header cells are resolved first-occurrence-wins, and expected columns
// missing from the header yield "" in every row. Empty input yields an
// empty table. Pure function over its input snapshot.
func Project(raw [][]string, expected []string) []Row {
	if len(raw) == 0 {
		return []Row{}
	}
	idx := headerIndex(raw[0])
	rows := make([]Row, 0, len(raw)-1)
	for _, data := range raw[1:] {
		r := make(Row, len(expected))
		for _, col := range expected {
			i, ok := idx[col]
			if !ok || i >= len(data) {
				r[col] = ""
				continue
			}
			r[col] = data[i]
		}
		rows = append(rows, r)
	}
	return rows
}

// headerIndex maps header name to column index, first occurrence wins.
// Blank header cells are skipped entirely.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, seen := idx[name]; seen {
			continue
		}
		idx[name] = i
	}
	return idx
}
