package ledger

import "strings"

// CompactBy reduces a repeated-append log to the latest row per key.
// "Latest" means last physical append position, never a parsed timestamp:
// writer-assigned timestamps normally agree with append order, but manual
// sheet edits and clock skew make them unreliable, and the upsert write
// path depends on the same last-in-file rule. Rows whose key is blank
// after trimming are dropped. Compacting an already-compacted log returns
// an identical mapping.
func CompactBy[T any](rows []T, key func(T) string) map[string]T {
	out := make(map[string]T, len(rows))
	for _, row := range rows {
		k := strings.TrimSpace(key(row))
		if k == "" {
			continue
		}
		out[k] = row
	}
	return out
}
