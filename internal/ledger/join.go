package ledger

import "sort"

// Join left-joins compacted cases with compacted status events on case id.
// Every case id in cases appears exactly once in the output; events whose
// case id has no intake row are excluded. Records are ordered by normalized
// report date descending, unparsable dates last, ties broken by the case's
// append position — deterministic output is required for pagination and
// test reproducibility. Pure function; never touches the backing store.
func Join(cases map[string]Case, events map[string]StatusEvent) []MergedRecord {
	type joinRow struct {
		rec MergedRecord
		pos int
	}
	rows := make([]joinRow, 0, len(cases))
	for id, c := range cases {
		rec := MergedRecord{
			CaseID:      id,
			ReportedAt:  NormalizeDate(c.ReportedAt),
			Location:    c.Location,
			Equipment:   c.Equipment,
			Description: c.Description,
			MediaLinks:  c.MediaLinks,
		}
		if rec.MediaLinks == nil {
			rec.MediaLinks = []string{}
		}
		if ev, ok := events[id]; ok {
			rec.Status = ev.Status
			rec.Note = ev.Note
			rec.StatusAt = NormalizeDate(ev.RecordedAt)
		}
		rows = append(rows, joinRow{rec: rec, pos: c.Pos})
	}

	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].rec.ReportedAt, rows[j].rec.ReportedAt
		if di != dj {
			if di == "" {
				return false
			}
			if dj == "" {
				return true
			}
			return di > dj
		}
		return rows[i].pos < rows[j].pos
	})

	out := make([]MergedRecord, len(rows))
	for i, r := range rows {
		out[i] = r.rec
	}
	return out
}
