package ledger

import "strings"

// Column names shared by both logs. Exact names matter on the write path;
// the read path projects tolerantly (see Project).
const (
	ColTimestamp   = "timestamp"
	ColLocation    = "location"
	ColEquipment   = "equipment"
	ColDescription = "description"
	ColMediaLinks  = "media_links"
	ColCaseID      = "case_id"
	ColStatus      = "status"
	ColNote        = "note"
)

// CaseColumns is the projection target for the case intake log. Submitter
// metadata columns operators add to the sheet are not listed here and are
// therefore invisible to the engine.
var CaseColumns = []string{
	ColTimestamp, ColLocation, ColEquipment, ColDescription, ColMediaLinks, ColCaseID,
}

// StatusColumns is the projection target for the status log.
var StatusColumns = []string{ColTimestamp, ColCaseID, ColStatus, ColNote}

// Advisory status vocabulary offered to intake tooling. The store does not
// enforce it; unknown values pass through the engine unchanged.
const (
	StatusReceived      = "received"
	StatusInProgress    = "in_progress"
	StatusAwaitingParts = "awaiting_parts"
	StatusDone          = "done"
	StatusRejected      = "rejected"
)

// StatusVocabulary lists the advisory statuses in display order.
var StatusVocabulary = []string{
	StatusReceived, StatusInProgress, StatusAwaitingParts, StatusDone, StatusRejected,
}

// Case is one intake-log submission. Pos is the physical append position
// within the log (0 = first data row); re-submissions share a CaseID and
// the last position wins during compaction.
type Case struct {
	Pos         int
	CaseID      string
	ReportedAt  string // raw timestamp cell, normalized only at join time
	Location    string
	Equipment   string
	Description string
	MediaLinks  []string
}

// StatusEvent is one status-log row. RecordedAt is writer-assigned, never
// user-supplied, but recency is still decided by Pos (see CompactBy).
type StatusEvent struct {
	Pos        int
	CaseID     string
	RecordedAt string
	Status     string
	Note       string
}

// MergedRecord is one row of the read-side view: the latest Case fields for
// a case id combined with its latest StatusEvent fields. Status fields are
// empty strings, never absent, when no event exists yet.
type MergedRecord struct {
	CaseID      string   `json:"case_id"`
	ReportedAt  string   `json:"reported_at"` // normalized YYYY-MM-DD, "" when unparsable
	Location    string   `json:"location"`
	Equipment   string   `json:"equipment"`
	Description string   `json:"description"`
	MediaLinks  []string `json:"media_links"`
	Status      string   `json:"status"`
	Note        string   `json:"note"`
	StatusAt    string   `json:"status_at"` // normalized date of the latest event, "" when none
}

// CaseFromRow builds a Case from a projected intake-log row.
func CaseFromRow(pos int, row Row) Case {
	return Case{
		Pos:         pos,
		CaseID:      strings.TrimSpace(row[ColCaseID]),
		ReportedAt:  row[ColTimestamp],
		Location:    row[ColLocation],
		Equipment:   row[ColEquipment],
		Description: row[ColDescription],
		MediaLinks:  SplitMediaLinks(row[ColMediaLinks]),
	}
}

// StatusEventFromRow builds a StatusEvent from a projected status-log row.
func StatusEventFromRow(pos int, row Row) StatusEvent {
	return StatusEvent{
		Pos:        pos,
		CaseID:     strings.TrimSpace(row[ColCaseID]),
		RecordedAt: row[ColTimestamp],
		Status:     row[ColStatus],
		Note:       row[ColNote],
	}
}

// SplitMediaLinks splits a comma-separated media cell, preserving order.
// An empty cell yields an empty, non-nil list. The store does not escape
// embedded commas, so a URL containing one splits apart (known limitation;
// intake validation rejects such links at the boundary).
func SplitMediaLinks(cell string) []string {
	links := []string{}
	for _, part := range strings.Split(cell, ",") {
		if p := strings.TrimSpace(part); p != "" {
			links = append(links, p)
		}
	}
	return links
}

// JoinMediaLinks is the inverse of SplitMediaLinks for the write path.
func JoinMediaLinks(links []string) string {
	return strings.Join(links, ",")
}
