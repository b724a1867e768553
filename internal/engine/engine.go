// Package engine owns the read-side merge pipeline and the write paths of
// the case ledger against one backing store. Construct an Engine once with
// its store client and share it; the embedded view cache is its only
// mutable state. Writes are not safe under concurrent callers racing for
// the same case id — the backing store offers no row locks or version
// checks, and those races are cross-process anyway. Last write observed
// wins.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusops/caseledger/internal/ledger"
	"github.com/campusops/caseledger/internal/metrics"
	"github.com/campusops/caseledger/internal/sheets"
)

// DefaultCacheTTL is the reference view-cache window. Deployments have run
// anything between this and 600s.
const DefaultCacheTTL = 120 * time.Second

// TimestampLayout is the writer-assigned timestamp format for log cells.
const TimestampLayout = "2006-01-02 15:04:05"

// requiredStatusColumns must all be present, by exact name, in the status
// log header before any write is attempted.
var requiredStatusColumns = []string{
	ledger.ColTimestamp, ledger.ColCaseID, ledger.ColStatus, ledger.ColNote,
}

// Engine merges the case intake log and the status log into the current
// state per case, and writes status updates back.
type Engine struct {
	store       sheets.TableStore
	caseTable   string
	statusTable string
	configTable string
	ttl         time.Duration
	cache       viewCache
	nowFunc     func() time.Time
}

// New returns an Engine bound to the three tables of one backing store.
// cacheTTL <= 0 selects DefaultCacheTTL.
func New(store sheets.TableStore, caseTable, statusTable, configTable string, cacheTTL time.Duration) *Engine {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Engine{
		store:       store,
		caseTable:   caseTable,
		statusTable: statusTable,
		configTable: configTable,
		ttl:         cacheTTL,
		nowFunc:     time.Now,
	}
}

// Stamp returns a writer-assigned timestamp cell value for new log rows.
func (e *Engine) Stamp() string {
	return e.nowFunc().Format(TimestampLayout)
}

// LoadMergedView returns one MergedRecord per distinct case id in the
// intake log, latest submission winning, joined with the latest status
// event per case and ordered by report date descending. Served from the
// memo within the cache window; any read failure aborts the whole view —
// no partial or stale view is ever returned.
func (e *Engine) LoadMergedView(ctx context.Context) ([]ledger.MergedRecord, error) {
	if view, ok := e.cache.get(e.nowFunc()); ok {
		metrics.ViewLoads.WithLabelValues("cache").Inc()
		return view, nil
	}

	caseRows, err := e.store.ReadRows(ctx, e.caseTable)
	if err != nil {
		return nil, e.readErr("read case log", e.caseTable, err)
	}
	statusRows, err := e.store.ReadRows(ctx, e.statusTable)
	if err != nil {
		return nil, e.readErr("read status log", e.statusTable, err)
	}

	projected := ledger.Project(caseRows, ledger.CaseColumns)
	cases := make([]ledger.Case, 0, len(projected))
	for i, row := range projected {
		cases = append(cases, ledger.CaseFromRow(i, row))
	}
	projected = ledger.Project(statusRows, ledger.StatusColumns)
	events := make([]ledger.StatusEvent, 0, len(projected))
	for i, row := range projected {
		events = append(events, ledger.StatusEventFromRow(i, row))
	}

	caseMap := ledger.CompactBy(cases, func(c ledger.Case) string { return c.CaseID })
	eventMap := ledger.CompactBy(events, func(ev ledger.StatusEvent) string { return ev.CaseID })

	orphans := 0
	for id := range eventMap {
		if _, ok := caseMap[id]; !ok {
			orphans++
		}
	}
	metrics.OrphanEvents.Set(float64(orphans))

	view := ledger.Join(caseMap, eventMap)
	e.cache.set(view, e.nowFunc().Add(e.ttl))
	metrics.ViewLoads.WithLabelValues("store").Inc()
	return view, nil
}

// Upsert records a status change for caseID: the last status-log row for
// the id is overwritten in place, or a new full-width row is appended when
// none exists. The write path always reads fresh from the store, never the
// cache, and invalidates the cache on success so the next view reflects
// the write immediately.
func (e *Engine) Upsert(ctx context.Context, caseID, status, note string) error {
	err := e.upsert(ctx, caseID, status, note)
	if err != nil {
		metrics.Upserts.WithLabelValues("error").Inc()
		return err
	}
	metrics.Upserts.WithLabelValues("ok").Inc()
	return nil
}

func (e *Engine) upsert(ctx context.Context, caseID, status, note string) error {
	key := strings.TrimSpace(caseID)
	if key == "" {
		return &WriteError{Op: "upsert", CaseID: caseID, Err: errors.New("blank case id")}
	}

	rows, err := e.store.ReadRows(ctx, e.statusTable)
	if err != nil {
		if errors.Is(err, sheets.ErrTableNotFound) {
			return &SchemaError{Table: e.statusTable, Err: err}
		}
		return &WriteError{Op: "read status log", CaseID: key, Err: err}
	}
	if len(rows) == 0 {
		return &SchemaError{Table: e.statusTable, Missing: requiredStatusColumns}
	}

	header := rows[0]
	cols := make(map[string]int, len(requiredStatusColumns))
	var missing []string
	for _, name := range requiredStatusColumns {
		i := exactIndex(header, name)
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return &SchemaError{Table: e.statusTable, Missing: missing}
	}

	// Latest means last in file: scan every data row and remember the final
	// match. Stopping at the first hit would target a superseded row.
	target := 0 // 1-based sheet row; 0 = not found
	idCol := cols[ledger.ColCaseID]
	for i, row := range rows[1:] {
		if idCol < len(row) && strings.TrimSpace(row[idCol]) == key {
			target = i + 2
		}
	}

	stamp := e.nowFunc().Format(TimestampLayout)
	if target > 0 {
		// In-place overwrite; the case_id cell stays untouched. A failure
		// partway through leaves the row half written — the caller
		// re-issues the same upsert, which finds this row again and
		// completes the remaining cells.
		writes := []struct {
			col int
			val string
		}{
			{cols[ledger.ColTimestamp], stamp},
			{cols[ledger.ColStatus], status},
			{cols[ledger.ColNote], note},
		}
		for _, w := range writes {
			if err := e.store.UpdateCell(ctx, e.statusTable, target, w.col+1, w.val); err != nil {
				return &WriteError{Op: "update status row", CaseID: key, Err: err}
			}
		}
	} else {
		row := make([]string, len(header))
		row[cols[ledger.ColTimestamp]] = stamp
		row[idCol] = key
		row[cols[ledger.ColStatus]] = status
		row[cols[ledger.ColNote]] = note
		if err := e.store.AppendRow(ctx, e.statusTable, row); err != nil {
			return &WriteError{Op: "append status row", CaseID: key, Err: err}
		}
	}

	e.cache.invalidate()
	return nil
}

// AppendCase writes one intake-log row for c, shaped by the live header so
// operator-added submitter columns survive untouched. The caller sets
// CaseID and ReportedAt. Same write-side strictness as Upsert: the
// timestamp and case_id columns must exist by exact name.
func (e *Engine) AppendCase(ctx context.Context, c ledger.Case) error {
	key := strings.TrimSpace(c.CaseID)
	if key == "" {
		return &WriteError{Op: "append case", CaseID: c.CaseID, Err: errors.New("blank case id")}
	}

	rows, err := e.store.ReadRows(ctx, e.caseTable)
	if err != nil {
		if errors.Is(err, sheets.ErrTableNotFound) {
			return &SchemaError{Table: e.caseTable, Err: err}
		}
		return &WriteError{Op: "read case log", CaseID: key, Err: err}
	}
	if len(rows) == 0 {
		return &SchemaError{Table: e.caseTable, Missing: []string{ledger.ColTimestamp, ledger.ColCaseID}}
	}

	header := rows[0]
	tsCol := exactIndex(header, ledger.ColTimestamp)
	idCol := exactIndex(header, ledger.ColCaseID)
	var missing []string
	if tsCol < 0 {
		missing = append(missing, ledger.ColTimestamp)
	}
	if idCol < 0 {
		missing = append(missing, ledger.ColCaseID)
	}
	if len(missing) > 0 {
		return &SchemaError{Table: e.caseTable, Missing: missing}
	}

	row := make([]string, len(header))
	row[tsCol] = c.ReportedAt
	row[idCol] = key
	set := func(name, val string) {
		if i := exactIndex(header, name); i >= 0 {
			row[i] = val
		}
	}
	set(ledger.ColLocation, c.Location)
	set(ledger.ColEquipment, c.Equipment)
	set(ledger.ColDescription, c.Description)
	set(ledger.ColMediaLinks, ledger.JoinMediaLinks(c.MediaLinks))

	if err := e.store.AppendRow(ctx, e.caseTable, row); err != nil {
		return &WriteError{Op: "append case row", CaseID: key, Err: err}
	}

	metrics.IntakeAppends.Inc()
	e.cache.invalidate()
	return nil
}

func (e *Engine) readErr(op, table string, err error) error {
	if errors.Is(err, sheets.ErrTableNotFound) {
		return &SchemaError{Table: table, Err: err}
	}
	return &ConnectError{Op: op, Err: err}
}

// exactIndex returns the index of the first header cell equal to name, -1
// when absent. No trimming: the write path matches exact names only.
func exactIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
