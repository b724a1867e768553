package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Client talks to a single Google spreadsheet through the Sheets API and
// implements TableStore; each worksheet acts as one table. The client is
// long-lived and safe to share across requests.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewClient builds a Sheets-backed store for the given spreadsheet.
// Credentials come through opts (e.g. option.WithCredentialsFile) or
// application default credentials when none are given.
func NewClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) ReadRows(ctx context.Context, table string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, classify(table, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, table string, row []string) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, table, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return classify(table, err)
	}
	return nil
}

func (c *Client) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", table, columnLabel(col), row)
	vr := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return classify(table, err)
	}
	return nil
}

func (c *Client) ReadCell(ctx context.Context, table string, row, col int) (string, error) {
	rng := fmt.Sprintf("%s!%s%d", table, columnLabel(col), row)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", classify(table, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

// classify maps Sheets API errors onto the store's error vocabulary. The
// API reports a missing worksheet as a 400 "Unable to parse range" on the
// values endpoints; a 404 means the whole spreadsheet is gone.
func classify(table string, err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		if ge.Code == http.StatusBadRequest && strings.Contains(ge.Message, "Unable to parse range") {
			return fmt.Errorf("%w: %q", ErrTableNotFound, table)
		}
		if ge.Code == http.StatusNotFound {
			return fmt.Errorf("%w: %q (spreadsheet missing)", ErrTableNotFound, table)
		}
	}
	return err
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// columnLabel converts a 1-based column index to its A1 letter form
// (1 -> A, 26 -> Z, 27 -> AA).
func columnLabel(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}
