package sheets

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		if got := columnLabel(tt.col); got != tt.want {
			t.Fatalf("columnLabel(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	missing := &googleapi.Error{Code: 400, Message: "Unable to parse range: nope!A1"}
	if !errors.Is(classify("nope", missing), ErrTableNotFound) {
		t.Fatal("missing worksheet must classify as ErrTableNotFound")
	}

	gone := &googleapi.Error{Code: 404, Message: "Requested entity was not found."}
	if !errors.Is(classify("status_log", gone), ErrTableNotFound) {
		t.Fatal("missing spreadsheet must classify as ErrTableNotFound")
	}

	denied := &googleapi.Error{Code: 403, Message: "The caller does not have permission"}
	if errors.Is(classify("status_log", denied), ErrTableNotFound) {
		t.Fatal("permission errors must pass through unclassified")
	}

	plain := fmt.Errorf("dial tcp: connection refused")
	if !errors.Is(classify("status_log", plain), plain) {
		t.Fatal("transport errors must pass through unchanged")
	}
}
