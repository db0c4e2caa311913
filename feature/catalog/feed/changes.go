package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
)

// The changes workbook layout is a contract with the external source: two
// named sheets whose data rows start at a fixed offset past a header block.
const (
	SheetWithdrawn = "Withdrawn"
	SheetAdded     = "Added"

	// withdrawnHeaderRow is the 1-based row carrying the Withdrawn header
	// cells; data rows start right below it.
	withdrawnHeaderRow = 7
	// addedHeaderRow is the 1-based row carrying the Added header cells.
	addedHeaderRow = 6
)

// Notice is a single withdrawal entry from the changes workbook. It is
// ephemeral: constructed from the feed, matched against local journals,
// never persisted.
type Notice struct {
	Title       string `json:"title"`
	ISSN        string `json:"issn"`
	RemovalDate string `json:"removal_date"`
	Reason      string `json:"reason"`
}

// FetchChanges downloads the changes workbook and extracts the withdrawal
// notices keyed by electronic identifier.
func FetchChanges(ctx context.Context, url string) (map[string]Notice, error) {
	if url == "" {
		return nil, fmt.Errorf("changes URL not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build changes request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch changes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch changes: unexpected status %s", resp.Status)
	}

	return ParseChanges(resp.Body)
}

// ParseChanges reads the changes workbook. The expected header cells of both
// sheets are validated first; on any mismatch a FormatError with the full
// reason list is returned and no row is interpreted. A data row without an
// identifier is skipped, not a scan stop.
func ParseChanges(r io.Reader) (map[string]Notice, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FormatError{Reasons: []string{fmt.Sprintf("could not open changes workbook: %v", err)}}
	}
	defer wb.Close()

	if err := validateChangesFormat(wb); err != nil {
		return nil, err
	}

	rows, err := wb.GetRows(SheetWithdrawn)
	if err != nil {
		return nil, &FormatError{Reasons: []string{fmt.Sprintf("could not read sheet %q: %v", SheetWithdrawn, err)}}
	}

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	notices := make(map[string]Notice)
	for i, row := range rows {
		// Everything up to and including the header row is metadata.
		if i < withdrawnHeaderRow {
			continue
		}
		issn := cell(row, 1)
		if issn == "" || issn == "None" {
			continue
		}
		notices[issn] = Notice{
			Title:       cell(row, 0),
			ISSN:        issn,
			RemovalDate: cell(row, 2),
			Reason:      cell(row, 3),
		}
	}
	return notices, nil
}

// validateChangesFormat checks the first expected header cell values of both
// sheets and fails closed when they do not match.
func validateChangesFormat(wb *excelize.File) error {
	expected := []struct {
		sheet string
		axis  string
		value string
	}{
		{SheetWithdrawn, fmt.Sprintf("A%d", withdrawnHeaderRow), "Journal Title"},
		{SheetWithdrawn, fmt.Sprintf("B%d", withdrawnHeaderRow), "ISSN"},
		{SheetWithdrawn, fmt.Sprintf("C%d", withdrawnHeaderRow), "Date Removed (dd/mm/yyyy)"},
		{SheetWithdrawn, fmt.Sprintf("D%d", withdrawnHeaderRow), "Reason"},
		{SheetAdded, fmt.Sprintf("A%d", addedHeaderRow), "Journal Title"},
		{SheetAdded, fmt.Sprintf("B%d", addedHeaderRow), "ISSN"},
		{SheetAdded, fmt.Sprintf("C%d", addedHeaderRow), "Date Added"},
	}

	var reasons []string
	for _, sheet := range []string{SheetWithdrawn, SheetAdded} {
		if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
			reasons = append(reasons, fmt.Sprintf("sheet %q not found", sheet))
		}
	}
	if len(reasons) > 0 {
		return &FormatError{Reasons: reasons}
	}

	for _, e := range expected {
		val, err := wb.GetCellValue(e.sheet, e.axis)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("could not read cell %s!%s: %v", e.sheet, e.axis, err))
			continue
		}
		if strings.TrimSpace(val) != e.value {
			reasons = append(reasons, fmt.Sprintf("sheet %q does not conform to the expected format: cell %s is %q, want %q", e.sheet, e.axis, strings.TrimSpace(val), e.value))
		}
	}
	if len(reasons) > 0 {
		return &FormatError{Reasons: reasons}
	}
	return nil
}
