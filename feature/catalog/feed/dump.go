package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"catalog-manager/feature/catalog/models"
)

// Column headers of the dump export. The feed is trusted to carry these
// names; missing optional columns are tolerated as empty values.
const (
	dumpColTitle       = "Journal title"
	dumpColURL         = "URL in DOAJ"
	dumpColPrintISSN   = "Journal ISSN (print version)"
	dumpColEISSN       = "Journal EISSN (online version)"
	dumpColAddedOn     = "Added on Date"
	dumpColLastUpdated = "Last updated Date"
)

// FetchDump downloads the full catalog dump and parses it into journals.
func FetchDump(ctx context.Context, url string) ([]models.Journal, error) {
	if url == "" {
		return nil, fmt.Errorf("dump URL not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dump request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dump: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dump: unexpected status %s", resp.Status)
	}

	return ParseDump(resp.Body)
}

// ParseDump reads the delimited dump export. Every data row becomes a journal
// without a local id; reconciliation assigns classification later.
func ParseDump(r io.Reader) ([]models.Journal, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Journal{}, nil
	}
	if err != nil {
		return nil, &FormatError{Reasons: []string{fmt.Sprintf("could not read dump header: %v", err)}}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	if _, ok := cols[dumpColTitle]; !ok {
		return nil, &FormatError{Reasons: []string{fmt.Sprintf("dump header is missing column %q", dumpColTitle)}}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var journals []models.Journal
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{Reasons: []string{fmt.Sprintf("could not parse dump row: %v", err)}}
		}
		journals = append(journals, models.Journal{
			Title:       field(record, dumpColTitle),
			URL:         field(record, dumpColURL),
			PrintISSN:   field(record, dumpColPrintISSN),
			EISSN:       field(record, dumpColEISSN),
			AddedOn:     field(record, dumpColAddedOn),
			LastUpdated: field(record, dumpColLastUpdated),
		})
	}
	return journals, nil
}
