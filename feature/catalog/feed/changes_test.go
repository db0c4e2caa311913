package feed

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newChangesWorkbook builds a minimal workbook in the expected layout, with
// the given rows appended below the Withdrawn header.
func newChangesWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	_, err := wb.NewSheet(SheetWithdrawn)
	require.NoError(t, err)
	_, err = wb.NewSheet(SheetAdded)
	require.NoError(t, err)
	require.NoError(t, wb.DeleteSheet("Sheet1"))

	withdrawnHeader := []string{"Journal Title", "ISSN", "Date Removed (dd/mm/yyyy)", "Reason"}
	for i, val := range withdrawnHeader {
		axis, err := excelize.CoordinatesToCellName(i+1, withdrawnHeaderRow)
		require.NoError(t, err)
		require.NoError(t, wb.SetCellValue(SheetWithdrawn, axis, val))
	}

	addedHeader := []string{"Journal Title", "ISSN", "Date Added"}
	for i, val := range addedHeader {
		axis, err := excelize.CoordinatesToCellName(i+1, addedHeaderRow)
		require.NoError(t, err)
		require.NoError(t, wb.SetCellValue(SheetAdded, axis, val))
	}

	for r, row := range rows {
		for c, val := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, withdrawnHeaderRow+1+r)
			require.NoError(t, err)
			require.NoError(t, wb.SetCellValue(SheetWithdrawn, axis, val))
		}
	}

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseChanges(t *testing.T) {
	buf := newChangesWorkbook(t, [][]string{
		{"Acta Informatica", "1432-0525", "01/06/2024", "Ceased publishing"},
		{"Open Physics", "2391-5471", "12/05/2024", "Inactivity"},
	})

	notices, err := ParseChanges(buf)
	require.NoError(t, err)
	require.Len(t, notices, 2)

	n, ok := notices["1432-0525"]
	require.True(t, ok)
	assert.Equal(t, "Acta Informatica", n.Title)
	assert.Equal(t, "01/06/2024", n.RemovalDate)
	assert.Equal(t, "Ceased publishing", n.Reason)
}

func TestParseChanges_SkipsRowsWithoutIdentifier(t *testing.T) {
	buf := newChangesWorkbook(t, [][]string{
		{"No identifier", "", "01/06/2024", "Ceased publishing"},
		{"Placeholder identifier", "None", "01/06/2024", "Ceased publishing"},
		{"Kept", "1234-5678", "01/06/2024", "Ceased publishing"},
	})

	notices, err := ParseChanges(buf)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Contains(t, notices, "1234-5678")
}

func TestParseChanges_HeaderMismatch(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()

	_, err := wb.NewSheet(SheetWithdrawn)
	require.NoError(t, err)
	_, err = wb.NewSheet(SheetAdded)
	require.NoError(t, err)
	require.NoError(t, wb.DeleteSheet("Sheet1"))

	// Wrong header cell and a missing Reason column.
	require.NoError(t, wb.SetCellValue(SheetWithdrawn, fmt.Sprintf("A%d", withdrawnHeaderRow), "Title"))
	require.NoError(t, wb.SetCellValue(SheetWithdrawn, fmt.Sprintf("B%d", withdrawnHeaderRow), "ISSN"))
	require.NoError(t, wb.SetCellValue(SheetWithdrawn, fmt.Sprintf("C%d", withdrawnHeaderRow), "Date Removed (dd/mm/yyyy)"))
	require.NoError(t, wb.SetCellValue(SheetAdded, fmt.Sprintf("A%d", addedHeaderRow), "Journal Title"))
	require.NoError(t, wb.SetCellValue(SheetAdded, fmt.Sprintf("B%d", addedHeaderRow), "ISSN"))
	require.NoError(t, wb.SetCellValue(SheetAdded, fmt.Sprintf("C%d", addedHeaderRow), "Date Added"))

	// A data row that must not be interpreted once validation fails.
	require.NoError(t, wb.SetCellValue(SheetWithdrawn, fmt.Sprintf("B%d", withdrawnHeaderRow+1), "1234-5678"))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	notices, err := ParseChanges(buf)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Len(t, formatErr.Reasons, 2)
	assert.Nil(t, notices)
}

func TestParseChanges_MissingSheet(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()

	_, err := wb.NewSheet(SheetWithdrawn)
	require.NoError(t, err)
	require.NoError(t, wb.DeleteSheet("Sheet1"))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseChanges(buf)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reasons[0], SheetAdded)
}
