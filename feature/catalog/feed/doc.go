// Package feed fetches and parses the external catalog artifacts: the full
// CSV dump of journal records and the xlsx changes workbook carrying
// withdrawal notices.
//
// Both parsers validate layout before trusting rows. The dump parser tolerates missing
// optional columns but rejects a file without a title column; the changes
// parser validates the fixed header block of both sheets and refuses the
// whole workbook on any mismatch, reporting every deviation in a single
// FormatError.
package feed
