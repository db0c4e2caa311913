// Package withdraw turns the withdrawal notices of the changes workbook into
// deletions of local journals.
//
// A notice matches a journal on the electronic identifier. Whether a matched journal
// may actually be deleted depends on the Policy and the publisher's
// directory status; journals the policy protects are reported but kept.
// Matching and deleting are separate steps so a run can be previewed.
package withdraw
