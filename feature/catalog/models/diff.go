package models

import "strings"

// FieldChange holds the incoming and the stored value of a changed field.
type FieldChange struct {
	New string `json:"new"`
	Old string `json:"old"`
}

// Diff maps a field name to its change. An empty diff means the records are
// equivalent under the comparison rule.
type Diff map[string]FieldChange

// fieldChanged compares two values under the equivalence rule: empty and
// absent are the same thing, and strings are compared trimmed.
func fieldChanged(a, b string) bool {
	return strings.TrimSpace(a) != strings.TrimSpace(b)
}

// Differences compares the relevant fields of j against other and returns the
// diff keyed by column name, with j's value as the new one. Only title, url
// and the two identifiers take part in the comparison.
func (j *Journal) Differences(other *Journal) Diff {
	diffs := Diff{}
	if fieldChanged(j.Title, other.Title) {
		diffs["title"] = FieldChange{New: j.Title, Old: other.Title}
	}
	if fieldChanged(j.URL, other.URL) {
		diffs["url"] = FieldChange{New: j.URL, Old: other.URL}
	}
	if fieldChanged(j.PrintISSN, other.PrintISSN) {
		diffs["print_issn"] = FieldChange{New: j.PrintISSN, Old: other.PrintISSN}
	}
	if fieldChanged(j.EISSN, other.EISSN) {
		diffs["e_issn"] = FieldChange{New: j.EISSN, Old: other.EISSN}
	}
	return diffs
}
