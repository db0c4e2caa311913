package feed

import "strings"

// FormatError reports that an external feed does not match its expected
// layout. Nothing is processed when it is returned: the caller gets the
// reason list and no partial result.
type FormatError struct {
	Reasons []string
}

func (e *FormatError) Error() string {
	return "feed format error: " + strings.Join(e.Reasons, "; ")
}
