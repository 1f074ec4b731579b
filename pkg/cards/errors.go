package cards

import "errors"

// Sentinel errors returned by the lookup-table loader, checkable via
// errors.Is by callers that want to distinguish "no table configured" from
// a genuine I/O or format failure.
var (
	ErrLookupTableNotFound = errors.New("cards: lookup table file not found")
	ErrUnexpectedEOF       = errors.New("cards: lookup table has wrong size")
)
