package capgains

import "fmt"

// Notice is a non-fatal diagnostic emitted while loading or replaying a
// trade history: one per skipped malformed record, one per unmatched
// disposal remainder. Notices never prevent a run from completing.
type Notice struct {
	Date     Date
	Security string
	Message  string
}

func (n Notice) String() string {
	switch {
	case n.Security != "" && !n.Date.IsZero():
		return fmt.Sprintf("%s %s: %s", n.Date, n.Security, n.Message)
	case !n.Date.IsZero():
		return fmt.Sprintf("%s: %s", n.Date, n.Message)
	default:
		return n.Message
	}
}
