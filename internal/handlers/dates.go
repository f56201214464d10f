package handlers

import "time"

// DisplayDate formats an optional end date for list responses. A nil
// value means the entry is ongoing and is reported as "Present".
func DisplayDate(t *time.Time) string {
	if t == nil {
		return "Present"
	}
	return t.Format("Jan 2, 2006")
}
