package practice

import "time"

// questionDoneMsg carries the result of awaiting a generation ticket.
type questionDoneMsg struct {
	Err error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
