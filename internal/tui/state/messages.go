package state

import (
	"time"

	"github.com/hallyupress/newsdesk/internal/reorder"
)

// boardLoadedMsg is sent when a (re)load of the board finished.
type boardLoadedMsg struct {
	items []reorder.Item
	err   error
}

// boardChangedMsg is sent when the service applied an optimistic update
// or resynchronised with the server.
type boardChangedMsg struct {
	items []reorder.Item
}

// batchSettledMsg is sent when a reorder batch settled and the board was
// refetched.
type batchSettledMsg struct {
	op      string
	summary reorder.Summary
	items   []reorder.Item
	err     error
}

// toastExpiredMsg hides the toast stamped at if it is still the latest.
type toastExpiredMsg struct {
	at time.Time
}

// spinnerTickMsg advances the refreshing spinner.
type spinnerTickMsg struct{}
