package tui

import (
	"encoding/json"
	"time"

	"github.com/csheth/intake/internal/workflow"
)

const heroTagline = "Route files and links to the processing backend."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	maxVisibleToasts          = 3
	defaultToastTTL           = 4 * time.Second
)

type urlField int

const (
	fieldURL urlField = iota
	fieldStartTime
	fieldEndTime
	urlFieldCount
)

type toast struct {
	id   int
	note workflow.Notification
}

type toastExpiredMsg struct {
	id int
}

// submitResultMsg carries a backend outcome back to the panel that was mounted
// when the submission started.
type submitResultMsg struct {
	generation int
	mode       workflow.Mode
	response   json.RawMessage
	err        error
}
