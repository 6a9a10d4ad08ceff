// Package workflow holds the selection, validation and submission state machines
// shared by every input mode. It has no knowledge of terminals or HTTP; the TUI
// drives it and the gateway satisfies its Submitter contract.
package workflow

import (
	"fmt"
	"strings"
)

// Mode is the active input category.
type Mode int

const (
	ModeNone Mode = iota
	ModeCSV
	ModeText
	ModeURL
	ModeAudio
)

// Modes lists the selectable modes in menu order.
var Modes = []Mode{ModeCSV, ModeText, ModeURL, ModeAudio}

func (m Mode) String() string {
	switch m {
	case ModeCSV:
		return "csv"
	case ModeText:
		return "text"
	case ModeURL:
		return "url"
	case ModeAudio:
		return "audio"
	default:
		return "none"
	}
}

// Label is the human readable name shown in the selector.
func (m Mode) Label() string {
	switch m {
	case ModeCSV:
		return "CSV File"
	case ModeText:
		return "Text File"
	case ModeURL:
		return "URL Processing"
	case ModeAudio:
		return "Audio Directory"
	default:
		return "Processing"
	}
}

// ParseMode maps the string form back to a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return ModeNone, nil
	case "csv":
		return ModeCSV, nil
	case "text":
		return ModeText, nil
	case "url":
		return ModeURL, nil
	case "audio":
		return ModeAudio, nil
	}
	return ModeNone, fmt.Errorf("unknown mode %q", value)
}
