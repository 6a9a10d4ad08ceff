// Package guide holds the copy shown on each screen.
package guide

import (
	"fmt"
	"strings"

	"github.com/csheth/intake/internal/workflow"
)

// Sheet is the heading, instructions and input hints of one screen.
type Sheet struct {
	Title       string
	Description string
	// Prompt labels the path input, or the first URL field.
	Prompt string
	// Hint sits under the prompt, e.g. what the picker accepts.
	Hint  string
	Steps []string
}

// Welcome describes the mode selector.
func Welcome() Sheet {
	return Sheet{
		Title:       "Welcome to File Processor",
		Description: "Choose your preferred file type or input method to get started with processing your data",
		Prompt:      "Select Processing Type",
		Hint:        "Choose your file type or input method",
	}
}

// Build returns the sheet for a mode panel. ModeNone yields the welcome sheet.
func Build(mode workflow.Mode) Sheet {
	accept := workflow.AcceptFor(mode).String()
	switch mode {
	case workflow.ModeCSV:
		return Sheet{
			Title:       "CSV File Upload",
			Description: "Upload your CSV file for processing and analysis",
			Prompt:      "Select CSV File",
			Hint:        fmt.Sprintf("Path to a %s file", accept),
			Steps: []string{
				"Ensure your CSV file is properly formatted",
				"File size should not exceed 10MB",
				"First row should contain column headers",
				"Use comma as delimiter",
			},
		}
	case workflow.ModeText:
		return Sheet{
			Title:       "Text File Upload",
			Description: "Upload your text file for processing and analysis",
			Prompt:      "Select Text File",
			Hint:        fmt.Sprintf("Path to a %s file", accept),
			Steps: []string{
				"Ensure your text file is in UTF-8 encoding",
				"File size should not exceed 5MB",
				"Plain text format (.txt) is required",
				"Remove any special formatting before upload",
			},
		}
	case workflow.ModeURL:
		return Sheet{
			Title:       "URL Processing",
			Description: "Process content from a URL with specific time parameters",
			Prompt:      "URL",
			Hint:        "Tab moves between fields",
			Steps: []string{
				"Enter a valid URL (http:// or https://)",
				"Specify start and end times in seconds",
				"Processing may take a few minutes depending on content size",
			},
		}
	case workflow.ModeAudio:
		return Sheet{
			Title:       "Audio Directory",
			Description: "Upload multiple audio files from your directory for batch processing",
			Prompt:      "Select Audio Files",
			Hint:        fmt.Sprintf("Files, globs or a directory, comma separated (%s)", accept),
			Steps: []string{
				"Select multiple audio files (MP3, WAV, FLAC, M4A)",
				"Maximum file size: 50MB per file",
				"Supported sample rates: 8kHz to 192kHz",
				"Processing time depends on file count and size",
			},
		}
	default:
		return Welcome()
	}
}

// ProceedLabel is the confirm button caption for a candidate mode.
func ProceedLabel(candidate workflow.Mode) string {
	if candidate == workflow.ModeNone {
		return "Proceed to Processing"
	}
	return "Proceed to " + strings.ToUpper(candidate.String())
}

// URLFieldLabels names the three URL inputs in focus order.
var URLFieldLabels = [3]string{"URL", "Start Time (seconds)", "End Time (seconds)"}

// URLFieldPlaceholders are shown in empty URL inputs.
var URLFieldPlaceholders = [3]string{"https://example.com/video", "0", "60"}
