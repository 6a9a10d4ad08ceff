package workflow

import (
	"context"
	"encoding/json"
	"fmt"
)

// Submitter is the backend contract the panels depend on.
type Submitter interface {
	UploadCSV(ctx context.Context, file FileRef) (json.RawMessage, error)
	UploadText(ctx context.Context, file FileRef) (json.RawMessage, error)
	ProcessURL(ctx context.Context, job URLJob) (json.RawMessage, error)
	UploadAudio(ctx context.Context, files []FileRef) (json.RawMessage, error)
}

type (
	FilePanel  = Panel[[]FileRef, FileRef]
	BatchPanel = Panel[[]FileRef, []FileRef]
	URLPanel   = Panel[URLFields, URLJob]
)

const (
	titleUploadFailed  = "Upload Failed"
	titleUploadSuccess = "Upload Successful!"
	titleProcessing    = "Processing Started"
)

func fileSelected(file FileRef) Notification {
	return Notification{Title: "File Selected", Description: fmt.Sprintf("%s is ready for upload.", file.Name)}
}

// NewCSVPanel builds the CSV upload panel.
func NewCSVPanel(sub Submitter, notifier Notifier) *FilePanel {
	return NewPanel(PanelConfig[[]FileRef, FileRef]{
		Mode:      ModeCSV,
		Accept:    ValidateCSV,
		Submit:    sub.UploadCSV,
		Selected:  fileSelected,
		Rejected:  Notification{Title: "Invalid File Type", Description: "Please select a valid CSV file."},
		Submitted: Notification{Title: titleUploadSuccess, Description: "Your CSV file has been uploaded successfully."},
		Failed:    titleUploadFailed,
		Process:   &Notification{Title: titleProcessing, Description: "Your CSV file is being processed..."},
	}, notifier)
}

// NewTextPanel builds the plain-text upload panel.
func NewTextPanel(sub Submitter, notifier Notifier) *FilePanel {
	return NewPanel(PanelConfig[[]FileRef, FileRef]{
		Mode:      ModeText,
		Accept:    ValidateText,
		Submit:    sub.UploadText,
		Selected:  fileSelected,
		Rejected:  Notification{Title: "Invalid File Type", Description: "Please select a valid text file (.txt)."},
		Submitted: Notification{Title: titleUploadSuccess, Description: "Your text file has been uploaded successfully."},
		Failed:    titleUploadFailed,
		Process:   &Notification{Title: titleProcessing, Description: "Your text file is being processed..."},
	}, notifier)
}

// NewAudioPanel builds the batch audio upload panel.
func NewAudioPanel(sub Submitter, notifier Notifier) *BatchPanel {
	return NewPanel(PanelConfig[[]FileRef, []FileRef]{
		Mode:   ModeAudio,
		Accept: ValidateAudio,
		Submit: sub.UploadAudio,
		Selected: func(files []FileRef) Notification {
			return Notification{Title: "Files Selected", Description: fmt.Sprintf("%d audio file(s) ready for upload.", len(files))}
		},
		Rejected:  Notification{Title: "Invalid File Types", Description: "Please select only audio files (MP3, WAV, FLAC, M4A)."},
		Submitted: Notification{Title: titleUploadSuccess, Description: "Your audio directory has been uploaded successfully."},
		Failed:    titleUploadFailed,
		Process:   &Notification{Title: titleProcessing, Description: "Your audio files are being processed..."},
	}, notifier)
}

// NewURLPanel builds the URL job panel. Its fields are validated on submit.
func NewURLPanel(sub Submitter, notifier Notifier) *URLPanel {
	return NewPanel(PanelConfig[URLFields, URLJob]{
		Mode:      ModeURL,
		Accept:    ValidateURL,
		Submit:    sub.ProcessURL,
		Rejected:  Notification{Title: "Missing Information", Description: "Please fill in all fields before processing."},
		Submitted: Notification{Title: "Processing Complete!", Description: "Your URL has been processed successfully."},
		Failed:    "Processing Failed",
	}, notifier)
}
