package gateway

import (
	"errors"
	"fmt"
)

// Op names one backend operation.
type Op string

const (
	opUploadCSV   Op = "upload-csv"
	opUploadText  Op = "upload-text"
	opProcessURL  Op = "process-url"
	opUploadAudio Op = "upload-audio"
)

func (o Op) path() string {
	return "/" + string(o)
}

// message is what the user sees when the operation fails.
func (o Op) message() string {
	switch o {
	case opUploadCSV:
		return "Failed to upload CSV file"
	case opUploadText:
		return "Failed to upload text file"
	case opProcessURL:
		return "Failed to process URL"
	case opUploadAudio:
		return "Failed to upload audio files"
	default:
		return "Request failed"
	}
}

// ErrUnexpectedStatus marks a non-2xx backend response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// ErrInvalidResponse marks a success response whose body is not JSON.
var ErrInvalidResponse = errors.New("response is not JSON")

// SubmissionError is the single failure kind of every operation: transport
// errors, non-2xx responses and unparseable bodies all end up here.
type SubmissionError struct {
	Op         Op
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Op.message(), e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Op.message(), e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// UserMessage is the short, mode-specific message shown in notifications.
func (e *SubmissionError) UserMessage() string {
	return e.Op.message()
}

// IsSubmissionFailed reports whether err came from a failed submission.
func IsSubmissionFailed(err error) bool {
	var sub *SubmissionError
	return errors.As(err, &sub)
}
