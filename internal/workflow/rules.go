package workflow

import (
	"fmt"
	"path"
	"strings"
)

const (
	MediaTypeCSV   = "text/csv"
	MediaTypeText  = "text/plain"
	audioTypeStart = "audio/"
)

// AudioExtensions are accepted by name even when the media type is not audio/*.
var AudioExtensions = []string{".mp3", ".wav", ".flac", ".m4a"}

// FileRef describes one picked file.
type FileRef struct {
	Name      string
	Path      string
	Size      int64
	MediaType string
}

// URLFields holds the raw URL form as typed.
type URLFields struct {
	URL       string
	StartTime string
	EndTime   string
}

// URLJob is a URL form that passed validation. Times stay strings, as sent.
type URLJob struct {
	URL       string `json:"url"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Rule validates a candidate C into a selection S.
type Rule[C, S any] func(C) (S, error)

// ValidateCSV accepts exactly one file declaring text/csv. The extension is not
// consulted, unlike ValidateAudio.
func ValidateCSV(files []FileRef) (FileRef, error) {
	return singleFile(ModeCSV, MediaTypeCSV, files)
}

// ValidateText accepts exactly one file declaring text/plain.
func ValidateText(files []FileRef) (FileRef, error) {
	return singleFile(ModeText, MediaTypeText, files)
}

func singleFile(mode Mode, mediaType string, files []FileRef) (FileRef, error) {
	if len(files) != 1 {
		return FileRef{}, &RejectedError{Mode: mode, Reason: fmt.Sprintf("expected exactly one file, got %d", len(files))}
	}
	file := files[0]
	if file.MediaType != mediaType {
		return FileRef{}, &RejectedError{
			Mode:   mode,
			Reason: fmt.Sprintf("%s declares %q, want %q", file.Name, file.MediaType, mediaType),
		}
	}
	return file, nil
}

// ValidateAudio accepts the batch only if every file is audio by media type or by
// extension. The batch is returned in the order given.
func ValidateAudio(files []FileRef) ([]FileRef, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}
	for _, file := range files {
		if !IsAudio(file) {
			return nil, &RejectedError{
				Mode:   ModeAudio,
				Reason: fmt.Sprintf("%s is not an audio file", file.Name),
			}
		}
	}
	return append([]FileRef(nil), files...), nil
}

// IsAudio applies the per-file audio check.
func IsAudio(file FileRef) bool {
	if strings.HasPrefix(file.MediaType, audioTypeStart) {
		return true
	}
	for _, ext := range AudioExtensions {
		if strings.HasSuffix(file.Name, ext) {
			return true
		}
	}
	return false
}

// ValidateURL only checks that every field is filled in. Scheme, numeric range and
// start/end ordering are deliberately left to the backend.
func ValidateURL(fields URLFields) (URLJob, error) {
	var missing []string
	if fields.URL == "" {
		missing = append(missing, "url")
	}
	if fields.StartTime == "" {
		missing = append(missing, "startTime")
	}
	if fields.EndTime == "" {
		missing = append(missing, "endTime")
	}
	if len(missing) > 0 {
		return URLJob{}, &RejectedError{Mode: ModeURL, Reason: "missing " + strings.Join(missing, ", ")}
	}
	return URLJob{URL: fields.URL, StartTime: fields.StartTime, EndTime: fields.EndTime}, nil
}

// Accept mirrors the accept attribute of a file picker: media type patterns such as
// "audio/*" and extensions such as ".mp3".
type Accept struct {
	MediaTypes []string
	Extensions []string
}

// AcceptFor returns the picker filter of a mode.
func AcceptFor(mode Mode) Accept {
	switch mode {
	case ModeCSV:
		return Accept{Extensions: []string{".csv"}}
	case ModeText:
		return Accept{Extensions: []string{".txt"}}
	case ModeAudio:
		return Accept{MediaTypes: []string{"audio/*"}, Extensions: AudioExtensions}
	default:
		return Accept{}
	}
}

// Matches reports whether the picker would list the file.
func (a Accept) Matches(file FileRef) bool {
	if len(a.MediaTypes) == 0 && len(a.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(file.Name))
	for _, candidate := range a.Extensions {
		if ext == candidate {
			return true
		}
	}
	for _, pattern := range a.MediaTypes {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			if strings.HasPrefix(file.MediaType, prefix) {
				return true
			}
			continue
		}
		if file.MediaType == pattern {
			return true
		}
	}
	return false
}

// String renders the filter the way an accept attribute would.
func (a Accept) String() string {
	return strings.Join(append(append([]string(nil), a.MediaTypes...), a.Extensions...), ",")
}
