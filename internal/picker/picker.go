// Package picker stands in for the browser file dialog: it turns what the user
// typed into file references carrying the media type a browser would declare.
package picker

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/csheth/intake/internal/workflow"
)

var (
	// ErrDirectoryNotAllowed is returned when a directory is named in a single-file mode.
	ErrDirectoryNotAllowed = errors.New("directories are only accepted for audio batches")
	// ErrNoMatch is returned when a glob pattern matches nothing.
	ErrNoMatch = errors.New("no files match")
)

// Options controls how input is expanded.
type Options struct {
	// Accept filters files found by expanding directories. Files named explicitly
	// are never filtered, the same way a user can override a picker filter.
	Accept    workflow.Accept
	AllowDirs bool
}

// OptionsFor returns the picker behaviour of a mode.
func OptionsFor(mode workflow.Mode) Options {
	return Options{
		Accept:    workflow.AcceptFor(mode),
		AllowDirs: mode == workflow.ModeAudio,
	}
}

// Resolve expands a comma separated list of paths, globs and directories.
// Order follows the input; expansions are lexical.
func Resolve(input string, opts Options) ([]workflow.FileRef, error) {
	var files []workflow.FileRef
	for _, entry := range SplitInput(input) {
		path, err := expandHome(entry)
		if err != nil {
			return nil, err
		}
		matches := []string{path}
		if hasGlobMeta(path) {
			matches, err = filepath.Glob(path)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", entry, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w %q", ErrNoMatch, entry)
			}
		}
		for _, match := range matches {
			found, err := resolvePath(match, opts)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}
	return files, nil
}

// SplitInput splits the prompt value on commas and drops blanks and quotes.
func SplitInput(input string) []string {
	var out []string
	for _, raw := range strings.Split(input, ",") {
		entry := strings.Trim(strings.TrimSpace(raw), `"'`)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func resolvePath(path string, opts Options) ([]workflow.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []workflow.FileRef{describe(path, info)}, nil
	}
	if !opts.AllowDirs {
		return nil, fmt.Errorf("%s: %w", path, ErrDirectoryNotAllowed)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var files []workflow.FileRef
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		child := filepath.Join(path, entry.Name())
		childInfo, err := entry.Info()
		if err != nil {
			return nil, err
		}
		ref := describe(child, childInfo)
		if opts.Accept.Matches(ref) {
			files = append(files, ref)
		}
	}
	return files, nil
}

func describe(path string, info os.FileInfo) workflow.FileRef {
	return workflow.FileRef{
		Name:      info.Name(),
		Path:      path,
		Size:      info.Size(),
		MediaType: DeclaredType(path),
	}
}

// declaredTypes follows what browsers report for common extensions.
var declaredTypes = map[string]string{
	".csv":  "text/csv",
	".txt":  "text/plain",
	".text": "text/plain",
	".log":  "text/plain",
	".md":   "text/markdown",
	".json": "application/json",
	".xml":  "application/xml",
	".pdf":  "application/pdf",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".m4a":  "audio/x-m4a",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".aac":  "audio/aac",
	".webm": "video/webm",
	".mp4":  "video/mp4",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".zip":  "application/zip",
}

// DeclaredType returns the media type for a file: the extension table first,
// content sniffing second, and "" when neither knows.
func DeclaredType(path string) string {
	if declared, ok := declaredTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return declared
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil || detected == nil {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err != nil || mediaType == "application/octet-stream" {
		return ""
	}
	return mediaType
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
