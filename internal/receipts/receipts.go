// Package receipts keeps an append-only record of submission outcomes.
package receipts

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/intake/internal/workflow"
)

// Outcome of a submission.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Receipt is one journal line.
type Receipt struct {
	ID          string           `json:"id"`
	Mode        string           `json:"mode"`
	Endpoint    string           `json:"endpoint"`
	Files       []string         `json:"files,omitempty"`
	URLJob      *workflow.URLJob `json:"urlJob,omitempty"`
	Outcome     Outcome          `json:"outcome"`
	Error       string           `json:"error,omitempty"`
	Response    json.RawMessage  `json:"response,omitempty"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Duration    time.Duration    `json:"durationNs"`
}

// New fills in an id and the outcome derived from err.
func New(mode workflow.Mode, endpoint string, submittedAt time.Time, duration time.Duration, response json.RawMessage, err error) Receipt {
	r := Receipt{
		ID:          uuid.NewString(),
		Mode:        mode.String(),
		Endpoint:    endpoint,
		Outcome:     OutcomeSucceeded,
		SubmittedAt: submittedAt.UTC(),
		Duration:    duration,
	}
	if err != nil {
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
		return r
	}
	if json.Valid(response) {
		r.Response = append(json.RawMessage(nil), response...)
	}
	return r
}

// WithFiles records the submitted file names.
func (r Receipt) WithFiles(files ...workflow.FileRef) Receipt {
	r.Files = make([]string, 0, len(files))
	for _, f := range files {
		r.Files = append(r.Files, f.Name)
	}
	return r
}

// WithURLJob records the submitted URL job.
func (r Receipt) WithURLJob(job workflow.URLJob) Receipt {
	r.URLJob = &job
	return r
}

// Journal appends receipts as JSON lines. A nil Journal or one with an empty
// path records nothing.
type Journal struct {
	path string
	mu   sync.Mutex
}

// Open returns a journal writing to path. An empty path disables journaling.
func Open(path string) *Journal {
	return &Journal{path: path}
}

// Enabled reports whether Append writes anywhere.
func (j *Journal) Enabled() bool {
	return j != nil && j.path != ""
}

// Path returns the journal file.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Append writes one receipt, creating the file and parent directories if needed.
func (j *Journal) Append(r Receipt) error {
	if !j.Enabled() {
		return nil
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(raw, '\n')); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[receipts] %s %s %s", r.ID, r.Mode, r.Outcome)
	return nil
}

// Record appends and logs failures instead of returning them.
func (j *Journal) Record(r Receipt) {
	if err := j.Append(r); err != nil {
		log.Printf("[receipts] append %s failed: %v", r.ID, err)
	}
}

// Load reads every receipt in path. A missing file yields no receipts.
func Load(path string) ([]Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []Receipt
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var r Receipt
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, r)
	}
	return out, scanner.Err()
}
