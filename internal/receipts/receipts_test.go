package receipts

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/intake/internal/workflow"
)

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "receipts.jsonl")
	journal := Open(path)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	ok := New(workflow.ModeAudio, "/upload-audio", at, 150*time.Millisecond, json.RawMessage(`{"ok":true}`), nil).
		WithFiles(workflow.FileRef{Name: "a.mp3"}, workflow.FileRef{Name: "b.wav"})
	failed := New(workflow.ModeURL, "/process-url", at, time.Second, nil, errors.New("boom")).
		WithURLJob(workflow.URLJob{URL: "https://x.test", StartTime: "0", EndTime: "10"})

	require.NoError(t, journal.Append(ok))
	require.NoError(t, journal.Append(failed))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, ok.ID, got[0].ID)
	assert.Equal(t, "audio", got[0].Mode)
	assert.Equal(t, OutcomeSucceeded, got[0].Outcome)
	assert.Equal(t, []string{"a.mp3", "b.wav"}, got[0].Files)
	assert.JSONEq(t, `{"ok":true}`, string(got[0].Response))
	assert.Equal(t, 150*time.Millisecond, got[0].Duration)
	assert.True(t, at.Equal(got[0].SubmittedAt))

	assert.Equal(t, OutcomeFailed, got[1].Outcome)
	assert.Equal(t, "boom", got[1].Error)
	require.NotNil(t, got[1].URLJob)
	assert.Equal(t, "10", got[1].URLJob.EndTime)
	assert.Empty(t, got[1].Response)
}

func TestNewAssignsUUID(t *testing.T) {
	r := New(workflow.ModeCSV, "/upload-csv", time.Now(), 0, json.RawMessage(`{}`), nil)
	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err)
}

func TestDisabledJournalWritesNothing(t *testing.T) {
	var nilJournal *Journal
	assert.False(t, nilJournal.Enabled())
	assert.NoError(t, nilJournal.Append(Receipt{ID: "x"}))

	empty := Open("")
	assert.False(t, empty.Enabled())
	assert.NoError(t, empty.Append(Receipt{ID: "x"}))
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "none.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadReportsCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":\"a\"}\n\nnot json\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":3:")
}

func TestConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.jsonl")
	journal := Open(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			journal.Record(New(workflow.ModeText, "/upload-text", time.Now(), 0, json.RawMessage(`{}`), nil))
		}()
	}
	wg.Wait()

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
