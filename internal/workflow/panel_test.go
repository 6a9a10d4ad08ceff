package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	calls map[string]int
	err   error
	last  any
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{calls: map[string]int{}}
}

func (f *fakeSubmitter) record(name string, payload any) (json.RawMessage, error) {
	f.calls[name]++
	f.last = payload
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"status":"ok"}`), nil
}

func (f *fakeSubmitter) UploadCSV(ctx context.Context, file FileRef) (json.RawMessage, error) {
	return f.record("csv", file)
}

func (f *fakeSubmitter) UploadText(ctx context.Context, file FileRef) (json.RawMessage, error) {
	return f.record("text", file)
}

func (f *fakeSubmitter) ProcessURL(ctx context.Context, job URLJob) (json.RawMessage, error) {
	return f.record("url", job)
}

func (f *fakeSubmitter) UploadAudio(ctx context.Context, files []FileRef) (json.RawMessage, error) {
	return f.record("audio", files)
}

type recorder struct {
	events []Notification
}

func (r *recorder) Notify(n Notification) {
	r.events = append(r.events, n)
}

type friendlyErr struct{ msg string }

func (e friendlyErr) Error() string       { return e.msg + ": status 500" }
func (e friendlyErr) UserMessage() string { return e.msg }

func TestCSVPanelAcceptsCSV(t *testing.T) {
	rec := &recorder{}
	panel := NewCSVPanel(newFakeSubmitter(), rec)

	require.NoError(t, panel.Select([]FileRef{{Name: "data.csv", MediaType: "text/csv"}}))
	sel, ok := panel.Selection()
	require.True(t, ok)
	assert.Equal(t, "data.csv", sel.Name)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "File Selected", rec.events[0].Title)
	assert.Equal(t, "data.csv is ready for upload.", rec.events[0].Description)
	assert.Equal(t, SeverityNormal, rec.events[0].Severity)
}

func TestCSVPanelRejectsExcelType(t *testing.T) {
	rec := &recorder{}
	panel := NewCSVPanel(newFakeSubmitter(), rec)

	err := panel.Select([]FileRef{{Name: "data.csv", MediaType: "application/vnd.ms-excel"}})
	require.True(t, IsRejected(err))
	_, ok := panel.Selection()
	assert.False(t, ok)
	require.Len(t, rec.events, 1)
	assert.Equal(t, SeverityDestructive, rec.events[0].Severity)
	assert.Equal(t, "Please select a valid CSV file.", rec.events[0].Description)
}

func TestRejectionKeepsPreviousSelection(t *testing.T) {
	panel := NewTextPanel(newFakeSubmitter(), nil)
	require.NoError(t, panel.Select([]FileRef{{Name: "a.txt", MediaType: "text/plain"}}))
	require.Error(t, panel.Select([]FileRef{{Name: "b.pdf", MediaType: "application/pdf"}}))

	sel, ok := panel.Selection()
	require.True(t, ok)
	assert.Equal(t, "a.txt", sel.Name)
}

func TestAudioPanelBatch(t *testing.T) {
	rec := &recorder{}
	panel := NewAudioPanel(newFakeSubmitter(), rec)

	require.NoError(t, panel.Select([]FileRef{
		{Name: "a.mp3", MediaType: "audio/mpeg"},
		{Name: "b.wav", MediaType: "audio/wav"},
	}))
	files, ok := panel.Selection()
	require.True(t, ok)
	assert.Equal(t, []string{"a.mp3", "b.wav"}, names(files))
	assert.Equal(t, "2 audio file(s) ready for upload.", rec.events[0].Description)

	err := panel.Select([]FileRef{
		{Name: "c.mp3", MediaType: "audio/mpeg"},
		{Name: "d.pdf", MediaType: "application/pdf"},
	})
	require.True(t, IsRejected(err))
	files, _ = panel.Selection()
	assert.Equal(t, []string{"a.mp3", "b.wav"}, names(files))
}

func TestAudioPanelEmptyBatchIsSilent(t *testing.T) {
	rec := &recorder{}
	panel := NewAudioPanel(newFakeSubmitter(), rec)
	assert.ErrorIs(t, panel.Select(nil), ErrEmptyBatch)
	assert.Empty(t, rec.events)
	assert.False(t, panel.HasSelection())
}

func TestSubmitWithoutSelectionIsNoop(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubmitter()
	panel := NewCSVPanel(sub, rec)

	_, err := panel.Submit(context.Background())
	assert.ErrorIs(t, err, ErrGuardViolation)
	assert.Zero(t, sub.calls["csv"])
	assert.Empty(t, rec.events)
	assert.ErrorIs(t, panel.Process(), ErrGuardViolation)
}

func TestSubmitWhileInFlightMakesNoSecondCall(t *testing.T) {
	sub := newFakeSubmitter()
	panel := NewCSVPanel(sub, nil)
	require.NoError(t, panel.Select([]FileRef{{Name: "data.csv", MediaType: "text/csv"}}))

	payload, err := panel.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, panel.Submitting())
	assert.False(t, panel.CanSubmit())

	_, err = panel.BeginSubmit()
	assert.ErrorIs(t, err, ErrGuardViolation)
	_, err = panel.Submit(context.Background())
	assert.ErrorIs(t, err, ErrGuardViolation)
	assert.Zero(t, sub.calls["csv"])

	resp, err := panel.Send(context.Background(), payload)
	panel.Settle(resp, err)
	assert.Equal(t, 1, sub.calls["csv"])
	assert.False(t, panel.Submitting())
}

func TestSubmitSuccessKeepsSelection(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubmitter()
	panel := NewTextPanel(sub, rec)
	require.NoError(t, panel.Select([]FileRef{{Name: "notes.txt", MediaType: "text/plain"}}))

	resp, err := panel.Submit(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp))
	assert.True(t, panel.HasSelection())
	assert.True(t, panel.CanSubmit())
	require.Len(t, rec.events, 2)
	assert.Equal(t, "Upload Successful!", rec.events[1].Title)
	assert.Equal(t, "notes.txt", sub.last.(FileRef).Name)
}

func TestSubmitFailureReturnsToSelected(t *testing.T) {
	for _, mode := range []Mode{ModeCSV, ModeText, ModeAudio, ModeURL} {
		t.Run(mode.String(), func(t *testing.T) {
			rec := &recorder{}
			sub := newFakeSubmitter()
			sub.err = friendlyErr{msg: "Failed to upload"}

			var submit func() error
			switch mode {
			case ModeCSV, ModeText:
				panel := NewCSVPanel(sub, rec)
				if mode == ModeText {
					panel = NewTextPanel(sub, rec)
				}
				media := MediaTypeCSV
				if mode == ModeText {
					media = MediaTypeText
				}
				require.NoError(t, panel.Select([]FileRef{{Name: "f", MediaType: media}}))
				submit = func() error {
					_, err := panel.Submit(context.Background())
					assert.True(t, panel.HasSelection())
					assert.False(t, panel.Submitting())
					return err
				}
			case ModeAudio:
				panel := NewAudioPanel(sub, rec)
				require.NoError(t, panel.Select([]FileRef{{Name: "a.mp3"}}))
				submit = func() error {
					_, err := panel.Submit(context.Background())
					assert.True(t, panel.HasSelection())
					assert.False(t, panel.Submitting())
					return err
				}
			case ModeURL:
				panel := NewURLPanel(sub, rec)
				submit = func() error {
					job, err := panel.SubmitCandidate(URLFields{URL: "https://x.test", StartTime: "0", EndTime: "10"})
					require.NoError(t, err)
					resp, err := panel.Send(context.Background(), job)
					panel.Settle(resp, err)
					assert.True(t, panel.HasSelection())
					assert.False(t, panel.Submitting())
					return err
				}
			}

			err := submit()
			require.Error(t, err)
			last := rec.events[len(rec.events)-1]
			assert.Equal(t, SeverityDestructive, last.Severity)
			assert.Equal(t, "Failed to upload", last.Description)
		})
	}
}

func TestURLPanelValidatesOnSubmit(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubmitter()
	panel := NewURLPanel(sub, rec)

	_, err := panel.SubmitCandidate(URLFields{StartTime: "0", EndTime: "10"})
	require.True(t, IsRejected(err))
	assert.False(t, panel.Submitting())
	require.Len(t, rec.events, 1)
	assert.Equal(t, "Missing Information", rec.events[0].Title)

	job, err := panel.SubmitCandidate(URLFields{URL: "https://x.test", StartTime: "0", EndTime: "10"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.test", job.URL)
	assert.True(t, panel.Submitting())
	assert.Len(t, rec.events, 1, "acceptance is silent for URL jobs")

	_, err = panel.SubmitCandidate(URLFields{URL: "https://y.test", StartTime: "0", EndTime: "10"})
	assert.ErrorIs(t, err, ErrGuardViolation)

	panel.Settle(json.RawMessage(`{}`), nil)
	require.Len(t, rec.events, 2)
	assert.Equal(t, "Processing Complete!", rec.events[1].Title)
	assert.False(t, panel.CanProcess())
}

func TestProcessIsPlaceholder(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubmitter()
	panel := NewAudioPanel(sub, rec)
	require.NoError(t, panel.Select([]FileRef{{Name: "a.wav"}}))

	require.NoError(t, panel.Process())
	assert.Empty(t, sub.calls)
	assert.Equal(t, "Processing Started", rec.events[len(rec.events)-1].Title)
}

func TestSettleWithoutSubmitIsIgnored(t *testing.T) {
	rec := &recorder{}
	panel := NewCSVPanel(newFakeSubmitter(), rec)
	panel.Settle(nil, errors.New("late"))
	assert.Empty(t, rec.events)
}

func names(files []FileRef) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
