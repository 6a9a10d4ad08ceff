package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterConfirmRequiresCandidate(t *testing.T) {
	r := NewRouter()
	require.False(t, r.CanConfirm())
	require.False(t, r.Confirm())
	assert.Equal(t, ModeNone, r.Mode())
	assert.Equal(t, ViewWelcome, r.View())
}

func TestRouterMountsEveryMode(t *testing.T) {
	want := map[Mode]View{
		ModeCSV:   ViewCSV,
		ModeText:  ViewText,
		ModeURL:   ViewURL,
		ModeAudio: ViewAudio,
	}
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			r := NewRouter()
			r.SelectCandidate(mode)
			require.True(t, r.Confirm())
			assert.Equal(t, mode, r.Mode())
			assert.Equal(t, want[mode], r.View())

			r.Back()
			assert.Equal(t, ModeNone, r.Mode())
			assert.Equal(t, ModeNone, r.Candidate())
			assert.Equal(t, ViewWelcome, r.View())
		})
	}
}

func TestRouterNoDirectPanelToPanelTransition(t *testing.T) {
	r := NewRouter()
	r.SelectCandidate(ModeCSV)
	require.True(t, r.Confirm())

	r.SelectCandidate(ModeAudio)
	assert.False(t, r.Confirm())
	assert.Equal(t, ViewCSV, r.View())
}

func TestRouterCandidateCanChangeBeforeConfirm(t *testing.T) {
	r := NewRouter()
	r.SelectCandidate(ModeText)
	r.SelectCandidate(ModeURL)
	require.True(t, r.Confirm())
	assert.Equal(t, ViewURL, r.View())
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, mode := range append([]Mode{ModeNone}, Modes...) {
		got, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseMode("pdf")
	assert.Error(t, err)
}
