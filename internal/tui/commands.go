package tui

import (
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/intake/internal/gateway"
	"github.com/csheth/intake/internal/receipts"
	"github.com/csheth/intake/internal/workflow"
)

// submitJob sends one captured selection and journals the outcome. The panel
// state is settled later on the update loop.
func submitJob[S any](generation int, mode workflow.Mode, send func(context.Context, S) (json.RawMessage, error), selection S, journal *receipts.Journal) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		started := time.Now()
		response, err := send(ctx, selection)
		journal.Record(receiptFor(mode, selection, started, time.Since(started), response, err))
		return submitResultMsg{generation: generation, mode: mode, response: response, err: err}, err
	}
}

func receiptFor(mode workflow.Mode, selection any, started time.Time, took time.Duration, response json.RawMessage, err error) receipts.Receipt {
	r := receipts.New(mode, gateway.PathFor(mode), started, took, response, err)
	switch sel := selection.(type) {
	case workflow.FileRef:
		return r.WithFiles(sel)
	case []workflow.FileRef:
		return r.WithFiles(sel...)
	case workflow.URLJob:
		return r.WithURLJob(sel)
	default:
		return r
	}
}

func expireToastCmd(id int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
