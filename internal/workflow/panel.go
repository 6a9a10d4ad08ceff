package workflow

import (
	"context"
	"encoding/json"
	"errors"
)

// PanelConfig parameterizes the shared panel state machine: what a candidate
// looks like, how it is validated, where it is sent, and what the user is told.
type PanelConfig[C, S any] struct {
	Mode   Mode
	Accept Rule[C, S]
	Submit func(context.Context, S) (json.RawMessage, error)

	// Selected builds the acceptance notification; nil means acceptance is silent
	// and the submit outcome is the only feedback.
	Selected  func(S) Notification
	Rejected  Notification
	Submitted Notification
	Failed    string
	// Process is the notification of the secondary action; nil disables it.
	Process *Notification
}

// Panel is the empty → selected → submitting lifecycle of one mounted mode.
// It is not safe for concurrent use; the TUI update loop owns it.
type Panel[C, S any] struct {
	cfg          PanelConfig[C, S]
	notifier     Notifier
	selection    S
	hasSelection bool
	submitting   bool
}

// Controller is the mode-agnostic face of a panel.
type Controller interface {
	Mode() Mode
	HasSelection() bool
	Submitting() bool
	CanSubmit() bool
	CanProcess() bool
	Process() error
	Settle(json.RawMessage, error)
}

// NewPanel builds a panel in the empty state.
func NewPanel[C, S any](cfg PanelConfig[C, S], notifier Notifier) *Panel[C, S] {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Panel[C, S]{cfg: cfg, notifier: notifier}
}

func (p *Panel[C, S]) Mode() Mode {
	return p.cfg.Mode
}

// Selection returns the stored selection, if any.
func (p *Panel[C, S]) Selection() (S, bool) {
	return p.selection, p.hasSelection
}

func (p *Panel[C, S]) HasSelection() bool {
	return p.hasSelection
}

func (p *Panel[C, S]) Submitting() bool {
	return p.submitting
}

// CanSubmit mirrors the enabled state of the submit control.
func (p *Panel[C, S]) CanSubmit() bool {
	return p.hasSelection && !p.submitting
}

// CanProcess mirrors the enabled state of the process control.
func (p *Panel[C, S]) CanProcess() bool {
	return p.cfg.Process != nil && p.hasSelection
}

// Select validates a candidate. Accepted candidates replace the stored selection;
// rejected ones leave it untouched. Exactly one notification is emitted unless the
// candidate was an empty batch.
func (p *Panel[C, S]) Select(candidate C) error {
	selection, err := p.cfg.Accept(candidate)
	if err != nil {
		if errors.Is(err, ErrEmptyBatch) {
			return err
		}
		p.notifier.Notify(destructive(p.cfg.Rejected))
		return err
	}
	p.selection = selection
	p.hasSelection = true
	if p.cfg.Selected != nil {
		p.notifier.Notify(p.cfg.Selected(selection))
	}
	return nil
}

// BeginSubmit moves to submitting and returns the payload to send.
func (p *Panel[C, S]) BeginSubmit() (S, error) {
	var zero S
	if !p.CanSubmit() {
		return zero, ErrGuardViolation
	}
	p.submitting = true
	return p.selection, nil
}

// SubmitCandidate validates and submits in one step, for forms that are only
// checked when the user asks to send them.
func (p *Panel[C, S]) SubmitCandidate(candidate C) (S, error) {
	var zero S
	if p.submitting {
		return zero, ErrGuardViolation
	}
	if err := p.Select(candidate); err != nil {
		return zero, err
	}
	return p.BeginSubmit()
}

// Send runs the configured submit function without touching panel state, so it
// may be called off the update loop.
func (p *Panel[C, S]) Send(ctx context.Context, selection S) (json.RawMessage, error) {
	return p.cfg.Submit(ctx, selection)
}

// Settle ends a submission. The selection survives either outcome.
func (p *Panel[C, S]) Settle(_ json.RawMessage, err error) {
	if !p.submitting {
		return
	}
	p.submitting = false
	if err != nil {
		p.notifier.Notify(Notification{
			Title:       p.cfg.Failed,
			Description: userMessage(err),
			Severity:    SeverityDestructive,
		})
		return
	}
	p.notifier.Notify(p.cfg.Submitted)
}

// Submit runs BeginSubmit, Send and Settle synchronously.
func (p *Panel[C, S]) Submit(ctx context.Context) (json.RawMessage, error) {
	selection, err := p.BeginSubmit()
	if err != nil {
		return nil, err
	}
	resp, err := p.Send(ctx, selection)
	p.Settle(resp, err)
	return resp, err
}

// Process fires the placeholder processing action. No network call is made.
func (p *Panel[C, S]) Process() error {
	if !p.CanProcess() {
		return ErrGuardViolation
	}
	p.notifier.Notify(*p.cfg.Process)
	return nil
}

func destructive(n Notification) Notification {
	n.Severity = SeverityDestructive
	return n
}

// userMessage prefers a short message meant for people over the full error chain.
func userMessage(err error) string {
	var friendly interface{ UserMessage() string }
	if errors.As(err, &friendly) {
		return friendly.UserMessage()
	}
	return err.Error()
}
