package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/intake/internal/gateway"
	"github.com/csheth/intake/internal/guide"
	"github.com/csheth/intake/internal/picker"
	"github.com/csheth/intake/internal/receipts"
	"github.com/csheth/intake/internal/workflow"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Submitter workflow.Submitter
	Receipts  *receipts.Journal
	// PriorReceipts is how many receipts the journal held at startup.
	PriorReceipts   int
	BackendURL      string
	NotificationTTL time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

func newModel(config Config) *model {
	if config.NotificationTTL <= 0 {
		config.NotificationTTL = defaultToastTTL
	}
	if config.Submitter == nil {
		client := gateway.New(gateway.Config{BaseURL: config.BackendURL})
		config.Submitter = client
		config.BackendURL = client.BaseURL()
	}

	pathInput := textinput.New()
	pathInput.CharLimit = 2048
	pathInput.Width = 70

	var urlInputs [urlFieldCount]textinput.Model
	for i := range urlInputs {
		input := textinput.New()
		input.Placeholder = guide.URLFieldPlaceholders[i]
		input.CharLimit = 32
		input.Width = 20
		urlInputs[i] = input
	}
	urlInputs[fieldURL].CharLimit = 2048
	urlInputs[fieldURL].Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	return &model{
		config:       config,
		router:       workflow.NewRouter(),
		jobs:         newJobBus(),
		layout:       newPageLayout(),
		pathInput:    pathInput,
		urlInputs:    urlInputs,
		spinner:      spin,
		viewport:     vp,
		activeJobs:   map[string]jobSnapshot{},
		receiptCount: config.PriorReceipts,
		infoMessage:  welcomeHint,
	}
}

const welcomeHint = "Pick a processing type with ↑/↓ or 1-4, then press Enter."

type model struct {
	config Config
	router *workflow.Router
	jobs   *jobBus
	layout pageLayout

	// At most one panel is mounted; generation changes on every mount and unmount.
	csv        *workflow.FilePanel
	text       *workflow.FilePanel
	audio      *workflow.BatchPanel
	url        *workflow.URLPanel
	generation int

	pathInput textinput.Model
	urlInputs [urlFieldCount]textinput.Model
	urlFocus  urlField
	spinner   spinner.Model
	viewport  viewport.Model

	toasts        []toast
	toastSeq      int
	pendingToasts []int

	activeJobs   map[string]jobSnapshot
	lastJob      *jobSnapshot
	receiptCount int
	infoMessage  string
	helpVisible  bool
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, batch(append([]tea.Cmd{cmd}, m.flushToasts()...)...)
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return tea.Quit
		}
		switch m.router.View() {
		case workflow.ViewWelcome:
			return m.handleWelcomeKey(msg)
		case workflow.ViewURL:
			return m.handleURLKey(msg)
		default:
			return m.handleFileKey(msg)
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return nil
	case jobSignalMsg:
		m.activeJobs[msg.Snapshot.ID] = msg.Snapshot
		return nil
	case jobResultEnvelope:
		delete(m.activeJobs, msg.Snapshot.ID)
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		if msg.Payload == nil {
			return nil
		}
		return m.update(msg.Payload)
	case submitResultMsg:
		return m.settle(msg)
	case toastExpiredMsg:
		m.dropToast(msg.id)
		return nil
	}
	return nil
}

func (m *model) handleWelcomeKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		m.moveCandidate(-1)
	case tea.KeyDown, tea.KeyTab:
		m.moveCandidate(1)
	case tea.KeyEnter:
		return m.confirm()
	case tea.KeyRunes:
		switch value := string(key.Runes); value {
		case "q":
			return tea.Quit
		case "?":
			m.helpVisible = !m.helpVisible
		case "k":
			m.moveCandidate(-1)
		case "j":
			m.moveCandidate(1)
		case "1", "2", "3", "4":
			m.router.SelectCandidate(workflow.Modes[value[0]-'1'])
			m.infoMessage = welcomeHint
		}
	}
	return nil
}

func (m *model) moveCandidate(delta int) {
	idx := -1
	for i, mode := range workflow.Modes {
		if mode == m.router.Candidate() {
			idx = i
		}
	}
	n := len(workflow.Modes)
	switch {
	case idx < 0 && delta < 0:
		idx = n - 1
	case idx < 0:
		idx = 0
	default:
		idx = ((idx+delta)%n + n) % n
	}
	m.router.SelectCandidate(workflow.Modes[idx])
	m.infoMessage = welcomeHint
}

func (m *model) confirm() tea.Cmd {
	if !m.router.Confirm() {
		m.infoMessage = "Choose a processing type first."
		return nil
	}
	return m.mount(m.router.Mode())
}

func (m *model) mount(mode workflow.Mode) tea.Cmd {
	m.generation++
	m.unmountPanels()
	notifier := workflow.NotifierFunc(m.notify)
	switch mode {
	case workflow.ModeCSV:
		m.csv = workflow.NewCSVPanel(m.config.Submitter, notifier)
	case workflow.ModeText:
		m.text = workflow.NewTextPanel(m.config.Submitter, notifier)
	case workflow.ModeAudio:
		m.audio = workflow.NewAudioPanel(m.config.Submitter, notifier)
	case workflow.ModeURL:
		m.url = workflow.NewURLPanel(m.config.Submitter, notifier)
	}
	m.helpVisible = false
	m.viewport.GotoTop()
	m.resetInputs()
	sheet := guide.Build(mode)
	m.infoMessage = sheet.Hint
	if mode == workflow.ModeURL {
		m.focusURLField(fieldURL)
	} else {
		m.pathInput.Placeholder = sheet.Prompt
		m.pathInput.Focus()
	}
	log.Printf("[tui] mounted %s panel", mode)
	return textinput.Blink
}

func (m *model) back() {
	log.Printf("[tui] leaving %s panel", m.router.Mode())
	m.router.Back()
	m.generation++
	m.unmountPanels()
	m.resetInputs()
	m.infoMessage = welcomeHint
}

func (m *model) unmountPanels() {
	m.csv, m.text, m.audio, m.url = nil, nil, nil, nil
}

func (m *model) resetInputs() {
	m.pathInput.Reset()
	m.pathInput.Blur()
	for i := range m.urlInputs {
		m.urlInputs[i].Reset()
		m.urlInputs[i].Blur()
	}
	m.urlFocus = fieldURL
}

// controller returns the mounted panel, or nil on the welcome view.
func (m *model) controller() workflow.Controller {
	switch {
	case m.csv != nil:
		return m.csv
	case m.text != nil:
		return m.text
	case m.audio != nil:
		return m.audio
	case m.url != nil:
		return m.url
	default:
		return nil
	}
}

func (m *model) filePanel() *workflow.FilePanel {
	if m.csv != nil {
		return m.csv
	}
	return m.text
}

func (m *model) submitting() bool {
	ctrl := m.controller()
	return ctrl != nil && ctrl.Submitting()
}

func (m *model) handleFileKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		m.back()
		return nil
	case tea.KeyEnter:
		m.selectFromInput()
		return nil
	case tea.KeyCtrlU:
		return m.submit()
	case tea.KeyCtrlP:
		m.process()
		return nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return cmd
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(key)
	return cmd
}

func (m *model) selectFromInput() {
	raw := strings.TrimSpace(m.pathInput.Value())
	if raw == "" {
		m.infoMessage = "Type a path first."
		return
	}
	mode := m.router.Mode()
	files, err := picker.Resolve(raw, picker.OptionsFor(mode))
	if err != nil {
		m.notify(resolveFailure(err))
		return
	}
	if m.audio != nil {
		err = m.audio.Select(files)
	} else if panel := m.filePanel(); panel != nil {
		err = panel.Select(files)
	}
	switch {
	case errors.Is(err, workflow.ErrEmptyBatch):
		m.infoMessage = "No audio files found in that selection."
	case err != nil:
		log.Printf("[tui] %s selection rejected: %v", mode, err)
	default:
		m.pathInput.Reset()
		m.viewport.GotoTop()
		m.infoMessage = "Ctrl+U uploads the selection, Ctrl+P starts processing."
	}
}

func resolveFailure(err error) workflow.Notification {
	var pathErr *fs.PathError
	if errors.Is(err, fs.ErrNotExist) {
		description := "The selected path does not exist."
		if errors.As(err, &pathErr) {
			description = fmt.Sprintf("%s does not exist.", pathErr.Path)
		}
		return workflow.Notification{Title: "File Not Found", Description: description, Severity: workflow.SeverityDestructive}
	}
	return workflow.Notification{Title: "Invalid Selection", Description: err.Error(), Severity: workflow.SeverityDestructive}
}

func (m *model) process() {
	ctrl := m.controller()
	if ctrl == nil {
		return
	}
	if err := ctrl.Process(); err != nil {
		m.infoMessage = "Select a file before processing."
	}
}

// submit captures the selection, marks the panel as submitting and hands the
// request to the job bus. Repeated calls while a request is in flight are no-ops.
func (m *model) submit() tea.Cmd {
	generation := m.generation
	mode := m.router.Mode()
	journal := m.config.Receipts
	var run jobRunner
	switch {
	case m.audio != nil:
		files, err := m.audio.BeginSubmit()
		if err != nil {
			return nil
		}
		run = submitJob(generation, mode, m.audio.Send, files, journal)
	case m.url != nil:
		job, err := m.url.SubmitCandidate(m.urlFields())
		if err != nil {
			return nil
		}
		run = submitJob(generation, mode, m.url.Send, job, journal)
	case m.filePanel() != nil:
		panel := m.filePanel()
		file, err := panel.BeginSubmit()
		if err != nil {
			return nil
		}
		run = submitJob(generation, mode, panel.Send, file, journal)
	default:
		return nil
	}
	m.infoMessage = "Sending to " + m.config.BackendURL
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindFor(mode), run))
}

func (m *model) settle(msg submitResultMsg) tea.Cmd {
	if m.config.Receipts.Enabled() {
		m.receiptCount++
	}
	ctrl := m.controller()
	if msg.generation != m.generation || ctrl == nil || ctrl.Mode() != msg.mode {
		log.Printf("[tui] ignoring %s result for a panel that is no longer mounted", msg.mode)
		return nil
	}
	ctrl.Settle(msg.response, msg.err)
	if msg.err != nil {
		m.infoMessage = "Submission failed. Ctrl+U tries again."
	} else {
		m.infoMessage = "Submission complete."
	}
	return nil
}

func (m *model) handleURLKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		m.back()
		return nil
	case tea.KeyTab, tea.KeyDown:
		m.focusURLField((m.urlFocus + 1) % urlFieldCount)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusURLField((m.urlFocus + urlFieldCount - 1) % urlFieldCount)
		return nil
	case tea.KeyEnter:
		if m.urlFocus == fieldEndTime {
			return m.submit()
		}
		m.focusURLField(m.urlFocus + 1)
		return nil
	case tea.KeyCtrlU:
		return m.submit()
	}
	var cmd tea.Cmd
	m.urlInputs[m.urlFocus], cmd = m.urlInputs[m.urlFocus].Update(key)
	return cmd
}

func (m *model) focusURLField(field urlField) {
	m.urlFocus = field
	for i := range m.urlInputs {
		if urlField(i) == field {
			m.urlInputs[i].Focus()
		} else {
			m.urlInputs[i].Blur()
		}
	}
}

func (m *model) urlFields() workflow.URLFields {
	return workflow.URLFields{
		URL:       strings.TrimSpace(m.urlInputs[fieldURL].Value()),
		StartTime: strings.TrimSpace(m.urlInputs[fieldStartTime].Value()),
		EndTime:   strings.TrimSpace(m.urlInputs[fieldEndTime].Value()),
	}
}

func (m *model) notify(note workflow.Notification) {
	m.toastSeq++
	m.toasts = append(m.toasts, toast{id: m.toastSeq, note: note})
	if len(m.toasts) > maxVisibleToasts {
		m.toasts = m.toasts[len(m.toasts)-maxVisibleToasts:]
	}
	m.pendingToasts = append(m.pendingToasts, m.toastSeq)
	log.Printf("[tui] notify %s: %s", note.Severity, note.Title)
}

func (m *model) flushToasts() []tea.Cmd {
	if len(m.pendingToasts) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pendingToasts))
	for _, id := range m.pendingToasts {
		cmds = append(cmds, expireToastCmd(id, m.config.NotificationTTL))
	}
	m.pendingToasts = nil
	return cmds
}

func (m *model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

func (m *model) applyLayout() {
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	inputWidth := m.layout.viewportWidth - 4
	m.pathInput.Width = inputWidth
	m.urlInputs[fieldURL].Width = inputWidth
}

func batch(cmds ...tea.Cmd) tea.Cmd {
	valid := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			valid = append(valid, cmd)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}
