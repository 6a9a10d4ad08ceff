package workflow

// View is the single screen the router has mounted.
type View int

const (
	ViewWelcome View = iota
	ViewCSV
	ViewText
	ViewURL
	ViewAudio
)

func (v View) String() string {
	switch v {
	case ViewCSV:
		return "csv"
	case ViewText:
		return "text"
	case ViewURL:
		return "url"
	case ViewAudio:
		return "audio"
	default:
		return "welcome"
	}
}

// Router is the top-level view switch. It moves between the welcome screen and
// exactly one mode panel; moving between two panels requires a Back first.
type Router struct {
	mode      Mode
	candidate Mode
}

// NewRouter returns a router parked on the welcome screen.
func NewRouter() *Router {
	return &Router{}
}

// Mode reports the committed mode, ModeNone while the welcome screen is shown.
func (r *Router) Mode() Mode {
	return r.mode
}

// Candidate reports the mode picked but not yet confirmed.
func (r *Router) Candidate() Mode {
	return r.candidate
}

// CanConfirm mirrors the enabled state of the proceed control.
func (r *Router) CanConfirm() bool {
	return r.mode == ModeNone && r.candidate != ModeNone
}

// SelectCandidate records the picked mode without mounting anything.
func (r *Router) SelectCandidate(m Mode) {
	r.candidate = m
}

// Confirm mounts the candidate mode. It returns false and changes nothing when no
// candidate is set or a panel is already mounted.
func (r *Router) Confirm() bool {
	if !r.CanConfirm() {
		return false
	}
	r.mode = r.candidate
	return true
}

// Back returns to the welcome screen and clears the candidate.
func (r *Router) Back() {
	r.mode = ModeNone
	r.candidate = ModeNone
}

// View reports which screen is mounted.
func (r *Router) View() View {
	return viewFor(r.mode)
}

func viewFor(m Mode) View {
	switch m {
	case ModeCSV:
		return ViewCSV
	case ModeText:
		return ViewText
	case ModeURL:
		return ViewURL
	case ModeAudio:
		return ViewAudio
	default:
		return ViewWelcome
	}
}
