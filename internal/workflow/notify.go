package workflow

// Severity distinguishes ordinary feedback from failures.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityDestructive
)

func (s Severity) String() string {
	if s == SeverityDestructive {
		return "destructive"
	}
	return "normal"
}

// Notification is a short-lived message for the user.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier presents notifications. Callers never inspect a result.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
