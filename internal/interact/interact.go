// Package interact defines how the commit workflow talks to the operator.
package interact

// Kind classifies a status message.
type Kind int

const (
	Info Kind = iota
	Success
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Gateway is every operator interaction the workflow performs. Implementations
// decide how questions are asked and messages rendered.
type Gateway interface {
	// AskYesNo asks a yes/no question. An error means no answer could be read.
	AskYesNo(question string) (bool, error)
	ShowMessage(text string, kind Kind)
	// ShowPanel displays a block of text under a title, such as a generated message.
	ShowPanel(title, text string)
	// Progress shows an indicator until the returned stop function is called.
	Progress(text string) (stop func())
}

// AutoConfirm answers yes to every question without asking. Everything else is
// passed through to the wrapped gateway.
type AutoConfirm struct {
	Gateway
}

func (a AutoConfirm) AskYesNo(question string) (bool, error) {
	a.Gateway.ShowMessage(question+" yes (auto-confirmed)", Info)
	return true, nil
}
