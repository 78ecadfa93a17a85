package interact

import (
	"fmt"
	"strings"
)

// Message is one status line captured by a Recorder.
type Message struct {
	Text string
	Kind Kind
}

// Panel is one panel captured by a Recorder.
type Panel struct {
	Title string
	Text  string
}

// Recorder is a scripted Gateway. It answers questions from Answers in order and
// records everything it is shown.
type Recorder struct {
	Answers []bool
	// AskErr, if set, is returned by every AskYesNo call.
	AskErr error

	Questions     []string
	Messages      []Message
	Panels        []Panel
	ProgressTexts []string
	Stopped       int
}

func (r *Recorder) AskYesNo(question string) (bool, error) {
	r.Questions = append(r.Questions, question)
	if r.AskErr != nil {
		return false, r.AskErr
	}
	if len(r.Answers) == 0 {
		return false, fmt.Errorf("unexpected question: %s", question)
	}
	answer := r.Answers[0]
	r.Answers = r.Answers[1:]
	return answer, nil
}

func (r *Recorder) ShowMessage(text string, kind Kind) {
	r.Messages = append(r.Messages, Message{Text: text, Kind: kind})
}

func (r *Recorder) ShowPanel(title, text string) {
	r.Panels = append(r.Panels, Panel{Title: title, Text: text})
}

func (r *Recorder) Progress(text string) func() {
	r.ProgressTexts = append(r.ProgressTexts, text)
	return func() { r.Stopped++ }
}

// Texts returns the recorded messages of the given kind.
func (r *Recorder) Texts(kind Kind) []string {
	var out []string
	for _, m := range r.Messages {
		if m.Kind == kind {
			out = append(out, m.Text)
		}
	}
	return out
}

// Transcript joins every recorded message, one per line.
func (r *Recorder) Transcript() string {
	lines := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		lines = append(lines, m.Kind.String()+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}
