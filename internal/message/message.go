// Package message turns staged changes into a conventional commit message by
// asking a chat backend.
package message

import (
	"strings"
	"unicode/utf8"

	"github.com/samzong/git-autocommit/internal/committype"
)

// CommitMessage is the backend reply, kept byte-for-byte. Accessors only read it.
type CommitMessage struct {
	text string
}

func NewCommitMessage(text string) CommitMessage {
	return CommitMessage{text: text}
}

// String returns the message exactly as generated.
func (m CommitMessage) String() string {
	return m.text
}

// Subject returns the first non-blank line.
func (m CommitMessage) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(m.text), "\n")
	return strings.TrimRight(subject, "\r ")
}

// Body returns everything after the subject, without surrounding blank lines.
func (m CommitMessage) Body() string {
	_, body, _ := strings.Cut(strings.TrimSpace(m.text), "\n")
	return strings.TrimSpace(body)
}

// SubjectTooLong reports whether the subject exceeds limit characters. The limit
// is advisory; long subjects are never shortened.
func (m CommitMessage) SubjectTooLong(limit int) bool {
	return limit > 0 && utf8.RuneCountInString(m.Subject()) > limit
}

// Type returns the conventional commit type of the subject, if it has one.
func (m CommitMessage) Type() string {
	return committype.FromSubject(m.Subject())
}
