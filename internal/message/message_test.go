package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitMessage_Accessors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		subject string
		body    string
		typ     string
	}{
		{
			name:    "subject only",
			text:    "feat: add login",
			subject: "feat: add login",
			typ:     "feat",
		},
		{
			name:    "subject and body",
			text:    "fix(api): handle nil body\n\nGuard the decoder against empty requests.\n",
			subject: "fix(api): handle nil body",
			body:    "Guard the decoder against empty requests.",
			typ:     "fix",
		},
		{
			name:    "leading blank lines and CRLF",
			text:    "\n\ndocs: update README\r\n",
			subject: "docs: update README",
			typ:     "docs",
		},
		{
			name:    "not conventional",
			text:    "Updated some files",
			subject: "Updated some files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewCommitMessage(tt.text)
			assert.Equal(t, tt.text, msg.String())
			assert.Equal(t, tt.subject, msg.Subject())
			assert.Equal(t, tt.body, msg.Body())
			assert.Equal(t, tt.typ, msg.Type())
		})
	}
}

func TestCommitMessage_SubjectTooLong(t *testing.T) {
	short := NewCommitMessage("feat: " + strings.Repeat("a", 66))
	long := NewCommitMessage("feat: " + strings.Repeat("a", 67))
	wide := NewCommitMessage("feat: " + strings.Repeat("é", 66))

	assert.False(t, short.SubjectTooLong(72))
	assert.True(t, long.SubjectTooLong(72))
	assert.False(t, wide.SubjectTooLong(72), "limit counts characters, not bytes")
	assert.False(t, long.SubjectTooLong(0))
	assert.Equal(t, 73, len(long.String()), "long subjects are kept intact")
}
