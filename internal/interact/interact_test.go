package interact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoConfirm(t *testing.T) {
	rec := &Recorder{AskErr: errors.New("must not be asked")}
	gw := AutoConfirm{Gateway: rec}

	ok, err := gw.AskYesNo("Commit?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rec.Questions)
	assert.Equal(t, []string{"Commit? yes (auto-confirmed)"}, rec.Texts(Info))

	gw.ShowPanel("Title", "body")
	stop := gw.Progress("working")
	stop()
	assert.Equal(t, []Panel{{Title: "Title", Text: "body"}}, rec.Panels)
	assert.Equal(t, []string{"working"}, rec.ProgressTexts)
	assert.Equal(t, 1, rec.Stopped)
}

func TestRecorder_AnswersInOrder(t *testing.T) {
	rec := &Recorder{Answers: []bool{true, false}}

	first, err := rec.AskYesNo("one")
	require.NoError(t, err)
	second, err := rec.AskYesNo("two")
	require.NoError(t, err)
	_, err = rec.AskYesNo("three")

	assert.True(t, first)
	assert.False(t, second)
	assert.ErrorContains(t, err, "unexpected question: three")
	assert.Equal(t, []string{"one", "two", "three"}, rec.Questions)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestRecorder_Transcript(t *testing.T) {
	rec := &Recorder{}
	rec.ShowMessage("a", Info)
	rec.ShowMessage("b", Warning)
	assert.Equal(t, "info: a\nwarning: b", rec.Transcript())
	assert.Equal(t, []string{"b"}, rec.Texts(Warning))
}
