package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/layout"
)

func TestRender_GroupFitsFlat(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	d := doc.Bracket(doc.Text("("), doc.Text("a, b"), doc.Text(")"), cfg.Indent)
	assert.Equal(t, "( a, b )", layout.Render(d, cfg))
}

func TestRender_GroupBreaksWhenOverWidth(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 10
	d := doc.Bracket(doc.Text("("), doc.Join(doc.Concat(doc.Text(","), doc.SoftLine), doc.Text("aaaaa"), doc.Text("bbbbb")), doc.Text(")"), cfg.Indent)
	out := layout.Render(d, cfg)
	assert.Equal(t, "(\n  aaaaa,\n  bbbbb\n)", out)
}

func TestRender_TightBracketNeverPadsFlat(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	d := doc.TightBracket(doc.Text("("), doc.Text("others => '0'"), doc.Text(")"))
	assert.Equal(t, "(others => '0')", layout.Render(d, cfg))
}

func TestRender_TightBracketBreaksWithoutDedentedClose(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 10
	d := doc.TightBracket(doc.Text("("), doc.Join(doc.Concat(doc.Text(","), doc.SoftLine), doc.Text("aaaaa"), doc.Text("bbbbb")), doc.Text(")"))
	out := layout.Render(d, cfg)
	assert.Equal(t, "(aaaaa,\nbbbbb)", out)
}

func TestRender_KeywordCaseUpper(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.KeywordCase = config.KeywordUpper
	out := layout.Render(doc.Keyword("signal"), cfg)
	assert.Equal(t, "SIGNAL", out)
}

func TestRender_KeywordCasePreserve(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.KeywordCase = config.KeywordPreserve
	out := layout.Render(doc.Keyword("Signal"), cfg)
	assert.Equal(t, "Signal", out)
}

func TestRender_AlignPadsToWidestLevel(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	rows := doc.JoinHard(
		doc.Concat(doc.TextLevel("a :", 0), doc.Text(" std_logic;")),
		doc.Concat(doc.TextLevel("longname :", 0), doc.Text(" std_logic;")),
	)
	out := layout.Render(doc.Align(rows), cfg)
	want := "a :" + strings.Repeat(" ", len("longname :")-len("a :")) + " std_logic;" +
		"\n" + "longname :" + " std_logic;"
	assert.Equal(t, want, out)
}

func TestRender_NoTrailingWhitespace(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	rows := doc.JoinHard(
		doc.Concat(doc.TextLevel("a :", 0), doc.Text("")),
		doc.Concat(doc.TextLevel("longname :", 0), doc.Text("")),
	)
	out := layout.Render(doc.Align(rows), cfg)
	assert.Equal(t, "a :\nlongname :", out)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, line, strings.TrimRight(line, " \t"))
	}
}

func TestRender_HardLineBlankCount(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	d := doc.Concat(doc.Text("a"), doc.Concat(doc.HardLine(2), doc.Text("b")))
	assert.Equal(t, "a\n\nb", layout.Render(d, cfg))
}

func TestRender_InlineCommentNeverBreaks(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 5
	d := doc.InlineComment(doc.Concat(doc.Text("-- a"), doc.Concat(doc.SoftLine, doc.Text("b"))))
	assert.Equal(t, "-- a b", layout.Render(d, cfg))
}
