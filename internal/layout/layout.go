// Package layout implements the layout engine spec.md §4.2 describes: it
// renders a doc.Doc against a config.Config into a final string, deciding
// per-Group whether to render flat or broken, tracking an indent stack,
// and resolving Align scopes to shared columns.
//
// Structurally this mirrors grindlemire/go-tui's pkg/layout, which also
// separates a measurement concern (Style + Value.Resolve, against an
// available-space budget) from a placement concern (Calculate walks the
// tree once, writes Rect/ContentRect). Here the "available space" is a
// column budget instead of a terminal rect, and "placement" is text
// emission instead of a Rect, but the two-pass discipline — resolve a
// width budget, then place content against it — is the same idea
// `calculateNode`/`layoutChildren` apply to flex children.
package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
)

// Render renders d against cfg into a final string. The result uses only
// "\n" line terminators and never has trailing whitespace on a line
// (spec.md §6.2), the latter enforced by a final per-line trim pass since
// alignment padding can otherwise leave trailing spaces on a short row.
func Render(d *doc.Doc, cfg config.Config) string {
	e := &engine{cfg: cfg, buf: &strings.Builder{}}
	e.indentStack = []int{0}
	e.emit(d, false, nil)
	return trimTrailingSpaces(e.buf.String())
}

// displayWidth measures s by rendered terminal columns, not byte or rune
// count, since VHDL identifiers, string literals, and comments may contain
// non-ASCII text that passes through unmodified (spec.md §6.2). It drives
// the engine's column tracking and the alignment engine's padding. The
// Group flat-fit probe adds a Doc's FlatWidth to that column, and
// FlatWidth counts the bytes of each Text/Keyword, so a group holding
// non-ASCII text is measured wider than it renders. Grounded
// on nguyenhung260980-grol's use of github.com/rivo/uniseg for the same
// reason in its own terminal-facing line-width accounting.
func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// levelWidths maps an alignment level to the padded column width the
// engine should pad every Text/Keyword at that level to.
type levelWidths map[int]int

// engine holds the layout engine's state (spec.md §5): the current output
// column, the indent stack, and whether emission is inside an
// InlineComment. The innermost active Align scope's level widths are not
// stored here; emit passes them down as an argument. None of this
// survives past one Render call.
type engine struct {
	cfg         config.Config
	buf         *strings.Builder
	column      int
	indentStack []int
	inInline    bool // true while inside an InlineComment: forces flat SoftLines
}

func (e *engine) curIndent() int {
	return e.indentStack[len(e.indentStack)-1]
}

func (e *engine) pushIndent(n int) {
	e.indentStack = append(e.indentStack, n)
}

func (e *engine) popIndent() {
	e.indentStack = e.indentStack[:len(e.indentStack)-1]
}

// emit is the single recursive entry point used for both flat and broken
// rendering; flat is decided per-Group (spec.md §4.2 point 1) and
// inherited by everything inside it until a nested Group makes its own
// decision (spec.md §4.2 "Ordering/tie-breaks").
func (e *engine) emit(d *doc.Doc, flat bool, levels levelWidths) {
	if d == nil {
		return
	}
	switch d.Kind() {
	case doc.KindEmpty:
		return

	case doc.KindText:
		e.emitAtom(d.Text(), d.Level(), levels)

	case doc.KindKeyword:
		e.emitAtom(applyKeywordCase(d.Text(), e.cfg.KeywordCase), d.Level(), levels)

	case doc.KindSoftLine:
		if flat || e.inInline {
			e.write(" ")
			return
		}
		e.newline(1)

	case doc.KindHardLine:
		if e.inInline {
			// spec.md §4.2 point 9: nothing inside an InlineComment may
			// break; a HardLine reaching here is a construction error in
			// the caller, not a recoverable layout decision.
			return
		}
		e.newline(d.N())

	case doc.KindConcat:
		e.emit(d.Left(), flat, levels)
		e.emit(d.Right(), flat, levels)

	case doc.KindNest:
		e.pushIndent(e.curIndent() + d.Delta())
		e.emit(d.Inner(), flat, levels)
		e.popIndent()

	case doc.KindHang:
		e.pushIndent(e.column)
		e.emit(d.Inner(), flat, levels)
		e.popIndent()

	case doc.KindGroup:
		childFlat := !d.Inner().HasHardLine() && e.column+d.Inner().FlatWidth() <= e.cfg.LineLength
		e.emit(d.Inner(), childFlat, levels)

	case doc.KindAlign:
		scope := levelWidths{}
		measureLevels(d.Inner(), scope)
		e.emit(d.Inner(), flat, scope)

	case doc.KindInlineComment:
		prev := e.inInline
		e.inInline = true
		e.emit(d.Inner(), true, levels)
		e.inInline = prev
	}
}

// emitAtom writes a single Text/Keyword atom, padding it to its
// alignment-level column width when an Align scope is active for that
// level (spec.md §4.2 point 7).
func (e *engine) emitAtom(text string, level int, levels levelWidths) {
	e.write(text)
	if levels == nil || level < 0 {
		return
	}
	target, ok := levels[level]
	if !ok {
		return
	}
	pad := target - displayWidth(text)
	if pad > 0 {
		e.write(strings.Repeat(" ", pad))
	}
}

func (e *engine) write(s string) {
	e.buf.WriteString(s)
	e.column += displayWidth(s)
}

func (e *engine) newline(n int) {
	if n <= 0 {
		return
	}
	if n > 1 {
		e.buf.WriteString(strings.Repeat("\n", n-1))
	}
	e.buf.WriteByte('\n')
	indent := e.curIndent()
	if indent > 0 {
		e.buf.WriteString(strings.Repeat(" ", indent))
	}
	e.column = indent
}

// applyKeywordCase implements spec.md §4.2 point 8.
func applyKeywordCase(s string, c config.KeywordCase) string {
	switch c {
	case config.KeywordUpper:
		return strings.ToUpper(s)
	case config.KeywordPreserve:
		return s
	default:
		return strings.ToLower(s)
	}
}

// measureLevels is the Align scope's measurement pass (spec.md §4.2
// point 7, SPEC_FULL.md §4.5): collect the maximum display width of each
// alignment level reachable inside d, without crossing into a nested
// Align (which resolves its own levels independently when the emit pass
// reaches it).
func measureLevels(d *doc.Doc, levels levelWidths) {
	if d == nil {
		return
	}
	switch d.Kind() {
	case doc.KindText, doc.KindKeyword:
		if d.Level() >= 0 {
			w := displayWidth(d.Text())
			if w > levels[d.Level()] {
				levels[d.Level()] = w
			}
		}
	case doc.KindConcat:
		measureLevels(d.Left(), levels)
		measureLevels(d.Right(), levels)
	case doc.KindNest, doc.KindGroup, doc.KindHang, doc.KindInlineComment:
		measureLevels(d.Inner(), levels)
	case doc.KindAlign:
		// A nested Align is its own scope; stop here (spec.md §4.2
		// "the inner scope wins for its inner siblings").
		return
	}
}

// trimTrailingSpaces enforces spec.md §6.2/§8's "no line of output ends
// with a space" property, which alignment padding can otherwise violate
// when the last row of a scope is shorter than the widest one.
func trimTrailingSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}
