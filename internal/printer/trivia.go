// This file implements spec.md §4.4.1's trivia-wrapping rule: every node
// the visitor renders is wrapped so its leading/trailing/inline trivia
// survive around whatever core Doc the per-node rule produced.
//
// doc.HardLine(n) emits n newline characters. A leading run always starts
// right after a line break (a clause separator's broken SoftLine, or the
// hard_line that opens a nested block or joins two blocks), so a Break(k)
// in leading position is doc.HardLine(k): with the break before it, that
// leaves exactly k blank lines (TestS5_TriviaPreservationWithBlankLines
// checks one blank line on each side of a comment). In trailing position
// wrap already puts one hard_line before trailing_doc and the next
// sibling's separator ends the last line, so the last Break(k) there
// becomes doc.HardLine(k-1). See DESIGN.md for this arithmetic.
package printer

import (
	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
)

// hardLinesFor renders a Break's blank-line count as a HardLine of that
// many newlines; the line break before the trivia run ends the previous
// line.
func hardLinesFor(blankLines int) *doc.Doc {
	return doc.HardLine(blankLines)
}

// wrap applies spec.md §4.4.1's full wrapping rule to core, using nd's
// trivia. isExpr selects the expression-tree rule that drops Break items
// from leading/trailing while keeping Comments (spec.md §4.4.1).
func wrap(nd ast.Node, core *doc.Doc, isExpr bool) *doc.Doc {
	nt := nd.Trivia()
	if nt.Trivial() {
		return core
	}

	result := core

	if len(nt.Leading) > 0 {
		result = doc.Concat(leadingDoc(nt.Leading, isExpr), result)
	}

	if nt.InlineComment != nil {
		result = doc.Concat(result, doc.InlineComment(doc.Text(" "+nt.InlineComment.CommentText)))
	}

	if len(nt.Trailing) > 0 {
		result = doc.Concat(result, doc.Concat(doc.HardLine(1), trailingDoc(nt.Trailing, isExpr)))
	}

	return result
}

// leadingDoc implements the leading half of spec.md §4.4.1: every item
// maps uniformly (no "last item" special case — that only applies to
// trailing).
func leadingDoc(items []ast.Trivia, isExpr bool) *doc.Doc {
	items = filterBreaks(items, isExpr)
	var out *doc.Doc = doc.Empty
	for _, t := range items {
		switch t.Kind {
		case ast.TriviaComment:
			out = doc.Concat(out, doc.Concat(doc.Text(t.CommentText), doc.HardLine(1)))
		case ast.TriviaBreak:
			out = doc.Concat(out, hardLinesFor(t.BlankLines))
		}
	}
	return out
}

// trailingDoc implements the trailing half of spec.md §4.4.1: every item
// except the last maps the same way leadingDoc does; the last item uses
// the special emission the spec calls out (no trailing hard_line after a
// final Comment; one fewer blank line for a final Break, since a
// hard_line already precedes trailing_doc in wrap's result formula).
func trailingDoc(items []ast.Trivia, isExpr bool) *doc.Doc {
	items = filterBreaks(items, isExpr)
	if len(items) == 0 {
		return doc.Empty
	}

	var out *doc.Doc = doc.Empty
	for _, t := range items[:len(items)-1] {
		switch t.Kind {
		case ast.TriviaComment:
			out = doc.Concat(out, doc.Concat(doc.Text(t.CommentText), doc.HardLine(1)))
		case ast.TriviaBreak:
			out = doc.Concat(out, hardLinesFor(t.BlankLines))
		}
	}

	last := items[len(items)-1]
	switch last.Kind {
	case ast.TriviaComment:
		out = doc.Concat(out, doc.Text(last.CommentText))
	case ast.TriviaBreak:
		if last.BlankLines > 0 {
			out = doc.Concat(out, doc.HardLine(last.BlankLines-1))
		}
	}
	return out
}

// filterBreaks drops Break items when rendering an expression subtree
// (spec.md §4.4.1: "Break items in leading/trailing are filtered out...
// but Comments remain").
func filterBreaks(items []ast.Trivia, isExpr bool) []ast.Trivia {
	if !isExpr {
		return items
	}
	out := items[:0:0]
	for _, t := range items {
		if t.Kind == ast.TriviaComment {
			out = append(out, t)
		}
	}
	return out
}
