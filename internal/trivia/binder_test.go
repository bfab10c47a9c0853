package trivia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/lexvhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/parsevhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/trivia"
)

// bind lexes, parses, and binds src, returning the resulting file. Any
// binder errors (orphan comments, spec.md §7) are returned separately so
// tests can assert on them instead of failing outright.
func bind(t *testing.T, src string) (*ast.File, []error) {
	t.Helper()
	stream := lexvhdl.Lex(src)
	file, parseErrs := parsevhdl.Parse(stream)
	require.Empty(t, parseErrs, "unexpected parse errors for %q", src)
	errs := trivia.Bind(stream, file)
	return file, errs
}

func TestBind_LeadingCommentAttachesToFollowingUnit(t *testing.T) {
	t.Parallel()

	file, errs := bind(t, "-- header\nentity E is end E;")
	assert.Empty(t, errs)

	// With no library/use context clauses, the DesignUnit wrapper spans
	// the same tokens as the Entity it holds; Bind's outer bindSequence
	// over design units runs before bindDesignUnit's entity-specific pass,
	// so the DesignUnit node claims the file-level leading comment first.
	tv := file.Units[0].Trivia()
	require.NotNil(t, tv)
	require.Len(t, tv.Leading, 1)
	assert.Equal(t, ast.TriviaComment, tv.Leading[0].Kind)
	assert.Equal(t, "-- header", tv.Leading[0].CommentText)
}

func TestBind_TrailingCommentOnSameLineIsInline(t *testing.T) {
	t.Parallel()

	file, errs := bind(t, "entity E is end E; -- trailer\n")
	assert.Empty(t, errs)

	tv := file.Units[0].Trivia()
	require.NotNil(t, tv)
	require.NotNil(t, tv.InlineComment)
	assert.Equal(t, "-- trailer", tv.InlineComment.CommentText)
	assert.Empty(t, tv.Trailing)
}

func TestBind_CommentOnItsOwnLineIsNotInline(t *testing.T) {
	t.Parallel()

	// The comment sits on the line after "end E;", so it must not be
	// claimed as that unit's inline comment (spec.md §4.3 point 2 requires
	// same source line); it lands in the design unit's own trailing trivia
	// instead, and is not an orphan (no error).
	file, errs := bind(t, "entity E is end E;\n-- trailer\n")
	assert.Empty(t, errs)

	tv := file.Units[0].Trivia()
	require.NotNil(t, tv)
	assert.Nil(t, tv.InlineComment)
	require.Len(t, tv.Trailing, 1)
	assert.Equal(t, "-- trailer", tv.Trailing[0].CommentText)
}

func TestBind_EveryCommentIsClaimedExactlyOnce(t *testing.T) {
	t.Parallel()

	src := `-- a
entity E is -- b
  generic ( n : integer := 1 ); -- c
end E; -- d
`
	file, errs := bind(t, src)
	assert.Empty(t, errs, "no comment should be left as an orphan")

	seen := map[string]int{}
	var walk func(t *ast.NodeTrivia)
	walk = func(t *ast.NodeTrivia) {
		if t == nil {
			return
		}
		for _, tr := range t.Leading {
			if tr.Kind == ast.TriviaComment {
				seen[tr.CommentText]++
			}
		}
		for _, tr := range t.Trailing {
			if tr.Kind == ast.TriviaComment {
				seen[tr.CommentText]++
			}
		}
		if t.InlineComment != nil {
			seen[t.InlineComment.CommentText]++
		}
	}

	ent := file.Units[0].Unit.(*ast.Entity)
	walk(file.Trivia())
	walk(file.Units[0].Trivia())
	walk(ent.Trivia())
	walk(ent.Generic.Trivia())
	walk(ent.Generic.Params[0].Trivia())

	for _, want := range []string{"-- a", "-- b", "-- c", "-- d"} {
		assert.Equal(t, 1, seen[want], "comment %q must be claimed exactly once", want)
	}
}

func TestBind_BlankLineRunBecomesSingleBreak(t *testing.T) {
	t.Parallel()

	// Three blank source lines between the two generics still collapse to
	// one Break trivia item (spec.md §9 "Break quantization" — the printer,
	// not the binder, decides how many hard_lines a Break renders as).
	src := "entity E is generic ( one : integer := 1;\n\n\n\ntwo : integer := 2 ); end E;"
	file, errs := bind(t, src)
	assert.Empty(t, errs)

	ent := file.Units[0].Unit.(*ast.Entity)
	second := ent.Generic.Params[1]
	tv := second.Trivia()
	require.NotNil(t, tv)
	require.Len(t, tv.Leading, 1)
	assert.Equal(t, ast.TriviaBreak, tv.Leading[0].Kind)
	assert.GreaterOrEqual(t, tv.Leading[0].BlankLines, 1)
}

func TestBind_CommentBetweenBlankLinesKeepsBreakAndCommentSeparate(t *testing.T) {
	t.Parallel()

	src := "entity E is generic ( one : integer := 1;\n\n-- mid\n\ntwo : integer := 2 ); end E;"
	file, errs := bind(t, src)
	assert.Empty(t, errs)

	ent := file.Units[0].Unit.(*ast.Entity)
	second := ent.Generic.Params[1]
	tv := second.Trivia()
	require.NotNil(t, tv)
	// blank line, comment, blank line: a Break on each side of "-- mid".
	require.Len(t, tv.Leading, 3)
	assert.Equal(t, ast.TriviaBreak, tv.Leading[0].Kind)
	assert.Equal(t, ast.TriviaComment, tv.Leading[1].Kind)
	assert.Equal(t, "-- mid", tv.Leading[1].CommentText)
	assert.Equal(t, ast.TriviaBreak, tv.Leading[2].Kind)
}

func TestBind_SingleNewlineProducesNoBreak(t *testing.T) {
	t.Parallel()

	// A single newline between declarations is ordinary formatting, not a
	// blank-line break: spec.md §4.3 point 4 only emits a Break once the
	// run contains two or more consecutive newlines.
	src := "entity E is generic ( one : integer := 1;\ntwo : integer := 2 ); end E;"
	file, errs := bind(t, src)
	assert.Empty(t, errs)

	ent := file.Units[0].Unit.(*ast.Entity)
	second := ent.Generic.Params[1]
	tv := second.Trivia()
	if tv != nil {
		for _, tr := range tv.Leading {
			assert.NotEqual(t, ast.TriviaBreak, tr.Kind, "a single newline must not produce a Break")
		}
	}
}

func TestBind_SpanExtendsOverTrailingSemicolonForInlineComment(t *testing.T) {
	t.Parallel()

	// The comment follows the ";" that terminates the generic, not the
	// identifier itself; extendSpan (spec.md §4.3 point 1) must pull the
	// span stop past the ";" so the comment is still recognized as being
	// on the declaration's own line and claimed as inline rather than
	// orphaned.
	file, errs := bind(t, "entity E is generic ( n : integer := 1 ); -- c\nend E;")
	assert.Empty(t, errs)

	ent := file.Units[0].Unit.(*ast.Entity)
	tv := ent.Generic.Trivia()
	require.NotNil(t, tv)
	require.NotNil(t, tv.InlineComment)
	assert.Equal(t, "-- c", tv.InlineComment.CommentText)
}

func TestBind_NoCommentsProducesNoErrorsAndNoTrivia(t *testing.T) {
	t.Parallel()

	file, errs := bind(t, "entity E is end E;")
	assert.Empty(t, errs)

	ent := file.Units[0].Unit.(*ast.Entity)
	tv := ent.Trivia()
	if tv != nil {
		assert.True(t, tv.Trivial())
	}
}
