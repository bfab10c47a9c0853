package ast

// Position is a source location, used for diagnostics only; layout never
// reproduces source columns (spec.md §1 Non-goals).
type Position struct {
	Line int
	Col  int
}

// TriviaKind tags which arm of the Trivia sum is populated.
type TriviaKind int

const (
	TriviaComment TriviaKind = iota
	TriviaBreak
)

// Trivia is the tagged sum spec.md §3.1 describes. A Comment trivia carries
// the full comment text (including its leading "--"); a Break trivia
// carries the number of blank source lines it represents (always >= 1).
type Trivia struct {
	Kind        TriviaKind
	CommentText string // valid when Kind == TriviaComment
	BlankLines  int    // valid when Kind == TriviaBreak, always >= 1
	Pos         Position
}

// NewComment builds a Comment trivia item.
func NewComment(text string, pos Position) Trivia {
	return Trivia{Kind: TriviaComment, CommentText: text, Pos: pos}
}

// NewBreak builds a Break trivia item. blankLines must be >= 1.
func NewBreak(blankLines int, pos Position) Trivia {
	return Trivia{Kind: TriviaBreak, BlankLines: blankLines, Pos: pos}
}

// NodeTrivia is the per-node trivia bundle spec.md §3.1 requires: ordered
// leading trivia, ordered trailing trivia, and at most one inline comment.
type NodeTrivia struct {
	Leading        []Trivia
	Trailing       []Trivia
	InlineComment  *Trivia // always Kind == TriviaComment when non-nil
}

// Trivial reports whether the node carries no trivia at all, a common fast
// path in the printer's wrapping rule (spec.md §4.4.1).
func (t *NodeTrivia) Trivial() bool {
	return t == nil || (len(t.Leading) == 0 && len(t.Trailing) == 0 && t.InlineComment == nil)
}
