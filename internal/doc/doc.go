// Package doc implements the immutable, structurally-shared layout
// algebra spec.md §3.2/§4.1 describes. It is the Doc IR half of the core:
// a Doc value never mutates, combining two Docs only builds a new node
// referencing both, and the same Doc value can be reused at multiple
// points in a tree (spec.md §3.2 invariant "Docs are value-like").
//
// Modeled on the two-pass measure/place discipline of
// grindlemire/go-tui's pkg/layout (a Style describes intent, Calculate
// resolves it against a budget in one pass and places children in a
// second); here the "budget" is a line-width target instead of a
// terminal rect, and "placement" is text emission instead of a Rect.
package doc

// Kind tags which Doc variant a value holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindKeyword
	KindSoftLine
	KindHardLine
	KindConcat
	KindNest
	KindGroup
	KindAlign
	KindHang
	KindInlineComment
)

// Doc is an immutable node in the layout algebra (spec.md §3.2). The zero
// value is not a valid Doc; use Empty or the constructors below.
type Doc struct {
	kind Kind

	text  string // KindText / KindKeyword
	level int    // KindText / KindKeyword: alignment level, -1 if untagged
	n     int    // KindHardLine: line count

	left, right *Doc // KindConcat
	inner       *Doc // KindNest / KindGroup / KindAlign / KindHang / KindInlineComment
	delta       int  // KindNest

	// flatWidth is a construction-time width attribute (spec.md §9 "Flat-fit
	// lookahead", option (a)): the Doc's flat width, counting each
	// Text/Keyword by its byte length and each SoftLine as a single space,
	// as if no HardLine were reachable. It is
	// meaningless (and ignored) whenever hasHardLine is true, since a Doc
	// containing a HardLine can never be rendered flat.
	flatWidth  int
	hasHardLine bool
}

// Empty is the zero-width, zero-height Doc. It is the two-sided identity
// of Concat (spec.md §4.1 invariant).
var Empty = &Doc{kind: KindEmpty}

// Text builds a literal, newline-free string Doc with no alignment level.
func Text(s string) *Doc {
	assertNoNewline(s)
	return &Doc{kind: KindText, text: s, level: -1, flatWidth: len(s)}
}

// TextLevel builds a Text Doc tagged with an alignment level (spec.md
// §3.2, §4.2 point 7). Levels are only meaningful inside an enclosing
// Align scope; outside one they are ignored.
func TextLevel(s string, level int) *Doc {
	assertNoNewline(s)
	return &Doc{kind: KindText, text: s, level: level, flatWidth: len(s)}
}

// Keyword builds a Doc identical to Text except that the layout engine
// applies Config.KeywordCase to it at emission time (spec.md §4.2 point
// 8).
func Keyword(s string) *Doc {
	assertNoNewline(s)
	return &Doc{kind: KindKeyword, text: s, level: -1, flatWidth: len(s)}
}

// KeywordLevel is Keyword with an alignment level.
func KeywordLevel(s string, level int) *Doc {
	assertNoNewline(s)
	return &Doc{kind: KindKeyword, text: s, level: level, flatWidth: len(s)}
}

// SoftLine renders as a single space flat, or a newline plus indentation
// broken.
var SoftLine = &Doc{kind: KindSoftLine, flatWidth: 1}

// HardLine builds an unconditional newline Doc. n is the number of
// newlines emitted (HardLines(1) is a normal line break; n-1 additional
// blank lines follow for n > 1). HardLine(0) is a break barrier: it
// renders nothing but still forces any enclosing Group to break, matching
// spec.md §3.2's HardLine invariant.
func HardLine(n int) *Doc {
	if n < 0 {
		n = 0
	}
	return &Doc{kind: KindHardLine, n: n, hasHardLine: true}
}

// HardLines is an alias for HardLine kept for call-site readability when
// n is a variable representing a blank-line count rather than a literal.
func HardLines(n int) *Doc { return HardLine(n) }

func assertNoNewline(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			panic("doc: Text/Keyword must not contain a newline: " + s)
		}
	}
}

// Concat is sequential composition (associative, spec.md §3.2).
func Concat(left, right *Doc) *Doc {
	if left == nil || left.kind == KindEmpty {
		return right
	}
	if right == nil || right.kind == KindEmpty {
		return left
	}
	return &Doc{
		kind:        KindConcat,
		left:        left,
		right:       right,
		flatWidth:   left.flatWidth + right.flatWidth,
		hasHardLine: left.hasHardLine || right.hasHardLine,
	}
}

// Nest renders inner with indentation increased by delta; the increase
// only takes visible effect after a newline emitted inside inner
// (spec.md §3.2).
func Nest(inner *Doc, delta int) *Doc {
	return &Doc{kind: KindNest, inner: inner, delta: delta,
		flatWidth: inner.flatWidth, hasHardLine: inner.hasHardLine}
}

// Group marks a layout choice point: the engine renders inner flat if it
// fits the remaining width budget, else broken (spec.md §3.2, §4.2 point
// 1). A Group containing a reachable HardLine is always broken.
func Group(inner *Doc) *Doc {
	return &Doc{kind: KindGroup, inner: inner,
		flatWidth: inner.flatWidth, hasHardLine: inner.hasHardLine}
}

// Align opens an alignment scope for level-tagged Text/Keyword Docs
// inside inner (spec.md §3.2, §4.2 point 7).
func Align(inner *Doc) *Doc {
	return &Doc{kind: KindAlign, inner: inner,
		flatWidth: inner.flatWidth, hasHardLine: inner.hasHardLine}
}

// Hang marks inner so that, once the engine breaks inside it, subsequent
// indentation is anchored to the column where Hang began rather than to
// the nest-delta stack (spec.md §3.2, §4.2 point 6).
func Hang(inner *Doc) *Doc {
	return &Doc{kind: KindHang, inner: inner,
		flatWidth: inner.flatWidth, hasHardLine: inner.hasHardLine}
}

// InlineComment marks inner as an end-of-line inline comment: the engine
// must never break a SoftLine inside it, and inner is emitted before any
// pending newline that follows it (spec.md §3.2, §4.2 point 9).
func InlineComment(inner *Doc) *Doc {
	return &Doc{kind: KindInlineComment, inner: inner,
		flatWidth: inner.flatWidth, hasHardLine: inner.hasHardLine}
}

// Kind reports which Doc variant this is. Exported so the layout engine
// (a separate package) can walk the tree; Doc's fields otherwise stay
// unexported to preserve the "Docs are value-like" invariant (spec.md
// §3.2) — nothing outside this package can mutate one.
func (d *Doc) Kind() Kind { return d.kind }

// Text returns the literal text of a Text/Keyword Doc.
func (d *Doc) Text() string { return d.text }

// Level returns the alignment level of a Text/Keyword Doc, or -1 if
// untagged.
func (d *Doc) Level() int { return d.level }

// N returns the line count of a HardLine Doc.
func (d *Doc) N() int { return d.n }

// Left returns the left child of a Concat Doc.
func (d *Doc) Left() *Doc { return d.left }

// Right returns the right child of a Concat Doc.
func (d *Doc) Right() *Doc { return d.right }

// Inner returns the wrapped child of a Nest/Group/Align/Hang/InlineComment
// Doc.
func (d *Doc) Inner() *Doc { return d.inner }

// Delta returns the indentation delta of a Nest Doc.
func (d *Doc) Delta() int { return d.delta }

// FlatWidth returns the Doc's construction-time flat-rendering width
// attribute (spec.md §9 "Flat-fit lookahead"). It is meaningful only when
// the Doc contains no reachable HardLine; callers should check
// HasHardLine first.
func (d *Doc) FlatWidth() int {
	if d == nil {
		return 0
	}
	return d.flatWidth
}

// HasHardLine reports whether d contains a HardLine anywhere in its tree.
// Per spec.md §3.2, any enclosing Group containing one is forced broken.
func (d *Doc) HasHardLine() bool {
	return d != nil && d.hasHardLine
}
