// Package ast defines the subset of the VHDL AST shape catalogue the
// pretty-printer core inspects (spec.md §3.4). It deliberately does not
// attempt to be a complete VHDL AST: the grammar and its mechanical
// construction from a parser are out of this repository's core scope
// (spec.md §1); this package only gives every shape the printer and
// trivia binder need to recognize a concrete Go type.
package ast

// Node is implemented by every AST node the core inspects. Every node
// carries a token span (for the trivia binder, spec.md §4.3) and a trivia
// bundle (for the printer's wrapping rule, spec.md §4.4.1).
type Node interface {
	node()
	Pos() Position
	Span() (start, stop int)
	SetSpan(start, stop int)
	Trivia() *NodeTrivia
	SetTrivia(*NodeTrivia)
}

// Base is embedded by every concrete node to implement the bookkeeping
// half of the Node interface, mirroring how tuigen.Node's embedders each
// hand-roll Pos(); here the span + trivia plumbing is identical across
// every node shape so it is factored into one embeddable struct instead.
type Base struct {
	position   Position
	startTok   int
	stopTok    int
	trivia     *NodeTrivia
}

func (b *Base) node() {}

func (b *Base) Pos() Position { return b.position }

func (b *Base) Span() (int, int) { return b.startTok, b.stopTok }

func (b *Base) SetSpan(start, stop int) {
	b.startTok, b.stopTok = start, stop
}

func (b *Base) Trivia() *NodeTrivia { return b.trivia }

func (b *Base) SetTrivia(t *NodeTrivia) { b.trivia = t }

// SetPos is used by the parser to stamp a node's reporting position
// (independent of its token span, which the binder extends).
func (b *Base) SetPos(p Position) { b.position = p }
