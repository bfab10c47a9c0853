// Package trivia implements the trivia binder spec.md §4.3 describes: it
// walks an AST alongside a channelled token.Stream and attaches
// leading/trailing/inline comments and blank-line breaks to the node they
// belong next to, never dropping a comment token (spec.md §3.1 invariant).
//
// Grounded on grindlemire/go-tui's pkg/tuigen lexer, which collects
// comment tokens onto a "pending" side list as it scans
// (skipWhitespaceAndCollectComments, collectLineComment) and has its
// parser pull them off via ConsumeComments() after building each node;
// here the same idea — unclaimed hidden tokens flow to whichever node
// next claims them — is generalized into a single post-parse pass over a
// channelled stream, since spec.md's token-stream contract (§6.1) exposes
// hidden runs by index rather than a single mutable pending queue.
package trivia

import (
	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/diag"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/token"
)

// Binder walks a token.Stream and an *ast.File attaching trivia. The
// claimed set (spec.md §4.3 point 5, §9 "Stateful token claiming") is the
// binder's only mutable state and is confined to one Bind call.
type Binder struct {
	stream  token.Stream
	claimed map[int]bool
}

// Bind attaches leading/trailing/inline trivia to every node reachable
// from file. It returns one error per comment token that was never
// claimed by any node (spec.md §7's "trivia exhaustion mismatch"); in
// non-strict mode (diag.Strict == false) those comments are still
// appended to the root's trailing trivia so no data is lost, and the
// returned errors are advisory only.
func Bind(stream token.Stream, file *ast.File) []error {
	b := &Binder{stream: stream, claimed: map[int]bool{}}

	if len(file.Units) > 0 {
		first := file.Units[0]
		last := file.Units[len(file.Units)-1]
		start, _ := first.Span()
		_, stop := last.Span()
		file.SetSpan(start, stop)
	}

	nodes := make([]ast.Node, len(file.Units))
	for i, u := range file.Units {
		nodes[i] = u
	}
	b.bindSequence(nodes)
	for _, u := range file.Units {
		b.bindDesignUnit(u)
	}

	return b.finish(file)
}

// finish appends any still-unclaimed comment tokens to the root's
// trailing trivia (spec.md §7) and reports one error per orphan.
func (b *Binder) finish(file *ast.File) []error {
	var errs []error
	t := file.Trivia()
	if t == nil {
		t = &ast.NodeTrivia{}
		file.SetTrivia(t)
	}
	for i := 0; i < b.stream.Size(); i++ {
		tok := b.stream.Get(i)
		if tok.Channel != token.Comments || b.claimed[tok.Index] {
			continue
		}
		if err := diag.TriviaExhaustion(tok.Index, tok.Text); err != nil {
			errs = append(errs, err)
		}
		b.claimed[tok.Index] = true
		t.Trailing = append(t.Trailing, ast.NewComment(tok.Text, ast.Position{Line: tok.Line, Col: tok.Col}))
	}
	return errs
}

// bindDesignUnit recurses into one design unit's context clauses and its
// primary/secondary unit.
func (b *Binder) bindDesignUnit(u *ast.DesignUnit) {
	b.bindSequence(u.Context)

	switch n := u.Unit.(type) {
	case *ast.Entity:
		b.bindSpanAndTrivia(n)
		if n.Generic != nil {
			b.bindGenericClause(n.Generic)
		}
		if n.Port != nil {
			b.bindPortClause(n.Port)
		}
		b.bindSequence(declsToNodes(n.Decls))
		b.bindSequence(stmtsToNodes(n.Stmts))
	case *ast.Architecture:
		b.bindSpanAndTrivia(n)
		b.bindSequence(declsToNodes(n.Decls))
		b.bindSequence(stmtsToNodes(n.Stmts))
	case *ast.Package:
		b.bindSpanAndTrivia(n)
		b.bindSequence(declsToNodes(n.Decls))
	case *ast.PackageBody:
		b.bindSpanAndTrivia(n)
		b.bindSequence(declsToNodes(n.Decls))
	}
}

func (b *Binder) bindGenericClause(g *ast.GenericClause) {
	b.bindSpanAndTrivia(g)
	nodes := make([]ast.Node, len(g.Params))
	for i, p := range g.Params {
		nodes[i] = p
	}
	b.bindSequence(nodes)
}

func (b *Binder) bindPortClause(p *ast.PortClause) {
	b.bindSpanAndTrivia(p)
	nodes := make([]ast.Node, len(p.Ports))
	for i, port := range p.Ports {
		nodes[i] = port
	}
	b.bindSequence(nodes)
}

// bindStmt recurses into a statement's nested statement/declaration lists.
func (b *Binder) bindStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Process:
		b.bindSequence(declsToNodes(n.Decls))
		b.bindSequence(stmtsToNodes(n.Body))
	case *ast.If:
		for _, arm := range n.Arms {
			b.bindSequence(stmtsToNodes(arm.Body))
		}
		if n.Else != nil {
			b.bindSequence(stmtsToNodes(n.Else))
		}
	case *ast.Case:
		for _, arm := range n.Arms {
			b.bindSequence(stmtsToNodes(arm.Body))
		}
	case *ast.Loop:
		b.bindSequence(stmtsToNodes(n.Body))
	}
}

func declsToNodes(decls []ast.Decl) []ast.Node {
	nodes := make([]ast.Node, len(decls))
	for i, d := range decls {
		nodes[i] = d
	}
	return nodes
}

func stmtsToNodes(stmts []ast.Stmt) []ast.Node {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}

// bindSpanAndTrivia runs bindSequence's steps (span extension, inline,
// leading and trailing claiming) for a single node with no siblings of its
// own (used for design-unit bodies, which sit alone inside their
// DesignUnit wrapper, and for generic and port clauses).
func (b *Binder) bindSpanAndTrivia(n ast.Node) {
	b.bindSequence([]ast.Node{n})
}

// bindSequence runs spec.md §4.3's full algorithm over one list of
// sibling nodes in source order: extend each span, claim each node's
// inline comment, claim each node's leading trivia, recurse into any
// nested statement/declaration list the node itself contains, and
// finally claim the trailing trivia of the *last* node in the sequence
// (interior gaps are left for the next sibling's leading to claim,
// resolving spec.md §9 Open Question-adjacent ambiguity the same way the
// S5 scenario permits: a comment between two siblings survives either
// way, so this implementation attaches it to the following sibling).
func (b *Binder) bindSequence(nodes []ast.Node) {
	for i, n := range nodes {
		start, stop := n.Span()
		stop = b.extendSpan(stop)
		n.SetSpan(start, stop)

		nt := &ast.NodeTrivia{}

		if inline := b.claimInline(stop); inline != nil {
			nt.InlineComment = inline
		}

		nt.Leading = b.claimRun(b.stream.HiddenToLeft(start))

		if i == len(nodes)-1 {
			nt.Trailing = b.claimRun(b.stream.HiddenToRight(stop))
		}

		n.SetTrivia(nt)

		if s, ok := n.(ast.Stmt); ok {
			b.bindStmt(s)
		}
	}
}

// extendSpan implements spec.md §4.3 point 1: extend stop by one token
// when the next default-channel token is ";", "," or the keyword "else".
func (b *Binder) extendSpan(stop int) int {
	next := b.nextDefault(stop)
	if next < 0 {
		return stop
	}
	tok := b.stream.Get(next)
	if tok.Kind == token.KindPunct && (tok.Text == ";" || tok.Text == ",") {
		return next
	}
	if tok.Kind == token.KindKeyword && tok.Text == "else" {
		return next
	}
	return stop
}

// nextDefault returns the index of the first Default-channel token after
// i, or -1 if the stream ends first.
func (b *Binder) nextDefault(i int) int {
	for j := i + 1; j < b.stream.Size(); j++ {
		if b.stream.Get(j).Channel == token.Default {
			return j
		}
	}
	return -1
}

// claimInline implements spec.md §4.3 point 2: the token immediately
// after the (possibly extended) span end, if it is an unclaimed comment
// on the same source line, becomes the node's inline comment.
func (b *Binder) claimInline(stop int) *ast.Trivia {
	if stop+1 >= b.stream.Size() {
		return nil
	}
	tok := b.stream.Get(stop + 1)
	if tok.Channel != token.Comments || b.claimed[tok.Index] {
		return nil
	}
	endTok := b.stream.Get(stop)
	if tok.Line != endTok.Line {
		return nil
	}
	b.claimed[tok.Index] = true
	c := ast.NewComment(tok.Text, ast.Position{Line: tok.Line, Col: tok.Col})
	return &c
}

// claimRun implements spec.md §4.3 points 3/4's shared algorithm: walk a
// hidden-token run left-to-right, consuming only unclaimed tokens,
// counting consecutive newlines and emitting a Break(count-1) whenever
// the count reaches >= 2, immediately before the next Comment or at the
// end of the run (spec.md §4.3, §9's "Break quantization").
func (b *Binder) claimRun(run []token.Token) []ast.Trivia {
	var out []ast.Trivia
	newlineCount := 0
	for _, t := range run {
		if b.claimed[t.Index] {
			continue
		}
		switch t.Channel {
		case token.Newlines:
			newlineCount++
			b.claimed[t.Index] = true
		case token.Comments:
			if newlineCount >= 2 {
				out = append(out, ast.NewBreak(newlineCount-1, ast.Position{Line: t.Line, Col: t.Col}))
			}
			out = append(out, ast.NewComment(t.Text, ast.Position{Line: t.Line, Col: t.Col}))
			b.claimed[t.Index] = true
			newlineCount = 0
		}
	}
	if newlineCount >= 2 {
		out = append(out, ast.NewBreak(newlineCount-1, ast.Position{}))
	}
	return out
}
