// Package parsevhdl is a minimal hand-written recursive-descent VHDL
// parser building internal/ast trees with token spans stamped on every
// node (spec.md §4.3 depends on those spans to bind trivia). It covers
// the subset of VHDL-2008 spec.md §3.4 lists — entities, architectures,
// packages, package bodies, the declaration and statement shapes in the
// AST catalogue, and enough of the expression grammar to exercise them —
// not the full VHDL grammar (spec.md §1 Non-goals).
//
// Grounded on grindlemire/go-tui's pkg/tuigen.Parser: a two-token
// lookahead (current/peek) recursive-descent parser that accumulates
// errors into an ErrorList rather than aborting on the first mismatch,
// adapted here to a token.Stream (Default channel only — hidden tokens
// are invisible to the parser and recovered later by internal/trivia)
// and to VHDL's grammar instead of the .tui DSL's.
package parsevhdl

import (
	"fmt"
	"strings"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/token"
)

// Parser walks the Default channel of a token.Stream.
type Parser struct {
	stream   token.Stream
	defaults []int // indices, into stream, of every Default-channel token
	pos      int    // index into defaults
	Errors   []error
}

// New builds a Parser over stream.
func New(stream token.Stream) *Parser {
	p := &Parser{stream: stream}
	for i := 0; i < stream.Size(); i++ {
		if stream.Get(i).Channel == token.Default {
			p.defaults = append(p.defaults, i)
		}
	}
	return p
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.defaults) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.stream.Get(p.defaults[p.pos])
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.defaults) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.stream.Get(p.defaults[p.pos+n])
}

// curIndex returns the current token's position in the full stream index
// space, which is what ast.Node spans are expressed in.
func (p *Parser) curIndex() int {
	if p.pos >= len(p.defaults) {
		if len(p.defaults) == 0 {
			return 0
		}
		return p.defaults[len(p.defaults)-1]
	}
	return p.defaults[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.defaults) {
		p.pos++
	}
}

func (p *Parser) pushPos() ast.Position {
	t := p.cur()
	return ast.Position{Line: t.Line, Col: t.Col}
}

func (p *Parser) errorf(format string, args ...any) {
	t := p.cur()
	p.Errors = append(p.Errors, fmt.Errorf("parsevhdl: %d:%d: "+format, append([]any{t.Line, t.Col}, args...)...))
}

// atKeyword reports whether the current token is the reserved word kw
// (case-insensitive, matching VHDL's case-insensitive reserved words).
// Operator words such as "and" or "mod" are lexed as token.KindOp and
// match here as well.
func (p *Parser) atKeyword(kw string) bool {
	t := p.cur()
	return (t.Kind == token.KindKeyword || t.Kind == token.KindOp) && strings.EqualFold(t.Text, kw)
}

func (p *Parser) atPunct(text string) bool {
	t := p.cur()
	return (t.Kind == token.KindPunct || t.Kind == token.KindOp) && t.Text == text
}

// expectKeyword consumes kw if present, else records an error and does not
// advance (best-effort recovery: the caller keeps parsing from here).
func (p *Parser) expectKeyword(kw string) bool {
	if p.atKeyword(kw) {
		p.advance()
		return true
	}
	p.errorf("expected keyword %q, got %q", kw, p.cur().Text)
	return false
}

func (p *Parser) expectPunct(text string) bool {
	if p.atPunct(text) {
		p.advance()
		return true
	}
	p.errorf("expected %q, got %q", text, p.cur().Text)
	return false
}

// identText consumes and returns the current identifier's text, or "" with
// a recorded error if the current token is not an identifier.
func (p *Parser) identText() string {
	t := p.cur()
	if t.Kind != token.KindIdent && t.Kind != token.KindKeyword {
		p.errorf("expected identifier, got %q", t.Text)
		return ""
	}
	p.advance()
	return t.Text
}

// Parse parses the whole token stream into a File (unbound: trivia has not
// yet been attached — call internal/trivia.Bind next).
func Parse(stream token.Stream) (*ast.File, []error) {
	p := New(stream)
	f := &ast.File{}
	start := p.curIndex()
	for p.cur().Kind != token.KindEOF {
		f.Units = append(f.Units, p.parseDesignUnit())
	}
	stop := start
	if len(f.Units) > 0 {
		_, stop = f.Units[len(f.Units)-1].Span()
	}
	f.SetSpan(start, stop)
	f.SetPos(ast.Position{Line: 1, Col: 1})
	return f, p.Errors
}

func (p *Parser) parseDesignUnit() *ast.DesignUnit {
	du := &ast.DesignUnit{}
	start := p.curIndex()
	du.SetPos(p.pushPos())

	for p.atKeyword("library") || p.atKeyword("use") {
		du.Context = append(du.Context, p.parseContextItem())
	}

	switch {
	case p.atKeyword("entity"):
		du.Kind = ast.UnitEntity
		du.Unit = p.parseEntity()
	case p.atKeyword("architecture"):
		du.Kind = ast.UnitArchitecture
		du.Unit = p.parseArchitecture()
	case p.atKeyword("package"):
		if p.peekAt(1).Kind == token.KindKeyword && strings.EqualFold(p.peekAt(1).Text, "body") {
			du.Kind = ast.UnitPackageBody
			du.Unit = p.parsePackageBody()
		} else {
			du.Kind = ast.UnitPackage
			du.Unit = p.parsePackage()
		}
	default:
		p.errorf("expected a design unit, got %q", p.cur().Text)
		p.advance()
	}

	stop := start
	if du.Unit != nil {
		_, stop = du.Unit.Span()
	}
	du.SetSpan(start, stop)
	return du
}

func (p *Parser) parseContextItem() ast.Decl {
	if p.atKeyword("library") {
		start := p.curIndex()
		p.advance()
		names := []string{p.identText()}
		for p.atPunct(",") {
			p.advance()
			names = append(names, p.identText())
		}
		stop := p.curIndex() - 1
		p.expectPunct(";")
		lc := &ast.LibraryClause{Names: names}
		lc.SetSpan(start, stop)
		return lc
	}
	start := p.curIndex()
	p.advance() // "use"
	name := p.parseSelectedName()
	stop := p.curIndex() - 1
	p.expectPunct(";")
	uc := &ast.UseClause{Name: name}
	uc.SetSpan(start, stop)
	return uc
}

// parseSelectedName reads a dotted/ticked selected name as raw text
// (library.package.all, library.package.item) — this repository does not
// model use-clause names structurally.
func (p *Parser) parseSelectedName() string {
	var sb strings.Builder
	sb.WriteString(p.identText())
	for p.atPunct(".") || p.atKeyword("all") {
		if p.atKeyword("all") {
			sb.WriteString(".")
			sb.WriteString(p.cur().Text)
			p.advance()
			break
		}
		p.advance() // "."
		sb.WriteString(".")
		sb.WriteString(p.identText())
	}
	return sb.String()
}

func (p *Parser) parseEntity() *ast.Entity {
	e := &ast.Entity{}
	start := p.curIndex()
	e.SetPos(p.pushPos())
	p.expectKeyword("entity")
	e.Name = p.identText()
	p.expectKeyword("is")

	if p.atKeyword("generic") {
		e.Generic = p.parseGenericClause()
	}
	if p.atKeyword("port") {
		e.Port = p.parsePortClause()
	}
	e.Decls = p.parseDeclarativePart()
	if p.atKeyword("begin") {
		p.advance()
		e.Stmts = p.parseStatementPart()
	}
	stop := p.curIndex()
	p.expectKeyword("end")
	if p.atKeyword("entity") {
		e.HasEndKeyword = true
		p.advance()
	}
	if p.cur().Kind == token.KindIdent {
		e.EndName = p.identText()
	}
	stop = p.curIndex() - 1
	p.expectPunct(";")
	e.SetSpan(start, stop)
	return e
}

func (p *Parser) parseArchitecture() *ast.Architecture {
	a := &ast.Architecture{}
	start := p.curIndex()
	a.SetPos(p.pushPos())
	p.expectKeyword("architecture")
	a.Name = p.identText()
	p.expectKeyword("of")
	a.EntityName = p.identText()
	p.expectKeyword("is")
	a.Decls = p.parseDeclarativePart()
	p.expectKeyword("begin")
	a.Stmts = p.parseStatementPart()
	p.expectKeyword("end")
	if p.atKeyword("architecture") {
		a.HasEndKeyword = true
		p.advance()
	}
	if p.cur().Kind == token.KindIdent {
		a.EndName = p.identText()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	a.SetSpan(start, stop)
	return a
}

func (p *Parser) parsePackage() *ast.Package {
	pkg := &ast.Package{}
	start := p.curIndex()
	pkg.SetPos(p.pushPos())
	p.expectKeyword("package")
	pkg.Name = p.identText()
	p.expectKeyword("is")
	pkg.Decls = p.parseDeclarativePart()
	p.expectKeyword("end")
	if p.atKeyword("package") {
		pkg.HasEndKeyword = true
		p.advance()
	}
	if p.cur().Kind == token.KindIdent {
		pkg.EndName = p.identText()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	pkg.SetSpan(start, stop)
	return pkg
}

func (p *Parser) parsePackageBody() *ast.PackageBody {
	pb := &ast.PackageBody{}
	start := p.curIndex()
	pb.SetPos(p.pushPos())
	p.expectKeyword("package")
	p.expectKeyword("body")
	pb.Name = p.identText()
	p.expectKeyword("is")
	pb.Decls = p.parseDeclarativePart()
	p.expectKeyword("end")
	if p.atKeyword("package") {
		pb.HasEndKeyword = true
		p.advance()
		if p.atKeyword("body") {
			p.advance()
		}
	}
	if p.cur().Kind == token.KindIdent {
		pb.EndName = p.identText()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	pb.SetSpan(start, stop)
	return pb
}
