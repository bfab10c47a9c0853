package parsevhdl

import (
	"strings"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/token"
)

// This file covers spec.md §3.4's "Declarations" and the generic/port
// clauses feeding into them, plus the SubtypeIndication shape §9 Open
// Question 1 resolves as canonical.

func (p *Parser) parseNameList() []string {
	names := []string{p.identText()}
	for p.atPunct(",") {
		p.advance()
		names = append(names, p.identText())
	}
	return names
}

// parseSubtypeIndication implements spec.md §9 Open Question 1's
// resolution: optional resolution function, type mark, optional
// index/range constraint. A resolution function is distinguished from the
// type mark by lookahead: two bare identifiers in a row ("resolved
// std_logic") means the first is a resolution function name.
func (p *Parser) parseSubtypeIndication() ast.SubtypeIndication {
	first := p.parseDottedName()
	resolution := ""
	typeMark := first
	if p.cur().Kind == token.KindIdent {
		resolution = first
		typeMark = p.parseDottedName()
	}

	var constraint *ast.Constraint
	switch {
	case p.atPunct("("):
		p.advance()
		ranges := []ast.Expr{p.parseExpr()}
		for p.atPunct(",") {
			p.advance()
			ranges = append(ranges, p.parseExpr())
		}
		p.expectPunct(")")
		constraint = &ast.Constraint{Ranges: ranges}
	case p.atKeyword("range"):
		p.advance()
		constraint = &ast.Constraint{RangeExpr: p.parseExpr()}
	}

	return ast.SubtypeIndication{Resolution: resolution, TypeMark: typeMark, Constraint: constraint}
}

func (p *Parser) parseDottedName() string {
	name := p.identText()
	for p.atPunct(".") {
		p.advance()
		name += "." + p.identText()
	}
	return name
}

func (p *Parser) parseMode() ast.Mode {
	switch {
	case p.atKeyword("in"):
		p.advance()
		return ast.ModeIn
	case p.atKeyword("out"):
		p.advance()
		return ast.ModeOut
	case p.atKeyword("inout"):
		p.advance()
		return ast.ModeInout
	case p.atKeyword("buffer"):
		p.advance()
		return ast.ModeBuffer
	case p.atKeyword("linkage"):
		p.advance()
		return ast.ModeLinkage
	default:
		return ast.ModeIn
	}
}

func (p *Parser) parseGenericClause() *ast.GenericClause {
	start := p.curIndex()
	p.expectKeyword("generic")
	p.expectPunct("(")
	var params []*ast.GenericParam
	params = append(params, p.parseGenericParam())
	for p.atPunct(";") {
		p.advance()
		params = append(params, p.parseGenericParam())
	}
	p.expectPunct(")")
	stop := p.curIndex() - 1
	p.expectPunct(";")
	g := &ast.GenericClause{Params: params}
	g.SetSpan(start, stop)
	return g
}

func (p *Parser) parseGenericParam() *ast.GenericParam {
	start := p.curIndex()
	names := p.parseNameList()
	p.expectPunct(":")
	subtype := p.parseSubtypeIndication()
	var def ast.Expr
	if p.atPunct(":=") {
		p.advance()
		def = p.parseExpr()
	}
	stop := p.curIndex() - 1
	g := &ast.GenericParam{Names: names, Subtype: subtype, Default: def}
	g.SetSpan(start, stop)
	return g
}

func (p *Parser) parsePortClause() *ast.PortClause {
	start := p.curIndex()
	p.expectKeyword("port")
	p.expectPunct("(")
	var ports []*ast.Port
	ports = append(ports, p.parsePort())
	for p.atPunct(";") {
		p.advance()
		ports = append(ports, p.parsePort())
	}
	p.expectPunct(")")
	stop := p.curIndex() - 1
	p.expectPunct(";")
	pc := &ast.PortClause{Ports: ports}
	pc.SetSpan(start, stop)
	return pc
}

func (p *Parser) parsePort() *ast.Port {
	start := p.curIndex()
	names := p.parseNameList()
	p.expectPunct(":")
	mode := p.parseMode()
	subtype := p.parseSubtypeIndication()
	var def ast.Expr
	if p.atPunct(":=") {
		p.advance()
		def = p.parseExpr()
	}
	stop := p.curIndex() - 1
	port := &ast.Port{Names: names, Mode: mode, Subtype: subtype, Default: def}
	port.SetSpan(start, stop)
	return port
}

// parseDeclarativePart parses declarations until "begin"/"end"/EOF
// (spec.md §3.4's Declarations list, dispatched by leading keyword).
func (p *Parser) parseDeclarativePart() []ast.Decl {
	var decls []ast.Decl
	for !p.atKeyword("begin") && !p.atKeyword("end") && p.cur().Kind != token.KindEOF {
		before := p.pos
		decls = append(decls, p.parseOneDecl())
		if p.pos == before {
			// Guard against an unrecognized construct stalling the loop.
			p.advance()
		}
	}
	return decls
}

func (p *Parser) parseOneDecl() ast.Decl {
	switch {
	case p.atKeyword("signal"):
		return p.parseSignalDecl()
	case p.atKeyword("variable") || p.atKeyword("shared"):
		return p.parseVariableDecl()
	case p.atKeyword("constant"):
		return p.parseConstantDecl()
	case p.atKeyword("component"):
		return p.parseComponentDecl()
	case p.atKeyword("type"):
		return p.parseTypeDecl()
	case p.atKeyword("subtype"):
		return p.parseSubtypeDecl()
	case p.atKeyword("alias"):
		return p.parseAliasDecl()
	case p.atKeyword("attribute"):
		return p.parseAttributeDecl()
	case p.atKeyword("function") || p.atKeyword("procedure") || p.atKeyword("impure") || p.atKeyword("pure"):
		return p.parseSubprogramDecl()
	default:
		return p.parseOpaqueDecl()
	}
}

func (p *Parser) parseSignalDecl() *ast.SignalDecl {
	start := p.curIndex()
	p.expectKeyword("signal")
	names := p.parseNameList()
	p.expectPunct(":")
	subtype := p.parseSubtypeIndication()
	if p.atKeyword("register") || p.atKeyword("bus") {
		p.advance() // signal kind, not modeled structurally (spec.md §3.4)
	}
	var def ast.Expr
	if p.atPunct(":=") {
		p.advance()
		def = p.parseExpr()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.SignalDecl{Names: names, Subtype: subtype, Default: def}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	start := p.curIndex()
	shared := false
	if p.atKeyword("shared") {
		shared = true
		p.advance()
	}
	p.expectKeyword("variable")
	names := p.parseNameList()
	p.expectPunct(":")
	subtype := p.parseSubtypeIndication()
	var def ast.Expr
	if p.atPunct(":=") {
		p.advance()
		def = p.parseExpr()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.VariableDecl{Shared: shared, Names: names, Subtype: subtype, Default: def}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseConstantDecl() *ast.ConstantDecl {
	start := p.curIndex()
	p.expectKeyword("constant")
	names := p.parseNameList()
	p.expectPunct(":")
	subtype := p.parseSubtypeIndication()
	var def ast.Expr
	if p.atPunct(":=") {
		p.advance()
		def = p.parseExpr()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.ConstantDecl{Names: names, Subtype: subtype, Default: def}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseComponentDecl() *ast.ComponentDecl {
	start := p.curIndex()
	p.expectKeyword("component")
	name := p.identText()
	hasIs := false
	if p.atKeyword("is") {
		hasIs = true
		p.advance()
	}
	var generic *ast.GenericClause
	var port *ast.PortClause
	if p.atKeyword("generic") {
		generic = p.parseGenericClause()
	}
	if p.atKeyword("port") {
		port = p.parsePortClause()
	}
	p.expectKeyword("end")
	p.expectKeyword("component")
	endName := ""
	if p.cur().Kind == token.KindIdent {
		endName = p.identText()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.ComponentDecl{Name: name, Generic: generic, Port: port, HasIs: hasIs, EndName: endName}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseEnumLiteral() ast.EnumLiteral {
	t := p.cur()
	p.advance()
	return ast.EnumLiteral{Text: t.Text}
}

// parseArrayIndexEntry parses one element of an array type's index list:
// either an unconstrained "type_mark range <>" or a bounded discrete range
// expression (spec.md §3.4 "type (enumeration, record, array, ...)").
func (p *Parser) parseArrayIndexEntry() ast.Expr {
	if (p.cur().Kind == token.KindIdent || p.cur().Kind == token.KindKeyword) &&
		p.peekAt(1).Kind == token.KindKeyword && strings.EqualFold(p.peekAt(1).Text, "range") {
		start := p.curIndex()
		name := p.identText()
		p.advance() // "range"
		if p.atOp("<") && p.peekAt(1).Text == ">" {
			p.advance()
			p.advance()
			e := &ast.BinaryExpr{Op: "range", Left: &ast.TokenExpr{Text: name}, Right: &ast.TokenExpr{Text: "<>"}}
			e.SetSpan(start, p.curIndex()-1)
			return e
		}
		rangeExpr := p.parseExpr()
		e := &ast.BinaryExpr{Op: "range", Left: &ast.TokenExpr{Text: name}, Right: rangeExpr}
		e.SetSpan(start, p.curIndex()-1)
		return e
	}
	return p.parseExpr()
}

func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	start := p.curIndex()
	p.expectKeyword("type")
	name := p.identText()
	p.expectKeyword("is")

	d := &ast.TypeDecl{Name: name}
	switch {
	case p.atPunct("("):
		p.advance()
		d.Kind = ast.TypeEnum
		d.EnumLiterals = append(d.EnumLiterals, p.parseEnumLiteral())
		for p.atPunct(",") {
			p.advance()
			d.EnumLiterals = append(d.EnumLiterals, p.parseEnumLiteral())
		}
		p.expectPunct(")")

	case p.atKeyword("record"):
		p.advance()
		d.Kind = ast.TypeRecord
		for !p.atKeyword("end") && p.cur().Kind != token.KindEOF {
			names := p.parseNameList()
			p.expectPunct(":")
			st := p.parseSubtypeIndication()
			p.expectPunct(";")
			d.RecordElems = append(d.RecordElems, ast.RecordElement{Names: names, Subtype: st})
		}
		p.expectKeyword("end")
		p.expectKeyword("record")

	case p.atKeyword("array"):
		p.advance()
		d.Kind = ast.TypeArray
		p.expectPunct("(")
		d.ArrayIndex = append(d.ArrayIndex, p.parseArrayIndexEntry())
		for p.atPunct(",") {
			p.advance()
			d.ArrayIndex = append(d.ArrayIndex, p.parseArrayIndexEntry())
		}
		p.expectPunct(")")
		p.expectKeyword("of")
		elem := p.parseSubtypeIndication()
		d.ArrayElem = &elem

	case p.atKeyword("access"):
		p.advance()
		d.Kind = ast.TypeAccess
		of := p.parseSubtypeIndication()
		d.AccessOf = &of

	case p.atKeyword("file"):
		p.advance()
		d.Kind = ast.TypeFile
		p.expectKeyword("of")
		of := p.parseSubtypeIndication()
		d.FileOf = &of

	default:
		d.Kind = ast.TypeOpaque
		d.OpaqueText = p.collectRawUntilSemicolon()
	}

	stop := p.curIndex() - 1
	p.expectPunct(";")
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseSubtypeDecl() *ast.SubtypeDecl {
	start := p.curIndex()
	p.expectKeyword("subtype")
	name := p.identText()
	p.expectKeyword("is")
	subtype := p.parseSubtypeIndication()
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.SubtypeDecl{Name: name, Subtype: subtype}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseAliasDecl() *ast.AliasDecl {
	start := p.curIndex()
	p.expectKeyword("alias")
	name := p.identText()
	var subtype *ast.SubtypeIndication
	if p.atPunct(":") {
		p.advance()
		st := p.parseSubtypeIndication()
		subtype = &st
	}
	p.expectKeyword("is")
	target := p.parseExpr()
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.AliasDecl{Name: name, Subtype: subtype, Target: target}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseAttributeDecl() *ast.AttributeDecl {
	start := p.curIndex()
	p.expectKeyword("attribute")
	name := p.identText()
	p.expectPunct(":")
	subtype := p.parseSubtypeIndication()
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.AttributeDecl{Name: name, Subtype: subtype}
	d.SetSpan(start, stop)
	return d
}

func (p *Parser) parseSubprogramDecl() *ast.SubprogramDecl {
	start := p.curIndex()
	for p.atKeyword("impure") || p.atKeyword("pure") {
		p.advance()
	}
	isFunction := p.atKeyword("function")
	if isFunction {
		p.advance()
	} else {
		p.expectKeyword("procedure")
	}
	name := p.identText()

	var params []*ast.GenericParam
	if p.atPunct("(") {
		p.advance()
		params = append(params, p.parseGenericParam())
		for p.atPunct(";") {
			p.advance()
			params = append(params, p.parseGenericParam())
		}
		p.expectPunct(")")
	}

	returnType := ""
	if isFunction {
		p.expectKeyword("return")
		returnType = p.parseDottedName()
	}

	// A subprogram BODY (as opposed to a bare declaration) continues with
	// "is <decls> begin <stmts> end ...;" rather than a bare ";"; this
	// repository only models the declaration shape (spec.md §3.4), so a
	// body's tokens are skipped once detected and are not kept in the tree.
	if p.atKeyword("is") {
		p.skipSubprogramBody()
	}

	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.SubprogramDecl{IsFunction: isFunction, Name: name, Params: params, ReturnType: returnType}
	d.SetSpan(start, stop)
	return d
}

// skipSubprogramBody discards "is ... end [name]", leaving the closing
// ";" for the caller, and tracks
// begin/end nesting so an inner process-like block (which also uses
// begin/end) doesn't terminate the skip early. Subprogram bodies are out
// of this repository's declared AST catalogue (spec.md §3.4); skipping
// keeps the surrounding declarative part parseable without modeling their
// internals.
func (p *Parser) skipSubprogramBody() {
	p.advance() // "is"
	depth := 0
	for p.cur().Kind != token.KindEOF {
		switch {
		case p.atKeyword("begin"):
			depth++
			p.advance()
		case p.atKeyword("end"):
			if depth == 0 {
				p.advance()
				if p.cur().Kind == token.KindIdent {
					p.advance()
				}
				return
			}
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

// parseOpaqueDecl handles declaration kinds this repository does not model
// structurally (disconnect specifications, group templates — spec.md §9
// Open Question 3): it captures the default-channel token texts up to the
// terminating ";", joined by single spaces, so the visitor can still emit
// the declaration and attach its trivia.
func (p *Parser) parseOpaqueDecl() *ast.OpaqueDecl {
	start := p.curIndex()
	text := p.collectRawUntilSemicolon()
	stop := p.curIndex() - 1
	p.expectPunct(";")
	d := &ast.OpaqueDecl{OpaqueText: text}
	d.SetSpan(start, stop)
	return d
}

// collectRawUntilSemicolon joins token texts up to (not including) the
// next top-level ";", tracking paren depth so a ";" is never mistaken
// inside a nested parenthesis (not that VHDL allows one there, but this
// keeps the helper robust against malformed input).
func (p *Parser) collectRawUntilSemicolon() string {
	var sb strings.Builder
	depth := 0
	first := true
	for p.cur().Kind != token.KindEOF {
		if depth == 0 && p.atPunct(";") {
			break
		}
		if p.atPunct("(") {
			depth++
		} else if p.atPunct(")") {
			depth--
		}
		if !first {
			sb.WriteString(" ")
		}
		sb.WriteString(p.cur().Text)
		first = false
		p.advance()
	}
	return sb.String()
}
