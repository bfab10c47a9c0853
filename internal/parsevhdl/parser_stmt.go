package parsevhdl

import (
	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/token"
)

// This file covers spec.md §3.4's "Statements": concurrent (process,
// conditional/selected concurrent signal assignment) and sequential
// (if/case/loop/null/signal-assign/variable-assign), plus Waveform
// parsing shared by both signal-assignment shapes.

// parseStatementPart parses concurrent statements until "end" or EOF.
func (p *Parser) parseStatementPart() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atKeyword("end") && p.cur().Kind != token.KindEOF {
		before := p.pos
		stmts = append(stmts, p.parseConcurrentStmt())
		if p.pos == before {
			p.advance()
		}
	}
	return stmts
}

// parseLabelPrefix consumes an optional "label:" prefix common to every
// concurrent and sequential statement shape.
func (p *Parser) parseLabelPrefix() string {
	if p.cur().Kind == token.KindIdent && p.peekAt(1).Kind == token.KindPunct && p.peekAt(1).Text == ":" {
		label := p.identText()
		p.advance() // ":"
		return label
	}
	return ""
}

func (p *Parser) parseConcurrentStmt() ast.Stmt {
	start := p.curIndex()
	label := p.parseLabelPrefix()

	switch {
	case p.atKeyword("process"):
		return p.parseProcess(label, start)
	case p.atKeyword("with"):
		return p.parseSelectedConcurrentAssign(label, start)
	default:
		return p.parseCondConcurrentAssign(label, start)
	}
}

func (p *Parser) parseProcess(label string, start int) *ast.Process {
	p.expectKeyword("process")
	proc := &ast.Process{Label: label}
	if p.atPunct("(") {
		p.advance()
		if !p.atKeyword("all") {
			proc.Sensitivity = append(proc.Sensitivity, p.parseExpr())
			for p.atPunct(",") {
				p.advance()
				proc.Sensitivity = append(proc.Sensitivity, p.parseExpr())
			}
		} else {
			all := &ast.TokenExpr{Text: p.cur().Text}
			all.SetSpan(p.curIndex(), p.curIndex())
			proc.Sensitivity = append(proc.Sensitivity, all)
			p.advance()
		}
		p.expectPunct(")")
	}
	if p.atKeyword("is") {
		p.advance()
	}
	proc.Decls = p.parseDeclarativePart()
	p.expectKeyword("begin")
	proc.Body = p.parseSequentialStmtList()
	p.expectKeyword("end")
	p.expectKeyword("process")
	if p.cur().Kind == token.KindIdent {
		p.advance()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	proc.SetSpan(start, stop)
	return proc
}

// parseWaveform parses "unaffected" or a comma-separated list of
// value["after" delay] elements.
func (p *Parser) parseWaveform() ast.Waveform {
	if p.atKeyword("unaffected") {
		p.advance()
		return ast.Waveform{Unaffected: true}
	}
	var w ast.Waveform
	for {
		el := ast.WaveformElement{Value: p.parseExpr()}
		if p.atKeyword("after") {
			p.advance()
			el.After = p.parseExpr()
		}
		w.Elements = append(w.Elements, el)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return w
}

// parseCondConcurrentAssign parses "target <= v1 when c1 else v2 ... ;",
// with the target read via parsePrimary (not parseExpr) so the "<="
// assignment arrow is never mistaken for the relational operator.
func (p *Parser) parseCondConcurrentAssign(label string, start int) *ast.CondConcurrentAssign {
	target := p.parsePostfix(p.parsePrimary(), p.curIndex())
	p.expectPunct("<=")
	if p.atKeyword("guarded") || p.atKeyword("transport") || p.atKeyword("inertial") {
		p.advance() // delay/force mechanism, not modeled structurally
	}

	assign := &ast.CondConcurrentAssign{Label: label, Target: target}
	for {
		value := p.parseWaveform()
		if p.atKeyword("when") {
			p.advance()
			cond := p.parseExpr()
			assign.Arms = append(assign.Arms, ast.CondArm{Value: value, Condition: cond})
			if p.atKeyword("else") {
				p.advance()
				continue
			}
			break
		}
		assign.Arms = append(assign.Arms, ast.CondArm{Value: value})
		break
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	assign.SetSpan(start, stop)
	return assign
}

func (p *Parser) parseSelectedConcurrentAssign(label string, start int) *ast.SelectedConcurrentAssign {
	p.expectKeyword("with")
	selector := p.parseExpr()
	p.expectKeyword("select")
	target := p.parsePostfix(p.parsePrimary(), p.curIndex())
	p.expectPunct("<=")
	if p.atKeyword("guarded") || p.atKeyword("transport") || p.atKeyword("inertial") {
		p.advance()
	}

	assign := &ast.SelectedConcurrentAssign{Label: label, Selector: selector, Target: target}
	for {
		value := p.parseWaveform()
		p.expectKeyword("when")
		choices := []ast.Expr{p.parseChoice()}
		for p.atPunct("|") {
			p.advance()
			choices = append(choices, p.parseChoice())
		}
		assign.Arms = append(assign.Arms, ast.SelectedArm{Value: value, Choices: choices})
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	assign.SetSpan(start, stop)
	return assign
}

// parseChoice parses one selector-arm choice: "others" or an expression.
func (p *Parser) parseChoice() ast.Expr {
	if p.atKeyword("others") {
		start := p.curIndex()
		e := &ast.TokenExpr{Text: p.cur().Text}
		e.SetSpan(start, start)
		p.advance()
		return e
	}
	return p.parseExpr()
}

// parseSequentialStmtList parses sequential statements until a terminator
// keyword the caller is responsible for consuming ("end", "elsif", "else",
// "when").
func (p *Parser) parseSequentialStmtList() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atSequentialTerminator() && p.cur().Kind != token.KindEOF {
		before := p.pos
		stmts = append(stmts, p.parseSequentialStmt())
		if p.pos == before {
			p.advance()
		}
	}
	return stmts
}

func (p *Parser) atSequentialTerminator() bool {
	return p.atKeyword("end") || p.atKeyword("elsif") || p.atKeyword("else") || p.atKeyword("when")
}

func (p *Parser) parseSequentialStmt() ast.Stmt {
	start := p.curIndex()
	label := p.parseLabelPrefix()

	switch {
	case p.atKeyword("if"):
		return p.parseIf(label, start)
	case p.atKeyword("case"):
		return p.parseCase(label, start)
	case p.atKeyword("for") || p.atKeyword("while") || p.atKeyword("loop"):
		return p.parseLoop(label, start)
	case p.atKeyword("null"):
		p.advance()
		stop := p.curIndex() - 1
		p.expectPunct(";")
		n := &ast.Null{Label: label}
		n.SetSpan(start, stop)
		return n
	default:
		return p.parseSeqAssign(label, start)
	}
}

// parseSeqAssign disambiguates signal assignment ("<=") from variable
// assignment (":=") by reading the target with parsePrimary, then
// dispatching on whichever arrow token follows.
func (p *Parser) parseSeqAssign(label string, start int) ast.Stmt {
	target := p.parsePostfix(p.parsePrimary(), p.curIndex())
	if p.atPunct(":=") {
		p.advance()
		value := p.parseExpr()
		stop := p.curIndex() - 1
		p.expectPunct(";")
		s := &ast.SeqVariableAssign{Label: label, Target: target, Value: value}
		s.SetSpan(start, stop)
		return s
	}
	p.expectPunct("<=")
	if p.atKeyword("transport") || p.atKeyword("inertial") {
		p.advance()
	}
	value := p.parseWaveform()
	stop := p.curIndex() - 1
	p.expectPunct(";")
	s := &ast.SeqSignalAssign{Label: label, Target: target, Value: value}
	s.SetSpan(start, stop)
	return s
}

func (p *Parser) parseIf(label string, start int) *ast.If {
	p.expectKeyword("if")
	ifStmt := &ast.If{Label: label}
	cond := p.parseExpr()
	p.expectKeyword("then")
	body := p.parseSequentialStmtList()
	ifStmt.Arms = append(ifStmt.Arms, ast.IfArm{Condition: cond, Body: body})

	for p.atKeyword("elsif") {
		p.advance()
		c := p.parseExpr()
		p.expectKeyword("then")
		b := p.parseSequentialStmtList()
		ifStmt.Arms = append(ifStmt.Arms, ast.IfArm{Condition: c, Body: b})
	}
	if p.atKeyword("else") {
		p.advance()
		ifStmt.Else = p.parseSequentialStmtList()
	}
	p.expectKeyword("end")
	p.expectKeyword("if")
	if p.cur().Kind == token.KindIdent {
		p.advance()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	ifStmt.SetSpan(start, stop)
	return ifStmt
}

func (p *Parser) parseCase(label string, start int) *ast.Case {
	p.expectKeyword("case")
	selector := p.parseExpr()
	p.expectKeyword("is")
	c := &ast.Case{Label: label, Selector: selector}
	for p.atKeyword("when") {
		p.advance()
		choices := []ast.Expr{p.parseChoice()}
		for p.atPunct("|") {
			p.advance()
			choices = append(choices, p.parseChoice())
		}
		p.expectPunct("=>")
		body := p.parseSequentialStmtList()
		c.Arms = append(c.Arms, ast.CaseArm{Choices: choices, Body: body})
	}
	p.expectKeyword("end")
	p.expectKeyword("case")
	if p.cur().Kind == token.KindIdent {
		p.advance()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	c.SetSpan(start, stop)
	return c
}

// parseLoop unifies for/while/bare loop statements into one ast.Loop
// (spec.md §3.4 "Loops"), dispatching on the iteration-scheme keyword.
func (p *Parser) parseLoop(label string, start int) *ast.Loop {
	l := &ast.Loop{Label: label, Kind: ast.LoopPlain}
	switch {
	case p.atKeyword("for"):
		p.advance()
		l.Kind = ast.LoopFor
		l.ForVar = p.identText()
		p.expectKeyword("in")
		l.ForRange = p.parseExpr()
	case p.atKeyword("while"):
		p.advance()
		l.Kind = ast.LoopWhile
		l.Condition = p.parseExpr()
	}
	p.expectKeyword("loop")
	l.Body = p.parseSequentialStmtList()
	p.expectKeyword("end")
	p.expectKeyword("loop")
	if p.cur().Kind == token.KindIdent {
		l.EndLabel = p.identText()
	}
	stop := p.curIndex() - 1
	p.expectPunct(";")
	l.SetSpan(start, stop)
	return l
}
