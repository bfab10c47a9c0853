// Package printer implements the trivia-aware AST visitor spec.md §4.4
// describes: it walks an *ast.File and produces a *doc.Doc, which
// internal/layout then renders against a config.Config. Every node the
// visitor touches is passed through wrap (trivia.go) so comments and blank
// lines attached by internal/trivia survive into the output unchanged.
//
// Grounded on grindlemire/go-tui's pkg/formatter, whose Printer walks a
// tuigen AST node-kind-by-node-kind and consults each node's
// LeadingComments/TrailingComments/BlankLineBefore while building output;
// here that walk produces an intermediate Doc instead of writing text
// directly, since spec.md's layout algebra (package doc) needs to see the
// whole tree before deciding where lines break.
package printer

import (
	"strings"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/layout"
)

// Print renders file into canonically-formatted VHDL text.
func Print(file *ast.File, cfg config.Config) string {
	d := printFile(file, cfg)
	out := layout.Render(d, cfg)
	if cfg.TrailingNewline && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func printFile(f *ast.File, cfg config.Config) *doc.Doc {
	docs := make([]*doc.Doc, len(f.Units))
	for i, u := range f.Units {
		docs[i] = printDesignUnit(u, cfg)
	}
	return wrap(f, doc.JoinHard(docs...), false)
}

func printDesignUnit(u *ast.DesignUnit, cfg config.Config) *doc.Doc {
	var core *doc.Doc = doc.Empty
	for _, c := range u.Context {
		core = appendBlock(core, printDecl(c, cfg))
	}
	core = appendBlock(core, printUnit(u.Unit, cfg))
	return wrap(u, core, false)
}

func printUnit(n ast.Node, cfg config.Config) *doc.Doc {
	switch u := n.(type) {
	case *ast.Entity:
		return printEntity(u, cfg)
	case *ast.Architecture:
		return printArchitecture(u, cfg)
	case *ast.Package:
		return printPackage(u, cfg)
	case *ast.PackageBody:
		return printPackageBody(u, cfg)
	default:
		return doc.Empty
	}
}

func printEntity(e *ast.Entity, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Space(doc.Keyword("entity"), doc.Text(e.Name)), doc.Keyword("is"))

	var body *doc.Doc = doc.Empty
	if e.Generic != nil {
		body = appendBlock(body, printGenericClause(e.Generic, cfg))
	}
	if e.Port != nil {
		body = appendBlock(body, printPortClause(e.Port, cfg))
	}
	if len(e.Decls) > 0 {
		body = appendBlock(body, joinDecls(e.Decls, cfg))
	}

	core := head
	if body != doc.Empty {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), body), cfg.Indent))
	}
	if len(e.Stmts) > 0 {
		stmts := doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(e.Stmts, cfg)), cfg.Indent)
		core = doc.Concat(core, doc.Concat(doc.HardLine(1), doc.Concat(doc.Keyword("begin"), stmts)))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("entity", e.HasEndKeyword, e.EndName)))
	return wrap(e, core, false)
}

func printArchitecture(a *ast.Architecture, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Keyword("architecture"), doc.Text(a.Name))
	head = doc.Space(head, doc.Keyword("of"))
	head = doc.Space(head, doc.Text(a.EntityName))
	head = doc.Space(head, doc.Keyword("is"))

	core := head
	if len(a.Decls) > 0 {
		body := doc.Nest(doc.Concat(doc.HardLine(1), joinDecls(a.Decls, cfg)), cfg.Indent)
		core = doc.Concat(core, body)
	}

	stmts := doc.Empty
	if len(a.Stmts) > 0 {
		stmts = doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(a.Stmts, cfg)), cfg.Indent)
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), doc.Concat(doc.Keyword("begin"), stmts)))
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("architecture", a.HasEndKeyword, a.EndName)))
	return wrap(a, core, false)
}

func printPackage(p *ast.Package, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Space(doc.Keyword("package"), doc.Text(p.Name)), doc.Keyword("is"))
	core := head
	if len(p.Decls) > 0 {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), joinDecls(p.Decls, cfg)), cfg.Indent))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("package", p.HasEndKeyword, p.EndName)))
	return wrap(p, core, false)
}

func printPackageBody(p *ast.PackageBody, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Keyword("package"), doc.Keyword("body"))
	head = doc.Space(head, doc.Text(p.Name))
	head = doc.Space(head, doc.Keyword("is"))
	core := head
	if len(p.Decls) > 0 {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), joinDecls(p.Decls, cfg)), cfg.Indent))
	}
	end := endClause("package body", p.HasEndKeyword, p.EndName)
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), end))
	return wrap(p, core, false)
}

// endClause builds "end [kw] [name];". kw may be a multi-word phrase such
// as "package body"; spaces inside it still render correctly since Text
// Docs tolerate embedded spaces, only embedded newlines are rejected.
func endClause(kw string, hasKeyword bool, name string) *doc.Doc {
	d := doc.Keyword("end")
	if hasKeyword {
		d = doc.Space(d, doc.Keyword(kw))
	}
	if name != "" {
		d = doc.Space(d, doc.Text(name))
	}
	return doc.Concat(d, doc.Text(";"))
}

// appendBlock concatenates acc and next with a single hard_line between
// (a line break, no blank line), treating a still-Empty acc as "nothing
// yet" so the first block never gets a spurious leading newline.
func appendBlock(acc, next *doc.Doc) *doc.Doc {
	if acc == nil || acc == doc.Empty {
		return next
	}
	if next == nil || next == doc.Empty {
		return acc
	}
	return doc.Concat(acc, doc.Concat(doc.HardLine(1), next))
}

// joinDecls renders a declarative-part sequence, grouping maximal runs of
// consecutive SignalDecls into one Align scope when cfg.AlignSignals.Signal
// is set (spec.md §6.3 "align_signals.signal").
func joinDecls(decls []ast.Decl, cfg config.Config) *doc.Doc {
	var out *doc.Doc = doc.Empty
	i := 0
	for i < len(decls) {
		if cfg.AlignSignals.Signal {
			if _, ok := decls[i].(*ast.SignalDecl); ok {
				j := i
				var run []*doc.Doc
				for j < len(decls) {
					sd, ok := decls[j].(*ast.SignalDecl)
					if !ok {
						break
					}
					run = append(run, printSignalDecl(sd, cfg))
					j++
				}
				aligned := doc.Align(doc.JoinHard(run...))
				out = appendBlock(out, aligned)
				i = j
				continue
			}
		}
		out = appendBlock(out, printDecl(decls[i], cfg))
		i++
	}
	return out
}

func joinStmts(stmts []ast.Stmt, cfg config.Config) *doc.Doc {
	var out *doc.Doc = doc.Empty
	for _, s := range stmts {
		out = appendBlock(out, printStmt(s, cfg))
	}
	return out
}

func modeText(m ast.Mode) string {
	switch m {
	case ast.ModeOut:
		return "out"
	case ast.ModeInout:
		return "inout"
	case ast.ModeBuffer:
		return "buffer"
	case ast.ModeLinkage:
		return "linkage"
	default:
		return "in"
	}
}
