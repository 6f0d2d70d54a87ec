package cahn

import (
	"fmt"
	"strings"
)

// SprintExpr renders expr as a stable Lisp-style S-expression, the
// same shape the original compiler's Display impls produced for every
// node. interner resolves the InternedString handles held by String
// and Var nodes.
func SprintExpr(interner *StringInterner, expr Expr) string {
	var b strings.Builder
	writeExpr(&b, interner, expr)
	return b.String()
}

func writeExpr(b *strings.Builder, interner *StringInterner, expr Expr) {
	switch e := expr.(type) {
	case *NumberExpr:
		fmt.Fprintf(b, "%s", formatNumber(e.Value))

	case *StringExpr:
		fmt.Fprintf(b, "%q", interner.String(e.Value))

	case *BoolExpr:
		fmt.Fprintf(b, "%t", e.Value)

	case *NilExpr:
		b.WriteString("nil")

	case *VarExpr:
		b.WriteString(interner.String(e.Name))

	case *GroupExpr:
		b.WriteString("(")
		writeExpr(b, interner, e.Inner)
		b.WriteString(")")

	case *PrefixExpr:
		fmt.Fprintf(b, "(%s ", e.Op)
		writeExpr(b, interner, e.Right)
		b.WriteString(")")

	case *InfixExpr:
		fmt.Fprintf(b, "(%s ", e.Op)
		writeExpr(b, interner, e.Left)
		b.WriteString(" ")
		writeExpr(b, interner, e.Right)
		b.WriteString(")")

	case *ListExpr:
		b.WriteString("(list")
		for _, elem := range e.Elements {
			b.WriteString(" ")
			writeExpr(b, interner, elem)
		}
		b.WriteString(")")

	case *SubscriptExpr:
		b.WriteString("(subscript ")
		writeExpr(b, interner, e.Container)
		b.WriteString(" ")
		writeExpr(b, interner, e.Index)
		b.WriteString(")")

	case *CallExpr:
		b.WriteString("(call ")
		writeExpr(b, interner, e.Callee)
		for _, arg := range e.Args {
			b.WriteString(" ")
			writeExpr(b, interner, arg)
		}
		b.WriteString(")")

	default:
		fmt.Fprintf(b, "<unknown-expr %T>", e)
	}
}

// SprintStmt renders stmt the same way SprintExpr renders expressions,
// used by the --dump-ast driver flag and by tests that assert on
// parser output without depending on the code generator.
func SprintStmt(interner *StringInterner, stmt Stmt) string {
	var b strings.Builder
	writeStmt(&b, interner, stmt, 0)
	return b.String()
}

func writeStmt(b *strings.Builder, interner *StringInterner, stmt Stmt, depth int) {
	switch s := stmt.(type) {
	case *PrintStmt:
		b.WriteString("(print ")
		writeExpr(b, interner, s.Expr)
		b.WriteString(")")

	case *VarDeclStmt:
		fmt.Fprintf(b, "(let %s ", interner.String(s.Name))
		writeExpr(b, interner, s.Init)
		b.WriteString(")")

	case *ExprStmt:
		writeExpr(b, interner, s.Expr)

	case *BlockStmt:
		b.WriteString("(block")
		for _, inner := range s.Stmts {
			b.WriteString(" ")
			writeStmt(b, interner, inner, depth+1)
		}
		b.WriteString(")")

	case *IfStmt:
		b.WriteString("(if ")
		writeExpr(b, interner, s.Cond)
		b.WriteString(" ")
		writeStmt(b, interner, s.Then, depth+1)
		if s.Else != nil {
			b.WriteString(" ")
			writeStmt(b, interner, s.Else, depth+1)
		}
		b.WriteString(")")

	case *WhileStmt:
		b.WriteString("(while ")
		writeExpr(b, interner, s.Cond)
		b.WriteString(" ")
		writeStmt(b, interner, s.Body, depth+1)
		b.WriteString(")")

	case *FnDeclStmt:
		fmt.Fprintf(b, "(fn %s (", interner.String(s.Name))
		for i, p := range s.Params {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(interner.String(p))
		}
		b.WriteString(") ")
		writeStmt(b, interner, s.Body, depth+1)
		b.WriteString(")")

	case *ReturnStmt:
		if s.Value == nil {
			b.WriteString("(return)")
		} else {
			b.WriteString("(return ")
			writeExpr(b, interner, s.Value)
			b.WriteString(")")
		}

	default:
		fmt.Fprintf(b, "<unknown-stmt %T>", s)
	}
}

// SprintProgram renders every top-level statement, one S-expression
// per line.
func SprintProgram(interner *StringInterner, prog *Program) string {
	var b strings.Builder
	for i, stmt := range prog.Stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SprintStmt(interner, stmt))
	}
	return b.String()
}
