package prettyprinter

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/funvibe/canvasrt/internal/ast"
)

// --- Code Printer (output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"=":  3,
	"<>": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"++": 5,
	"+":  6,
	"-":  6,
	"*":  7,
	"/":  7,
	"%":  7,
	"^":  8,
}

// precApply is tighter than every operator: call arguments, field access
// and constructor payloads never need parentheses of their own.
const precApply = 10

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return precApply - 1
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"^": true,
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders an expression tree as source text.
func Print(expr ast.Expression) string {
	p := NewCodePrinter()
	p.PrintExpression(expr)
	return p.String()
}

// PrintPattern renders a match pattern.
func PrintPattern(pat ast.Pattern) string {
	p := NewCodePrinter()
	p.printPattern(pat)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

// newline starts a new line at the current indentation.
func (p *CodePrinter) newline() {
	p.buf.WriteString("\n")
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *CodePrinter) PrintExpression(expr ast.Expression) {
	p.printExpr(expr, 0, false)
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	switch e := expr.(type) {
	case nil:
		p.write("<???>")

	case *ast.IntegerLiteral:
		if e.Value == nil {
			p.write("<???>")
			return
		}
		p.write(e.Value.String())
	case *ast.FloatLiteral:
		p.write(formatFloat(e.Value))
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.StringLiteral:
		p.write(strconv.Quote(e.Value))
	case *ast.NullLiteral:
		p.write("null")
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.PipeTarget:
		p.write("_")

	case *ast.InfixExpression:
		p.printInfix(e, parentPrec, isRight)

	case *ast.LetExpression:
		p.block(parentPrec, func() {
			p.write("let " + e.Name + " = ")
			p.printExpr(e.Value, 0, false)
			p.newline()
			p.printExpr(e.Body, 0, false)
		})

	case *ast.IfExpression:
		p.block(parentPrec, func() {
			p.write("if ")
			p.printExpr(e.Condition, 0, false)
			p.indent++
			p.newline()
			p.write("then ")
			p.printExpr(e.Consequence, 0, false)
			p.newline()
			p.write("else ")
			p.printExpr(e.Alternative, 0, false)
			p.indent--
		})

	case *ast.MatchExpression:
		p.printMatch(e)

	case *ast.FunctionLiteral:
		p.block(parentPrec, func() {
			p.write("fun(" + strings.Join(e.Parameters, ", ") + ") ")
			p.printExpr(e.Body, 0, false)
		})

	case *ast.ListLiteral:
		p.printList("[", e.Elements, "]")
	case *ast.TupleLiteral:
		p.printList("(", e.Elements, ")")

	case *ast.RecordLiteral:
		if len(e.Fields) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, f := range e.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Key + ": ")
			p.printExpr(f.Value, 0, false)
		}
		p.write(" }")

	case *ast.ConstructorExpression:
		p.write(e.Name)
		if len(e.Arguments) > 0 {
			p.printList("(", e.Arguments, ")")
		}

	case *ast.MemberExpression:
		p.printExpr(e.Left, precApply, false)
		p.write("." + e.Member)

	case *ast.PipeExpression:
		p.block(parentPrec, func() { p.printPipeChain(e) })

	case *ast.CallExpression:
		p.write(e.Function.String())
		p.printList("(", e.Arguments, ")")

	case *ast.ApplyExpression:
		if _, ok := e.Function.(*ast.Identifier); ok {
			p.printExpr(e.Function, precApply, false)
		} else {
			p.write("(")
			p.printExpr(e.Function, 0, false)
			p.write(")")
		}
		p.printList("(", e.Arguments, ")")

	case *ast.FeatureFlagExpression:
		p.write("flag " + strconv.Quote(e.Name) + " (")
		p.printExpr(e.Condition, 0, false)
		p.write(") {")
		p.indent++
		p.newline()
		p.write("old: ")
		p.printExpr(e.Old, 0, false)
		p.newline()
		p.write("new: ")
		p.printExpr(e.New, 0, false)
		p.indent--
		p.newline()
		p.write("}")

	default:
		p.write("<???>")
	}
}

// block parenthesizes multi-line forms that appear as an operand.
func (p *CodePrinter) block(parentPrec int, body func()) {
	if parentPrec > 0 {
		p.write("(")
		defer p.write(")")
	}
	body()
}

func (p *CodePrinter) printInfix(e *ast.InfixExpression, parentPrec int, isRight bool) {
	prec := getPrecedence(e.Operator)
	needParens := prec < parentPrec
	// For same precedence, check associativity
	if prec == parentPrec {
		needParens = isRight != rightAssoc[e.Operator]
	}
	if needParens {
		p.write("(")
	}
	if _, ok := e.Left.(*ast.PipeTarget); ok || e.Left == nil {
		// pipe step: the left operand is supplied by the pipe
		p.write(e.Operator + " ")
	} else {
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
	}
	p.printExpr(e.Right, prec, true)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) printList(open string, elements []ast.Expression, close string) {
	p.write(open)
	for i, el := range elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, 0, false)
	}
	p.write(close)
}

// printPipeChain prints the source, then each step on its own line.
func (p *CodePrinter) printPipeChain(e *ast.PipeExpression) {
	p.printExpr(e.Source, precApply, false)
	p.indent++
	for _, step := range e.Steps {
		p.newline()
		p.write("|> ")
		p.printStep(step)
	}
	p.indent--
}

// printStep prints a pipe step without the argument the pipe supplies.
func (p *CodePrinter) printStep(step ast.Expression) {
	switch s := step.(type) {
	case *ast.CallExpression:
		p.write(s.Function.String())
		if len(s.Arguments) > 0 {
			p.printList("(", s.Arguments, ")")
		}
	case *ast.InfixExpression:
		p.printExpr(s, precApply-1, false)
	default:
		p.printExpr(s, precApply, false)
	}
}

func (p *CodePrinter) printMatch(e *ast.MatchExpression) {
	p.write("match ")
	p.printExpr(e.Expression, 0, false)
	p.write(" {")
	p.indent++

	// Calculate max pattern width for alignment
	patStrings := make([]string, len(e.Arms))
	maxPatLen := 0
	for i, arm := range e.Arms {
		patStrings[i] = PrintPattern(arm.Pattern)
		if len(patStrings[i]) > maxPatLen {
			maxPatLen = len(patStrings[i])
		}
	}

	for i, arm := range e.Arms {
		p.newline()
		p.write(patStrings[i])
		p.write(strings.Repeat(" ", maxPatLen-len(patStrings[i])))
		p.write(" -> ")
		p.printExpr(arm.Expression, 0, false)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *CodePrinter) printPattern(pat ast.Pattern) {
	switch n := pat.(type) {
	case *ast.WildcardPattern:
		p.write("_")
	case *ast.IdentifierPattern:
		p.write(n.Value)
	case *ast.LiteralPattern:
		p.write(formatLiteral(n.Value))
	case *ast.ConstructorPattern:
		p.write(n.Name)
		if len(n.Elements) > 0 {
			p.printPatterns(n.Elements)
		}
	case *ast.TuplePattern:
		p.printPatterns(n.Elements)
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printPatterns(pats []ast.Pattern) {
	p.write("(")
	for i, el := range pats {
		if i > 0 {
			p.write(", ")
		}
		p.printPattern(el)
	}
	p.write(")")
}

func formatLiteral(v interface{}) string {
	switch l := v.(type) {
	case *big.Int:
		return l.String()
	case float64:
		return formatFloat(l)
	case bool:
		return strconv.FormatBool(l)
	case string:
		return strconv.Quote(l)
	case nil:
		return "null"
	}
	return "<???>"
}

// formatFloat always shows a fractional part so floats and ints print
// differently.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
