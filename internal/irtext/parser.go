// Package irtext reads a line-oriented, LLVM-like textual IR into ir
// functions.
//
// Only the structure the analysis needs is recognised:
//
//	define i32 @main() {        ; opens a function
//	entry:                      ; opens a block
//	  %a = add nsw i32 2, 3     ; [%name =] opcode [flags] [iN] operands [, attachments]
//	  ret i32 %a
//	}                           ; closes the function
//
// Lines outside a define body (declarations, globals, metadata) are skipped.
package irtext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mpyw/simplemath/internal/ir"
)

// DefaultLabel names the implicit block opened by an instruction that
// precedes any label in a function.
const DefaultLabel = "entry"

var opcodes = map[string]ir.Opcode{
	"add":  ir.Add,
	"sub":  ir.Sub,
	"mul":  ir.Mul,
	"sdiv": ir.SDiv,
}

// Error is a parse failure at a specific line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

type parser struct {
	funcs []*ir.Function
	fn    *ir.Function
	block *ir.Block
	line  int
}

// Parse reads every function in r.
func Parse(r io.Reader) ([]*ir.Function, error) {
	p := &parser{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if p.fn != nil {
		return nil, &Error{Line: p.line, Msg: fmt.Sprintf("unterminated function @%s", p.fn.Name)}
	}
	return p.funcs, nil
}

// ParseString is Parse over a string.
func ParseString(src string) ([]*ir.Function, error) {
	return Parse(strings.NewReader(src))
}

func (p *parser) parseLine(raw string) error {
	text := strings.TrimSpace(stripComment(raw))
	if text == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(text, "define "):
		return p.openFunction(text)
	case text == "}":
		if p.fn == nil {
			return &Error{Line: p.line, Msg: "unexpected }"}
		}
		p.funcs = append(p.funcs, p.fn)
		p.fn, p.block = nil, nil
		return nil
	case p.fn == nil:
		return nil
	case isLabel(text):
		p.block = &ir.Block{Label: strings.TrimSuffix(text, ":")}
		p.fn.Blocks = append(p.fn.Blocks, p.block)
		return nil
	}

	if p.block == nil {
		p.block = &ir.Block{Label: DefaultLabel}
		p.fn.Blocks = append(p.fn.Blocks, p.block)
	}
	in, err := parseInstruction(text)
	if err != nil {
		return &Error{Line: p.line, Msg: err.Error()}
	}
	in.Line = p.line
	p.block.Append(in)
	return nil
}

func (p *parser) openFunction(text string) error {
	if p.fn != nil {
		return &Error{Line: p.line, Msg: fmt.Sprintf("define inside function @%s", p.fn.Name)}
	}
	at := strings.IndexByte(text, '@')
	if at < 0 {
		return &Error{Line: p.line, Msg: "define without @name"}
	}
	name := text[at+1:]
	if end := strings.IndexAny(name, "( \t"); end >= 0 {
		name = name[:end]
	}
	if name == "" {
		return &Error{Line: p.line, Msg: "define without @name"}
	}
	p.fn = &ir.Function{Name: name}
	p.block = nil
	return nil
}

func parseInstruction(text string) (ir.Instruction, error) {
	in := ir.Instruction{Text: text}

	body := text
	if strings.HasPrefix(body, "%") {
		eq := strings.Index(body, "=")
		if eq < 0 {
			return in, fmt.Errorf("expected '=' after %s", strings.Fields(body)[0])
		}
		in.Name = unquote(strings.TrimSpace(body[1:eq]))
		body = strings.TrimSpace(body[eq+1:])
	}

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return in, fmt.Errorf("missing opcode")
	}
	opcode := fields[0]
	in.Op = opcodes[opcode] // unknown opcodes map to ir.Other
	args := strings.TrimSpace(body[len(opcode):])

	for _, item := range splitOperands(args) {
		toks := strings.Fields(item)
		if len(toks) == 0 {
			continue
		}
		// Metadata and attributes such as ", !dbg !12" or ", align 4" end
		// the operand list.
		if isAttachment(toks[0]) {
			break
		}
		// A lone type ("load i32, ptr %p") names no value.
		if len(toks) == 1 && isType(toks[0]) {
			continue
		}
		in.Operands = append(in.Operands, Classify(toks[len(toks)-1]))
	}
	return in, nil
}

var attachments = map[string]bool{
	"align":     true,
	"addrspace": true,
	"syncscope": true,
}

func isAttachment(tok string) bool {
	return strings.HasPrefix(tok, "!") || attachments[tok]
}

var primitiveTypes = map[string]bool{
	"void": true, "ptr": true, "label": true, "metadata": true,
	"half": true, "bfloat": true, "float": true, "double": true,
	"fp128": true, "x86_fp80": true, "ppc_fp128": true,
}

// isType reports whether tok spells a type rather than a value.
func isType(tok string) bool {
	switch {
	case primitiveTypes[tok]:
		return true
	case strings.HasSuffix(tok, "*"):
		return true
	case len(tok) > 1 && tok[0] == 'i' && isDigits(tok[1:]):
		return true
	}
	return false
}

// Classify turns an operand token into an ir.Operand.
//
//	42, -7, true, false  literal
//	%x, %"x y", @g       named
//	%3                   opaque (unnamed temporary)
func Classify(tok string) ir.Operand {
	switch tok {
	case "true":
		return ir.Literal(1)
	case "false":
		return ir.Literal(0)
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return ir.Literal(v)
	}
	if len(tok) > 1 && (tok[0] == '%' || tok[0] == '@') {
		name := unquote(tok[1:])
		if name == "" || (tok[0] == '%' && isDigits(name)) {
			return ir.Opaque()
		}
		return ir.Named(name)
	}
	return ir.Opaque()
}

// splitOperands splits on commas that are not nested in brackets.
func splitOperands(s string) []string {
	var items []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				items = append(items, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" || len(items) > 0 {
		items = append(items, s[start:])
	}
	return items
}

func isLabel(text string) bool {
	return strings.HasSuffix(text, ":") && len(text) > 1 && !strings.ContainsAny(text, " \t")
}

func stripComment(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return s[:i]
			}
		}
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
