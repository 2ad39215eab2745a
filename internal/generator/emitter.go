package generator

import "strings"

const indentUnit = "    "

// Emitter is the shared text accumulator used by the format backends. It
// tracks the indentation depth, coalesces pending blank lines into at most
// one, and records the fully qualified type names referenced so an import
// block can be synthesized afterwards.
//
// One Emitter is owned by exactly one generation call.
type Emitter struct {
	sb     strings.Builder
	indent int

	// NeedEmptyLine is set after a logical section ends; the next Line or
	// EmptyLineIfNeeded call turns it into a single blank line.
	NeedEmptyLine bool

	imports     []string
	importsSeen map[string]bool
}

func NewEmitter() *Emitter {
	return &Emitter{importsSeen: make(map[string]bool)}
}

// Line appends text plus a newline at the current indentation, emitting a
// coalesced blank line first if one is owed.
func (e *Emitter) Line(text string) {
	e.EmptyLineIfNeeded()
	e.sb.WriteString(strings.Repeat(indentUnit, e.indent))
	e.sb.WriteString(text)
	e.sb.WriteByte('\n')
}

// Append appends text with no newline or indentation handling.
func (e *Emitter) Append(text string) {
	e.sb.WriteString(text)
}

// StartBlock emits text and increases the indentation depth.
func (e *Emitter) StartBlock(text string) {
	e.Line(text)
	e.indent++
}

// EndBlock decreases the indentation depth and emits text. A pending blank
// line is dropped so closing markers are never preceded by one.
func (e *Emitter) EndBlock(text string) {
	e.NeedEmptyLine = false
	if e.indent > 0 {
		e.indent--
	}
	e.Line(text)
}

// EmptyLineIfNeeded emits one blank line if one is owed and reports whether
// it did so. A blank line is never emitted at the very top of the output.
func (e *Emitter) EmptyLineIfNeeded() bool {
	if !e.NeedEmptyLine {
		return false
	}
	e.NeedEmptyLine = false
	if e.sb.Len() == 0 {
		return false
	}
	e.sb.WriteByte('\n')
	return true
}

// ImportClass records fqcn in an order-of-first-use, duplicate-free
// sequence and returns its short name. Types from java.lang are returned
// unrecorded.
func (e *Emitter) ImportClass(fqcn string) string {
	short := fqcn
	if idx := strings.LastIndex(fqcn, "."); idx >= 0 {
		short = fqcn[idx+1:]
	}
	if strings.HasPrefix(fqcn, "java.lang.") || !strings.Contains(fqcn, ".") {
		return short
	}
	if !e.importsSeen[fqcn] {
		e.importsSeen[fqcn] = true
		e.imports = append(e.imports, fqcn)
	}
	return short
}

// GenerateImports renders the recorded import sequence in first-reference
// order.
func (e *Emitter) GenerateImports() string {
	var sb strings.Builder
	for _, imp := range e.imports {
		sb.WriteString("import ")
		sb.WriteString(imp)
		sb.WriteString(";\n")
	}
	return sb.String()
}

// String returns the accumulated text.
func (e *Emitter) String() string {
	return e.sb.String()
}
