package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterCoalescesBlankLines(t *testing.T) {
	em := NewEmitter()
	em.Line("first")
	em.NeedEmptyLine = true
	em.NeedEmptyLine = true
	em.Line("second")
	em.Line("third")

	assert.Equal(t, "first\n\nsecond\nthird\n", em.String())
	assert.NotContains(t, em.String(), "\n\n\n")
}

func TestEmitterNoLeadingBlankLine(t *testing.T) {
	em := NewEmitter()
	em.NeedEmptyLine = true
	em.Line("first")

	assert.Equal(t, "first\n", em.String())
}

func TestEmitterNoBlankBeforeClosingBlock(t *testing.T) {
	em := NewEmitter()
	em.StartBlock("{")
	em.Line("body")
	em.NeedEmptyLine = true
	em.EndBlock("}")

	assert.Equal(t, "{\n    body\n}\n", em.String())
}

func TestEmitterIndentation(t *testing.T) {
	em := NewEmitter()
	em.StartBlock("outer {")
	em.StartBlock("inner {")
	em.Line("x")
	em.EndBlock("}")
	em.EndBlock("}")

	assert.Equal(t, "outer {\n    inner {\n        x\n    }\n}\n", em.String())
}

func TestEmitterImportClass(t *testing.T) {
	em := NewEmitter()

	assert.Equal(t, "TcpDiscoverySpi", em.ImportClass(clsTcpDiscoverySpi))
	assert.Equal(t, "TcpDiscoverySpi", em.ImportClass(clsTcpDiscoverySpi))
	assert.Equal(t, "Properties", em.ImportClass("java.util.Properties"))

	imports := em.GenerateImports()
	assert.Equal(t, 1, strings.Count(imports, clsTcpDiscoverySpi))

	first := strings.Index(imports, clsTcpDiscoverySpi)
	second := strings.Index(imports, "java.util.Properties")
	assert.Less(t, first, second, "imports must keep first-use order")
}

func TestEmitterImportClassSkipsJavaLang(t *testing.T) {
	em := NewEmitter()

	assert.Equal(t, "String", em.ImportClass("java.lang.String"))
	assert.Equal(t, "Integer", em.ImportClass("Integer"))
	assert.Empty(t, em.GenerateImports())
}

func TestEmitterAppend(t *testing.T) {
	em := NewEmitter()
	em.Append("a")
	em.Append("b")

	assert.Equal(t, "ab", em.String())
}
