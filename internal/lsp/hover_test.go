package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucc/internal/ast"
	"ucc/internal/parser"
	"ucc/internal/sema"
)

func analyzed(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)
	require.NoError(t, sema.Analyze(prog))
	return prog
}

func TestFindIdentAtLocatesReturnedVariable(t *testing.T) {
	source := "int main() {\n  int x;\n  x = 1;\n  return x;\n}\n"
	prog := analyzed(t, source)

	id := findIdentAt(prog, ast.Position{Line: 4, Column: 10})
	require.NotNil(t, id)
	assert.Equal(t, "x", id.Name)
	assert.NotNil(t, id.Annot().UCType)
}

func TestFindIdentAtMissReturnsNil(t *testing.T) {
	source := "int main() {\n  return 1;\n}\n"
	prog := analyzed(t, source)

	id := findIdentAt(prog, ast.Position{Line: 1, Column: 1})
	assert.Nil(t, id)
}

func TestHoverTextIncludesResolvedType(t *testing.T) {
	source := "int main() {\n  int x;\n  x = 1;\n  return x;\n}\n"
	prog := analyzed(t, source)

	id := findIdentAt(prog, ast.Position{Line: 4, Column: 10})
	require.NotNil(t, id)

	text := hoverText(id)
	assert.Contains(t, text, "x")
	assert.Contains(t, text, "int")
}
