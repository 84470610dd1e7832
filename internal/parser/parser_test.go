package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucc/internal/ast"
)

func TestParseSourceParsesGlobalAndFunction(t *testing.T) {
	source := `int g;
int add(int a, int b) {
    return a + b;
}
`
	prog, err := ParseSource(source)
	require.NoError(t, err)
	require.Len(t, prog.Decls, 2)

	g, ok := prog.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "g", g.Name)
	assert.Equal(t, "int", g.TypeName)
	assert.Nil(t, g.Dims)

	fn, ok := prog.Decls[1].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "int", fn.ReturnType)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
}

func TestParseSourceParsesArrayDeclAndInitList(t *testing.T) {
	source := `int a[3] = {1, 2, 3};
`
	prog, err := ParseSource(source)
	require.NoError(t, err)
	require.Len(t, prog.Decls, 1)

	v, ok := prog.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Len(t, v.Dims, 1)
	require.NotNil(t, v.Dims[0])
	assert.Equal(t, 3, *v.Dims[0])

	list, ok := v.Init.(*ast.InitList)
	require.True(t, ok)
	assert.Len(t, list.Items, 3)
}

func TestParseSourceRespectsOperatorPrecedence(t *testing.T) {
	source := `int main() {
    return 1 + 2 * 3;
}
`
	prog, err := ParseSource(source)
	require.NoError(t, err)

	fn := prog.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Items[0].(*ast.Return)
	bin, ok := ret.Expr.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)

	rhs, ok := bin.Right.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseSourceReportsMissingSemicolon(t *testing.T) {
	source := `int main() {
    return 1
}
`
	_, err := ParseSource(source)
	require.Error(t, err)

	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Contains(t, pe.Msg, "';'")
}

func TestParseSourceReportsLexicalError(t *testing.T) {
	_, err := ParseSource("int x = 1 & 2;")
	require.Error(t, err)
}
