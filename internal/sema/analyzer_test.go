package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucc/internal/diag"
	"ucc/internal/parser"
)

func TestAnalyzeAcceptsWellTypedProgram(t *testing.T) {
	source := `int add(int a, int b) {
    return a + b;
}
int main() {
    int x;
    x = add(1, 2);
    print(x);
    return 0;
}
`
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)
	assert.NoError(t, Analyze(prog))
}

func TestAnalyzeRejectsUndefinedName(t *testing.T) {
	source := `int main() {
    return y;
}
`
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)

	err = Analyze(prog)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.ErrUndefinedName, d.Code)
}

func TestAnalyzeRejectsDuplicateDeclarationInSameScope(t *testing.T) {
	source := `int main() {
    int x;
    int x;
    return 0;
}
`
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)

	err = Analyze(prog)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.ErrDuplicateDeclaration, d.Code)
}

func TestAnalyzeRejectsAssignmentTypeMismatch(t *testing.T) {
	source := `int main() {
    int x;
    x = 1.5;
    return 0;
}
`
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)

	err = Analyze(prog)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.ErrAssignTypeMismatch, d.Code)
}

func TestAnalyzeRejectsFloatIncrement(t *testing.T) {
	source := `int main() {
    float x;
    x++;
    return 0;
}
`
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)

	err = Analyze(prog)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.ErrUnaryOpUnsupported, d.Code)
}

func TestAnalyzeRejectsBreakOutsideLoop(t *testing.T) {
	source := `int main() {
    break;
    return 0;
}
`
	prog, err := parser.ParseSource(source)
	require.NoError(t, err)

	err = Analyze(prog)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.ErrBreakOutsideLoop, d.Code)
}
