package grammar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ucc/internal/grammar"
)

func TestParseSimpleFunction(t *testing.T) {
	source := `int add(int a, int b) {
    return a + b;
}
`
	program, err := grammar.ParseSource("test.uc", source)
	assert.NoError(t, err)
	assert.NotNil(t, program)
	assert.Len(t, program.Decls, 1)

	fn := program.Decls[0].Func
	assert.NotNil(t, fn)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "int", fn.Type.String())
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
}

func TestPrintRoundTripsDeclOrder(t *testing.T) {
	source := `int x;
int main() {
    int y;
    y = x + 1;
    return y;
}
`
	program, err := grammar.ParseSource("test.uc", source)
	assert.NoError(t, err)

	out := grammar.Print(program)
	assert.Contains(t, out, "int x;")
	assert.Contains(t, out, "int main()")
	assert.Contains(t, out, "y = x + 1;")
	assert.Less(t, strings.Index(out, "int x;"), strings.Index(out, "int main()"))
}
