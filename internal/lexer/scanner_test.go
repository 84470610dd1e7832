package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanTokensRecognisesOperatorsAndKeywords(t *testing.T) {
	s := NewScanner("int x = 1 + 2; x++;", nil)
	tokens := s.ScanTokens()

	assert.Equal(t, []TokenKind{
		INT, IDENT, ASSIGN, INT_LIT, PLUS, INT_LIT, SEMICOLON,
		IDENT, INCREMENT, SEMICOLON, EOF,
	}, kinds(tokens))
}

func TestScanTokensDisambiguatesCompoundOperators(t *testing.T) {
	s := NewScanner("a += 1; a == 2; a <= 3;", nil)
	tokens := s.ScanTokens()

	assert.Equal(t, []TokenKind{
		IDENT, PLUS_ASSIGN, INT_LIT, SEMICOLON,
		IDENT, EQUAL_EQUAL, INT_LIT, SEMICOLON,
		IDENT, LESS_EQUAL, INT_LIT, SEMICOLON,
		EOF,
	}, kinds(tokens))
}

func TestScanTokensReportsUnterminatedString(t *testing.T) {
	var errs []string
	s := NewScanner(`"unterminated`, func(msg string, line, col int) {
		errs = append(errs, msg)
	})
	s.ScanTokens()

	assert.Equal(t, []string{"unterminated quote"}, errs)
}

func TestScanTokensSkipsComments(t *testing.T) {
	s := NewScanner("// a comment\nint x; /* block */\n", nil)
	tokens := s.ScanTokens()

	assert.Equal(t, []TokenKind{INT, IDENT, SEMICOLON, EOF}, kinds(tokens))
}
