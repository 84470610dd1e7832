package lexer

//go:generate stringer -type=TokenKind
type TokenKind int

const (
	ILLEGAL TokenKind = iota
	EOF

	IDENT
	INT_LIT
	FLOAT_LIT
	CHAR_LIT
	STRING_LIT

	// Keywords
	INT
	FLOAT
	CHAR
	VOID
	IF
	ELSE
	WHILE
	FOR
	BREAK
	RETURN
	ASSERT
	PRINT
	READ

	// Operators
	PLUS
	INCREMENT
	MINUS
	DECREMENT
	STAR
	SLASH
	PERCENT
	BANG
	BANG_EQUAL
	ASSIGN
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	AND_AND
	OR_OR

	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN

	// Separators
	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
)

var keywords = map[string]TokenKind{
	"int":    INT,
	"float":  FLOAT,
	"char":   CHAR,
	"void":   VOID,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"break":  BREAK,
	"return": RETURN,
	"assert": ASSERT,
	"print":  PRINT,
	"read":   READ,
}

// Token is one lexed unit: a kind, the literal text it covers, and its
// start position.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
	Column  int
}
