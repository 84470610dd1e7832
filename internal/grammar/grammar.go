package grammar

// Program is a whole .uc translation unit: a sequence of top-level
// declarations, matching spec.md's Program/declarations structure.
type Program struct {
	Decls []*TopDecl `@@*`
}

type TopDecl struct {
	Comment *Comment  `  @@`
	Func    *FuncDecl `| @@`
	Var     *VarDecl  `| @@`
}

type Comment struct {
	Text string `@Comment`
}

// Type captures a base type keyword plus any trailing array dims,
// e.g. "int[2][3]".
type Type struct {
	Base string `@("int" | "float" | "char" | "bool" | "void" | "string")`
	Dims []*Dim `@@*`
}

type Dim struct {
	Size *string `"[" @Integer? "]"`
}

type VarDecl struct {
	Type *Type    `@@`
	Name string   `@Ident`
	Dims []*Dim   `@@*`
	Init *InitRHS `[ "=" @@ ] ";"`
}

type InitRHS struct {
	List *InitList `  @@`
	Expr *Expr     `| @@`
}

type InitList struct {
	Items []*InitRHS `"{" [ @@ { "," @@ } ] "}"`
}

type Param struct {
	Type *Type  `@@`
	Name string `@Ident`
}

type FuncDecl struct {
	Type   *Type    `@@`
	Name   string   `@Ident "("`
	Params []*Param `[ @@ { "," @@ } ] ")"`
	Body   *Block   `@@`
}

type Block struct {
	Decls []*VarDecl `"{" @@*`
	Stmts []*Stmt    `@@* "}"`
}

// Stmt is a sum of the statement forms: exactly one of its fields is
// set, each modelling one kind of uC statement.
type Stmt struct {
	Block     *Block      `  @@`
	If        *IfStmt     `| @@`
	While     *WhileStmt  `| @@`
	For       *ForStmt    `| @@`
	Break     string      `| @"break" ";"`
	Return    *ReturnStmt `| @@`
	Assert    *ExprStmt   `| "assert" @@`
	Print     *ExprStmt   `| "print" @@`
	Read      *ExprStmt   `| "read" @@`
	ExprStmt  *ExprStmt   `| @@`
}

type IfStmt struct {
	Cond *Expr `"if" "(" @@ ")"`
	Then *Stmt `@@`
	Else *Stmt `[ "else" @@ ]`
}

type WhileStmt struct {
	Cond *Expr `"while" "(" @@ ")"`
	Body *Stmt `@@`
}

type ForStmt struct {
	Init *ExprStmt `"for" "(" @@`
	Cond *Expr     `[ @@ ] ";"`
	Post *Expr     `[ @@ ] ")"`
	Body *Stmt     `@@`
}

type ReturnStmt struct {
	Expr *Expr `"return" [ @@ ] ";"`
}

type ExprStmt struct {
	Expr *Expr `@@? ";"`
}

// Expr is a left-to-right flattened operator-precedence chain: uCfmt
// reprints operators and operands in source order rather than building
// a precedence-climbed tree, since formatting never needs to
// re-associate operators, only re-space and re-indent them.
type Expr struct {
	Left *Unary  `@@`
	Ops  []*OpRHS `@@*`
}

type OpRHS struct {
	Op    string `@Operator`
	Right *Unary `@@`
}

type Unary struct {
	Op    *string `[ @("!" | "-" | "+" | "++" | "--" | "&" | "*") ]`
	Value *Postfix `@@`
}

type Postfix struct {
	Primary *Primary `@@`
	Ops     []string `@("++" | "--")*`
}

type Primary struct {
	Call   *CallExpr `  @@`
	Index  *IndexExpr `| @@`
	Ident  *string   `| @Ident`
	Float  *string   `| @Float`
	Int    *string   `| @Integer`
	Char   *string   `| @Char`
	String *string   `| @String`
	Paren  *Expr     `| "(" @@ ")"`
}

type CallExpr struct {
	Name string  `@Ident "("`
	Args []*Expr `[ @@ { "," @@ } ] ")"`
}

type IndexExpr struct {
	Name  string  `@Ident`
	Index []*Expr `("[" @@ "]")+`
}
