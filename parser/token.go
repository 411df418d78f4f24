package parser

import "fmt"

type TokenType int

const (
	EOF TokenType = iota
	Illegal

	Ident
	Number
	String

	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	Comma
	Period
	Semicolon
	Dollar
	Colon       // :
	DoubleColon // ::
	TripleColon // :::
	PlusColon   // +:
	PlusDoubleColon
	PlusTripleColon
	Equals // =
	Operator

	// keywords
	Assert
	Else
	Error
	False
	For
	Function
	If
	Import
	ImportStr
	ImportBin
	In
	Local
	Null
	Self
	Super
	TailStrict
	Then
	True
)

var Keywords = map[string]TokenType{
	"assert":     Assert,
	"else":       Else,
	"error":      Error,
	"false":      False,
	"for":        For,
	"function":   Function,
	"if":         If,
	"import":     Import,
	"importstr":  ImportStr,
	"importbin":  ImportBin,
	"in":         In,
	"local":      Local,
	"null":       Null,
	"self":       Self,
	"super":      Super,
	"tailstrict": TailStrict,
	"then":       Then,
	"true":       True,
}

var tokenNames = map[TokenType]string{
	EOF:             "end of file",
	Illegal:         "illegal token",
	Ident:           "identifier",
	Number:          "number",
	String:          "string",
	LeftBrace:       "'{'",
	RightBrace:      "'}'",
	LeftBracket:     "'['",
	RightBracket:    "']'",
	LeftParen:       "'('",
	RightParen:      "')'",
	Comma:           "','",
	Period:          "'.'",
	Semicolon:       "';'",
	Dollar:          "'$'",
	Colon:           "':'",
	DoubleColon:     "'::'",
	TripleColon:     "':::'",
	PlusColon:       "'+:'",
	PlusDoubleColon: "'+::'",
	PlusTripleColon: "'+:::'",
	Equals:          "'='",
	Operator:        "operator",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for kw, typ := range Keywords {
		if typ == t {
			return "'" + kw + "'"
		}
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexeme. Start and End are byte offsets, End is exclusive.
type Token struct {
	Type       TokenType
	Start, End int
	// Data is the identifier, the decoded string, the number as written,
	// the operator, or the message of an Illegal token
	Data string
}

func (t Token) String() string {
	if t.Data == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Data)
}
