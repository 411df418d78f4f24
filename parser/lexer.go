package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Lexer splits Jsonnet source into tokens, skipping whitespace and comments
type Lexer struct {
	src []byte
	pos int
}

const eof = -1

func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) peekRune(offset int) rune {
	i := l.pos
	for ; offset > 0; offset-- {
		if i >= len(l.src) {
			return eof
		}
		_, size := utf8.DecodeRune(l.src[i:])
		i += size
	}
	if i >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.src[i:])
	return r
}

func (l *Lexer) ch() rune { return l.peekRune(0) }

func (l *Lexer) next() {
	if l.pos < len(l.src) {
		_, size := utf8.DecodeRune(l.src[l.pos:])
		l.pos += size
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(l.src[l.pos:]), s)
}

func isLetter(ch rune) bool {
	return ch == '_' || xid.Start(ch)
}

func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// skipTrivia skips whitespace and comments. It returns an Illegal token
// for an unterminated block comment.
func (l *Lexer) skipTrivia() *Token {
	for {
		switch {
		case isSpace(l.ch()):
			l.next()
		case l.ch() == '#' || l.hasPrefix("//"):
			for l.ch() != '\n' && l.ch() != eof {
				l.next()
			}
		case l.hasPrefix("/*"):
			start := l.pos
			l.pos += 2
			end := strings.Index(string(l.src[l.pos:]), "*/")
			if end < 0 {
				l.pos = len(l.src)
				return &Token{Type: Illegal, Start: start, End: l.pos, Data: "unterminated comment"}
			}
			l.pos += end + 2
		default:
			return nil
		}
	}
}

// Next returns the next token, or a token of type EOF at the end of the input
func (l *Lexer) Next() Token {
	if illegal := l.skipTrivia(); illegal != nil {
		return *illegal
	}
	start := l.pos
	single := func(t TokenType) Token {
		l.next()
		return Token{Type: t, Start: start, End: l.pos}
	}
	ch := l.ch()
	switch {
	case ch == eof:
		return Token{Type: EOF, Start: start, End: start}
	case isLetter(ch):
		return l.lexIdentOrKeyword()
	case isDecimal(ch):
		return l.lexNumber()
	case ch == '"' || ch == '\'':
		return l.lexString(ch)
	case ch == '@' && (l.peekRune(1) == '"' || l.peekRune(1) == '\''):
		return l.lexVerbatimString()
	case l.hasPrefix("|||"):
		return l.lexTextBlock()
	}
	switch ch {
	case '{':
		return single(LeftBrace)
	case '}':
		return single(RightBrace)
	case '[':
		return single(LeftBracket)
	case ']':
		return single(RightBracket)
	case '(':
		return single(LeftParen)
	case ')':
		return single(RightParen)
	case ',':
		return single(Comma)
	case '.':
		return single(Period)
	case ';':
		return single(Semicolon)
	case '$':
		return single(Dollar)
	}
	for _, punct := range []struct {
		text string
		typ  TokenType
	}{
		{"+:::", PlusTripleColon},
		{"+::", PlusDoubleColon},
		{"+:", PlusColon},
		{":::", TripleColon},
		{"::", DoubleColon},
		{":", Colon},
	} {
		if l.hasPrefix(punct.text) {
			l.pos += len(punct.text)
			return Token{Type: punct.typ, Start: start, End: l.pos}
		}
	}
	for _, op := range []string{"<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "+", "-", "*", "/", "%", "<", ">", "&", "^", "|", "!", "~"} {
		if l.hasPrefix(op) {
			l.pos += len(op)
			return Token{Type: Operator, Start: start, End: l.pos, Data: op}
		}
	}
	if ch == '=' {
		return single(Equals)
	}
	l.next()
	return Token{Type: Illegal, Start: start, End: l.pos, Data: "unexpected character " + strconv.QuoteRune(ch)}
}

func (l *Lexer) lexIdentOrKeyword() Token {
	start := l.pos
	l.next()
	for xid.Continue(l.ch()) {
		l.next()
	}
	ident := string(l.src[start:l.pos])
	if typ, ok := Keywords[ident]; ok {
		return Token{Type: typ, Start: start, End: l.pos}
	}
	return Token{Type: Ident, Start: start, End: l.pos, Data: ident}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	digits := func() int {
		n := 0
		for isDecimal(l.ch()) {
			l.next()
			n++
		}
		return n
	}
	digits()
	if l.ch() == '.' && isDecimal(l.peekRune(1)) {
		l.next()
		digits()
	}
	if l.ch() == 'e' || l.ch() == 'E' {
		l.next()
		if l.ch() == '+' || l.ch() == '-' {
			l.next()
		}
		if digits() == 0 {
			return Token{Type: Illegal, Start: start, End: l.pos, Data: "missing exponent digits in number"}
		}
	}
	return Token{Type: Number, Start: start, End: l.pos, Data: string(l.src[start:l.pos])}
}

func (l *Lexer) lexString(quote rune) Token {
	start := l.pos
	l.next()
	sb := &strings.Builder{}
	for {
		ch := l.ch()
		switch ch {
		case eof:
			return Token{Type: Illegal, Start: start, End: l.pos, Data: "unterminated string"}
		case quote:
			l.next()
			return Token{Type: String, Start: start, End: l.pos, Data: sb.String()}
		case '\\':
			l.next()
			if illegal := l.lexEscape(sb, start); illegal != nil {
				return *illegal
			}
		default:
			sb.WriteRune(ch)
			l.next()
		}
	}
}

func (l *Lexer) lexEscape(sb *strings.Builder, start int) *Token {
	ch := l.ch()
	l.next()
	switch ch {
	case '"', '\'', '\\', '/':
		sb.WriteRune(ch)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		if l.pos+4 > len(l.src) {
			return &Token{Type: Illegal, Start: start, End: len(l.src), Data: "truncated unicode escape"}
		}
		code, err := strconv.ParseUint(string(l.src[l.pos:l.pos+4]), 16, 32)
		if err != nil {
			return &Token{Type: Illegal, Start: start, End: l.pos + 4, Data: "invalid unicode escape"}
		}
		l.pos += 4
		sb.WriteRune(rune(code))
	default:
		return &Token{Type: Illegal, Start: start, End: l.pos, Data: "unknown escape sequence \\" + string(ch)}
	}
	return nil
}

// lexVerbatimString lexes @'...' and @"...", where the quote is escaped by doubling it
func (l *Lexer) lexVerbatimString() Token {
	start := l.pos
	l.next()
	quote := l.ch()
	l.next()
	sb := &strings.Builder{}
	for {
		ch := l.ch()
		switch {
		case ch == eof:
			return Token{Type: Illegal, Start: start, End: l.pos, Data: "unterminated string"}
		case ch == quote && l.peekRune(1) == quote:
			sb.WriteRune(quote)
			l.next()
			l.next()
		case ch == quote:
			l.next()
			return Token{Type: String, Start: start, End: l.pos, Data: sb.String()}
		default:
			sb.WriteRune(ch)
			l.next()
		}
	}
}

// lexTextBlock lexes a |||-delimited block. The indentation of its first line
// is removed from every line, and the block ends at a line starting with |||.
func (l *Lexer) lexTextBlock() Token {
	start := l.pos
	l.pos += len("|||")
	for l.ch() == ' ' || l.ch() == '\t' {
		l.next()
	}
	if l.ch() != '\n' {
		return Token{Type: Illegal, Start: start, End: l.pos, Data: "text block must start with a new line"}
	}
	l.next()
	rest := string(l.src[l.pos:])
	lines := strings.SplitAfter(rest, "\n")
	indent := ""
	if len(lines) > 0 {
		first := lines[0]
		indent = first[:len(first)-len(strings.TrimLeft(first, " \t"))]
	}
	if indent == "" {
		return Token{Type: Illegal, Start: start, End: l.pos, Data: "text block's first line must be indented"}
	}
	sb := &strings.Builder{}
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "|||") {
			l.pos += len(line) - len(trimmed) + len("|||")
			return Token{Type: String, Start: start, End: l.pos, Data: sb.String()}
		}
		switch {
		case strings.HasPrefix(line, indent):
			sb.WriteString(line[len(indent):])
		case strings.TrimSpace(line) == "":
			sb.WriteString("\n")
		default:
			return Token{Type: Illegal, Start: start, End: l.pos, Data: "text block is not terminated by |||"}
		}
		l.pos += len(line)
	}
	return Token{Type: Illegal, Start: start, End: l.pos, Data: "unterminated text block"}
}
