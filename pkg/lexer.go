package minp

import (
	"bufio"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenError TokenType = iota
	TokenEOF
	TokenNumber

	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenPow
	TokenMod
	TokenOpenParentheses
	TokenCloseParentheses

	TokenSin
	TokenCos
	TokenTan
	TokenCot
)

var functionTable = map[string]TokenType{
	"sin": TokenSin,
	"cos": TokenCos,
	"tan": TokenTan,
	"cot": TokenCot,
}

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMultiply,
	'/': TokenDivide,
	'^': TokenPow,
	'%': TokenMod,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
}

var tokenNames = map[TokenType]string{
	TokenError:            "Error",
	TokenEOF:              "EOF",
	TokenNumber:           "Number",
	TokenPlus:             "Plus",
	TokenMinus:            "Minus",
	TokenMultiply:         "Multiply",
	TokenDivide:           "Divide",
	TokenPow:              "Pow",
	TokenMod:              "Mod",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenSin:              "Sin",
	TokenCos:              "Cos",
	TokenTan:              "Tan",
	TokenCot:              "Cot",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "TokenType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

func (t TokenType) isFunction() bool {
	return t == TokenSin || t == TokenCos || t == TokenTan || t == TokenCot
}

type Token struct {
	Typ   TokenType
	Text  string
	Value Number
	Pos   int
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return "error"
	default:
		return "'" + t.Text + "'"
	}
}

// Tokenizer is a pull-based token source with one token per call. Once it returns
// TokenError or TokenEOF it keeps returning the same token.
type Tokenizer interface {
	Next() Token
	Err() error
}

// Lexer turns an expression into tokens lazily; each call to Next runs the state
// machine only until the next token is ready.
type Lexer struct {
	reader  *bufio.Reader
	state   stateFunc
	pending []Token
	last    Token
	err     error

	pos   int // offset of the next rune to be read
	start int // offset of the token being scanned
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		state:  defaultState,
	}
}

func NewLexerFromString(expr string) *Lexer {
	return NewLexer(strings.NewReader(expr))
}

func (l *Lexer) Next() Token {
	for len(l.pending) == 0 && l.state != nil {
		l.state = l.state(l)
	}

	if len(l.pending) == 0 {
		// The machine has stopped, the final token is repeated from now on
		return l.last
	}

	tok := l.pending[0]
	l.pending = l.pending[1:]
	l.last = tok

	return tok
}

func (l *Lexer) Err() error {
	return l.err
}

// Tokens scans the whole input. The terminating EOF token is not included.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		t := l.Next()
		switch t.Typ {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, l.err
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.pos

		switch r := l.peek(); {
		case r == EOF:
			return l.emitEOF()
		case isSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9' || r == '.':
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	points := 0
	for r := l.peek(); '0' <= r && r <= '9' || r == '.'; r = l.peek() {
		if r == '.' {
			points++
			if points > 1 {
				return l.errorf(MalformedNumber, l.pos, "invalid number")
			}
		}

		num.WriteRune(l.next())
	}

	text := num.String()
	value, err := parseNumber(text)
	if err != nil {
		return l.errorf(MalformedNumber, l.start, "invalid number")
	}

	l.pending = append(l.pending, Token{
		Typ:   TokenNumber,
		Text:  text,
		Value: value,
		Pos:   l.start,
	})

	return defaultState
}

// parseNumber classifies a literal with at most one decimal point as an integer
// when its fractional digits are all zero.
func parseNumber(text string) (Number, error) {
	whole, frac, _ := strings.Cut(text, ".")
	if whole == "" {
		whole = "0"
	}

	if strings.Trim(frac, "0") == "" {
		i, ok := new(big.Int).SetString(whole, 10)
		if !ok {
			return Number{}, strconv.ErrSyntax
		}
		return BigInt(i), nil
	}

	f, err := strconv.ParseFloat(whole+"."+frac, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, err
	}

	return Float(f), nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := functionTable[id.String()]; ok {
		return l.emitValue(t, id.String())
	}

	return l.errorf(UnknownIdentifier, l.start, "invalid expression: unknown identifier %q", id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if tok, ok := operatorTable[r]; ok {
		return l.emitValue(tok, string(r))
	}

	return l.errorf(UnrecognizedCharacter, l.start, "invalid expression: unexpected character %q", r)
}

func (l *Lexer) errorf(kind ErrorKind, offset int, format string, args ...interface{}) stateFunc {
	l.err = newError(kind, offset, format, args...)
	l.pending = append(l.pending, Token{
		Typ:  TokenError,
		Text: l.err.Error(),
		Pos:  offset,
	})

	return nil
}

func (l *Lexer) emitEOF() stateFunc {
	l.pending = append(l.pending, Token{
		Typ: TokenEOF,
		Pos: l.pos,
	})

	return nil
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	l.pending = append(l.pending, Token{
		Typ:  t,
		Text: val,
		Pos:  l.start,
	})

	return defaultState
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}
	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	l.pos++
	return r
}
