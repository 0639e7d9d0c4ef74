package minp

var trigTable = map[TokenType]TrigFunc{
	TokenSin: TrigSin,
	TokenCos: TrigCos,
	TokenTan: TrigTan,
	TokenCot: TrigCot,
}

var termTable = map[TokenType]BinaryOp{
	TokenPow:      BinaryPower,
	TokenMultiply: BinaryMultiplication,
	TokenDivide:   BinaryDivision,
	TokenMod:      BinaryModulo,
}

// maxDepth bounds nesting: every parenthesis, sign, function and chained operator
// on the way to a token adds a level.
const maxDepth = 1000

// Parser builds a single expression tree from a Tokenizer by recursive descent:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('^' | '*' | '/' | '%') factor)*
//	factor := NUMBER | '(' expr ')' | ('+' | '-') factor | FUNC '(' expr ')'
//
// Exponentiation shares its tier with multiplication and is left associative.
type Parser struct {
	tokenizer Tokenizer
	buf       *Token
	depth     int
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Parse returns the root of the tree. Empty input yields a nil Node and a nil error.
func (p *Parser) Parse() (Node, error) {
	if p.check(TokenEOF) {
		return nil, nil
	}

	root, err := p.expr()
	if err != nil {
		return nil, err
	}

	switch tok := p.peek(); tok.Typ {
	case TokenEOF:
		return root, nil
	case TokenError:
		return nil, p.tokenizer.Err()
	default:
		return nil, newError(TrailingInput, tok.Pos, "invalid expression: unexpected %s after expression", tok)
	}
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.tokenizer.Next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	tok := p.peek()
	if tok.Typ != TokenEOF && tok.Typ != TokenError {
		// EOF and errors stay buffered since no more tokens are expected
		p.buf = nil
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.next()
	if tok.Typ == typ {
		return tok, nil
	}

	return tok, p.unexpected(tok, what)
}

func (p *Parser) unexpected(tok Token, what string) error {
	switch tok.Typ {
	case TokenError:
		return p.tokenizer.Err()
	case TokenEOF:
		return newError(UnexpectedToken, tok.Pos, "invalid expression: expected %s, got end of input", what)
	default:
		return newError(UnexpectedToken, tok.Pos, "invalid expression: expected %s, got %s", what, tok)
	}
}

// descend adds a level of nesting at tok. Callers restore depth when they return.
func (p *Parser) descend(tok Token) error {
	p.depth++
	if p.depth > maxDepth {
		return newError(NestingTooDeep, tok.Pos, "invalid expression: nested deeper than %d levels", maxDepth)
	}

	return nil
}

func (p *Parser) expr() (Node, error) {
	defer func(depth int) { p.depth = depth }(p.depth)

	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Typ != TokenPlus && tok.Typ != TokenMinus {
			return lhs, nil
		}

		p.next()
		if err := p.descend(tok); err != nil {
			return nil, err
		}

		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		op := BinaryAddition
		if tok.Typ == TokenMinus {
			op = BinarySubtraction
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
			Loc:       Location{tok.Pos},
		}
	}
}

func (p *Parser) term() (Node, error) {
	defer func(depth int) { p.depth = depth }(p.depth)

	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		op, ok := termTable[tok.Typ]
		if !ok {
			return lhs, nil
		}

		p.next()
		if err := p.descend(tok); err != nil {
			return nil, err
		}

		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
			Loc:       Location{tok.Pos},
		}
	}
}

func (p *Parser) factor() (Node, error) {
	tok := p.peek()
	if tok.Typ == TokenNumber {
		p.next()
		return &NumberLit{
			Value: tok.Value,
			Loc:   Location{tok.Pos},
		}, nil
	}

	defer func(depth int) { p.depth = depth }(p.depth)
	if err := p.descend(tok); err != nil {
		return nil, err
	}

	switch {
	case tok.Typ == TokenOpenParentheses:
		return p.parenthesisedExpression()
	case tok.Typ == TokenPlus || tok.Typ == TokenMinus:
		return p.unaryExpr()
	case tok.Typ.isFunction():
		return p.trigExpr()
	default:
		p.next()
		return nil, p.unexpected(tok, "a number, '(', a sign or a function")
	}
}

func (p *Parser) parenthesisedExpression() (Node, error) {
	if _, err := p.expect(TokenOpenParentheses, "'('"); err != nil {
		return nil, err
	}

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "')'"); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) unaryExpr() (Node, error) {
	tok := p.next()

	// Signs nest right to left: --3 is -(-3)
	operand, err := p.factor()
	if err != nil {
		return nil, err
	}

	op := UnaryPositive
	if tok.Typ == TokenMinus {
		op = UnaryNegative
	}

	return &UnaryExpr{
		Operation: op,
		Operand:   operand,
		Loc:       Location{tok.Pos},
	}, nil
}

func (p *Parser) trigExpr() (Node, error) {
	tok := p.next()

	if !p.check(TokenOpenParentheses) {
		return nil, p.unexpected(p.next(), "'(' after "+tok.Text)
	}

	arg, err := p.parenthesisedExpression()
	if err != nil {
		return nil, err
	}

	return &TrigExpr{
		Func: trigTable[tok.Typ],
		Arg:  arg,
		Loc:  Location{tok.Pos},
	}, nil
}
