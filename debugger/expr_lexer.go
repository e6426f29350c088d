package debugger

import (
	"fmt"
	"regexp"
)

// lexRule is one entry of the ordered rule table the Lexer matches
// against. Rules are tried in order at each position; the first whose
// pattern matches starting at that position wins, mirroring the
// reference monitor's regex-table lexer (POSIX ERE, first match by
// rule order rather than longest match). Pattern order is therefore
// significant: HEX must be tried before NUM so "0x1f" isn't lexed as
// bare "0", and the two-character operators must precede the
// single-character ones they begin with.
type lexRule struct {
	pattern *regexp.Regexp
	kind    TokenKind
}

var lexRules = []lexRule{
	{regexp.MustCompile(`^ +`), NOTYPE},
	{regexp.MustCompile(`^\+`), Plus},
	{regexp.MustCompile(`^-`), Minus},
	{regexp.MustCompile(`^\*`), Star},
	{regexp.MustCompile(`^/`), Slash},
	{regexp.MustCompile(`^\(`), LParen},
	{regexp.MustCompile(`^\)`), RParen},
	{regexp.MustCompile(`^0[xX][0-9a-fA-F]+`), HEX},
	{regexp.MustCompile(`^[0-9]+`), NUM},
	{regexp.MustCompile(`^\$\$?[a-zA-Z0-9]+`), REG},
	{regexp.MustCompile(`^==`), EQ},
	{regexp.MustCompile(`^!=`), NOTEQ},
	{regexp.MustCompile(`^<=`), LEQ},
	{regexp.MustCompile(`^>=`), REQ},
	{regexp.MustCompile(`^\|\|`), OR},
	{regexp.MustCompile(`^&&`), AND},
	{regexp.MustCompile(`^!`), Not},
}

// Lexer turns an expression string into a bounded token buffer. It
// holds no evaluation logic of its own: Tokenize produces raw tokens
// (Star and Minus not yet disambiguated into DEREF/NEG), and the
// caller runs reinterpretUnary over the result before handing it to
// the evaluator.
type Lexer struct {
	input string
}

// NewLexer creates a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole input into a token buffer. It fails if any
// position matches no rule, if a non-whitespace lexeme exceeds
// MaxLexemeLen, or if the token count would exceed MaxTokens.
// Whitespace runs are discarded whatever their length.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	rest := l.input
	consumed := 0

	for len(rest) > 0 {
		matched := false
		for _, r := range lexRules {
			loc := r.pattern.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := rest[:loc[1]]
			if r.kind != NOTYPE {
				if len(lexeme) > MaxLexemeLen {
					return nil, fmt.Errorf("lex: token %q at offset %d exceeds %d characters", lexeme, consumed, MaxLexemeLen)
				}
				if len(tokens) >= MaxTokens {
					return nil, fmt.Errorf("lex: expression has more than %d tokens", MaxTokens)
				}
				tokens = append(tokens, Token{Kind: r.kind, Lexeme: lexeme})
			}
			rest = rest[loc[1]:]
			consumed += loc[1]
			matched = true
			break
		}
		if !matched {
			return nil, fmt.Errorf("lex: no token matches %q at offset %d", rest, consumed)
		}
	}

	return tokens, nil
}
