package capidl

import (
	"unicode"

	"github.com/teqdruid/circt/errors"
)

type tokenType int

const (
	tokIdent tokenType = iota
	tokNumber
	tokAt
	tokColon
	tokSemi
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
)

func (t tokenType) String() string {
	switch t {
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokAt:
		return "'@'"
	case tokColon:
		return "':'"
	case tokSemi:
		return "';'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown"
}

type token struct {
	value string
	typ   tokenType
	line  int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '#' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		switch r {
		case '@':
			tokens = append(tokens, token{"@", tokAt, line})
			continue
		case ':':
			tokens = append(tokens, token{":", tokColon, line})
			continue
		case ';':
			tokens = append(tokens, token{";", tokSemi, line})
			continue
		case '{':
			tokens = append(tokens, token{"{", tokLBrace, line})
			continue
		case '}':
			tokens = append(tokens, token{"}", tokRBrace, line})
			continue
		case '(':
			tokens = append(tokens, token{"(", tokLParen, line})
			continue
		case ')':
			tokens = append(tokens, token{")", tokRParen, line})
			continue
		}

		// Number: decimal or 0x hex
		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || c == 'x' || c == 'X' ||
					(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, token{string(runes[start:i]), tokNumber, line})
			i--
			continue
		}

		// Identifier
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, token{string(runes[start:i]), tokIdent, line})
			i--
			continue
		}

		return nil, errors.ParseError(line, "unexpected character %q", string(r))
	}

	return tokens, nil
}
