// Package tokenizer turns Jack source into a stream of classified tokens.
package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/slices"
)

type TokenType string

const (
	KEYWORD      = TokenType("keyword")
	SYMBOL       = TokenType("symbol")
	IDENTIFIER   = TokenType("identifier")
	INT_CONST    = TokenType("integerConstant")
	STRING_CONST = TokenType("stringConstant")
)

const maxIntConst = 32767

var EmptyToken = Token{}

// Token carries its classification and payload. Raw holds the literal text;
// string constants hold their content without the surrounding quotes.
type Token struct {
	Raw  string
	Type TokenType
}

func (t Token) Is(raw string) bool {
	return t.Raw == raw && t.Type != STRING_CONST
}

var keywords = []string{
	"class",
	"constructor",
	"function",
	"method",
	"field",
	"static",
	"var",
	"int",
	"char",
	"boolean",
	"void",
	"true",
	"false",
	"null",
	"this",
	"let",
	"do",
	"if",
	"else",
	"while",
	"return",
}

const symbols = "{}()[].,;+-*/&|<>=~"

func New(input io.Reader) *Tokenizer {
	return &Tokenizer{
		input:   bufio.NewReader(input),
		LineNr:  1,
		Current: EmptyToken,
	}
}

// Tokenizer reads the raw source byte stream so whitespace inside string
// constants survives intact. Current is the one-token lookahead.
type Tokenizer struct {
	input   *bufio.Reader
	LineNr  int
	Current Token
}

// Advance reads the next token into Current and returns it. At the end of
// input it resets Current to EmptyToken and reports io.EOF.
func (tk *Tokenizer) Advance() (Token, error) {
	if err := tk.skipBlanks(); err != nil {
		if err == io.EOF {
			tk.Current = EmptyToken
		}
		return EmptyToken, err
	}

	c, err := tk.readByte()
	if err != nil {
		return EmptyToken, err
	}

	switch {
	case c == '"':
		return tk.stringToken()
	case isSymbol(c):
		return tk.emit(Token{Raw: string(c), Type: SYMBOL})
	case isDigit(c):
		return tk.intToken(c)
	case isIdentByte(c):
		return tk.wordToken(c)
	}

	return EmptyToken, fmt.Errorf("line %d: unexpected character %q", tk.LineNr, c)
}

func (tk *Tokenizer) emit(token Token) (Token, error) {
	tk.Current = token
	return token, nil
}

// skipBlanks strips whitespace and comment spans until the next significant
// character is ahead in the stream. That character is only peeked, so it is
// left for Advance to consume.
func (tk *Tokenizer) skipBlanks() error {
	for {
		c, err := tk.peekByte()
		if err != nil {
			return err
		}

		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			tk.readByte()
			continue
		}

		if c != '/' {
			return nil
		}

		ahead, err := tk.input.Peek(2)
		if err != nil || ahead[1] != '/' && ahead[1] != '*' {
			// a lone slash is the division operator
			return nil
		}

		tk.readByte()
		tk.readByte()
		if ahead[1] == '/' {
			if err := tk.skipLineComment(); err != nil {
				return err
			}
		} else if err := tk.skipBlockComment(); err != nil {
			return err
		}
	}
}

func (tk *Tokenizer) skipLineComment() error {
	for {
		c, err := tk.readByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

func (tk *Tokenizer) skipBlockComment() error {
	opened := tk.LineNr
	var prev byte
	for {
		c, err := tk.readByte()
		if err == io.EOF {
			return fmt.Errorf("line %d: unterminated comment", opened)
		}
		if err != nil {
			return err
		}
		if prev == '*' && c == '/' {
			return nil
		}
		prev = c
	}
}

func (tk *Tokenizer) stringToken() (Token, error) {
	opened := tk.LineNr
	var content []byte
	for {
		c, err := tk.readByte()
		if err == io.EOF || c == '\n' {
			return EmptyToken, fmt.Errorf("line %d: unterminated string constant", opened)
		}
		if err != nil {
			return EmptyToken, err
		}
		if c == '"' {
			return tk.emit(Token{Raw: string(content), Type: STRING_CONST})
		}
		content = append(content, c)
	}
}

func (tk *Tokenizer) intToken(first byte) (Token, error) {
	raw := []byte{first}
	for {
		c, err := tk.peekByte()
		if err != nil || !isDigit(c) {
			break
		}
		tk.readByte()
		raw = append(raw, c)
	}

	value, err := strconv.Atoi(string(raw))
	if err != nil || value > maxIntConst {
		return EmptyToken, fmt.Errorf("line %d: integer constant %s out of range", tk.LineNr, raw)
	}

	return tk.emit(Token{Raw: string(raw), Type: INT_CONST})
}

func (tk *Tokenizer) wordToken(first byte) (Token, error) {
	raw := []byte{first}
	for {
		c, err := tk.peekByte()
		if err != nil || !isIdentByte(c) && !isDigit(c) {
			break
		}
		tk.readByte()
		raw = append(raw, c)
	}

	tokenType := IDENTIFIER
	if slices.Contains(keywords, string(raw)) {
		tokenType = KEYWORD
	}

	return tk.emit(Token{Raw: string(raw), Type: tokenType})
}

func (tk *Tokenizer) readByte() (byte, error) {
	c, err := tk.input.ReadByte()
	if c == '\n' {
		tk.LineNr++
	}
	return c, err
}

func (tk *Tokenizer) peekByte() (byte, error) {
	buf, err := tk.input.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func isSymbol(c byte) bool {
	for i := 0; i < len(symbols); i++ {
		if symbols[i] == c {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
