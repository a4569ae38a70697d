package engine

import (
	"io"
	"strings"

	"github.com/hlmerscher/hack-toolchain-go/tokenizer"

	"golang.org/x/exp/slices"
)

type matcher struct {
	want string
	ok   func(tokenizer.Token) bool
}

func is(raw string) matcher {
	return matcher{
		want: "'" + raw + "'",
		ok:   func(t tokenizer.Token) bool { return t.Is(raw) },
	}
}

func oneOf(raws ...string) matcher {
	return matcher{
		want: strings.Join(raws, " or "),
		ok: func(t tokenizer.Token) bool {
			return t.Type != tokenizer.STRING_CONST && slices.Contains(raws, t.Raw)
		},
	}
}

func isIdentifier() matcher {
	return matcher{
		want: "an identifier",
		ok:   func(t tokenizer.Token) bool { return t.Type == tokenizer.IDENTIFIER },
	}
}

// isType matches int, char, boolean, or a class name.
func isType() matcher {
	return matcher{
		want: "a type",
		ok: func(t tokenizer.Token) bool {
			return t.Is("int") || t.Is("char") || t.Is("boolean") ||
				t.Type == tokenizer.IDENTIFIER
		},
	}
}

// process consumes the lookahead if any matcher accepts it and advances to
// the next token. End of input after a successful match is not an error;
// the caller notices it on the following process call.
func (c *Compiler) process(matchers ...matcher) (tokenizer.Token, error) {
	token := c.tk.Current

	for _, m := range matchers {
		if !m.ok(token) {
			continue
		}
		if _, err := c.tk.Advance(); err != nil && err != io.EOF {
			return tokenizer.EmptyToken, err
		}
		return token, nil
	}

	wants := make([]string, 0, len(matchers))
	for _, m := range matchers {
		wants = append(wants, m.want)
	}
	return tokenizer.EmptyToken, c.unexpected(strings.Join(wants, " or "), token)
}
