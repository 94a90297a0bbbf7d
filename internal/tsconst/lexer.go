package tsconst

import (
	"errors"
	"strings"
)

// ErrUnterminated is returned for strings or block comments that never close.
var ErrUnterminated = errors.New("unterminated literal")

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokPunct
)

type token struct {
	val   string
	kind  tokenKind
	start int
	end   int
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.val == punct
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// lex splits TypeScript/JavaScript source into the handful of token kinds the
// constants file needs. Comments and whitespace are dropped. Template literals
// are returned as strings without interpolation.
func lex(src string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				i = len(src)
			} else {
				i += nl + 1
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, ErrUnterminated
			}
			i += end + 4
		case c == '\'' || c == '"' || c == '`':
			val, next, err := readString(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, val: val, start: i, end: next})
			i = next
		case isIdentByte(c):
			j := i
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, val: src[i:j], start: i, end: j})
			i = j
		default:
			tokens = append(tokens, token{kind: tokPunct, val: string(c), start: i, end: i + 1})
			i++
		}
	}

	return tokens, nil
}

// readString reads the quoted literal starting at src[start] and returns its
// unescaped value and the offset just past the closing quote.
func readString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder

	for i := start + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
			switch src[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(src[i])
			}
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\n' && quote != '`':
			return "", 0, ErrUnterminated
		default:
			b.WriteByte(c)
		}
	}

	return "", 0, ErrUnterminated
}

// matching returns the index of the token closing the bracket at tokens[open].
func matching(tokens []token, open int) int {
	pairs := map[string]string{"{": "}", "[": "]", "(": ")"}
	closer, ok := pairs[tokens[open].val]
	if !ok || tokens[open].kind != tokPunct {
		return -1
	}
	opener := tokens[open].val

	depth := 0
	for i := open; i < len(tokens); i++ {
		switch {
		case tokens[i].is(opener):
			depth++
		case tokens[i].is(closer):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// quote renders s as a single-quoted literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
