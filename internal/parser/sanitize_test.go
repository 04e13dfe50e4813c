package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newlineOffsets(s string) []int {
	var offsets []int
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func TestSanitize_PreservesLengthAndNewlines(t *testing.T) {
	src := "int x = 1; // trailing note\n" +
		"/* block\n   comment */ string s = \"text \\\" with { brace\";\n" +
		"char c = '\\n'; char d = '{';\n" +
		"string v = @\"C:\\Path \"\"quoted\"\"\nclass Fake {}\";\n"

	result := Sanitize(src)

	assert.Equal(t, len(src), len(result))
	assert.Equal(t, newlineOffsets(src), newlineOffsets(result))
	assert.Contains(t, result, "int x = 1;")
	assert.NotContains(t, result, "trailing")
	assert.NotContains(t, result, "block")
	assert.NotContains(t, result, "brace")
	assert.NotContains(t, result, "Fake")
	assert.NotContains(t, result, "{")
}

func TestSanitize_Cases(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "line comment",
			src:      "a // b\nc",
			expected: "a     \nc",
		},
		{
			name:     "block comment",
			src:      "a /* b */ c",
			expected: "a         c",
		},
		{
			name:     "string with escaped quote",
			src:      `x = "a\"b"; y`,
			expected: `x =       ; y`,
		},
		{
			name:     "verbatim string with doubled quote",
			src:      `x = @"a""b"; y`,
			expected: `x =        ; y`,
		},
		{
			name:     "char literal",
			src:      `c = '}';`,
			expected: `c =    ;`,
		},
		{
			name:     "escaped char literal",
			src:      `c = '\'';`,
			expected: `c =     ;`,
		},
		{
			name:     "unterminated block comment runs to end",
			src:      "a /* public class A {",
			expected: "a" + strings.Repeat(" ", 20),
		},
		{
			name:     "unterminated string runs to end",
			src:      `a "class`,
			expected: "a" + strings.Repeat(" ", 7),
		},
		{
			name:     "empty input",
			src:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.src))
			assert.Len(t, Sanitize(tt.src), len(tt.src))
		})
	}
}

func TestSanitize_BlockCommentKeepsNewlines(t *testing.T) {
	src := "/* one\ntwo\r\nthree */x"
	result := Sanitize(src)

	assert.Equal(t, "      \n    \n        x", result)
}

func TestParse_CommentedDeclarationIsIgnored(t *testing.T) {
	src := `
/* public class Fake { public void M(Dto d) { } } */
// public class AlsoFake { }
`
	assert.Empty(t, ParseTypes(src))
}

func TestParse_BraceInsideLiteralDoesNotBreakBody(t *testing.T) {
	src := `
public class Handler
{
    private const string Open = "{";
    private const char Close = '}';
    public UserDto Get(int id) { return null; }
}`
	types := ParseTypes(src)

	assert.Len(t, types, 1)
	assert.Len(t, types[0].Methods, 1)
	assert.Equal(t, "UserDto", types[0].Methods[0].ReturnType)
}
