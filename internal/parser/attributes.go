package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// attributeLexer splits an attribute block into brackets, commas, whitespace
// runs and everything else. Word is the complement of the other rules so every
// input lexes.
var attributeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Punct", Pattern: `[\[\](),<>]`},
	{Name: "Word", Pattern: `[^\s\[\](),<>]+`},
})

// tokenizeAttributeBlock lexes block and drops the trailing EOF token.
func tokenizeAttributeBlock(block string) []lexer.Token {
	lex, err := attributeLexer.LexString("", block)
	if err != nil {
		return nil
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}
	if n := len(tokens); n > 0 && tokens[n-1].EOF() {
		tokens = tokens[:n-1]
	}
	return tokens
}

// ExtractAttributeNames returns the attribute names in one bracketed group such as
// [Route(...), Authorize]. Argument lists are skipped.
func ExtractAttributeNames(block string) []string {
	tokens := tokenizeAttributeBlock(block)
	names := make([]string, 0)

	for i := 0; i < len(tokens); {
		v := tokens[i].Value
		if v == "]" {
			break
		}
		if v == "[" || v == "," || strings.TrimSpace(v) == "" {
			i++
			continue
		}

		var name strings.Builder
		angle := 0
		for ; i < len(tokens); i++ {
			v = tokens[i].Value
			if v == "<" {
				angle++
			} else if v == ">" {
				angle = max(0, angle-1)
			}
			if angle == 0 && (v == "(" || v == "," || v == "]") {
				break
			}
			name.WriteString(v)
		}
		if n := strings.TrimSpace(name.String()); n != "" {
			names = append(names, n)
		}

		if i < len(tokens) && tokens[i].Value == "(" {
			if closing := matchingToken(tokens, i, "(", ")"); closing > i {
				i = closing + 1
			} else {
				i++
			}
		}
	}

	return names
}

func matchingToken(tokens []lexer.Token, open int, openValue, closeValue string) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Value {
		case openValue:
			depth++
		case closeValue:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// attributesBefore collects every attribute group that ends immediately before
// index, separated only by whitespace. Groups are returned in source order.
func attributesBefore(src string, index int) []string {
	var groups [][]string

	i := index - 1
	for {
		i = skipWhitespaceBackward(src, i)
		if i < 0 || src[i] != ']' {
			break
		}
		open := findMatchingBackward(src, i, '[', ']')
		if open < 0 {
			break
		}
		groups = append(groups, ExtractAttributeNames(src[open:i+1]))
		i = open - 1
	}

	attrs := make([]string, 0)
	for g := len(groups) - 1; g >= 0; g-- {
		attrs = append(attrs, groups[g]...)
	}
	return attrs
}

// typeAttributes walks back from a type keyword over modifiers such as
// "public sealed partial" and returns the attribute groups found before them.
func typeAttributes(src string, keywordIndex int) []string {
	i := keywordIndex - 1
	for i >= 0 {
		i = skipWhitespaceBackward(src, i)
		if i < 0 {
			break
		}
		if src[i] == ']' {
			return attributesBefore(src, i+1)
		}
		if !isIdentByte(src[i]) {
			break
		}

		start := i
		for start >= 0 && isIdentByte(src[start]) {
			start--
		}
		if !typeModifiers[src[start+1:i+1]] {
			break
		}
		i = start
	}
	return make([]string, 0)
}

// attributesAt consumes attribute groups starting at index and returns their
// names together with the offset of the first non-attribute text.
func attributesAt(src string, index int) ([]string, int) {
	attrs := make([]string, 0)
	index = skipWhitespace(src, index)
	for index < len(src) && src[index] == '[' {
		end := findMatching(src, index, '[', ']')
		if end < 0 {
			break
		}
		attrs = append(attrs, ExtractAttributeNames(src[index:end+1])...)
		index = skipWhitespace(src, end+1)
	}
	return attrs, index
}
