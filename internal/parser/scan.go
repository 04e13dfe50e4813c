package parser

import "strings"

// The scanning helpers below are pure functions over (text, offset). Each one
// returns the offset it stopped at so callers can chain them without a shared cursor.

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// isIdentByte treats any non-ASCII byte as part of an identifier so UTF-8
// encoded letters are never split.
func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isIdentStart(c byte) bool {
	return isIdentByte(c) && !('0' <= c && c <= '9')
}

func skipWhitespace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipWhitespaceBackward(s string, i int) int {
	for i >= 0 && isSpace(s[i]) {
		i--
	}
	return i
}

// readIdentifier skips whitespace and returns the run of identifier bytes that follows.
func readIdentifier(s string, i int) (string, int) {
	i = skipWhitespace(s, i)
	start := i
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[start:i], i
}

// readWord is readIdentifier restricted to words that start with a letter or underscore.
func readWord(s string, i int) (string, int) {
	i = skipWhitespace(s, i)
	if i >= len(s) || !isIdentStart(s[i]) {
		return "", i
	}
	return readIdentifier(s, i)
}

// readTypeToken reads a type spelling such as Dictionary<string, int>. It stops
// at whitespace or '(' outside angle brackets; a stray '>' never drives the depth negative.
func readTypeToken(s string, i int) (string, int) {
	i = skipWhitespace(s, i)
	start := i
	angle := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '<':
			angle++
		case c == '>':
			angle = max(0, angle-1)
		case angle == 0 && (isSpace(c) || c == '('):
			return s[start:i], i
		}
		i++
	}
	return s[start:i], i
}

// skipModifiers advances past any sequence of words contained in modifiers.
func skipModifiers(s string, i int, modifiers map[string]bool) int {
	for {
		i = skipWhitespace(s, i)
		word, end := readWord(s, i)
		if word == "" || !modifiers[word] {
			return i
		}
		i = end
	}
}

// findMatching returns the index of the bracket closing the one at open, or -1.
func findMatching(s string, open int, openCh, closeCh byte) int {
	if open < 0 || open >= len(s) {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// findMatchingBackward walks left from the closing bracket at close to its opener.
func findMatchingBackward(s string, close int, openCh, closeCh byte) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch s[i] {
		case closeCh:
			depth++
		case openCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isWordAt reports whether word occurs at i with identifier boundaries on both sides.
func isWordAt(s string, i int, word string) bool {
	if i < 0 || i+len(word) > len(s) || s[i:i+len(word)] != word {
		return false
	}
	if i > 0 && isIdentByte(s[i-1]) {
		return false
	}
	end := i + len(word)
	return end >= len(s) || !isIdentByte(s[end])
}

// indexOfWord finds the first whole-word occurrence of word at or after start.
func indexOfWord(s, word string, start int) int {
	for start <= len(s)-len(word) {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return -1
		}
		idx += start
		if isWordAt(s, idx, word) {
			return idx
		}
		start = idx + 1
	}
	return -1
}

// nesting tracks angle, paren and square depth independently.
type nesting struct {
	angle, paren, square int
}

func (n *nesting) track(c byte) {
	switch c {
	case '<':
		n.angle++
	case '>':
		n.angle = max(0, n.angle-1)
	case '(':
		n.paren++
	case ')':
		n.paren = max(0, n.paren-1)
	case '[':
		n.square++
	case ']':
		n.square = max(0, n.square-1)
	}
}

func (n *nesting) topLevel() bool {
	return n.angle == 0 && n.paren == 0 && n.square == 0
}

// splitTopLevel splits s on sep wherever no bracket of any kind is open.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var depth nesting
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == sep && depth.topLevel() {
			parts = append(parts, s[start:i])
			start = i + 1
			continue
		}
		depth.track(c)
	}
	return append(parts, s[start:])
}

// indexTopLevel returns the first index of ch outside every bracket kind, or -1.
func indexTopLevel(s string, ch byte) int {
	var depth nesting
	for i := 0; i < len(s); i++ {
		if s[i] == ch && depth.topLevel() {
			return i
		}
		depth.track(s[i])
	}
	return -1
}

// indexOutsideAngles returns the first index of ch at angle depth zero, or -1.
func indexOutsideAngles(s string, ch byte) int {
	angle := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '<':
			angle++
		case c == '>':
			angle = max(0, angle-1)
		case c == ch && angle == 0:
			return i
		}
	}
	return -1
}

// SplitWhitespaceTopLevel splits s on whitespace outside angle brackets, so
// "Dictionary<string, int> map" yields two tokens.
func SplitWhitespaceTopLevel(s string) []string {
	var tokens []string
	i := 0
	for i < len(s) {
		i = skipWhitespace(s, i)
		if i >= len(s) {
			break
		}
		start := i
		angle := 0
		for i < len(s) {
			c := s[i]
			if c == '<' {
				angle++
			} else if c == '>' {
				angle = max(0, angle-1)
			} else if angle == 0 && isSpace(c) {
				break
			}
			i++
		}
		tokens = append(tokens, s[start:i])
	}
	return tokens
}
