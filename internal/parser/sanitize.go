package parser

type lexState int

const (
	stateCode lexState = iota
	stateLineComment
	stateBlockComment
	stateString
	stateVerbatimString
	stateChar
)

// Sanitize blanks comments and the contents of string and char literals.
// The result has the same length as src and keeps every newline, so offsets
// into the sanitized text are valid offsets into src.
func Sanitize(src string) string {
	out := make([]byte, len(src))
	state := stateCode

	for i := 0; i < len(src); i++ {
		c := src[i]
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}

		switch state {
		case stateLineComment:
			if c == '\n' {
				state = stateCode
			}
			out[i] = blank(c)

		case stateBlockComment:
			if c == '*' && next == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateCode
				continue
			}
			out[i] = blank(c)

		case stateVerbatimString:
			if c == '"' && next == '"' {
				out[i], out[i+1] = ' ', ' '
				i++
				continue
			}
			if c == '"' {
				state = stateCode
			}
			out[i] = blank(c)

		case stateString, stateChar:
			if c == '\\' {
				out[i] = ' '
				if i+1 < len(src) {
					out[i+1] = blank(next)
					i++
				}
				continue
			}
			if (state == stateString && c == '"') || (state == stateChar && c == '\'') {
				state = stateCode
			}
			out[i] = blank(c)

		default:
			switch {
			case c == '/' && next == '/':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateLineComment
			case c == '/' && next == '*':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateBlockComment
			case c == '@' && next == '"':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateVerbatimString
			case c == '"':
				out[i] = ' '
				state = stateString
			case c == '\'':
				out[i] = ' '
				state = stateChar
			default:
				out[i] = c
			}
		}
	}

	return string(out)
}

func blank(c byte) byte {
	if c == '\n' {
		return '\n'
	}
	return ' '
}
