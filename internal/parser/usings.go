package parser

import "strings"

// parseUsings returns the using directives found outside any braces, from the
// keyword up to but excluding the terminating semicolon.
func parseUsings(src string) []string {
	usings := make([]string, 0)

	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
			continue
		case '}':
			depth = max(0, depth-1)
			continue
		}
		if depth != 0 || !isWordAt(src, i, KeywordUsing) {
			continue
		}

		semi := strings.IndexByte(src[i:], ';')
		if semi < 0 {
			break
		}
		if text := strings.TrimSpace(src[i : i+semi]); text != "" {
			usings = append(usings, text)
		}
		i += semi
	}

	return usings
}
