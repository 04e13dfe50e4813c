package parser

import (
	"strings"

	"github.com/toyz/jsonctx/internal/models"
)

// parseDeclarations scans sanitized text for class and interface declarations.
// After a declaration is parsed the scan resumes past its closing brace, so
// nested declarations are never reported.
func parseDeclarations(src string) []models.TypeDeclaration {
	types := make([]models.TypeDeclaration, 0)

	for i := 0; i < len(src); {
		index, kind := nextTypeKeyword(src, i)
		if index < 0 {
			break
		}
		keywordEnd := index + len(kind)

		name, _ := readIdentifier(src, keywordEnd)
		open, closing := typeBodyRange(src, index)
		if name == "" || open < 0 {
			i = keywordEnd
			continue
		}

		body := src[open+1 : closing]
		decl := models.TypeDeclaration{
			Kind:       kind,
			Name:       name,
			Attributes: typeAttributes(src, index),
		}
		if decl.IsInterface() {
			decl.Methods = parseSignatureMembers(body)
		} else {
			decl.Methods = parseBodiedMembers(body)
		}

		types = append(types, decl)
		i = closing + 1
	}

	return types
}

// nextTypeKeyword returns the earliest whole-word class or interface keyword at or after start.
func nextTypeKeyword(src string, start int) (int, models.TypeKind) {
	c := indexOfWord(src, KeywordClass, start)
	itf := indexOfWord(src, KeywordInterface, start)

	switch {
	case c < 0 && itf < 0:
		return -1, ""
	case c >= 0 && (itf < 0 || c < itf):
		return c, models.TypeKindClass
	default:
		return itf, models.TypeKindInterface
	}
}

// typeBodyRange locates the first '{' after the keyword and its matching '}'.
func typeBodyRange(src string, keywordIndex int) (int, int) {
	rel := strings.IndexByte(src[keywordIndex:], '{')
	if rel < 0 {
		return -1, -1
	}
	open := keywordIndex + rel
	closing := findMatching(src, open, '{', '}')
	if closing < 0 {
		return -1, -1
	}
	return open, closing
}
