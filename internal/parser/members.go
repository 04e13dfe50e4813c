package parser

import (
	"strings"

	"github.com/toyz/jsonctx/internal/models"
)

// parseBodiedMembers extracts public methods from a class body, where each
// member looks like "[Attr] public static Task<T> Name(params) { ... }".
func parseBodiedMembers(body string) []models.Method {
	methods := make([]models.Method, 0)

	for i := 0; i < len(body); {
		pub := indexOfWord(body, KeywordPublic, i)
		if pub < 0 {
			break
		}

		method, next, ok := parseBodiedMethod(body, pub)
		if !ok {
			i = pub + len(KeywordPublic)
			continue
		}
		methods = append(methods, method)
		i = next
	}

	return methods
}

// parseBodiedMethod tries to read one method signature whose public keyword is at pub.
// On success it returns the offset just past the closing parenthesis.
func parseBodiedMethod(body string, pub int) (models.Method, int, bool) {
	attrs := attributesBefore(body, pub)

	scan := skipModifiers(body, pub+len(KeywordPublic), memberModifiers)

	returnType, scan := readTypeToken(body, scan)
	if strings.TrimSpace(returnType) == "" {
		return models.Method{}, pub, false
	}

	name, scan := readWord(body, scan)
	if name == "" {
		return models.Method{}, pub, false
	}

	scan = skipWhitespace(body, scan)
	if scan >= len(body) || body[scan] != '(' {
		return models.Method{}, pub, false
	}
	closeParen := findMatching(body, scan, '(', ')')
	if closeParen < 0 {
		return models.Method{}, pub, false
	}

	return models.Method{
		ReturnType: strings.TrimSpace(returnType),
		Name:       name,
		Parameters: parseParameters(body[scan+1 : closeParen]),
		Attributes: attrs,
	}, closeParen + 1, true
}

// parseSignatureMembers extracts semicolon-terminated signatures from an interface body.
func parseSignatureMembers(body string) []models.Method {
	methods := make([]models.Method, 0)

	i := 0
	for i < len(body) {
		var attrs []string
		attrs, i = attributesAt(body, i)

		semi := strings.IndexByte(body[i:], ';')
		if semi < 0 {
			break
		}
		semi += i
		stmt := strings.TrimSpace(body[i:semi])
		i = semi + 1

		if method, ok := parseSignature(stmt, attrs); ok {
			methods = append(methods, method)
		}
	}

	return methods
}

// parseSignature reads "ReturnType Name(params)" from a single statement.
func parseSignature(stmt string, attrs []string) (models.Method, bool) {
	if stmt == "" || strings.Contains(stmt, "{") {
		return models.Method{}, false
	}
	// The tail of a property accessor block ("} void Next()") belongs to the previous member.
	if idx := strings.LastIndexByte(stmt, '}'); idx >= 0 {
		stmt = strings.TrimSpace(stmt[idx+1:])
	}
	if !strings.Contains(stmt, "(") || !strings.Contains(stmt, ")") {
		return models.Method{}, false
	}

	if strings.HasPrefix(stmt, signaturePublicPrefix) {
		stmt = strings.TrimLeft(stmt[len(signaturePublicPrefix):], " \t\r\n")
	}

	openParen := indexOutsideAngles(stmt, '(')
	closeParen := findMatching(stmt, openParen, '(', ')')
	if openParen < 0 || closeParen < 0 {
		return models.Method{}, false
	}

	tokens := SplitWhitespaceTopLevel(strings.TrimSpace(stmt[:openParen]))
	if len(tokens) < 2 {
		return models.Method{}, false
	}

	return models.Method{
		ReturnType: strings.Join(tokens[:len(tokens)-1], " "),
		Name:       tokens[len(tokens)-1],
		Parameters: parseParameters(stmt[openParen+1 : closeParen]),
		Attributes: attrs,
	}, true
}
