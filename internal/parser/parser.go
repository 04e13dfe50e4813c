// Package parser is a best-effort structural scanner for C#-style sources. It
// recognizes enough syntax to find class and interface declarations, their
// method signatures, parameters and attribute names, and tolerates everything
// else by skipping it. Nothing in this package returns an error: malformed
// input only yields fewer recognized members.
package parser

import "github.com/toyz/jsonctx/internal/models"

// Parser implements SourceParser on top of the package level functions
type Parser struct{}

// NewParser creates a new source parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements SourceParser
func (p *Parser) Parse(src string) models.FileResult {
	return Parse(src)
}

// Parse sanitizes src and extracts its top-level using directives and type declarations
func Parse(src string) models.FileResult {
	sanitized := Sanitize(src)
	return models.FileResult{
		Usings: parseUsings(sanitized),
		Types:  parseDeclarations(sanitized),
	}
}

// ParseTypes returns only the type declarations found in src
func ParseTypes(src string) []models.TypeDeclaration {
	return Parse(src).Types
}
