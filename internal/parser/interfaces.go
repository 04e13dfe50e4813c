package parser

import "github.com/toyz/jsonctx/internal/models"

// SourceParser defines the interface for turning raw source text into a structural model
type SourceParser interface {
	Parse(src string) models.FileResult
}
