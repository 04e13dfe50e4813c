package generator

import "github.com/toyz/jsonctx/internal/models"

// DeclarationGenerator defines the interface for turning parsed types into serializer registration lines
type DeclarationGenerator interface {
	CollectTypeReferences(types []models.TypeDeclaration) []string
	Canonicalize(refs []string) []string
	Render(refs []string) (string, bool)
	RenderNames(names []string) (string, bool)
}
