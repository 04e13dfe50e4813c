package models

// TypeKind identifies which declaration keyword introduced a type
type TypeKind string

const (
	TypeKindClass     TypeKind = "class"
	TypeKindInterface TypeKind = "interface"
)

// String returns the declaration keyword
func (k TypeKind) String() string {
	return string(k)
}

// Parameter represents one formal parameter of a method signature
type Parameter struct {
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

// Method represents one member signature discovered inside a type body
type Method struct {
	ReturnType string      `json:"return_type"`
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	Attributes []string    `json:"attributes"`
}

// TypeDeclaration represents a class or interface declaration.
// Methods keep source order; identical signatures are kept as separate entries.
type TypeDeclaration struct {
	Kind       TypeKind `json:"kind"`
	Name       string   `json:"name"`
	Methods    []Method `json:"methods"`
	Attributes []string `json:"attributes"`
}

// IsInterface reports whether the declaration was introduced by the interface keyword
func (t TypeDeclaration) IsInterface() bool {
	return t.Kind == TypeKindInterface
}

// FileResult holds everything recognized in a single source file
type FileResult struct {
	Usings []string          `json:"usings"`
	Types  []TypeDeclaration `json:"types"`
}

// MethodCount returns the number of methods across all types in the file
func (f FileResult) MethodCount() int {
	count := 0
	for _, t := range f.Types {
		count += len(t.Methods)
	}
	return count
}
