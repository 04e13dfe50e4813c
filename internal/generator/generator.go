// Package generator turns parsed type declarations into the sorted, deduplicated
// list of [JsonSerializable(typeof(T))] registrations.
package generator

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/toyz/jsonctx/internal/models"
)

// declarationFormat renders one registration line for a canonical type name
const declarationFormat = "[JsonSerializable(typeof(%s))]"

// Generator implements the DeclarationGenerator interface
type Generator struct {
	rules         *Rules
	lineSeparator string
}

// NewGenerator creates a generator with the default rules and the platform line separator
func NewGenerator() *Generator {
	return NewGeneratorWithRules(DefaultRules(), LineSeparator())
}

// NewGeneratorWithRules creates a generator with custom exclusion rules and line separator
func NewGeneratorWithRules(rules *Rules, lineSeparator string) *Generator {
	if rules == nil {
		rules = DefaultRules()
	}
	if lineSeparator == "" {
		lineSeparator = LineSeparator()
	}
	return &Generator{rules: rules, lineSeparator: lineSeparator}
}

// LineSeparator returns the host platform's line terminator
func LineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// CollectTypeReferences implements DeclarationGenerator
func (g *Generator) CollectTypeReferences(types []models.TypeDeclaration) []string {
	return CollectTypeReferences(types)
}

// Canonicalize implements DeclarationGenerator
func (g *Generator) Canonicalize(refs []string) []string {
	set := NewTypeNameSet()
	for _, ref := range refs {
		name := Normalize(ref)
		if g.rules.Excludes(name) {
			continue
		}
		set.Add(name)
	}
	return set.Sorted()
}

// Render implements DeclarationGenerator. The boolean is false when nothing survives filtering.
func (g *Generator) Render(refs []string) (string, bool) {
	return g.RenderNames(g.Canonicalize(refs))
}

// RenderNames renders names that are already canonical, in the order given
func (g *Generator) RenderNames(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = Declaration(name)
	}
	return strings.Join(lines, g.lineSeparator), true
}

// Declaration renders the registration line for one type name
func Declaration(name string) string {
	return fmt.Sprintf(declarationFormat, name)
}

// CollectTypeReferences lists the normalized return and parameter types of every
// method, in type, method, return-then-parameters order. Blank references are dropped.
func CollectTypeReferences(types []models.TypeDeclaration) []string {
	refs := make([]string, 0)
	add := func(raw string) {
		if ref := Normalize(raw); ref != "" {
			refs = append(refs, ref)
		}
	}

	for _, t := range types {
		for _, m := range t.Methods {
			add(m.ReturnType)
			for _, p := range m.Parameters {
				add(p.Type)
			}
		}
	}
	return refs
}

// RenderWith renders refs with explicit rules and line separator
func RenderWith(refs []string, rules *Rules, lineSeparator string) (string, bool) {
	return NewGeneratorWithRules(rules, lineSeparator).Render(refs)
}

// RenderDeclarations renders refs with the default rules and the platform line separator
func RenderDeclarations(refs []string) (string, bool) {
	return NewGenerator().Render(refs)
}
