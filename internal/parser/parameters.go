package parser

import (
	"strings"

	"github.com/toyz/jsonctx/internal/models"
)

// parseParameters splits a parameter list such as
// "[FromBody] Dictionary<string, int> map, ref int count = 0" into parameters.
// Segments that do not yield both a type and a name are dropped.
func parseParameters(list string) []models.Parameter {
	params := make([]models.Parameter, 0)
	if strings.TrimSpace(list) == "" {
		return params
	}

	for _, raw := range splitTopLevel(list, ',') {
		if p, ok := parseParameter(raw); ok {
			params = append(params, p)
		}
	}
	return params
}

func parseParameter(raw string) (models.Parameter, bool) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return models.Parameter{}, false
	}

	if eq := indexTopLevel(p, '='); eq >= 0 {
		p = strings.TrimSpace(p[:eq])
	}

	attrs := make([]string, 0)
	for strings.HasPrefix(p, "[") {
		end := findMatching(p, 0, '[', ']')
		if end < 0 {
			break
		}
		attrs = append(attrs, ExtractAttributeNames(p[:end+1])...)
		p = strings.TrimSpace(p[end+1:])
	}

	for _, mod := range parameterModifiers {
		if strings.HasPrefix(p, mod) {
			p = strings.TrimSpace(p[len(mod):])
			break
		}
	}

	tokens := SplitWhitespaceTopLevel(p)
	if len(tokens) < 2 {
		return models.Parameter{}, false
	}

	return models.Parameter{
		Type:       strings.Join(tokens[:len(tokens)-1], " "),
		Name:       tokens[len(tokens)-1],
		Attributes: attrs,
	}, true
}
