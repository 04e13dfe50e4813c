package generator

import "strings"

// CallContextSuffix marks framework call-context types that are never serialized
const CallContextSuffix = "CallContext"

// builtinExclusions are types the serializer context already handles or that
// carry no payload. Matching is exact and case-sensitive.
var builtinExclusions = []string{
	// no payload, or an async wrapper without a type argument
	"void",
	"Void",
	"Task",
	"ValueTask",
	"Threading.Tasks.Task",
	"Threading.Tasks.ValueTask",

	// scalar keywords
	"bool",
	"byte",
	"sbyte",
	"char",
	"decimal",
	"double",
	"float",
	"int",
	"uint",
	"long",
	"ulong",
	"short",
	"ushort",
	"string",
	"object",

	// scalar class names
	"Boolean",
	"Byte",
	"SByte",
	"Char",
	"Decimal",
	"Double",
	"Single",
	"Int32",
	"UInt32",
	"Int64",
	"UInt64",
	"Int16",
	"UInt16",
	"String",
	"Object",

	// common value types
	"DateTime",
	"DateTimeOffset",
	"TimeSpan",
	"Guid",
	"Uri",
}

// Rules decides which canonical type names are left out of the output.
// A Rules value is read-only once built and safe to share between goroutines.
type Rules struct {
	excluded map[string]struct{}
	suffixes []string
}

// DefaultRules returns the built-in exclusion list and the CallContext suffix rule
func DefaultRules() *Rules {
	return NewRules(nil, nil)
}

// NewRules extends the default rules with extra exact names and extra bare-name suffixes.
// Blank entries are ignored.
func NewRules(extraExcluded, extraSuffixes []string) *Rules {
	r := &Rules{
		excluded: make(map[string]struct{}, len(builtinExclusions)+len(extraExcluded)),
		suffixes: []string{CallContextSuffix},
	}
	for _, name := range builtinExclusions {
		r.excluded[name] = struct{}{}
	}
	for _, name := range extraExcluded {
		if name = strings.TrimSpace(name); name != "" {
			r.excluded[name] = struct{}{}
		}
	}
	for _, suffix := range extraSuffixes {
		if suffix = strings.TrimSpace(suffix); suffix != "" && suffix != CallContextSuffix {
			r.suffixes = append(r.suffixes, suffix)
		}
	}
	return r
}

// Excludes reports whether a canonical name must not be emitted
func (r *Rules) Excludes(name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}
	if _, ok := r.excluded[name]; ok {
		return true
	}
	bare := BareTypeName(name)
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(bare, suffix) {
			return true
		}
	}
	return false
}

// BareTypeName strips generic arguments and the namespace from a type name,
// so "Rpc.ICallContext<T>" becomes "ICallContext".
func BareTypeName(name string) string {
	if idx := strings.IndexByte(name, '<'); idx > 0 {
		name = name[:idx]
	}
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
