package parser

const (
	// Declaration keywords recognized by the structural scanner
	KeywordClass     = "class"
	KeywordInterface = "interface"

	// Member keywords
	KeywordPublic = "public"
	KeywordUsing  = "using"

	// signaturePublicPrefix is stripped from semicolon-terminated members
	signaturePublicPrefix = "public "
)

// typeModifiers may appear between a type's attribute list and its keyword
var typeModifiers = map[string]bool{
	"public":    true,
	"internal":  true,
	"private":   true,
	"protected": true,
	"partial":   true,
	"sealed":    true,
	"abstract":  true,
	"static":    true,
	"new":       true,
}

// memberModifiers may follow the public keyword of a brace-bodied member
var memberModifiers = map[string]bool{
	"static":   true,
	"virtual":  true,
	"override": true,
	"async":    true,
	"partial":  true,
	"new":      true,
}

// parameterModifiers are stripped from the front of a parameter, at most one per parameter
var parameterModifiers = []string{"in ", "out ", "ref ", "params ", "this "}
