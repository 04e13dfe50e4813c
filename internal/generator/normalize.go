package generator

import (
	"strings"

	"github.com/toyz/jsonctx/internal/parser"
)

// Qualifiers removed wherever they occur in a type reference
const (
	globalQualifier = "global::"
	systemQualifier = "System."
)

// asyncWrapperPrefixes are the single-result future types whose argument is the
// type of interest. The long forms are what remains of System.Threading.Tasks
// once the System. qualifier is gone.
var asyncWrapperPrefixes = []string{
	"Task<",
	"Threading.Tasks.Task<",
	"ValueTask<",
	"Threading.Tasks.ValueTask<",
}

// Normalize turns a raw type reference into its canonical name: nullable
// markers and common qualifiers are removed, top-level whitespace is collapsed
// and one level of Task<T>/ValueTask<T> is unwrapped. An empty result means the
// reference should be dropped.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}

	t = strings.ReplaceAll(t, "?", "")
	t = strings.ReplaceAll(t, globalQualifier, "")
	t = strings.ReplaceAll(t, systemQualifier, "")
	t = strings.Join(parser.SplitWhitespaceTopLevel(t), " ")

	return unwrapAsync(t)
}

// unwrapAsync slices the argument out of an async wrapper by position. The
// inner text is not checked for balance.
func unwrapAsync(t string) string {
	if !strings.HasSuffix(t, ">") {
		return t
	}
	for _, prefix := range asyncWrapperPrefixes {
		if !strings.HasPrefix(t, prefix) {
			continue
		}
		start, end := len(prefix), len(t)-1
		if start >= end {
			return t
		}
		return strings.TrimSpace(t[start:end])
	}
	return t
}
