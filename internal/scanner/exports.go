// Package scanner extracts exported identifiers from JavaScript and TypeScript
// modules without evaluating them.
package scanner

import (
	"regexp"
	"strings"
	"unicode"
)

// Exports is the export surface of a single module
type Exports struct {
	Names     []string // Named value exports, in source order
	Default   bool     // Module has a default export
	ReExports []string // Specifiers of `export * from '...'` statements
}

var (
	declRe = regexp.MustCompile(`(?m)^\s*export\s+(?:declare\s+)?(?:async\s+)?(function\s*\*?|const\s+enum|const|let|var|class|abstract\s+class|enum|type|interface|namespace)\s+([A-Za-z_$][\w$]*)`)
	listRe = regexp.MustCompile(`(?s)export\s+(type\s+)?\{([^}]*)\}`)
	starRe = regexp.MustCompile(`export\s+\*\s+from\s+['"]([^'"]+)['"]`)
	nsRe   = regexp.MustCompile(`export\s+\*\s+as\s+([A-Za-z_$][\w$]*)\s+from`)
	defRe  = regexp.MustCompile(`(?m)^\s*export\s+default\b`)
)

// ParseExports returns the value exports of src. Type-only exports
// (`export type`, `export interface`, `export { type X }`) are omitted.
func ParseExports(src string) Exports {
	src = stripComments(src)

	var ex Exports
	seen := map[string]bool{}
	add := func(name string) {
		if name == "" || name == "default" || seen[name] {
			return
		}
		seen[name] = true
		ex.Names = append(ex.Names, name)
	}

	type match struct {
		pos   int
		names []string
	}
	var matches []match

	for _, m := range declRe.FindAllStringSubmatchIndex(src, -1) {
		kind := strings.Join(strings.Fields(src[m[2]:m[3]]), " ")
		if kind == "type" || kind == "interface" {
			continue
		}
		matches = append(matches, match{pos: m[0], names: []string{src[m[4]:m[5]]}})
	}

	for _, m := range listRe.FindAllStringSubmatchIndex(src, -1) {
		if m[2] >= 0 {
			continue
		}
		var names []string
		for _, spec := range strings.Split(src[m[4]:m[5]], ",") {
			fields := strings.Fields(spec)
			if len(fields) == 0 || fields[0] == "type" {
				continue
			}
			local := fields[0]
			name := local
			if len(fields) == 3 && fields[1] == "as" {
				name = fields[2]
			}
			if name == "default" {
				ex.Default = true
				continue
			}
			names = append(names, name)
		}
		matches = append(matches, match{pos: m[0], names: names})
	}

	for _, m := range nsRe.FindAllStringSubmatchIndex(src, -1) {
		matches = append(matches, match{pos: m[0], names: []string{src[m[2]:m[3]]}})
	}

	sortMatches(matches, func(a, b match) bool { return a.pos < b.pos })
	for _, m := range matches {
		for _, n := range m.names {
			add(n)
		}
	}

	for _, m := range starRe.FindAllStringSubmatch(src, -1) {
		ex.ReExports = append(ex.ReExports, m[1])
	}

	if defRe.MatchString(src) {
		ex.Default = true
	}

	return ex
}

// sortMatches is an insertion sort; export lists are short.
func sortMatches[T any](s []T, less func(a, b T) bool) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// stripComments removes // and /* */ comments while leaving string and
// template literals intact.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '"' || c == '\'' || c == '`':
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			// keep line structure so ^-anchored patterns still line up
			b.WriteString(strings.Repeat("\n", strings.Count(src[i:i+2+end], "\n")))
			i += end + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// DefaultExportName derives the identifier a default export is injected
// under from its file name: "use-foo-bar.ts" becomes "useFooBar" and
// "composables/auth/index.ts" becomes "auth".
func DefaultExportName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "index" {
		dir := strings.TrimRight(path[:len(path)-len(filepathBase(path))], `/\`)
		if dir != "" {
			return DefaultExportName(dir)
		}
	}
	return camelCase(base)
}

func filepathBase(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func camelCase(s string) string {
	var b strings.Builder
	upper := false
	for i, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ':
			upper = b.Len() > 0
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		case i == 0:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
