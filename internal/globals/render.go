package globals

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/eslint-globals/internal/models"
)

// FlatConfigName is the `name` of the generated flat config object
const FlatConfigName = "kswedberg/nuxt-globals"

// ErrInvalidIdentifier is returned when a name cannot be emitted as an object key
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierRe = regexp.MustCompile(`^[\p{L}\p{Nl}$_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$_\x{200C}\x{200D}]*$`)

// Section is one origin group after deduplication
type Section struct {
	Group string
	Names []string
}

// Dedupe flattens table in population order and drops every name already
// emitted by an earlier group. Groups left empty are omitted.
func Dedupe(table models.GroupTable) []Section {
	seen := map[string]bool{}
	var sections []Section

	for _, group := range table.Groups() {
		var names []string
		for _, name := range table.Names(group) {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
		if len(names) > 0 {
			sections = append(sections, Section{Group: group, Names: names})
		}
	}
	return sections
}

// Render serializes table in the dialect selected by settings. The output
// depends only on its inputs, so rendering the same table twice yields
// identical bytes.
func Render(table models.GroupTable, settings models.Settings, modulePath string) (string, error) {
	sections := Dedupe(table)

	for _, s := range sections {
		for _, name := range s.Names {
			if !identifierRe.MatchString(name) {
				return "", fmt.Errorf("%w %q in group %q", ErrInvalidIdentifier, name, s.Group)
			}
		}
	}

	if settings.OutputFormat == models.FormatJSON {
		return renderJSON(sections), nil
	}
	return renderModule(sections, settings, modulePath), nil
}

func renderJSON(sections []Section) string {
	var entries []string
	for _, s := range sections {
		for _, name := range s.Names {
			key, _ := json.Marshal(name)
			entries = append(entries, fmt.Sprintf("    %s: \"readonly\"", key))
		}
	}

	if len(entries) == 0 {
		return "{\n  \"globals\": {}\n}\n"
	}
	return "{\n  \"globals\": {\n" + strings.Join(entries, ",\n") + "\n  }\n}\n"
}

func renderModule(sections []Section, settings models.Settings, modulePath string) string {
	indent := strings.Repeat(" ", 6)
	if settings.Flat {
		indent = strings.Repeat(" ", 8)
	}

	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		lines := make([]string, 0, len(s.Names))
		for _, name := range s.Names {
			lines = append(lines, fmt.Sprintf("%s%s: 'readonly'", indent, name))
		}
		blocks = append(blocks, fmt.Sprintf("%s// %s\n%s", indent, s.Group, strings.Join(lines, ",\n")))
	}

	declarations := ""
	if len(blocks) > 0 {
		declarations = strings.Join(blocks, ",\n") + ",\n"
	}

	opener := "export default {"
	if settings.OutputFormat == models.FormatCJS {
		opener = "module.exports = {"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/*\n  This file is auto-generated by %s\n*/\n", modulePath)
	fmt.Fprintf(&b, "  %s\n", opener)

	if settings.Flat {
		fmt.Fprintf(&b, "    name: '%s',\n", FlatConfigName)
		b.WriteString("    languageOptions: {\n")
		b.WriteString("      globals: {\n")
		b.WriteString(declarations)
		b.WriteString("      },\n")
		b.WriteString("    },\n")
	} else {
		b.WriteString("    globals: {\n")
		b.WriteString(declarations)
		b.WriteString("    },\n")
	}

	b.WriteString("  };\n")
	return b.String()
}
