package models

// Import is an auto-import record as reported by the host framework or a directory scan
type Import struct {
	Name string `yaml:"name" json:"name"`                 // Exported name
	As   string `yaml:"as,omitempty" json:"as,omitempty"` // Alias the identifier is injected under
	From string `yaml:"from" json:"from"`                 // Module specifier or directory the import comes from
}

// RenderedName returns the alias when one is set, otherwise the exported name
func (i Import) RenderedName() string {
	if i.As != "" {
		return i.As
	}
	return i.Name
}

// Identifier is a single global name tagged with the group it came from
type Identifier struct {
	Name        string
	OriginGroup string
}
