package models

// GroupTable maps origin groups to their identifiers while preserving the
// order in which groups were first populated. The zero value is an empty table.
//
// Add and Merge never modify the receiver: they return a new table, so a
// table handed from one pipeline phase to the next cannot be changed behind
// the caller's back.
type GroupTable struct {
	order  []string
	groups map[string][]string
}

// NewGroupTable returns an empty table
func NewGroupTable() GroupTable {
	return GroupTable{groups: map[string][]string{}}
}

// Add returns a copy of the table with names appended to group.
// Adding zero names to an unknown group does not create it.
func (t GroupTable) Add(group string, names ...string) GroupTable {
	if len(names) == 0 {
		return t
	}

	next := t.clone()
	if _, ok := next.groups[group]; !ok {
		next.order = append(next.order, group)
	}
	next.groups[group] = append(next.groups[group], names...)
	return next
}

// Groups returns group names in population order
func (t GroupTable) Groups() []string {
	return append([]string{}, t.order...)
}

// Names returns the identifiers recorded for group, in insertion order
func (t GroupTable) Names(group string) []string {
	return append([]string{}, t.groups[group]...)
}

// Has reports whether group has at least one identifier
func (t GroupTable) Has(group string) bool {
	return len(t.groups[group]) > 0
}

// Len returns the number of groups
func (t GroupTable) Len() int {
	return len(t.order)
}

// Identifiers flattens the table in population order, keeping duplicates
func (t GroupTable) Identifiers() []Identifier {
	var out []Identifier
	for _, g := range t.order {
		for _, n := range t.groups[g] {
			out = append(out, Identifier{Name: n, OriginGroup: g})
		}
	}
	return out
}

func (t GroupTable) clone() GroupTable {
	c := GroupTable{
		order:  append([]string{}, t.order...),
		groups: make(map[string][]string, len(t.groups)+1),
	}
	for k, v := range t.groups {
		c.groups[k] = append([]string{}, v...)
	}
	return c
}
