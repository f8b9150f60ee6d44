package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupTable_AddPreservesPopulationOrder(t *testing.T) {
	table := NewGroupTable().
		Add("global", "$fetch").
		Add("vue", "ref", "computed").
		Add("global", "definePageMeta")

	assert.Equal(t, []string{"global", "vue"}, table.Groups())
	assert.Equal(t, []string{"$fetch", "definePageMeta"}, table.Names("global"))
	assert.Equal(t, []Identifier{
		{Name: "$fetch", OriginGroup: "global"},
		{Name: "definePageMeta", OriginGroup: "global"},
		{Name: "ref", OriginGroup: "vue"},
		{Name: "computed", OriginGroup: "vue"},
	}, table.Identifiers())
}

func TestGroupTable_AddDoesNotMutateReceiver(t *testing.T) {
	base := NewGroupTable().Add("global", "$fetch")
	next := base.Add("global", "useCloneDeep").Add("custom", "myGlobal")

	assert.Equal(t, []string{"$fetch"}, base.Names("global"))
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, []string{"$fetch", "useCloneDeep"}, next.Names("global"))
	assert.Equal(t, 2, next.Len())
}

func TestGroupTable_EmptyAddSkipsGroup(t *testing.T) {
	var table GroupTable
	table = table.Add("nitro")

	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Has("nitro"))
	assert.Empty(t, table.Identifiers())
}

func TestGroupTable_ReturnedSlicesAreCopies(t *testing.T) {
	table := NewGroupTable().Add("h3", "readBody")

	names := table.Names("h3")
	names[0] = "changed"
	groups := table.Groups()
	groups[0] = "changed"

	assert.Equal(t, []string{"readBody"}, table.Names("h3"))
	assert.Equal(t, []string{"h3"}, table.Groups())
}
