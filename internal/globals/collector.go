package globals

import (
	"context"

	"github.com/harrison/eslint-globals/internal/companion"
	"github.com/harrison/eslint-globals/internal/models"
)

// Fixed origin groups
const (
	GlobalGroup      = "global"
	CustomGroup      = "custom"
	ComposablesGroup = "composables"
)

// builtinGlobals are injected by the framework regardless of auto-import scanning
var builtinGlobals = []string{
	"$fetch",
	"useCloneDeep",
	"defineNuxtConfig",
	"definePageMeta",
}

// BuiltinGlobals returns the names always placed in the global group
func BuiltinGlobals() []string {
	return append([]string{}, builtinGlobals...)
}

// Logger is the logging surface the pipeline needs
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Dump(label string, v interface{})
	Success(message string)
}

// Collector turns provider output into a GroupTable, applying exclusions as
// groups are populated.
type Collector struct {
	settings  models.Settings
	filter    ExclusionFilter
	resolver  companion.Resolver
	libraries []companion.Library
	logger    Logger
}

// NewCollector creates a Collector. A nil resolver disables companion groups.
func NewCollector(settings models.Settings, resolver companion.Resolver, logger Logger) *Collector {
	libs := companion.Libraries()
	gates := make([]string, 0, len(libs))
	for _, lib := range libs {
		gates = append(gates, lib.Group)
	}

	return &Collector{
		settings:  settings,
		filter:    NewExclusionFilter(settings.Exclude, gates...),
		resolver:  resolver,
		libraries: libs,
		logger:    logger,
	}
}

// Filter returns the exclusion filter derived from the settings
func (c *Collector) Filter() ExclusionFilter {
	return c.filter
}

// Collect populates, in order: the global group, one group per origin
// reported by the host (registry imports first, then localImports), the
// companion library groups, and the custom group.
//
// Companion discovery failures are logged and leave that group empty.
func (c *Collector) Collect(ctx context.Context, hostImports, localImports []models.Import) (models.GroupTable, error) {
	table := c.add(models.NewGroupTable(), GlobalGroup, builtinGlobals...)

	all := make([]models.Import, 0, len(hostImports)+len(localImports))
	all = append(all, hostImports...)
	all = append(all, localImports...)

	var order []string
	byOrigin := map[string][]string{}
	for _, imp := range all {
		if _, ok := byOrigin[imp.From]; !ok {
			order = append(order, imp.From)
		}
		byOrigin[imp.From] = append(byOrigin[imp.From], imp.RenderedName())
	}
	for _, origin := range order {
		table = c.add(table, origin, byOrigin[origin]...)
	}

	for _, lib := range c.libraries {
		if err := ctx.Err(); err != nil {
			return models.GroupTable{}, err
		}
		if c.resolver == nil || c.filter.Skips(lib.Group) {
			continue
		}
		names, err := c.resolver.Resolve(ctx, lib)
		if err != nil {
			c.logger.Warnf("could not resolve %s exports, skipping the %s group: %v", lib.Package, lib.Group, err)
			continue
		}
		table = c.add(table, lib.Group, companion.Filter(lib, names)...)
	}

	table = c.add(table, CustomGroup, c.settings.Custom...)

	return table, nil
}

// Extend adds the composables group. When composables are excluded the list
// is ignored and table is returned unchanged.
func (c *Collector) Extend(table models.GroupTable, composables []models.Import) models.GroupTable {
	if c.filter.Skips(GateComposables) {
		return table
	}

	names := make([]string, 0, len(composables))
	for _, imp := range composables {
		names = append(names, imp.RenderedName())
	}
	return c.add(table, ComposablesGroup, names...)
}

func (c *Collector) add(table models.GroupTable, group string, names ...string) models.GroupTable {
	if len(names) == 0 {
		return table
	}
	if c.filter.Excludes(group) {
		c.logger.Debugf("excluding group %q (%d identifiers)", group, len(names))
		return table
	}
	return table.Add(group, names...)
}
