package globals

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harrison/eslint-globals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() models.GroupTable {
	return models.NewGroupTable().
		Add(GlobalGroup, "$fetch", "definePageMeta").
		Add("#app/composables/fetch", "useFetch", "$fetch").
		Add("nitro", "useStorage").
		Add(CustomGroup, "myGlobal", "useFetch")
}

func TestDedupe_FirstGroupWins(t *testing.T) {
	sections := Dedupe(sampleTable())

	assert.Equal(t, []Section{
		{Group: GlobalGroup, Names: []string{"$fetch", "definePageMeta"}},
		{Group: "#app/composables/fetch", Names: []string{"useFetch"}},
		{Group: "nitro", Names: []string{"useStorage"}},
		{Group: CustomGroup, Names: []string{"myGlobal"}},
	}, sections)
}

func TestDedupe_OmitsGroupsEmptiedByDuplicates(t *testing.T) {
	table := models.NewGroupTable().
		Add(GlobalGroup, "$fetch").
		Add(CustomGroup, "$fetch")

	sections := Dedupe(table)
	require.Len(t, sections, 1)
	assert.Equal(t, GlobalGroup, sections[0].Group)
}

func TestRender_FlatESM(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) {
		s.Flat = true
		s.OutputFormat = models.FormatESM
	})

	out, err := Render(sampleTable(), settings, "eslint-globals")
	require.NoError(t, err)

	expected := `/*
  This file is auto-generated by eslint-globals
*/
  export default {
    name: 'kswedberg/nuxt-globals',
    languageOptions: {
      globals: {
        // global
        $fetch: 'readonly',
        definePageMeta: 'readonly',
        // #app/composables/fetch
        useFetch: 'readonly',
        // nitro
        useStorage: 'readonly',
        // custom
        myGlobal: 'readonly',
      },
    },
  };
`
	assert.Equal(t, expected, out)
}

func TestRender_LegacyCJS(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) {
		s.Flat = false
		s.OutputFormat = models.FormatCJS
	})
	table := models.NewGroupTable().Add(GlobalGroup, "$fetch").Add(CustomGroup, "myGlobal")

	out, err := Render(table, settings, "eslint-globals")
	require.NoError(t, err)

	expected := `/*
  This file is auto-generated by eslint-globals
*/
  module.exports = {
    globals: {
      // global
      $fetch: 'readonly',
      // custom
      myGlobal: 'readonly',
    },
  };
`
	assert.Equal(t, expected, out)
	assert.NotContains(t, out, "languageOptions:")
}

func TestRender_TSUsesExportDefault(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) { s.OutputFormat = models.FormatTS })

	out, err := Render(sampleTable(), settings, "x")
	require.NoError(t, err)
	assert.Contains(t, out, "  export default {\n")
	assert.Contains(t, out, "languageOptions:")
}

func TestRender_JSON(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) { s.OutputFormat = models.FormatJSON })

	out, err := Render(sampleTable(), settings, "x")
	require.NoError(t, err)

	assert.Equal(t, `{
  "globals": {
    "$fetch": "readonly",
    "definePageMeta": "readonly",
    "useFetch": "readonly",
    "useStorage": "readonly",
    "myGlobal": "readonly"
  }
}
`, out)

	var doc map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["globals"], 5)
	assert.NotContains(t, out, "//")
}

func TestRender_EmptyTable(t *testing.T) {
	t.Run("module", func(t *testing.T) {
		out, err := Render(models.NewGroupTable(), models.DefaultSettings(), "x")
		require.NoError(t, err)
		assert.Contains(t, out, "      globals: {\n      },\n")
		assert.NotContains(t, out, "//")
	})

	t.Run("json", func(t *testing.T) {
		settings := settingsWith(func(s *models.Settings) { s.OutputFormat = models.FormatJSON })
		out, err := Render(models.NewGroupTable(), settings, "x")
		require.NoError(t, err)

		var doc map[string]map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Empty(t, doc["globals"])
	})
}

func TestRender_Deterministic(t *testing.T) {
	for _, format := range []models.OutputFormat{models.FormatCJS, models.FormatESM, models.FormatTS, models.FormatJSON} {
		for _, flat := range []bool{true, false} {
			settings := settingsWith(func(s *models.Settings) {
				s.OutputFormat = format
				s.Flat = flat
			})
			first, err := Render(sampleTable(), settings, "x")
			require.NoError(t, err)
			second, err := Render(sampleTable(), settings, "x")
			require.NoError(t, err)
			assert.Equal(t, first, second, "format %s flat %v", format, flat)
		}
	}
}

func TestRender_OneDeclarationPerName(t *testing.T) {
	out, err := Render(sampleTable(), models.DefaultSettings(), "x")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, " $fetch: 'readonly'"))
	assert.Equal(t, 1, strings.Count(out, " useFetch: 'readonly'"))
}

func TestRender_InvalidIdentifier(t *testing.T) {
	tests := []string{"", "my global", "a'b", "1abc", "foo-bar"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			table := models.NewGroupTable().Add(CustomGroup, name)
			_, err := Render(table, models.DefaultSettings(), "x")
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func TestRender_UnicodeIdentifier(t *testing.T) {
	table := models.NewGroupTable().Add(CustomGroup, "ñandú", "_private", "$")
	_, err := Render(table, models.DefaultSettings(), "x")
	assert.NoError(t, err)
}
