package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		filename string
	}{
		{"cjs", FormatCJS, ".eslint.globals.cjs"},
		{"esm", FormatESM, ".eslint.globals.mjs"},
		{"es", FormatESM, ".eslint.globals.mjs"},
		{"MJS", FormatESM, ".eslint.globals.mjs"},
		{"ts", FormatTS, ".eslint.globals.ts"},
		{" json ", FormatJSON, ".eslint.globals.json"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseOutputFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
			assert.Equal(t, tt.filename, f.Filename())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseOutputFormat("yaml")
		assert.Error(t, err)
	})
}

func TestSettings_Clone(t *testing.T) {
	s := DefaultSettings()
	s.Custom = []string{"a"}
	s.Exclude = []string{"vue"}

	c := s.Clone()
	c.Custom[0] = "b"
	c.Exclude = append(c.Exclude, "h3")

	assert.Equal(t, []string{"a"}, s.Custom)
	assert.Equal(t, []string{"vue"}, s.Exclude)
}

func TestImport_RenderedName(t *testing.T) {
	assert.Equal(t, "useFoo", Import{Name: "useFoo", From: "#app"}.RenderedName())
	assert.Equal(t, "useBar", Import{Name: "default", As: "useBar", From: "~/composables/bar"}.RenderedName())
}

func TestPaths_Destination(t *testing.T) {
	p := Paths{FullPath: "/p/.nuxt/.eslint.globals.mjs"}
	assert.Equal(t, "/p/.nuxt/.eslint.globals.mjs", p.Destination())

	p.ExplicitDestination = "/p/gitignore/.eslint.globals.mjs"
	assert.Equal(t, "/p/gitignore/.eslint.globals.mjs", p.Destination())
}
