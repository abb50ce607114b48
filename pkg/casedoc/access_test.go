package casedoc_test

import (
	"testing"

	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFloat_DefaultIsWrittenBack(t *testing.T) {
	doc := casedoc.New()
	n := doc.Section("numerics")

	first, err := doc.GetFloat(n, "relaxation", 0.7, casedoc.Range(0, 1, true))
	require.NoError(t, err)
	assert.Equal(t, 0.7, first)

	raw, ok := n.GetScalar("relaxation")
	assert.True(t, ok)
	assert.Equal(t, "0.7", raw)

	second, err := doc.GetFloat(n, "relaxation", 0.2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.False(t, doc.IsModified(), "writing a default is not an edit")
}

func TestGetFloat_StoredValueIsValidated(t *testing.T) {
	doc := casedoc.New()
	n := doc.Section("numerics")
	n.SetScalar("density", "abc")
	n.SetScalar("viscosity", "-1")

	_, err := doc.GetFloat(n, "density", 1)
	assert.Equal(t, schema.KindNotANumber, schema.KindOf(err))

	_, err = doc.GetFloat(n, "viscosity", 1, casedoc.Positive)
	assert.Equal(t, schema.KindWrongSign, schema.KindOf(err))
}

func TestSetFloat(t *testing.T) {
	doc := casedoc.New()
	n := doc.Section("numerics")

	err := doc.SetFloat(n, "emissivity", 1.5, casedoc.Range(0, 1, true))
	assert.Equal(t, schema.KindOutOfRange, schema.KindOf(err))
	assert.Nil(t, n.Find("emissivity"), "rejected value must not be written")
	assert.False(t, doc.IsModified())

	require.NoError(t, doc.SetFloat(n, "emissivity", 0.25, casedoc.Range(0, 1, true)))
	raw, _ := n.GetScalar("emissivity")
	assert.Equal(t, "0.25", raw)
	assert.True(t, doc.IsModified())

	doc.ClearModified()
	require.NoError(t, doc.SetFloat(n, "emissivity", 0.25))
	assert.False(t, doc.IsModified(), "same value is a no-op")
}

func TestChoice(t *testing.T) {
	doc := casedoc.New()
	n := doc.Section("numerics")

	v, err := doc.GetChoice(n, "scheme", "upwind", "upwind", "centered")
	require.NoError(t, err)
	assert.Equal(t, "upwind", v)
	assert.False(t, doc.IsModified())

	_, err = doc.SetChoice(n, "scheme", "bogus", "upwind", "centered")
	assert.Equal(t, schema.KindNotInSet, schema.KindOf(err))

	changed, err := doc.SetChoice(n, "scheme", "upwind", "upwind", "centered")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, doc.IsModified())

	changed, err = doc.SetChoice(n, "scheme", "centered", "upwind", "centered")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, doc.IsModified())
}

func TestStatus(t *testing.T) {
	doc := casedoc.New()
	n := doc.Section("numerics")

	on, err := doc.GetStatus(n, "status", false)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, doc.SetStatus(n, "status", true))
	v, _ := n.Attr("status")
	assert.Equal(t, casedoc.On, v)
}

func TestSetString(t *testing.T) {
	doc := casedoc.New()
	n := doc.Section("numerics")

	tests := []struct {
		name  string
		value string
		kind  schema.Kind
	}{
		{"empty", "", schema.KindRequired},
		{"control character", "a\x01b", schema.KindBadText},
		{"invalid utf-8", "u = \xff;", schema.KindBadText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := doc.SetString(n, "formula", tt.value)
			assert.Equal(t, tt.kind, schema.KindOf(err))
			assert.Nil(t, n.Find("formula"), "rejected text must not be written")
			assert.False(t, doc.IsModified())
		})
	}

	formula := "u = 1;\n\tv = \"é\" < 2;"
	require.NoError(t, doc.SetString(n, "formula", formula))
	assert.Equal(t, formula, doc.GetString(n, "formula", "u = 0;"))

	data, err := doc.Save()
	require.NoError(t, err)
	back, err := casedoc.Open(data)
	require.NoError(t, err)
	assert.Equal(t, formula, back.GetString(back.Section("numerics"), "formula", "u = 0;"))
}
