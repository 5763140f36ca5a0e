package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotes(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		n := ParseNotes("Dostawa na plac budowy")
		assert.Equal(t, PlainText("Dostawa na plac budowy"), n)
		assert.Equal(t, "Dostawa na plac budowy", n.UserText())
	})

	t.Run("structured", func(t *testing.T) {
		n := ParseNotes(`{"selectedAdditional":[1,2],"selectedAccessories":[5],"userNotes":"Pilne"}`)
		s, ok := n.(StructuredNotes)
		require.True(t, ok)
		assert.Equal(t, []uint{1, 2}, s.SelectedAdditional)
		assert.Equal(t, []uint{5}, s.SelectedAccessories)
		assert.Equal(t, "Pilne", s.UserText())
	})

	t.Run("json without marker stays plain", func(t *testing.T) {
		raw := `{"userNotes":"x"}`
		assert.Equal(t, PlainText(raw), ParseNotes(raw))
	})

	t.Run("broken json stays plain", func(t *testing.T) {
		raw := `{"selectedAdditional":[1,`
		assert.Equal(t, PlainText(raw), ParseNotes(raw))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", ParseNotes("").UserText())
	})
}

func TestBuildAndEncodeNotes(t *testing.T) {
	assert.Equal(t, "just text", EncodeNotes(BuildNotes(nil, nil, "just text")))

	encoded := EncodeNotes(BuildNotes([]uint{3}, nil, "uwagi"))
	assert.Equal(t, `{"selectedAdditional":[3],"selectedAccessories":[],"userNotes":"uwagi"}`, encoded)

	back, ok := ParseNotes(encoded).(StructuredNotes)
	require.True(t, ok)
	assert.Equal(t, []uint{3}, back.SelectedAdditional)
	assert.Empty(t, back.SelectedAccessories)
	assert.Equal(t, "uwagi", back.UserNotes)
}
