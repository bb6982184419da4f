package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRoundTrip(t *testing.T) {
	for _, tag := range Tags() {
		out, err := KindToTag(TagToKind(tag))
		require.NoError(t, err, tag)
		assert.Equal(t, tag, out)
	}
}

func TestTagToKindUnknown(t *testing.T) {
	kind := TagToKind("ZZZ")
	assert.Equal(t, Unknown("ZZZ"), kind)
	assert.Equal(t, KindUnknown, kind.Type)

	tag, err := KindToTag(kind)
	require.NoError(t, err)
	assert.Equal(t, "ZZZ", tag)
}

func TestTagToKindIsCaseSensitive(t *testing.T) {
	assert.Equal(t, Unknown("tap"), TagToKind("tap"))
}

func TestDirectionalTags(t *testing.T) {
	var directional = map[string]AirDirection{
		"AUR": UpRight,
		"AUL": UpLeft,
		"ADW": Down,
		"ADR": DownRight,
		"ADL": DownLeft,
	}
	for tag, dir := range directional {
		assert.Equal(t, Directional(dir), TagToKind(tag), tag)
	}
	assert.NotEqual(t, TagToKind("AUR"), TagToKind("AUL"))
}

func TestKindToTagInvalid(t *testing.T) {
	for _, kind := range []NoteKind{
		{},
		Unknown(""),
		Directional(NoDirection),
		{Type: KindTap, Raw: "extra"},
	} {
		_, err := KindToTag(kind)
		var invalid *InvalidKindError
		require.True(t, errors.As(err, &invalid), "%+v", kind)
		assert.Equal(t, kind, invalid.Kind)
	}
}

func TestNoteKindJSON(t *testing.T) {
	in := []NoteKind{Kind(KindTap), Directional(DownLeft), Unknown("XYZ")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["TAP","ADL","XYZ"]`, string(data))

	var out []NoteKind
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	_, err = json.Marshal(NoteKind{})
	assert.Error(t, err)
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, TagToKind("AHX").IsAir())
	assert.True(t, TagToKind("AHX").IsLong())
	assert.True(t, TagToKind("ADW").IsAir())
	assert.False(t, TagToKind("ADW").IsLong())
	assert.False(t, TagToKind("TAP").IsAir())
	assert.True(t, TagToKind("SXC").IsLong())
	assert.False(t, TagToKind("MNE").IsLong())
}
