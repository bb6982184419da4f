package c2s

import (
	"errors"
	"strings"
	"testing"

	"git.lost.host/meutraa/chunichart/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cyaeghaNotes = `TAP 8 0 6 4
TAP 8 0 12 4
SLC 8 96 4 4 7 3 4
TAP 8 96 10 4
SLC 8 103 3 4 10 2 4
SLC 8 113 2 4 13 1 4
SLC 8 126 1 4 22 0 4
SLD 8 148 0 4 236 0 4
TAP 8 192 8 4
SLC 8 288 6 4 4 7 4
SLC 8 292 7 4 12 9 4
SLC 8 304 9 4 9 10 4
SLC 8 313 10 4 12 11 4
SLC 8 325 11 4 23 12 4
SLD 8 348 12 4 36 12 4
AHD 9 0 0 4 SLD 192
CHR 9 0 4 8 CE
AIR 9 0 4 8 CHR
AHD 9 0 12 4 SLD 192
TAP 9 288 3 4
TAP 9 288 9 4`

func TestParseNoteLines(t *testing.T) {
	expected := []string{
		"TAP", "TAP", "SLC", "TAP", "SLC", "SLC", "SLC", "SLD", "TAP", "SLC", "SLC",
		"SLC", "SLC", "SLC", "SLD", "AHD", "CHR", "AIR", "AHD", "TAP", "TAP",
	}
	for i, line := range strings.Split(cyaeghaNotes, "\n") {
		note, err := ParseNote(line)
		require.NoError(t, err, line)
		assert.Equal(t, game.TagToKind(expected[i]), note.Kind, line)
	}
}

func TestParseNoteFields(t *testing.T) {
	note, err := ParseNote("SLC 8 96 4 4 7 3 4")
	require.NoError(t, err)
	assert.Equal(t, NewSlide(game.KindSlideControlPoint, 8, 96, 4, 4, 7, 3, 4), note)

	note, err = ParseNote("AHD 9 0 0 4 SLD 192")
	require.NoError(t, err)
	assert.Equal(t, NewAirHold(9, 0, 0, 4, "SLD", 192), note)

	note, err = ParseNote("CHR 9 0 4 8 CE")
	require.NoError(t, err)
	assert.Equal(t, NewExTap(9, 0, 4, 8, "CE"), note)

	note, err = ParseNote("ADR 7 96 14 2 TAP")
	require.NoError(t, err)
	assert.Equal(t, NewAir(game.Directional(game.DownRight), 7, 96, 14, 2, "TAP"), note)

	note, err = ParseNote("HLD 1 0 0 4 192")
	require.NoError(t, err)
	assert.Equal(t, NewHold(1, 0, 0, 4, 192), note)

	note, err = ParseNote("MNE 6 0 2 2")
	require.NoError(t, err)
	assert.Equal(t, NewMine(6, 0, 2, 2), note)
	assert.Nil(t, note.Duration)
	assert.False(t, note.IsWrapped())
}

func TestParseNoteOptionalFieldsMayBeAbsent(t *testing.T) {
	note, err := ParseNote("SLD 3 0 4 4 192")
	require.NoError(t, err)
	require.NotNil(t, note.Duration)
	assert.Equal(t, uint32(192), *note.Duration)
	assert.Nil(t, note.EndCell)
	assert.Nil(t, note.EndWidth)
}

func TestParseNoteFlick(t *testing.T) {
	note, err := ParseNote("FLK 4 0 0 2")
	require.NoError(t, err)
	assert.Equal(t, NewFlick(4, 0, 0, 2), note)

	note, err = ParseNote("FLK 4 0 0 2 R")
	require.NoError(t, err)
	require.NotNil(t, note.FlickModifier)
	assert.Equal(t, "R", *note.FlickModifier)
}

func TestParseNoteUnknownTag(t *testing.T) {
	note, err := ParseNote("ZZZ 1 0 0 4 what ever")
	require.NoError(t, err)
	assert.Equal(t, game.Unknown("ZZZ"), note.Kind)
	assert.Equal(t, uint32(4), note.Width)
}

func TestParseNoteLowercaseTag(t *testing.T) {
	note, err := ParseNote("tap 1 0 0 4")
	require.NoError(t, err)
	assert.Equal(t, game.Kind(game.KindTap), note.Kind)
}

func TestParseNoteMissingFields(t *testing.T) {
	var missingTests = map[string]string{
		"":           "tag",
		"TAP":        "measure",
		"TAP 8":      "offset",
		"TAP 8 0":    "cell",
		"TAP 8 0 6":  "width",
		"\t  \t":     "tag",
		"ZZZ 1 2 3 ": "width",
		"ASD 1 0":    "cell",
		"asc 1":      "offset",
	}
	for line, field := range missingTests {
		_, err := ParseNote(line)
		var missing *game.MissingFieldsError
		require.True(t, errors.As(err, &missing), "%q: %v", line, err)
		assert.Equal(t, field, missing.Field, line)
	}
}

func TestParseNoteInvalidField(t *testing.T) {
	var invalidTests = map[string]string{
		"TAP x 0 6 4":                          "measure",
		"TAP 8 -1 6 4":                         "offset",
		"TAP 8 0 6.5 4":                        "cell",
		"HLD 1 0 0 4 abc":                      "duration",
		"SLD 3 0 4 4 192 x 4":                  "end cell",
		"SLD 3 0 4 4 192 8 y":                  "end width",
		"AHD 9 0 0 4 SLD long":                 "duration",
		"ASD 12 0 0 6 CHR x 384 0 3 5.0 DEF":   "param1",
		"ASD 12 0 0 6 CHR 5.0 x 0 3 5.0 DEF":   "duration",
		"ASD 12 0 0 6 CHR 5.0 384 0.5 3 5 DEF": "end cell",
		"ASD 12 0 0 6 CHR 5.0 384 0 3 x DEF":   "param2",
	}
	for line, field := range invalidTests {
		_, err := ParseNote(line)
		var invalid *game.InvalidFieldError
		require.True(t, errors.As(err, &invalid), "%q: %v", line, err)
		assert.Equal(t, field, invalid.Field, line)
	}
}

func TestParseWrappedNote(t *testing.T) {
	note, err := ParseNote("ASD 12 0 0 6 CHR 5.0 384 0 3 5.0 DEF")
	require.NoError(t, err)

	assert.Equal(t, game.Kind(game.KindExTap), note.Kind)
	assert.Equal(t, uint32(12), note.Measure)
	assert.Equal(t, uint32(0), note.Offset)
	assert.Equal(t, uint32(0), note.Cell)
	assert.Equal(t, uint32(6), note.Width)
	require.NotNil(t, note.Duration)
	assert.Equal(t, uint32(384), *note.Duration)
	require.NotNil(t, note.EndCell)
	assert.Equal(t, 0.0, *note.EndCell)
	require.NotNil(t, note.EndWidth)
	assert.Equal(t, 3.0, *note.EndWidth)
	assert.Nil(t, note.ExTapModifier)

	require.True(t, note.IsWrapped())
	assert.Equal(t, WrappedNoteInfo{
		OriginalFormat: "ASD",
		WrappedType:    "CHR",
		Param1:         5.0,
		Param2:         5.0,
		Param3:         "DEF",
	}, *note.Wrapped)
	assert.Equal(t, "ASD", note.OriginalFormat())
	assert.Equal(t, "CHR", note.WrappedType())
}

func TestParseWrappedSlide(t *testing.T) {
	note, err := ParseNote("ASC 2 96 12 4 SLD 5.0 12 6 4 5.0 DEF")
	require.NoError(t, err)
	assert.Equal(t, game.Kind(game.KindSlide), note.Kind)
	assert.Equal(t, "ASC", note.OriginalFormat())
	assert.Equal(t, "SLD", note.WrappedType())
	assert.Equal(t, 6.0, *note.EndCell)
}

func TestParseWrapperWrappingWrapper(t *testing.T) {
	note, err := ParseNote("ASC 5 336 9 4 ASC 5.0 22 9 5 5.0 DEF")
	require.NoError(t, err)
	assert.Equal(t, game.Kind(game.KindAirSlideControlPoint), note.Kind)
	assert.Equal(t, "ASC", note.Wrapped.OriginalFormat)
	assert.Equal(t, "ASC", note.Wrapped.WrappedType)
	assert.Equal(t, uint32(22), *note.Duration)
}

func TestParseWrapperDepthCap(t *testing.T) {
	p := &Parser{MaxWrapDepth: 1}

	_, err := p.ParseNote("ASC 5 336 9 4 ASC 5.0 22 9 5 5.0 DEF")
	var mismatch *game.StructuralMismatchError
	require.True(t, errors.As(err, &mismatch), "%v", err)
	assert.Equal(t, "ASC", mismatch.Tag)

	_, err = p.ParseNote("ASD 12 0 0 6 CHR 5.0 384 0 3 5.0 DEF")
	assert.NoError(t, err)
}

func TestParseWrapperFieldCount(t *testing.T) {
	_, err := ParseNote("ASD 12 0 0 6 CHR 5.0 384 0 3 5.0")
	var mismatch *game.StructuralMismatchError
	require.True(t, errors.As(err, &mismatch), "%v", err)

	// ASC is also a playable kind, so a short ASC record is positional.
	note, err := ParseNote("ASC 8 96 10 4 96 8 4 3.0 DEF")
	require.NoError(t, err)
	assert.Equal(t, game.Kind(game.KindAirSlideControlPoint), note.Kind)
	assert.Nil(t, note.Wrapped)
	assert.Equal(t, uint32(96), *note.Duration)
	assert.Equal(t, 8.0, *note.EndCell)
	assert.Equal(t, 4.0, *note.EndWidth)
}

func TestAirAction(t *testing.T) {
	note, err := ParseNote("ASD 6 96 4 8 ALD 5.0 38400 4 8 5.0 NON")
	require.NoError(t, err)
	assert.Equal(t, game.Kind(game.KindAirSlide), note.Kind)
	assert.True(t, note.IsAirAction())

	note, err = ParseNote("ASD 6 96 4 8 ALD 5.0 38400 4 8 5.0 DEF")
	require.NoError(t, err)
	assert.False(t, note.IsAirAction())

	// A positional ALD carries no wrapper mode.
	note, err = ParseNote("ALD 6 96 4 8 38400 5.0 1 4 8 5.0 NON")
	require.NoError(t, err)
	assert.False(t, note.IsAirAction())
	assert.Equal(t, uint32(38400), *note.Duration)
	assert.Equal(t, 5.0, *note.EndCell)
	assert.Equal(t, 1.0, *note.EndWidth)
}
