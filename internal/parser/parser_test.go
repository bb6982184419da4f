package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/chunichart/internal/fixture"
	"git.lost.host/meutraa/chunichart/internal/game"
	"git.lost.host/meutraa/chunichart/internal/parser/c2s"
	"git.lost.host/meutraa/chunichart/internal/parser/ugc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, []string{"c2s", "sus", "ugc"}, Formats())

	f, err := ParseFormat("UGC")
	require.NoError(t, err)
	assert.Equal(t, UGC, f)
	assert.Equal(t, ".ugc", f.Extension())

	_, err = ParseFormat("bms")
	assert.Error(t, err)
	_, err = New(Format("bms"), Options{})
	assert.Error(t, err)
}

func TestC2SParser(t *testing.T) {
	p, err := New(C2S, Options{})
	require.NoError(t, err)
	s, err := p.Parse(fixture.MustGet("comprehensive.c2s"))
	require.NoError(t, err)

	assert.Equal(t, C2S, s.Format)
	assert.Equal(t, "2699", s.Title)
	assert.Equal(t, "SOMEONE", s.Artist)
	assert.Equal(t, "13", s.Level)
	assert.Equal(t, "master", s.Difficulty)
	assert.Equal(t, 18, s.Notes)
	assert.Equal(t, 8, s.Air)
	assert.Equal(t, 8, s.Long)
	assert.Equal(t, 2, s.Kinds["TAP"])
	assert.Equal(t, 2, s.Kinds["CHR"])
	assert.Empty(t, s.Warnings)
	assert.Len(t, s.Bpms, 4)
	assert.Equal(t, 120.0, s.Bpm)
	assert.IsType(t, &c2s.Chart{}, s.Chart)
	assert.Equal(t, Sum(fixture.MustGet("comprehensive.c2s")), s.Sum)
}

func TestC2SParserWarnings(t *testing.T) {
	s, err := (&C2SParser{}).Parse(fixture.MustGet("crush.c2s"))
	require.NoError(t, err)
	assert.Equal(t, 7, s.Notes)
	require.Len(t, s.Warnings, 2)
	assert.Contains(t, s.Warnings[0], "line 17")
}

func TestC2SParserDefaultBpm(t *testing.T) {
	s, err := (&C2SParser{}).Parse("BPM_DEF 150 150 150 150\nTAP 0 0 0 4\n")
	require.NoError(t, err)
	assert.Equal(t, 150.0, s.Bpm)
	assert.Empty(t, s.Bpms)
}

func TestC2SParserWrapDepth(t *testing.T) {
	line := "ASC 5 336 9 4 ASC 5.0 22 9 5 5.0 DEF"

	s, err := (&C2SParser{}).Parse(line)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Notes)

	s, err = (&C2SParser{MaxWrapDepth: 1}).Parse(line)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Notes)
	assert.Len(t, s.Warnings, 1)
}

func TestSUSParser(t *testing.T) {
	p, err := New(SUS, Options{})
	require.NoError(t, err)
	s, err := p.Parse(fixture.MustGet("sample.sus"))
	require.NoError(t, err)

	assert.Equal(t, "Test Song", s.Title)
	assert.Equal(t, "Composer", s.Artist)
	assert.Equal(t, "13+", s.Level)
	assert.Equal(t, "master", s.Difficulty)
	assert.Equal(t, 14, s.Notes)
	assert.Equal(t, 2, s.Air)
	assert.Equal(t, 5, s.Long)
	assert.Equal(t, 4, s.Kinds["TAP"])
	assert.Equal(t, []string{`line 28: unknown line "#zzz"`}, s.Warnings)
	assert.Len(t, s.Bpms, 2)
	assert.Equal(t, 120.0, s.Bpm)
}

func TestUGCParser(t *testing.T) {
	p, err := New(UGC, Options{})
	require.NoError(t, err)
	s, err := p.Parse(fixture.MustGet("sample.ugc"))
	require.NoError(t, err)

	assert.Equal(t, "Test Song", s.Title)
	assert.Equal(t, "13.7", s.Level)
	assert.Equal(t, "master", s.Difficulty)
	assert.Equal(t, 11, s.Notes)
	assert.Equal(t, 2, s.Kinds["C"])
	assert.Equal(t, 1, s.Kinds["c"])
	assert.Equal(t, 1, s.Kinds[game.Directional(game.UpRight).String()])
	assert.Empty(t, s.Warnings)
}

func TestUGCParserChildren(t *testing.T) {
	text := "#0'0:h24\n#480>s24\n"

	_, err := (&UGCParser{}).Parse(text)
	assert.True(t, errors.Is(err, ugc.ErrChildNotImplemented))

	p, err := New(UGC, Options{SkipChildren: true})
	require.NoError(t, err)
	s, err := p.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Notes)
	assert.Equal(t, []string{"skipped 1 child records"}, s.Warnings)
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ugc")
	bad := filepath.Join(dir, "bad.ugc")
	missing := filepath.Join(dir, "missing.ugc")
	require.NoError(t, os.WriteFile(good, []byte(fixture.MustGet("sample.ugc")), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("#0'0:q12\n"), 0o644))

	p, err := New(UGC, Options{})
	require.NoError(t, err)
	results, err := DecodeFiles(context.Background(), p, good, bad, missing)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, good, results[0].Path)
	require.NoError(t, results[0].Err)
	assert.Equal(t, good, results[0].Summary.Path)
	assert.Equal(t, 11, results[0].Summary.Notes)

	var unknown *game.UnknownCodeError
	assert.True(t, errors.As(results[1].Err, &unknown))
	assert.Nil(t, results[1].Summary)

	assert.True(t, errors.Is(results[2].Err, os.ErrNotExist))
}

func TestDecodeFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DecodeFiles(ctx, &SUSParser{}, "a.sus", "b.sus")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDecodeFilesEmpty(t *testing.T) {
	results, err := DecodeFiles(context.Background(), &SUSParser{})
	assert.NoError(t, err)
	assert.Nil(t, results)
}
