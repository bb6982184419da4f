// Package c2s decodes C2S charts: whitespace separated records of metadata
// commands and notes addressed by measure, tick and cell.
package c2s

import (
	"math"
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/game"
)

type Metadata struct {
	Version    [2]string `json:"version"`
	Music      uint32    `json:"music"`
	SequenceID uint32    `json:"sequenceId"`
	Difficulty uint32    `json:"difficulty"`
	Level      uint32    `json:"level"`
	Creator    string    `json:"creator"`
	// BpmDefault holds the four BPM_DEF values.
	BpmDefault       [4]float64 `json:"bpmDefault"`
	MetronomeDefault [4]uint32  `json:"metronomeDefault"`
	Resolution       uint32     `json:"resolution"`
	ClockDefault     float64    `json:"clockDefault"`
	ProgJudgeBpm     float64    `json:"progJudgeBpm"`
	ProgJudgeAer     float64    `json:"progJudgeAer"`
	Tutorial         bool       `json:"tutorial"`
}

// Warning records a line that Decode dropped.
type Warning struct {
	Line int    `json:"line"` // 1-based
	Text string `json:"text"`
	Err  error  `json:"-"`
}

type Chart struct {
	Metadata       Metadata             `json:"metadata"`
	Bpms           []game.Bpm           `json:"bpms"`
	TimeSignatures []game.TimeSignature `json:"timeSignatures"`
	SpeedChanges   []game.SpeedChange   `json:"speedChanges"`
	Notes          []Note               `json:"notes"`
	Warnings       []Warning            `json:"-"`
}

const (
	defaultVersion      = "1.00.00"
	defaultCreator      = "Unknown"
	defaultBpm          = 120.0
	defaultBeats        = 4
	defaultClock        = 384.0
	defaultProgJudgeBpm = 240.0
	defaultProgJudgeAer = 0.999
	defaultMultiplier   = 1.0
)

func DefaultMetadata() Metadata {
	return Metadata{
		Version:          [2]string{defaultVersion, defaultVersion},
		Creator:          defaultCreator,
		BpmDefault:       [4]float64{defaultBpm, defaultBpm, defaultBpm, defaultBpm},
		MetronomeDefault: [4]uint32{defaultBeats, defaultBeats, 0, 0},
		Resolution:       game.DefaultResolution,
		ClockDefault:     defaultClock,
		ProgJudgeBpm:     defaultProgJudgeBpm,
		ProgJudgeAer:     defaultProgJudgeAer,
	}
}

// Parser decodes C2S text. The zero value is ready to use.
type Parser struct {
	// MaxWrapDepth caps how many wrapper tags one record may chain.
	// Zero means DefaultMaxWrapDepth.
	MaxWrapDepth int
}

var DefaultParser = &Parser{MaxWrapDepth: DefaultMaxWrapDepth}

// ParseNote parses one note record with the default parser.
func ParseNote(line string) (Note, error) {
	return DefaultParser.ParseNote(line)
}

// Decode decodes a whole chart with the default parser.
func Decode(text string) *Chart {
	return DefaultParser.Decode(text)
}

// command applies a metadata keyword. min is the number of fields,
// keyword included, the command needs; shorter lines are ignored.
type command struct {
	min   int
	apply func(c *Chart, parts []string)
}

func parseUint(s string, def uint32) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	if nil != err {
		return def
	}
	return uint32(v)
}

// parseLevel truncates toward zero, saturating at the uint32 range.
// NaN takes the default.
func parseLevel(s string, def uint32) uint32 {
	v := parseFloat(s, float64(def))
	switch {
	case math.IsNaN(v):
		return def
	case v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}

func parseFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if nil != err {
		return def
	}
	return v
}

var commands = map[string]command{
	"VERSION": {3, func(c *Chart, p []string) {
		c.Metadata.Version = [2]string{p[1], p[2]}
	}},
	"MUSIC": {2, func(c *Chart, p []string) {
		c.Metadata.Music = parseUint(p[1], 0)
	}},
	"SEQUENCEID": {2, func(c *Chart, p []string) {
		c.Metadata.SequenceID = parseUint(p[1], 0)
	}},
	"DIFFICULT": {2, func(c *Chart, p []string) {
		c.Metadata.Difficulty = parseUint(p[1], 0)
	}},
	"LEVEL": {2, func(c *Chart, p []string) {
		c.Metadata.Level = parseLevel(p[1], 0)
	}},
	"CREATOR": {2, func(c *Chart, p []string) {
		c.Metadata.Creator = strings.Join(p[1:], " ")
	}},
	"BPM_DEF": {5, func(c *Chart, p []string) {
		for i := range c.Metadata.BpmDefault {
			c.Metadata.BpmDefault[i] = parseFloat(p[i+1], defaultBpm)
		}
	}},
	"MET_DEF": {3, func(c *Chart, p []string) {
		c.Metadata.MetronomeDefault = [4]uint32{
			parseUint(p[1], defaultBeats),
			parseUint(p[2], defaultBeats),
			0, 0,
		}
	}},
	"RESOLUTION": {2, func(c *Chart, p []string) {
		c.Metadata.Resolution = parseUint(p[1], game.DefaultResolution)
	}},
	"CLK_DEF": {2, func(c *Chart, p []string) {
		c.Metadata.ClockDefault = parseFloat(p[1], defaultClock)
	}},
	"PROGJUDGE_BPM": {2, func(c *Chart, p []string) {
		c.Metadata.ProgJudgeBpm = parseFloat(p[1], defaultProgJudgeBpm)
	}},
	"PROGJUDGE_AER": {2, func(c *Chart, p []string) {
		c.Metadata.ProgJudgeAer = parseFloat(p[1], defaultProgJudgeAer)
	}},
	"TUTORIAL": {2, func(c *Chart, p []string) {
		c.Metadata.Tutorial = p[1] == "1"
	}},
	"BPM": {4, func(c *Chart, p []string) {
		c.Bpms = append(c.Bpms, game.Bpm{
			Measure: parseUint(p[1], 0),
			Offset:  parseUint(p[2], 0),
			Value:   parseFloat(p[3], defaultBpm),
		})
	}},
	"MET": {5, func(c *Chart, p []string) {
		c.TimeSignatures = append(c.TimeSignatures, game.TimeSignature{
			Measure:     parseUint(p[1], 0),
			Offset:      parseUint(p[2], 0),
			Numerator:   parseUint(p[3], defaultBeats),
			Denominator: parseUint(p[4], defaultBeats),
		})
	}},
	"SFL": {5, func(c *Chart, p []string) {
		c.SpeedChanges = append(c.SpeedChanges, game.SpeedChange{
			Measure:    parseUint(p[1], 0),
			Offset:     parseUint(p[2], 0),
			Duration:   parseUint(p[3], 0),
			Multiplier: parseFloat(p[4], defaultMultiplier),
		})
	}},
}

// IsCommand reports whether keyword introduces a metadata line.
func IsCommand(keyword string) bool {
	_, ok := commands[keyword]
	return ok
}

// Decode never fails. Metadata values that do not parse take their default,
// and lines that do not parse as notes are dropped and listed in Warnings.
func (p *Parser) Decode(text string) *Chart {
	chart := &Chart{Metadata: DefaultMetadata()}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if cmd, ok := commands[parts[0]]; ok {
			if len(parts) >= cmd.min {
				cmd.apply(chart, parts)
			}
			continue
		}

		note, err := p.ParseNote(line)
		if nil != err {
			chart.Warnings = append(chart.Warnings, Warning{Line: i + 1, Text: line, Err: err})
			continue
		}
		chart.Notes = append(chart.Notes, note)
	}

	return chart
}
