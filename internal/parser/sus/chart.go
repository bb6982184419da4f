package sus

import (
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/game"
)

// Note is one payload pair of a SUS note line.
type Note struct {
	Kind    game.NoteKind `json:"kind"`
	Measure uint32        `json:"measure"`
	Offset  uint32        `json:"offset"` // ticks within the measure
	Lane    uint8         `json:"lane"`
	Width   uint8         `json:"width"`
	// Type is the raw type digit of the pair, e.g. start/end/step for long notes.
	Type    uint8 `json:"type"`
	Channel uint8 `json:"channel,omitempty"` // long notes only
	// SlideType is 1 or 2 for slide lines and 0 otherwise.
	SlideType uint8 `json:"slideType,omitempty"`
}

// Definitions holds the numbered tables, keyed by table name then id.
type Definitions map[string]map[uint16]string

type Chart struct {
	Metadata       map[string]string `json:"metadata"`
	Definitions    Definitions       `json:"definitions"`
	MeasureLengths []MeasureLength   `json:"measureLengths"`
	Bpms           []game.Bpm        `json:"bpms"`
	// UnresolvedBpms lists tempo references naming an undefined BPM id.
	UnresolvedBpms []BpmRef `json:"unresolvedBpms,omitempty"`
	Notes          []Note   `json:"notes"`
	TicksPerBeat   uint32   `json:"ticksPerBeat"`
	Lines          []Line   `json:"-"`
}

// Decode classifies every line and never fails.
func Decode(text string) *Chart {
	p := &Parser{TicksPerBeat: DefaultTicksPerBeat}
	chart := &Chart{
		Metadata:    map[string]string{},
		Definitions: Definitions{},
	}
	var changes []BpmChange

	lines := strings.Split(text, "\n")
	// The resolution applies to the whole file wherever the request sits.
	for _, raw := range lines {
		if m, ok := p.ParseLine(raw).(Metadata); ok && m.Key == "REQUEST" {
			p.request(m.Value)
		}
	}

	for _, raw := range lines {
		l := p.ParseLine(raw)
		chart.Lines = append(chart.Lines, l)

		switch l := l.(type) {
		case Metadata:
			chart.Metadata[l.Key] = l.Value
		case Definition:
			table, ok := chart.Definitions[l.Table]
			if !ok {
				table = map[uint16]string{}
				chart.Definitions[l.Table] = table
			}
			table[l.ID] = l.Value
		case MeasureLength:
			chart.MeasureLengths = append(chart.MeasureLengths, l)
		case BpmChange:
			changes = append(changes, l)
		case NoteData:
			chart.Notes = append(chart.Notes, l.Notes...)
		}
	}
	chart.TicksPerBeat = p.TicksPerBeat

	for _, change := range changes {
		for _, ref := range change.Refs {
			value, ok := chart.Definitions["BPM"][ref.ID]
			bpm, err := strconv.ParseFloat(value, 64)
			if !ok || nil != err {
				chart.UnresolvedBpms = append(chart.UnresolvedBpms, ref)
				continue
			}
			chart.Bpms = append(chart.Bpms, game.Bpm{
				Measure: change.Measure,
				Offset:  p.offset(ref.Slot, ref.Slots),
				Value:   bpm,
			})
		}
	}

	return chart
}

// request applies a `#REQUEST` value. Only ticks_per_beat changes decoding,
// and a value too large to address a measure in uint32 ticks is ignored.
func (p *Parser) request(value string) {
	fields := strings.Fields(value)
	if len(fields) != 2 || fields[0] != "ticks_per_beat" {
		return
	}
	tpb, err := strconv.ParseUint(fields[1], 10, 32)
	if nil != err || tpb == 0 || tpb > MaxTicksPerBeat {
		return
	}
	p.TicksPerBeat = uint32(tpb)
}

// Title returns the TITLE metadata, if any.
func (c *Chart) Title() string {
	return c.Metadata["TITLE"]
}
