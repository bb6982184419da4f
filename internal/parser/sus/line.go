// Package sus decodes SUS (Sliding Universal Score) charts. Every line is
// classified; nothing in a SUS file is rejected.
package sus

import (
	"math"
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/base36"
	"git.lost.host/meutraa/chunichart/internal/game"
)

// Line is one classified line of a SUS file.
type Line interface {
	line()
}

// Comment is any line not starting with '#'. Blank lines are comments
// with empty content.
type Comment struct {
	Content string
}

// Metadata is a `#KEY value` line, the value unquoted.
type Metadata struct {
	Key   string
	Value string
}

// Definition is a numbered table entry such as `#BPM01: 120`.
type Definition struct {
	Table string // BPM, ATR or TIL
	ID    uint16
	Value string
}

// MeasureLength is a `#mmm02: beats` line.
type MeasureLength struct {
	Measure uint32
	Beats   float64
}

// BpmChange is a `#mmm08: ids` line. Each non-zero id refers to a BPM
// definition and is resolved once the whole file is read.
type BpmChange struct {
	Measure uint32
	Refs    []BpmRef
}

type BpmRef struct {
	Measure uint32
	ID      uint16
	Slot    int
	Slots   int
}

// NoteData is a note line. Notes is empty when the payload is too short to
// carry a type and width.
type NoteData struct {
	Measure uint32
	Code    string // kind, lane and channel characters
	Lane    uint8
	Channel uint8
	Payload string
	Notes   []Note
}

// Unknown is a '#' line matching no known shape.
type Unknown struct {
	Raw string
}

func (Comment) line()       {}
func (Metadata) line()      {}
func (Definition) line()    {}
func (MeasureLength) line() {}
func (BpmChange) line()     {}
func (NoteData) line()      {}
func (Unknown) line()       {}

const (
	// DefaultTicksPerBeat applies until a `#REQUEST "ticks_per_beat n"`.
	DefaultTicksPerBeat = 480
	beatsPerMeasure     = 4
	measureDigits       = 3
)

var definitionTables = []string{"BPM", "ATR", "TIL"}

// Parser classifies lines. TicksPerBeat converts payload slots to ticks.
type Parser struct {
	TicksPerBeat uint32
}

// ParseLine classifies a single line with the default tick resolution.
func ParseLine(line string) Line {
	p := Parser{TicksPerBeat: DefaultTicksPerBeat}
	return p.ParseLine(line)
}

func (p *Parser) ParseLine(line string) Line {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Comment{}
	}
	if !strings.HasPrefix(trimmed, "#") {
		return Comment{Content: line}
	}

	body := trimmed[1:]
	if strings.Contains(body, ":") {
		if def, ok := parseDefinition(body); ok {
			return def
		}
		if data, ok := p.parseData(body); ok {
			return data
		}
	}
	if meta, ok := parseMetadata(body); ok {
		return meta
	}
	return Unknown{Raw: line}
}

func parseDefinition(body string) (Definition, bool) {
	head, value, _ := strings.Cut(body, ":")
	if len(head) <= 3 {
		return Definition{}, false
	}
	for _, table := range definitionTables {
		if !strings.EqualFold(head[:3], table) {
			continue
		}
		id, err := base36.Decode[uint16](strings.TrimSpace(head[3:]))
		if nil != err {
			return Definition{}, false
		}
		return Definition{Table: table, ID: id, Value: unquote(strings.TrimSpace(value))}, true
	}
	return Definition{}, false
}

func parseMetadata(body string) (Metadata, bool) {
	i := strings.IndexAny(body, " \t")
	if i <= 0 || strings.Contains(body[:i], ":") {
		return Metadata{}, false
	}
	return Metadata{Key: body[:i], Value: unquote(strings.TrimSpace(body[i+1:]))}, true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func (p *Parser) parseData(body string) (Line, bool) {
	head, payload, _ := strings.Cut(body, ":")
	head = strings.TrimSpace(head)
	payload = strings.Join(strings.Fields(payload), "")
	if len(head) < measureDigits+2 || len(head) > measureDigits+3 {
		return nil, false
	}
	measure, err := base36.Decode[uint32](head[:measureDigits])
	if nil != err {
		return nil, false
	}
	code := head[measureDigits:]

	switch code[0] {
	case '0':
		return parseControl(measure, code, payload)
	case '1', '5':
		if len(code) != 2 {
			return nil, false
		}
	case '2', '3', '4':
		if len(code) != 3 {
			return nil, false
		}
	default:
		return nil, false
	}

	lane, ok := base36.Digit(code[1])
	if !ok {
		return nil, false
	}
	data := NoteData{Measure: measure, Code: code, Lane: lane, Payload: payload}
	if len(code) == 3 {
		if data.Channel, ok = base36.Digit(code[2]); !ok {
			return nil, false
		}
	}
	data.Notes = p.notes(data)
	return data, true
}

func parseControl(measure uint32, code, payload string) (Line, bool) {
	switch code {
	case "02":
		beats, err := strconv.ParseFloat(payload, 64)
		if nil != err {
			return nil, false
		}
		return MeasureLength{Measure: measure, Beats: beats}, true
	case "08":
		change := BpmChange{Measure: measure}
		slots := len(payload) / 2
		for i := 0; i < slots; i++ {
			id, err := base36.Decode[uint16](payload[2*i : 2*i+2])
			if nil != err {
				return nil, false
			}
			if id == 0 {
				continue
			}
			change.Refs = append(change.Refs, BpmRef{Measure: measure, ID: id, Slot: i, Slots: slots})
		}
		return change, true
	}
	return nil, false
}

// kindFor resolves the kind of a payload pair from the line's kind code and
// the pair's type digit.
func kindFor(code byte, typ uint8) game.NoteKind {
	switch code {
	case '1':
		switch typ {
		case 2:
			return game.Kind(game.KindExTap)
		case 3:
			return game.Kind(game.KindFlick)
		case 4:
			return game.Kind(game.KindMine)
		}
		return game.Kind(game.KindTap)
	case '2':
		return game.Kind(game.KindHold)
	case '3', '4':
		if typ == 1 || typ == 2 {
			return game.Kind(game.KindSlide)
		}
		return game.Kind(game.KindSlideControlPoint)
	case '5':
		switch typ {
		case 2:
			return game.Directional(game.Down)
		case 3:
			return game.Directional(game.UpLeft)
		case 4:
			return game.Directional(game.UpRight)
		case 5:
			return game.Directional(game.DownLeft)
		case 6:
			return game.Directional(game.DownRight)
		}
		return game.Kind(game.KindAir)
	}
	return game.Unknown(string(code))
}

// MaxTicksPerBeat keeps a whole measure addressable in uint32 ticks.
const MaxTicksPerBeat = math.MaxUint32 / beatsPerMeasure

// offset converts slot i of n to ticks from the start of the measure.
func (p *Parser) offset(i, n int) uint32 {
	ticksPerBeat := uint64(p.TicksPerBeat)
	if ticksPerBeat == 0 {
		ticksPerBeat = DefaultTicksPerBeat
	}
	if ticksPerBeat > MaxTicksPerBeat {
		ticksPerBeat = MaxTicksPerBeat
	}
	return uint32(uint64(i) * ticksPerBeat * beatsPerMeasure / uint64(n))
}

func (p *Parser) notes(data NoteData) []Note {
	slots := len(data.Payload) / 2
	if slots == 0 {
		return nil
	}
	var notes []Note
	for i := 0; i < slots; i++ {
		typ, ok := base36.Digit(data.Payload[2*i])
		if !ok {
			continue
		}
		width, ok := base36.Digit(data.Payload[2*i+1])
		if !ok || (typ == 0 && width == 0) {
			continue
		}
		n := Note{
			Kind:    kindFor(data.Code[0], typ),
			Measure: data.Measure,
			Offset:  p.offset(i, slots),
			Lane:    data.Lane,
			Width:   width,
			Type:    typ,
			Channel: data.Channel,
		}
		if data.Code[0] == '4' {
			n.SlideType = 2
		} else if data.Code[0] == '3' {
			n.SlideType = 1
		}
		notes = append(notes, n)
	}
	return notes
}
