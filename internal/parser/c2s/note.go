package c2s

import (
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/game"
)

const (
	// Fields every note record starts with: tag measure offset cell width.
	baseFields = 5
	// Wrapper records: the base fields, then wrapped-tag param1 duration
	// end-cell end-width param2 param3.
	wrapperFields = 12
	// DefaultMaxWrapDepth allows a wrapper to name another wrapper tag as
	// its wrapped type, which occurs in shipped charts.
	DefaultMaxWrapDepth = 2
)

var wrapperTags = map[string]bool{"ASD": true, "ASC": true}

var baseFieldNames = [baseFields]string{"tag", "measure", "offset", "cell", "width"}

// WrappedNoteInfo keeps the envelope of a note that was read from an ASD or
// ASC wrapper record.
type WrappedNoteInfo struct {
	OriginalFormat string  `json:"originalFormat"` // "ASD" or "ASC"
	WrappedType    string  `json:"wrappedType"`
	Param1         float64 `json:"param1"` // usually 5.0
	Param2         float64 `json:"param2"` // usually 5.0
	Param3         string  `json:"param3"` // "DEF", or "NON" for air actions
}

// Note is a single C2S note record. Which optional fields are set depends
// only on the kind.
type Note struct {
	Kind    game.NoteKind `json:"kind"`
	Measure uint32        `json:"measure"`
	Offset  uint32        `json:"offset"` // ticks within the measure
	Cell    uint32        `json:"cell"`
	Width   uint32        `json:"width"`

	Duration *uint32  `json:"duration,omitempty"` // ticks
	EndCell  *float64 `json:"endCell,omitempty"`
	EndWidth *float64 `json:"endWidth,omitempty"`
	// TargetNote names, by tag, the note an air note sits on.
	TargetNote    *string          `json:"targetNote,omitempty"`
	ExTapModifier *string          `json:"exTapModifier,omitempty"` // UP, CE, DW...
	FlickModifier *string          `json:"flickModifier,omitempty"`
	Wrapped       *WrappedNoteInfo `json:"wrapped,omitempty"`
}

type slot uint8

const (
	slotDuration slot = iota
	slotEndCell
	slotEndWidth
	slotTarget
	slotExTapModifier
	slotFlickModifier
)

var slotNames = map[slot]string{
	slotDuration:      "duration",
	slotEndCell:       "end cell",
	slotEndWidth:      "end width",
	slotTarget:        "target note",
	slotExTapModifier: "ex-tap modifier",
	slotFlickModifier: "flick modifier",
}

var (
	slideLayout = []slot{slotDuration, slotEndCell, slotEndWidth}
	airLayout   = []slot{slotTarget}
)

// layouts lists, per kind, the optional fields that follow the base fields
// in order. Kinds without an entry have no optional fields.
var layouts = map[game.KindType][]slot{
	game.KindHold:                 {slotDuration},
	game.KindExHold:               {slotDuration},
	game.KindAirHold:              {slotTarget, slotDuration},
	game.KindAirHoldGround:        {slotTarget, slotDuration},
	game.KindSlide:                slideLayout,
	game.KindExSlide:              slideLayout,
	game.KindSlideControlPoint:    slideLayout,
	game.KindExSlideControlPoint:  slideLayout,
	game.KindAirSlide:             slideLayout,
	game.KindAirSlideControlPoint: slideLayout,
	game.KindExTap:                {slotExTapModifier},
	game.KindFlick:                {slotFlickModifier},
	game.KindAir:                  airLayout,
	game.KindAirDirectional:       airLayout,
}

func (n *Note) set(s slot, value string) error {
	switch s {
	case slotDuration:
		v, err := parseUintField(slotNames[s], value)
		if nil != err {
			return err
		}
		n.Duration = &v
	case slotEndCell, slotEndWidth:
		v, err := strconv.ParseFloat(value, 64)
		if nil != err {
			return &game.InvalidFieldError{Field: slotNames[s], Value: value, Err: err}
		}
		if s == slotEndCell {
			n.EndCell = &v
		} else {
			n.EndWidth = &v
		}
	case slotTarget:
		n.TargetNote = &value
	case slotExTapModifier:
		n.ExTapModifier = &value
	case slotFlickModifier:
		n.FlickModifier = &value
	}
	return nil
}

func parseUintField(name, value string) (uint32, error) {
	v, err := strconv.ParseUint(value, 10, 32)
	if nil != err {
		return 0, &game.InvalidFieldError{Field: name, Value: value, Err: err}
	}
	return uint32(v), nil
}

func parseFloatField(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if nil != err {
		return 0, &game.InvalidFieldError{Field: name, Value: value, Err: err}
	}
	return v, nil
}

// parseBase reads measure, offset, cell and width.
func parseBase(parts []string) (Note, error) {
	var n Note
	dst := []*uint32{&n.Measure, &n.Offset, &n.Cell, &n.Width}
	for i, d := range dst {
		v, err := parseUintField(baseFieldNames[i+1], parts[i+1])
		if nil != err {
			return n, err
		}
		*d = v
	}
	return n, nil
}

// ParseNote parses a single note record, surfacing every error.
func (p *Parser) ParseNote(line string) (Note, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Note{}, &game.MissingFieldsError{Field: baseFieldNames[0], Want: baseFields}
	}

	if len(parts) < baseFields {
		return Note{}, &game.MissingFieldsError{Field: baseFieldNames[len(parts)], Want: baseFields, Got: len(parts)}
	}

	tag := strings.ToUpper(parts[0])
	if wrapperTags[tag] && len(parts) == wrapperFields {
		return p.parseWrapper(tag, parts, 1)
	}
	if tag == "ASD" {
		return Note{}, &game.StructuralMismatchError{
			Tag:    tag,
			Reason: "wrapper record must have exactly " + strconv.Itoa(wrapperFields) + " fields, got " + strconv.Itoa(len(parts)),
		}
	}

	n, err := parseBase(parts)
	if nil != err {
		return Note{}, err
	}
	n.Kind = game.TagToKind(tag)

	for i, s := range layouts[n.Kind.Type] {
		if baseFields+i >= len(parts) {
			break
		}
		if err := n.set(s, parts[baseFields+i]); nil != err {
			return Note{}, err
		}
	}

	// Flicks always carry a direction, the game assumes left.
	if n.Kind.Type == game.KindFlick && n.FlickModifier == nil {
		left := "L"
		n.FlickModifier = &left
	}
	return n, nil
}

// parseWrapper resolves an ASD/ASC envelope. Only the outer envelope is
// consumed: the wrapped tag becomes the kind even when it is itself a
// wrapper tag.
func (p *Parser) parseWrapper(tag string, parts []string, depth int) (Note, error) {
	wrappedType := parts[5]
	if wrapperTags[strings.ToUpper(wrappedType)] {
		depth++
	}
	if depth > p.maxWrapDepth() {
		return Note{}, &game.StructuralMismatchError{
			Tag:    tag,
			Reason: "wrapper nesting exceeds depth " + strconv.Itoa(p.maxWrapDepth()),
		}
	}

	n, err := parseBase(parts)
	if nil != err {
		return Note{}, err
	}

	info := WrappedNoteInfo{
		OriginalFormat: tag,
		WrappedType:    wrappedType,
		Param3:         parts[11],
	}
	if info.Param1, err = parseFloatField("param1", parts[6]); nil != err {
		return Note{}, err
	}
	duration, err := parseUintField("duration", parts[7])
	if nil != err {
		return Note{}, err
	}
	endCell, err := parseUintField("end cell", parts[8])
	if nil != err {
		return Note{}, err
	}
	endWidth, err := parseUintField("end width", parts[9])
	if nil != err {
		return Note{}, err
	}
	if info.Param2, err = parseFloatField("param2", parts[10]); nil != err {
		return Note{}, err
	}

	cell, width := float64(endCell), float64(endWidth)
	n.Kind = game.TagToKind(strings.ToUpper(wrappedType))
	n.Duration = &duration
	n.EndCell = &cell
	n.EndWidth = &width
	n.Wrapped = &info
	return n, nil
}

func (p *Parser) maxWrapDepth() int {
	if p.MaxWrapDepth <= 0 {
		return DefaultMaxWrapDepth
	}
	return p.MaxWrapDepth
}

// IsWrapped reports whether the note was read from an ASD/ASC wrapper.
func (n *Note) IsWrapped() bool {
	return n.Wrapped != nil
}

// IsAirAction reports whether the note is an air action (an air slide
// wrapped with mode NON). Several at one position form an air crush.
func (n *Note) IsAirAction() bool {
	if n.Kind.Type != game.KindAirSlide && n.Kind.Type != game.KindAirSlideControlPoint {
		return false
	}
	return n.Wrapped != nil && n.Wrapped.Param3 == "NON"
}

func (n *Note) OriginalFormat() string {
	if n.Wrapped == nil {
		return ""
	}
	return n.Wrapped.OriginalFormat
}

func (n *Note) WrappedType() string {
	if n.Wrapped == nil {
		return ""
	}
	return n.Wrapped.WrappedType
}

func NewTap(measure, offset, cell, width uint32) Note {
	return Note{Kind: game.Kind(game.KindTap), Measure: measure, Offset: offset, Cell: cell, Width: width}
}

func NewExTap(measure, offset, cell, width uint32, modifier string) Note {
	n := Note{Kind: game.Kind(game.KindExTap), Measure: measure, Offset: offset, Cell: cell, Width: width}
	n.ExTapModifier = &modifier
	return n
}

func NewHold(measure, offset, cell, width, duration uint32) Note {
	n := Note{Kind: game.Kind(game.KindHold), Measure: measure, Offset: offset, Cell: cell, Width: width}
	n.Duration = &duration
	return n
}

func NewSlide(kind game.KindType, measure, offset, cell, width, duration uint32, endCell, endWidth float64) Note {
	n := Note{Kind: game.Kind(kind), Measure: measure, Offset: offset, Cell: cell, Width: width}
	n.Duration = &duration
	n.EndCell = &endCell
	n.EndWidth = &endWidth
	return n
}

func NewFlick(measure, offset, cell, width uint32) Note {
	left := "L"
	n := Note{Kind: game.Kind(game.KindFlick), Measure: measure, Offset: offset, Cell: cell, Width: width}
	n.FlickModifier = &left
	return n
}

// NewAir builds an AIR or directional air note on top of target.
func NewAir(kind game.NoteKind, measure, offset, cell, width uint32, target string) Note {
	n := Note{Kind: kind, Measure: measure, Offset: offset, Cell: cell, Width: width}
	n.TargetNote = &target
	return n
}

func NewAirHold(measure, offset, cell, width uint32, target string, duration uint32) Note {
	n := Note{Kind: game.Kind(game.KindAirHold), Measure: measure, Offset: offset, Cell: cell, Width: width}
	n.TargetNote = &target
	n.Duration = &duration
	return n
}

func NewMine(measure, offset, cell, width uint32) Note {
	return Note{Kind: game.Kind(game.KindMine), Measure: measure, Offset: offset, Cell: cell, Width: width}
}
