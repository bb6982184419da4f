package ugc

import (
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/base36"
	"git.lost.host/meutraa/chunichart/internal/game"
)

type ParentType uint8

const (
	Click ParentType = iota
	Tap
	ExTap
	Flick
	Damage
	Hold
	Slide
	Air
	AirHold
	AirSlide
	AirCrush
)

var parentCodes = map[byte]ParentType{
	'c': Click,
	't': Tap,
	'x': ExTap,
	'f': Flick,
	'd': Damage,
	'h': Hold,
	's': Slide,
	'a': Air,
	'H': AirHold,
	'S': AirSlide,
	'C': AirCrush,
}

// HasChildren reports whether notes of this type are built from child records.
func (t ParentType) HasChildren() bool {
	switch t {
	case Hold, Slide, AirHold, AirSlide, AirCrush:
		return true
	}
	return false
}

type ExTapDirection uint8

const (
	ExUp ExTapDirection = iota
	ExDown
	ExCenter
	ExClockwise
	ExCounterclockwise
	ExRight
	ExLeft
	ExInOut
)

var exTapCodes = map[byte]ExTapDirection{
	'U': ExUp,
	'D': ExDown,
	'C': ExCenter,
	'A': ExClockwise,
	'W': ExCounterclockwise,
	'R': ExRight,
	'L': ExLeft,
	'I': ExInOut,
}

type FlickDirection uint8

const (
	FlickAuto FlickDirection = iota
	FlickRight
	FlickLeft
)

var flickCodes = map[byte]FlickDirection{
	'A': FlickAuto,
	'R': FlickRight,
	'L': FlickLeft,
}

// AirDirection includes straight up, which the shared vocabulary models as
// a plain air note rather than a directional one.
type AirDirection uint8

const (
	AirUp AirDirection = iota
	AirUpRight
	AirUpLeft
	AirDown
	AirDownRight
	AirDownLeft
)

// The file format names the side the arrow leans away from, so "UL" is an
// up-right arrow and "DR" a down-left one.
var airCodes = map[string]AirDirection{
	"U":  AirUp,
	"UL": AirUpRight,
	"UR": AirUpLeft,
	"D":  AirDown,
	"DL": AirDownRight,
	"DR": AirDownLeft,
}

func (d AirDirection) vocabulary() game.AirDirection {
	switch d {
	case AirUpRight:
		return game.UpRight
	case AirUpLeft:
		return game.UpLeft
	case AirDown:
		return game.Down
	case AirDownRight:
		return game.DownRight
	case AirDownLeft:
		return game.DownLeft
	}
	return game.NoDirection
}

type AirColor uint8

const (
	AirNormal AirColor = iota
	AirInverted
)

var airColorCodes = map[byte]AirColor{
	'N': AirNormal,
	'I': AirInverted,
}

type CrushColor uint8

const (
	CrushNormal CrushColor = iota
	CrushRed
	CrushOrange
	CrushYellowGreen
	CrushGreen
	CrushCyan
	CrushSky
	CrushLight
	CrushBlue
	CrushBluePurple
	CrushMagenta
	CrushPink
	CrushWhite
	CrushBlack
	CrushTransparent
)

var crushColorCodes = map[byte]CrushColor{
	'0': CrushNormal,
	'1': CrushRed,
	'2': CrushOrange,
	'3': CrushYellowGreen,
	'4': CrushGreen,
	'5': CrushCyan,
	'6': CrushSky,
	'7': CrushLight,
	'8': CrushBlue,
	'9': CrushBluePurple,
	'A': CrushMagenta,
	'B': CrushPink,
	'C': CrushWhite,
	'D': CrushBlack,
	'Y': CrushTransparent,
}

type ChildType uint8

const (
	HoldEndPoint ChildType = iota
	SlideRelayPoint
	SlideControlPoint
	AirHoldRelayPoint
	AirHoldControlPoint
	AirSlideRelayPoint
	AirSlideControlPoint
	AirCrushEndPoint
)

// ChildNote is one segment point of a multi-segment note, addressed by its
// tick offset from the parent.
type ChildNote struct {
	Type   ChildType `json:"type"`
	Offset uint64    `json:"offset"`
	Lane   uint8     `json:"lane,omitempty"`
	Width  uint8     `json:"width,omitempty"`
	Height uint16    `json:"height,omitempty"`
}

// ParentNote is one `#bar'tick:payload` record. Only the fields its Type
// uses are set.
type ParentNote struct {
	Type  ParentType `json:"type"`
	Bar   uint32     `json:"bar"`
	Tick  uint32     `json:"tick"`
	Lane  uint8      `json:"lane"`
	Width uint8      `json:"width"`

	ExTap     ExTapDirection `json:"exTap,omitempty"`
	Flick     FlickDirection `json:"flick,omitempty"`
	Direction AirDirection   `json:"direction,omitempty"`
	Color     AirColor       `json:"color,omitempty"`
	Height    uint16         `json:"height,omitempty"`
	Crush     CrushColor     `json:"crush,omitempty"`
	Interval  *float64       `json:"interval,omitempty"`

	// Children is non-nil for hold, slide, air-hold, air-slide and air-crush.
	Children []ChildNote `json:"children,omitempty"`
}

// Kind maps the note onto the shared vocabulary. Clicks and air crushes
// have no tag there and come back as Unknown carrying their code.
func (n ParentNote) Kind() game.NoteKind {
	switch n.Type {
	case Tap:
		return game.Kind(game.KindTap)
	case ExTap:
		return game.Kind(game.KindExTap)
	case Flick:
		return game.Kind(game.KindFlick)
	case Damage:
		return game.Kind(game.KindMine)
	case Hold:
		return game.Kind(game.KindHold)
	case Slide:
		return game.Kind(game.KindSlide)
	case Air:
		if n.Direction == AirUp {
			return game.Kind(game.KindAir)
		}
		return game.Directional(n.Direction.vocabulary())
	case AirHold:
		return game.Kind(game.KindAirHold)
	case AirSlide:
		return game.Kind(game.KindAirSlide)
	case AirCrush:
		return game.Unknown("C")
	}
	return game.Unknown("c")
}

// cursor walks a payload one code at a time. pos is the index of the next
// unread character.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) next(field string) (byte, error) {
	if c.pos >= len(c.s) {
		return 0, &game.MissingFieldsError{Field: field}
	}
	b := c.s[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) digit(field string) (uint8, error) {
	b, err := c.next(field)
	if nil != err {
		return 0, err
	}
	d, ok := base36.Digit(b)
	if !ok {
		return 0, &game.InvalidFieldError{Field: field, Value: string(b)}
	}
	return d, nil
}

func (c *cursor) height() (uint16, error) {
	if c.pos+2 > len(c.s) {
		return 0, &game.MissingFieldsError{Field: "height"}
	}
	v := c.s[c.pos : c.pos+2]
	h, err := base36.Decode[uint16](v)
	if nil != err {
		return 0, &game.InvalidFieldError{Field: "height", Value: v, Err: err}
	}
	c.pos += 2
	return h, nil
}

func (c *cursor) unknown() error {
	return &game.UnknownCodeError{Code: string(c.s[c.pos-1]), Pos: c.pos - 1}
}

func code[T any](c *cursor, field string, table map[byte]T) (T, error) {
	b, err := c.next(field)
	if nil != err {
		var zero T
		return zero, err
	}
	v, ok := table[b]
	if !ok {
		var zero T
		return zero, c.unknown()
	}
	return v, nil
}

func (c *cursor) airDirection() (AirDirection, error) {
	b, err := c.next("direction")
	if nil != err {
		return 0, err
	}
	if b != 'U' && b != 'D' {
		return 0, c.unknown()
	}
	key := string(b)
	if c.pos < len(c.s) && (c.s[c.pos] == 'L' || c.s[c.pos] == 'R') {
		key += string(c.s[c.pos])
		c.pos++
	}
	return airCodes[key], nil
}

// ParseTime splits a `bar'tick` field.
func ParseTime(s string) (bar, tick uint32, err error) {
	b, t, ok := strings.Cut(s, "'")
	if !ok {
		return 0, 0, &game.MissingFieldsError{Field: "tick"}
	}
	v, err := strconv.ParseUint(b, 10, 32)
	if nil != err {
		return 0, 0, &game.InvalidFieldError{Field: "bar", Value: b, Err: err}
	}
	w, err := strconv.ParseUint(t, 10, 32)
	if nil != err {
		return 0, 0, &game.InvalidFieldError{Field: "tick", Value: t, Err: err}
	}
	return uint32(v), uint32(w), nil
}

// ParseNote parses one parent record, with or without its leading '#'.
// Positions in an UnknownCodeError index the payload after the ':'.
func ParseNote(record string) (ParentNote, error) {
	record = strings.TrimPrefix(strings.TrimSpace(record), "#")
	timing, payload, ok := strings.Cut(record, ":")
	if !ok {
		return ParentNote{}, &game.MissingFieldsError{Field: "payload"}
	}

	var (
		n   ParentNote
		err error
	)
	if n.Bar, n.Tick, err = ParseTime(timing); nil != err {
		return ParentNote{}, err
	}

	c := &cursor{s: payload}
	if n.Type, err = code(c, "code", parentCodes); nil != err {
		return ParentNote{}, err
	}
	if n.Lane, err = c.digit("lane"); nil != err {
		return ParentNote{}, err
	}
	if n.Width, err = c.digit("width"); nil != err {
		return ParentNote{}, err
	}

	switch n.Type {
	case ExTap:
		n.ExTap, err = code(c, "direction", exTapCodes)
	case Flick:
		n.Flick, err = code(c, "direction", flickCodes)
	case Air:
		if n.Direction, err = c.airDirection(); nil == err {
			n.Color, err = code(c, "color", airColorCodes)
		}
	case AirHold:
		n.Color, err = code(c, "color", airColorCodes)
	case AirSlide:
		if n.Height, err = c.height(); nil == err {
			n.Color, err = code(c, "color", airColorCodes)
		}
	case AirCrush:
		if n.Height, err = c.height(); nil == err {
			n.Crush, err = code(c, "color", crushColorCodes)
		}
		if nil == err && c.pos < len(c.s) && c.s[c.pos] == ',' {
			v := c.s[c.pos+1:]
			interval, perr := strconv.ParseFloat(v, 64)
			if nil != perr {
				return ParentNote{}, &game.InvalidFieldError{Field: "interval", Value: v, Err: perr}
			}
			n.Interval = &interval
			c.pos = len(c.s)
		}
	}
	if nil != err {
		return ParentNote{}, err
	}
	if c.pos < len(c.s) {
		return ParentNote{}, &game.UnknownCodeError{Code: string(c.s[c.pos]), Pos: c.pos}
	}

	if n.Type.HasChildren() {
		n.Children = []ChildNote{}
	}
	return n, nil
}

// ParseChildNote parses a `#offset>payload` record. The child layout is not
// pinned down yet, so every call fails with ErrChildNotImplemented.
func ParseChildNote(record string) (ChildNote, error) {
	return ChildNote{}, ErrChildNotImplemented
}
