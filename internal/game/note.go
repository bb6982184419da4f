package game

import "fmt"

// KindType is the category of a playable note.
type KindType uint8

const (
	KindInvalid KindType = iota
	KindDefault          // DEF, invisible placeholder
	KindTap
	KindExTap // CHR
	KindHold
	KindExHold
	KindSlide
	KindExSlide
	KindSlideControlPoint
	KindExSlideControlPoint
	KindFlick
	KindAir
	KindAirDirectional
	KindAirHold
	KindAirHoldGround // AHX, air hold with a ground bar
	KindAirSlide
	KindAirSlideControlPoint
	KindMine
	KindUnknown
)

// AirDirection is only meaningful on KindAirDirectional.
type AirDirection uint8

const (
	NoDirection AirDirection = iota
	UpRight
	UpLeft
	Down
	DownRight
	DownLeft
)

func (d AirDirection) String() string {
	switch d {
	case UpRight:
		return "up-right"
	case UpLeft:
		return "up-left"
	case Down:
		return "down"
	case DownRight:
		return "down-right"
	case DownLeft:
		return "down-left"
	}
	return "none"
}

// NoteKind identifies what a note is. Two kinds are equal (==) only when
// the data they carry is equal.
type NoteKind struct {
	Type      KindType
	Direction AirDirection // KindAirDirectional only
	Raw       string       // KindUnknown only
}

func Kind(t KindType) NoteKind {
	return NoteKind{Type: t}
}

func Directional(d AirDirection) NoteKind {
	return NoteKind{Type: KindAirDirectional, Direction: d}
}

func Unknown(raw string) NoteKind {
	return NoteKind{Type: KindUnknown, Raw: raw}
}

type tagPair struct {
	tag  string
	kind NoteKind
}

// The wrapper tag ASD is not a kind; it is resolved by the C2S parser.
var tags = []tagPair{
	{"DEF", Kind(KindDefault)},
	{"TAP", Kind(KindTap)},
	{"CHR", Kind(KindExTap)},
	{"HLD", Kind(KindHold)},
	{"HXD", Kind(KindExHold)},
	{"SLD", Kind(KindSlide)},
	{"SXD", Kind(KindExSlide)},
	{"SLC", Kind(KindSlideControlPoint)},
	{"SXC", Kind(KindExSlideControlPoint)},
	{"FLK", Kind(KindFlick)},
	{"AIR", Kind(KindAir)},
	{"AUR", Directional(UpRight)},
	{"AUL", Directional(UpLeft)},
	{"ADW", Directional(Down)},
	{"ADR", Directional(DownRight)},
	{"ADL", Directional(DownLeft)},
	{"AHD", Kind(KindAirHold)},
	{"AHX", Kind(KindAirHoldGround)},
	{"ALD", Kind(KindAirSlide)},
	{"ASC", Kind(KindAirSlideControlPoint)},
	{"MNE", Kind(KindMine)},
}

// Tags returns every tag of the vocabulary in table order.
func Tags() []string {
	out := make([]string, len(tags))
	for i, p := range tags {
		out[i] = p.tag
	}
	return out
}

// TagToKind never fails: a tag missing from the table yields an unknown
// kind carrying the tag unchanged.
func TagToKind(tag string) NoteKind {
	for _, p := range tags {
		if p.tag == tag {
			return p.kind
		}
	}
	return Unknown(tag)
}

// KindToTag is the left inverse of TagToKind.
func KindToTag(kind NoteKind) (string, error) {
	for _, p := range tags {
		if p.kind == kind {
			return p.tag, nil
		}
	}
	if kind.Type == KindUnknown && kind.Raw != "" {
		return kind.Raw, nil
	}
	return "", &InvalidKindError{Kind: kind}
}

func (k NoteKind) String() string {
	if tag, err := KindToTag(k); nil == err {
		return tag
	}
	return fmt.Sprintf("invalid(%d,%d)", k.Type, k.Direction)
}

func (k NoteKind) MarshalText() ([]byte, error) {
	tag, err := KindToTag(k)
	if nil != err {
		return nil, err
	}
	return []byte(tag), nil
}

func (k *NoteKind) UnmarshalText(text []byte) error {
	*k = TagToKind(string(text))
	return nil
}

// IsAir reports whether the note is played in the air sensor region.
func (k NoteKind) IsAir() bool {
	switch k.Type {
	case KindAir, KindAirDirectional, KindAirHold, KindAirHoldGround, KindAirSlide, KindAirSlideControlPoint:
		return true
	}
	return false
}

// IsLong reports whether the note spans a duration.
func (k NoteKind) IsLong() bool {
	switch k.Type {
	case KindHold, KindExHold, KindSlide, KindExSlide, KindSlideControlPoint,
		KindExSlideControlPoint, KindAirHold, KindAirHoldGround, KindAirSlide, KindAirSlideControlPoint:
		return true
	}
	return false
}
