package game

// DefaultResolution is the number of ticks in one measure.
const DefaultResolution = 384

// Position is a point in a chart, a measure and a tick offset within it.
type Position struct {
	Measure uint32
	Offset  uint32
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Measure != q.Measure {
		return p.Measure < q.Measure
	}
	return p.Offset < q.Offset
}

type Bpm struct {
	Measure uint32
	Offset  uint32
	Value   float64
}

type TimeSignature struct {
	Measure     uint32
	Offset      uint32
	Numerator   uint32
	Denominator uint32
}

type SpeedChange struct {
	Measure    uint32
	Offset     uint32
	Duration   uint32 // ticks
	Multiplier float64
}

// TempoAt returns the tempo in effect at the given position. Entries only
// take effect at or after their own position, so the last entry that does
// not lie after the position wins.
func TempoAt(rates []Bpm, measure, offset uint32) (float64, bool) {
	at := Position{measure, offset}
	sel, found := 0.0, false
	for _, bpm := range rates {
		if at.Before(Position{bpm.Measure, bpm.Offset}) {
			continue
		}
		sel, found = bpm.Value, true
	}
	return sel, found
}

// Offset converts a beat number (1 = first beat) and a fraction of a beat
// into a tick offset from the start of a measure.
func Offset(resolution, beat uint32, fraction float64) uint32 {
	if beat == 0 {
		beat = 1
	}
	quarter := resolution / 4
	return (beat-1)*quarter + uint32(fraction*float64(resolution)/4)
}
