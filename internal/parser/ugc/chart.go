// Package ugc decodes UGC charts: `@KEY value` directives and
// `#bar'tick:code` note records. Unlike the other dialects it fails on the
// first malformed record.
package ugc

import (
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/chunichart/internal/game"
)

// DefaultResolution is the ticks per beat until an `@TICKS` directive.
const DefaultResolution = 480

type Chart struct {
	Metadata       map[string]string          `json:"metadata"`
	Bpms           []game.Bpm                 `json:"bpms"`
	TimeSignatures []game.TimeSignature       `json:"timeSignatures"`
	SpeedChanges   map[int][]game.SpeedChange `json:"speedChanges"`
	// Timelines files notes under the `@USETIL` id active when they were read.
	Timelines       map[int][]ParentNote `json:"timelines"`
	Resolution      uint32               `json:"resolution"`
	SkippedChildren int                  `json:"skippedChildren,omitempty"`
}

type options struct {
	skipChildren bool
}

type Option func(*options)

// WithChildRecordsSkipped makes Decode count child records instead of
// failing on them.
func WithChildRecordsSkipped() Option {
	return func(o *options) {
		o.skipChildren = true
	}
}

// Decode returns the first error met, wrapped in a *LineError.
func Decode(text string, opts ...Option) (*Chart, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := &decoder{
		opts: o,
		chart: &Chart{
			Metadata:     map[string]string{},
			SpeedChanges: map[int][]game.SpeedChange{},
			Timelines:    map[int][]ParentNote{},
			Resolution:   DefaultResolution,
		},
	}
	for i, line := range strings.Split(text, "\n") {
		if err := d.line(strings.TrimSpace(line)); nil != err {
			return nil, &LineError{Line: i + 1, Err: err}
		}
	}
	return d.chart, nil
}

type decoder struct {
	opts     options
	chart    *Chart
	timeline int
}

func (d *decoder) line(line string) error {
	if line == "" {
		return nil
	}
	switch line[0] {
	case '@':
		return d.directive(line[1:])
	case '#':
		if isChild(line[1:]) {
			if !d.opts.skipChildren {
				_, err := ParseChildNote(line)
				return err
			}
			d.chart.SkippedChildren++
			return nil
		}
		note, err := ParseNote(line)
		if nil != err {
			return err
		}
		d.chart.Timelines[d.timeline] = append(d.chart.Timelines[d.timeline], note)
		return nil
	}
	return &game.UnknownCodeError{Code: line[:1], Pos: 0}
}

// isChild reports whether a record is `offset>payload` rather than
// `bar'tick:payload`.
func isChild(body string) bool {
	i := strings.IndexAny(body, ":>")
	return i >= 0 && body[i] == '>'
}

func (d *decoder) directive(body string) error {
	key, value := body, ""
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		key, value = body[:i], strings.TrimSpace(body[i+1:])
	}
	if key == "" {
		return &game.MissingFieldsError{Field: "key"}
	}
	d.chart.Metadata[key] = value

	fields := strings.Fields(value)
	switch key {
	case "USETIL":
		if len(fields) < 1 {
			return &game.MissingFieldsError{Field: "timeline", Want: 1, Got: 0}
		}
		id, err := strconv.Atoi(fields[0])
		if nil != err {
			return &game.InvalidFieldError{Field: "timeline", Value: fields[0], Err: err}
		}
		d.timeline = id
	case "TICKS":
		if len(fields) < 1 {
			return &game.MissingFieldsError{Field: "ticks", Want: 1, Got: 0}
		}
		ticks, err := strconv.ParseUint(fields[0], 10, 32)
		if nil != err || ticks == 0 {
			return &game.InvalidFieldError{Field: "ticks", Value: fields[0], Err: err}
		}
		d.chart.Resolution = uint32(ticks)
	case "BPM":
		if len(fields) < 2 {
			return &game.MissingFieldsError{Field: "bpm", Want: 2, Got: len(fields)}
		}
		bar, tick, err := ParseTime(fields[0])
		if nil != err {
			return err
		}
		bpm, err := strconv.ParseFloat(fields[1], 64)
		if nil != err {
			return &game.InvalidFieldError{Field: "bpm", Value: fields[1], Err: err}
		}
		d.chart.Bpms = append(d.chart.Bpms, game.Bpm{Measure: bar, Offset: tick, Value: bpm})
	case "BEAT":
		if len(fields) < 3 {
			return &game.MissingFieldsError{Field: "beat", Want: 3, Got: len(fields)}
		}
		var v [3]uint32
		for i, name := range []string{"bar", "numerator", "denominator"} {
			n, err := strconv.ParseUint(fields[i], 10, 32)
			if nil != err {
				return &game.InvalidFieldError{Field: name, Value: fields[i], Err: err}
			}
			v[i] = uint32(n)
		}
		d.chart.TimeSignatures = append(d.chart.TimeSignatures, game.TimeSignature{
			Measure:     v[0],
			Numerator:   v[1],
			Denominator: v[2],
		})
	case "TIL":
		if len(fields) < 3 {
			return &game.MissingFieldsError{Field: "speed", Want: 3, Got: len(fields)}
		}
		id, err := strconv.Atoi(fields[0])
		if nil != err {
			return &game.InvalidFieldError{Field: "timeline", Value: fields[0], Err: err}
		}
		bar, tick, err := ParseTime(fields[1])
		if nil != err {
			return err
		}
		speed, err := strconv.ParseFloat(fields[2], 64)
		if nil != err {
			return &game.InvalidFieldError{Field: "speed", Value: fields[2], Err: err}
		}
		d.chart.SpeedChanges[id] = append(d.chart.SpeedChanges[id], game.SpeedChange{
			Measure:    bar,
			Offset:     tick,
			Multiplier: speed,
		})
	}
	return nil
}

// Notes returns every note of every timeline, timelines in ascending id.
func (c *Chart) Notes() []ParentNote {
	ids := make([]int, 0, len(c.Timelines))
	for id := range c.Timelines {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var notes []ParentNote
	for _, id := range ids {
		notes = append(notes, c.Timelines[id]...)
	}
	return notes
}

func (c *Chart) Title() string {
	return c.Metadata["TITLE"]
}
