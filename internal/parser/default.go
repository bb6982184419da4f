package parser

import (
	"fmt"
	"strconv"

	"git.lost.host/meutraa/chunichart/internal/game"
	"git.lost.host/meutraa/chunichart/internal/parser/c2s"
	"git.lost.host/meutraa/chunichart/internal/parser/sus"
	"git.lost.host/meutraa/chunichart/internal/parser/ugc"
)

// C2SParser never fails. Dropped lines become summary warnings.
type C2SParser struct {
	MaxWrapDepth int
}

func (p *C2SParser) Parse(data string) (*Summary, error) {
	decoder := &c2s.Parser{MaxWrapDepth: p.MaxWrapDepth}
	chart := decoder.Decode(data)

	m := chart.Metadata
	s := newSummary(C2S, data, chart)
	// C2S carries no title, only the music id.
	s.Title = strconv.FormatUint(uint64(m.Music), 10)
	s.Artist = m.Creator
	s.Level = strconv.FormatUint(uint64(m.Level), 10)
	s.Difficulty = game.DifficultyName(m.Difficulty)
	s.setBpms(chart.Bpms, m.BpmDefault[0])
	for _, n := range chart.Notes {
		s.count(n.Kind)
	}
	for _, w := range chart.Warnings {
		s.Warnings = append(s.Warnings, fmt.Sprintf("line %d: %q: %v", w.Line, w.Text, w.Err))
	}
	return s, nil
}

// SUSParser never fails. Unclassified lines become summary warnings.
type SUSParser struct{}

func (p *SUSParser) Parse(data string) (*Summary, error) {
	chart := sus.Decode(data)

	s := newSummary(SUS, data, chart)
	s.Title = chart.Title()
	s.Artist = chart.Metadata["ARTIST"]
	s.Level = chart.Metadata["PLAYLEVEL"]
	if d, err := strconv.ParseUint(chart.Metadata["DIFFICULTY"], 10, 32); nil == err {
		s.Difficulty = game.DifficultyName(uint32(d))
	}
	s.setBpms(chart.Bpms, 0)
	for _, n := range chart.Notes {
		s.count(n.Kind)
	}
	for i, l := range chart.Lines {
		if u, ok := l.(sus.Unknown); ok {
			s.Warnings = append(s.Warnings, fmt.Sprintf("line %d: unknown line %q", i+1, u.Raw))
		}
	}
	for _, ref := range chart.UnresolvedBpms {
		s.Warnings = append(s.Warnings, fmt.Sprintf("measure %d: undefined bpm %d", ref.Measure, ref.ID))
	}
	return s, nil
}

// UGCParser returns the decoder's first error.
type UGCParser struct {
	SkipChildren bool
}

func (p *UGCParser) Parse(data string) (*Summary, error) {
	var opts []ugc.Option
	if p.SkipChildren {
		opts = append(opts, ugc.WithChildRecordsSkipped())
	}
	chart, err := ugc.Decode(data, opts...)
	if nil != err {
		return nil, err
	}

	s := newSummary(UGC, data, chart)
	s.Title = chart.Title()
	s.Artist = chart.Metadata["ARTIST"]
	s.Level = chart.Metadata["LEVEL"]
	if d, err := strconv.ParseUint(chart.Metadata["DIFF"], 10, 32); nil == err {
		s.Difficulty = game.DifficultyName(uint32(d))
	}
	s.setBpms(chart.Bpms, 0)
	for _, n := range chart.Notes() {
		s.count(n.Kind())
	}
	if chart.SkippedChildren > 0 {
		s.Warnings = append(s.Warnings, fmt.Sprintf("skipped %d child records", chart.SkippedChildren))
	}
	return s, nil
}
