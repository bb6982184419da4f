// Package parser puts the three chart dialects behind one interface for
// the scanner and the HTTP endpoint. Each adapter keeps its dialect's
// failure policy.
package parser

import (
	"fmt"
	"strings"
)

type Format string

const (
	C2S Format = "c2s"
	SUS Format = "sus"
	UGC Format = "ugc"
)

var formats = []Format{C2S, SUS, UGC}

// Formats lists every supported format name, for flag enums.
func Formats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat is case-insensitive.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

// Extension is the file extension charts of this format use.
func (f Format) Extension() string {
	return "." + string(f)
}

type Options struct {
	// MaxWrapDepth caps C2S wrapper chains. Zero means the decoder default.
	MaxWrapDepth int
	// SkipChildren counts UGC child records instead of failing on them.
	SkipChildren bool
}

type Parser interface {
	Parse(data string) (*Summary, error)
}

// New returns the adapter for format.
func New(format Format, opts Options) (Parser, error) {
	switch format {
	case C2S:
		return &C2SParser{MaxWrapDepth: opts.MaxWrapDepth}, nil
	case SUS:
		return &SUSParser{}, nil
	case UGC:
		return &UGCParser{SkipChildren: opts.SkipChildren}, nil
	}
	return nil, fmt.Errorf("unknown chart format %q", format)
}
