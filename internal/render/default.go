package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"git.lost.host/meutraa/chunichart/internal/parser"
	"git.lost.host/meutraa/chunichart/internal/theme"
)

// DefaultRenderer buffers lines until Flush. Width truncates the header
// line of each chart; zero means no limit.
type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme
	Width int

	buffer strings.Builder
}

func (r *DefaultRenderer) RenderResult(index int, res parser.Result) {
	if nil != res.Err {
		r.line(fmt.Sprintf("%3v) %v", index, res.Path))
		r.buffer.WriteString("     ")
		r.buffer.WriteString(r.Theme.RenderWarning(res.Err.Error()))
		r.buffer.WriteString("\n")
		return
	}

	s := res.Summary
	header := fmt.Sprintf("%3v) %-3v %5v notes  %-10v %-5v ", index, s.Format, s.Notes, s.Difficulty, s.Level)
	title := s.Title
	if s.Artist != "" {
		title += " / " + s.Artist
	}
	r.buffer.WriteString(header)
	r.buffer.WriteString(r.Theme.RenderTitle(r.truncate(title, r.Width-utf8.RuneCountInString(header))))
	r.buffer.WriteString("\n")

	tags := make([]string, 0, len(s.Kinds))
	for tag := range s.Kinds {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	r.buffer.WriteString("     ")
	for i, tag := range tags {
		if i > 0 {
			r.buffer.WriteString(" ")
		}
		r.buffer.WriteString(r.Theme.RenderKind(tag, s.Kinds[tag]))
	}
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) RenderWarnings(s *parser.Summary) {
	for _, w := range s.Warnings {
		r.buffer.WriteString("     ")
		r.buffer.WriteString(r.Theme.RenderWarning(w))
		r.buffer.WriteString("\n")
	}
}

func (r *DefaultRenderer) RenderTotals(decoded, failed int) {
	r.line(fmt.Sprintf("%v decoded, %v failed", decoded, failed))
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}

func (r *DefaultRenderer) line(s string) {
	r.buffer.WriteString(r.truncate(s, r.Width))
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) truncate(s string, width int) string {
	if r.Width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
