package render

import "git.lost.host/meutraa/chunichart/internal/parser"

type Renderer interface {
	RenderResult(index int, r parser.Result)
	RenderWarnings(s *parser.Summary)
	RenderTotals(decoded, failed int)
	Flush() error
}
