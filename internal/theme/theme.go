package theme

type Theme interface {
	RenderKind(tag string, count int) string
	RenderTitle(title string) string
	RenderWarning(message string) string
}
