package theme

import (
	"fmt"
	"strconv"

	"git.lost.host/meutraa/chunichart/internal/game"
)

type Color struct {
	R, G, B uint8
}

// DefaultTheme colours output with 24-bit ANSI escapes.
type DefaultTheme struct {
}

func (t *DefaultTheme) RenderKind(tag string, count int) string {
	return paint(KindColor(game.TagToKind(tag)), tag+"×"+strconv.Itoa(count))
}

func (t *DefaultTheme) RenderTitle(title string) string {
	return "\033[1m" + title + "\033[0m"
}

func (t *DefaultTheme) RenderWarning(message string) string {
	return paint(warningColor, message)
}

// PlainTheme is used when stdout is not a terminal.
type PlainTheme struct {
}

func (t *PlainTheme) RenderKind(tag string, count int) string {
	return tag + "×" + strconv.Itoa(count)
}

func (t *PlainTheme) RenderTitle(title string) string {
	return title
}

func (t *PlainTheme) RenderWarning(message string) string {
	return message
}

func paint(c Color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

var (
	warningColor = Color{236, 195, 0}
	kindColors   = map[game.KindType]Color{
		game.KindTap:                  {236, 30, 0},    // red
		game.KindExTap:                {236, 128, 0},   // orange
		game.KindHold:                 {236, 195, 0},   // yellow
		game.KindExHold:               {236, 195, 0},   // yellow
		game.KindSlide:                {0, 118, 236},   // blue
		game.KindExSlide:              {0, 118, 236},   // blue
		game.KindSlideControlPoint:    {0, 118, 236},   // blue
		game.KindExSlideControlPoint:  {0, 118, 236},   // blue
		game.KindFlick:                {173, 236, 236}, // light blue
		game.KindAir:                  {0, 236, 128},   // green
		game.KindAirDirectional:       {0, 236, 128},   // green
		game.KindAirHold:              {106, 0, 236},   // purple
		game.KindAirHoldGround:        {106, 0, 236},   // purple
		game.KindAirSlide:             {236, 0, 106},   // pink
		game.KindAirSlideControlPoint: {236, 0, 106},   // pink
		game.KindMine:                 {110, 147, 89},  // olive
		game.KindDefault:              {106, 106, 106}, // grey
	}
	otherColor = Color{255, 255, 255}
)

// KindColor returns the colour for a kind, white for anything unlisted.
func KindColor(kind game.NoteKind) Color {
	col, ok := kindColors[kind.Type]
	if !ok {
		return otherColor
	}
	return col
}
