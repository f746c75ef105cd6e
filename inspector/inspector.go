package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	PanelWidth   = 240
	PanelPadding = 10
	HeaderHeight = 24
)

var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 230}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 220, B: 90, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Section is a titled struct shown in the panel.
type Section struct {
	Title string
	Value any
}

// Panel is a stack of sections anchored to the top-right corner.
type Panel struct {
	Title    string
	sections []Section
}

// NewPanel creates an empty panel.
func NewPanel(title string) *Panel {
	return &Panel{Title: title}
}

// Reset clears the sections for the next frame.
func (p *Panel) Reset() {
	p.sections = p.sections[:0]
}

// Add appends a section.
func (p *Panel) Add(title string, v any) {
	p.sections = append(p.sections, Section{Title: title, Value: v})
}

// Height returns the pixel height Draw will use.
func (p *Panel) Height() int32 {
	h := int32(HeaderHeight + PanelPadding)
	for _, s := range p.sections {
		h += 18 + 16*int32(len(ExtractFields(s.Value))) + 4
	}
	return h
}

// Draw renders the panel with its right edge at screenWidth-10.
func (p *Panel) Draw(screenWidth int32) {
	x := screenWidth - PanelWidth - 10
	y := int32(10)
	h := p.Height()

	rl.DrawRectangle(x, y, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLines(x, y, PanelWidth, h, ColorPanelBorder)
	rl.DrawText(p.Title, x+PanelPadding, y+6, 14, ColorHeaderText)

	cy := y + HeaderHeight
	for _, s := range p.sections {
		rl.DrawText(s.Title, x+PanelPadding, cy, 12, ColorSectionText)
		cy += 18
		for _, f := range ExtractFields(s.Value) {
			cy += DrawField(x+PanelPadding+8, cy, f)
		}
		cy += 4
	}
}
