package viewer

import (
	"fmt"
	"image/color"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/cubecam/pkg/controls"
)

// PanelWidth is the preferred width of the settings panel in cells.
const PanelWidth = 34

const (
	labelWidth = 9
	valueWidth = 7

	coarseStep = 100

	orbitRotationStep    = 10  // tenths of a degree per cell dragged
	orbitTranslationStep = 100 // millimetres per cell dragged
	wheelStep            = 250 // millimetres per wheel notch
)

var (
	panelBg    = color.RGBA{24, 24, 32, 255}
	headerFg   = color.RGBA{135, 206, 250, 255}
	labelFg    = color.RGBA{220, 220, 220, 255}
	trackFg    = color.RGBA{70, 130, 180, 255}
	trackBg    = color.RGBA{50, 50, 60, 255}
	hintFg     = color.RGBA{128, 128, 128, 255}
	selectedBg = color.RGBA{70, 70, 90, 255}
)

type panelRow struct {
	y      int
	slider int // -1 for panel headers
	title  string
}

type dragMode int

const (
	dragNone dragMode = iota
	dragTrack
	dragOrbit
	dragPan
)

// Panel draws a controls.Board as terminal sliders grouped by panel and
// turns key and mouse input into board moves. Mouse drags over the 3D view
// orbit the camera through the same board, so they clamp and post events
// like any slider edit.
type Panel struct {
	board    *controls.Board
	selected int
	area     uv.Rectangle
	rows     []panelRow

	drag         dragMode
	lastX, lastY int

	// Status is shown above the key help.
	Status string
}

// NewPanel creates a panel over board.
func NewPanel(board *controls.Board) *Panel {
	return &Panel{board: board}
}

// Selected returns the index of the selected control.
func (p *Panel) Selected() int {
	return p.selected
}

func (p *Panel) layout(area uv.Rectangle) {
	p.area = area
	p.rows = p.rows[:0]
	y := area.Min.Y
	last := ""
	for i := range p.board.Len() {
		s := p.board.At(i)
		if s.Panel != last {
			if last != "" {
				y++
			}
			p.rows = append(p.rows, panelRow{y: y, slider: -1, title: s.Panel})
			y++
			last = s.Panel
		}
		p.rows = append(p.rows, panelRow{y: y, slider: i})
		y++
	}
}

func isToggle(s *controls.Slider) bool {
	return s.Range == controls.ToggleRange
}

// Draw paints the panel into area.
func (p *Panel) Draw(scr uv.Screen, area uv.Rectangle) {
	p.layout(area)

	blank := &uv.Cell{Content: " ", Width: 1, Style: uv.Style{Bg: panelBg}}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			scr.SetCell(x, y, blank)
		}
	}

	for _, row := range p.rows {
		if row.y >= area.Max.Y {
			break
		}
		if row.slider < 0 {
			drawText(scr, area.Min.X+1, row.y, area.Max.X, row.title, uv.Style{Fg: headerFg, Bg: panelBg, Attrs: uv.AttrBold})
			continue
		}
		p.drawSlider(scr, row)
	}

	hints := []string{
		"up/down select  tab panel",
		"left/right 1  [ ] 100",
		"n/p/o overlays  r reset",
		"drag view orbit  esc quit",
	}
	if p.Status != "" {
		hints = append([]string{p.Status}, hints...)
	}
	y := area.Max.Y - len(hints)
	for _, h := range hints {
		if y > area.Min.Y {
			drawText(scr, area.Min.X+1, y, area.Max.X, h, uv.Style{Fg: hintFg, Bg: panelBg})
		}
		y++
	}
}

func (p *Panel) drawSlider(scr uv.Screen, row panelRow) {
	s := p.board.At(row.slider)
	bg := panelBg
	if row.slider == p.selected {
		bg = selectedBg
	}
	x := p.area.Min.X
	drawText(scr, x+1, row.y, x+labelWidth, s.Name, uv.Style{Fg: labelFg, Bg: bg})

	if isToggle(s) {
		mark := "[ ]"
		if s.Pos == s.Range.Max {
			mark = "[x]"
		}
		drawText(scr, x+labelWidth+1, row.y, p.area.Max.X, mark, uv.Style{Fg: labelFg, Bg: bg})
		return
	}

	x0, w := p.track()
	filled := 0
	if span := s.Range.Span(); span > 0 && w > 0 {
		filled = (s.Pos - s.Range.Min) * w / span
	}
	for i := range w {
		fg := trackBg
		if i < filled {
			fg = trackFg
		}
		scr.SetCell(x0+i, row.y, &uv.Cell{Content: "█", Width: 1, Style: uv.Style{Fg: fg, Bg: bg}})
	}
	value := fmt.Sprintf("%*d", valueWidth-1, s.Pos)
	drawText(scr, x0+w, row.y, p.area.Max.X, value, uv.Style{Fg: labelFg, Bg: bg})
}

// track returns the first column and width of slider tracks.
func (p *Panel) track() (x0, width int) {
	return p.area.Min.X + labelWidth, max(p.area.Dx()-labelWidth-valueWidth, 1)
}

func drawText(scr uv.Screen, x, y, maxX int, s string, style uv.Style) {
	for _, r := range s {
		if x >= maxX {
			return
		}
		scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		x++
	}
}

// HandleKey applies a key press. It returns false for keys the panel does
// not use.
func (p *Panel) HandleKey(ev uv.KeyPressEvent) bool {
	n := p.board.Len()
	if n == 0 {
		return false
	}
	switch {
	case ev.MatchString("up", "k"):
		p.selected = (p.selected - 1 + n) % n
	case ev.MatchString("down", "j"):
		p.selected = (p.selected + 1) % n
	case ev.MatchString("tab"):
		p.selected = p.panelStart(1)
	case ev.MatchString("shift+tab"):
		p.selected = p.panelStart(-1)
	case ev.MatchString("left", "h"):
		p.board.Nudge(p.selected, -1)
	case ev.MatchString("right", "l"):
		p.board.Nudge(p.selected, 1)
	case ev.MatchString("shift+left", "["):
		p.board.Nudge(p.selected, -coarseStep)
	case ev.MatchString("shift+right", "]"):
		p.board.Nudge(p.selected, coarseStep)
	case ev.MatchString("space", "enter"):
		if isToggle(p.board.At(p.selected)) {
			p.board.Toggle(p.selected)
		}
	case ev.MatchString("n"):
		p.toggleFlag(controls.ShowNormals)
	case ev.MatchString("p"):
		p.toggleFlag(controls.ShowPlanes)
	case ev.MatchString("o"):
		p.toggleFlag(controls.ShowPoints)
	case ev.MatchString("r"):
		p.Reset()
	default:
		return false
	}
	return true
}

// panelStart returns the first control of the panel dir panels away from
// the selected one.
func (p *Panel) panelStart(dir int) int {
	var starts []int
	last := ""
	cur := 0
	for i := range p.board.Len() {
		if s := p.board.At(i); s.Panel != last {
			starts = append(starts, i)
			last = s.Panel
		}
		if i == p.selected {
			cur = len(starts) - 1
		}
	}
	return starts[(cur+dir+len(starts))%len(starts)]
}

func (p *Panel) toggleFlag(f controls.Flag) {
	if i := p.board.Find(controls.Cube.Panel(), f.String()); i >= 0 {
		p.board.Toggle(i)
	}
}

// Reset moves every control back to its initial position.
func (p *Panel) Reset() {
	for i := range p.board.Len() {
		s := p.board.At(i)
		p.board.Nudge(i, s.Range.Clamp(s.Initial)-s.Pos)
	}
}

// HandleMouse applies a mouse event. view is the 3D viewport; drags there
// orbit the camera. It returns false for events it ignores.
func (p *Panel) HandleMouse(ev uv.Event, view uv.Rectangle) bool {
	switch ev := ev.(type) {
	case uv.MouseClickEvent:
		pt := uv.Pos(ev.X, ev.Y)
		switch {
		case pt.In(p.area):
			return p.click(ev.X, ev.Y)
		case pt.In(view):
			p.drag = dragOrbit
			if ev.Button == uv.MouseRight {
				p.drag = dragPan
			}
			p.lastX, p.lastY = ev.X, ev.Y
			return true
		}

	case uv.MouseMotionEvent:
		switch p.drag {
		case dragTrack:
			p.setFromTrack(p.selected, ev.X)
			return true
		case dragOrbit, dragPan:
			dx, dy := ev.X-p.lastX, ev.Y-p.lastY
			p.lastX, p.lastY = ev.X, ev.Y
			if p.drag == dragOrbit {
				p.moveCamera(controls.Yaw, dx*orbitRotationStep)
				p.moveCamera(controls.Pitch, -dy*orbitRotationStep)
			} else {
				p.moveCamera(controls.TranslationX, dx*orbitTranslationStep)
				p.moveCamera(controls.TranslationY, -dy*orbitTranslationStep)
			}
			return true
		}

	case uv.MouseReleaseEvent:
		if p.drag != dragNone {
			p.drag = dragNone
			return true
		}

	case uv.MouseWheelEvent:
		delta := 0
		switch ev.Button {
		case uv.MouseWheelUp:
			delta = 1
		case uv.MouseWheelDown:
			delta = -1
		default:
			return false
		}
		pt := uv.Pos(ev.X, ev.Y)
		switch {
		case pt.In(p.area):
			if i := p.sliderAt(ev.Y); i >= 0 {
				p.board.Nudge(i, delta)
				return true
			}
		case pt.In(view):
			p.moveCamera(controls.TranslationZ, delta*wheelStep)
			return true
		}
	}
	return false
}

func (p *Panel) sliderAt(y int) int {
	for _, row := range p.rows {
		if row.y == y {
			return row.slider
		}
	}
	return -1
}

func (p *Panel) click(x, y int) bool {
	i := p.sliderAt(y)
	if i < 0 {
		return false
	}
	p.selected = i
	s := p.board.At(i)
	if isToggle(s) {
		p.board.Toggle(i)
		return true
	}
	if x0, w := p.track(); x >= x0 && x < x0+w {
		p.setFromTrack(i, x)
		p.drag = dragTrack
	}
	return true
}

func (p *Panel) setFromTrack(i, x int) {
	x0, w := p.track()
	frac := 0.0
	if w > 1 {
		frac = float64(x-x0) / float64(w-1)
	}
	p.board.SetFraction(i, min(max(frac, 0), 1))
}

func (p *Panel) moveCamera(f controls.Field, delta int) {
	if delta == 0 {
		return
	}
	panel, name := controls.Camera.Panel(), f.String()
	if i := p.board.Find(panel, name); i >= 0 {
		p.board.Nudge(i, delta)
	}
}

// String renders the panel as plain text, one control per line.
func (p *Panel) String() string {
	var sb strings.Builder
	for i := range p.board.Len() {
		s := p.board.At(i)
		fmt.Fprintf(&sb, "%s/%s=%d\n", s.Panel, s.Name, s.Pos)
	}
	return sb.String()
}
