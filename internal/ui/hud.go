//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"flockbg/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a translucent tuning panel in the top-right corner of the view.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls    []hudControlState
	floatSetter core.FloatParameterSetter
	panelX      int
	title       string
	status      []string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			if ctrl.Type != core.ParamTypeFloat {
				continue
			}
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
		}
		h.layoutControls()
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update refreshes the parameter snapshot and handles clicks on the panel.
// screenWidth is the current logical width of the view.
func (h *HUD) Update(screenWidth int) {
	if h == nil {
		return
	}
	h.panelX = screenWidth - h.width
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.refreshStatus()
	h.handleInput()
}

// Draw paints the panel anchored to the right edge of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.width <= 0 {
		return
	}
	height := controlsTop + len(h.controls)*lineHeight + len(h.status)*statusLine + panelPadding
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-h.width), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.floatValue = parsed
		state.value = formatFloat(state.control, parsed)
		state.hasValue = true
	}
}

// refreshStatus lists the read-only parameters below the controls.
func (h *HUD) refreshStatus() {
	h.status = h.status[:0]
	adjustable := map[string]bool{}
	for _, c := range h.controls {
		adjustable[c.control.Key] = true
	}
	for _, group := range h.snapshot.Groups {
		for _, p := range group.Params {
			if adjustable[p.Key] {
				continue
			}
			h.status = append(h.status, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.floatSetter == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelX {
		return
	}
	px := mx - h.panelX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

// Contains reports whether a screen point lies on the panel.
func (h *HUD) Contains(x, y int) bool {
	if h == nil || h.panel == nil {
		return false
	}
	return x >= h.panelX && y < h.panel.Bounds().Dy()
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	target, ok := adjustTarget(state, direction)
	if !ok {
		return
	}
	if h.floatSetter.SetFloatParameter(state.control.Key, target) {
		state.floatValue = target
		state.value = formatFloat(state.control, target)
	}
}

// adjustTarget computes the value one step away in direction, reporting false
// when the bound is already reached.
func adjustTarget(state *hudControlState, direction int) (float64, bool) {
	if state == nil || direction == 0 {
		return 0, false
	}
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := state.control.Clamp(state.floatValue + float64(direction)*step)
	if math.Abs(target-state.floatValue) < 1e-9 {
		return 0, false
	}
	return target, true
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		_, minusEnabled := adjustTarget(state, -1)
		_, plusEnabled := adjustTarget(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minusEnabled && h.floatSetter != nil)
		h.drawButton(state.plusRect, "+", state.hasValue && plusEnabled && h.floatSetter != nil)
	}
	y := controlsTop + len(h.controls)*lineHeight
	for _, line := range h.status {
		y += statusLine
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 150, G: 150, B: 165, A: 255})
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 1:
		precision = 2
	case step >= 1:
		precision = 0
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 30
	statusLine     = 16
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	controlsTop    = panelPadding + headerBaseline + 10
)
