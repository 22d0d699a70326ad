package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Severity selects the background color of a StatusLabel.
type Severity int

const (
	StatusIdle Severity = iota
	StatusLoading
	StatusError
)

// StatusLabel is a custom widget that displays the loading/error line with a
// colored background so failures stand out from ordinary status text.
type StatusLabel struct {
	widget.BaseWidget
	text      string
	bgColor   color.Color
	textColor color.Color
	textObj   *canvas.Text
	bgRect    *canvas.Rectangle
	container *fyne.Container
}

// NewStatusLabel creates a status label in the idle state.
func NewStatusLabel() *StatusLabel {
	sl := &StatusLabel{}
	sl.applySeverity(StatusIdle)
	sl.ExtendBaseWidget(sl)
	return sl
}

// CreateRenderer implements fyne.Widget
func (sl *StatusLabel) CreateRenderer() fyne.WidgetRenderer {
	sl.textObj = canvas.NewText(sl.text, sl.textColor)
	sl.textObj.Alignment = fyne.TextAlignLeading

	sl.bgRect = canvas.NewRectangle(sl.bgColor)

	sl.container = container.NewStack(sl.bgRect, sl.textObj)

	return &statusLabelRenderer{
		label:     sl,
		container: sl.container,
		bgRect:    sl.bgRect,
		textObj:   sl.textObj,
	}
}

// SetStatus updates the text and recolors the label for the given severity.
func (sl *StatusLabel) SetStatus(severity Severity, text string) {
	sl.text = text
	sl.applySeverity(severity)
	if sl.textObj != nil {
		sl.textObj.Text = text
		sl.textObj.Color = sl.textColor
		sl.textObj.Refresh()
	}
	if sl.bgRect != nil {
		sl.bgRect.FillColor = sl.bgColor
		sl.bgRect.Refresh()
	}
}

func (sl *StatusLabel) applySeverity(severity Severity) {
	switch severity {
	case StatusLoading:
		sl.bgColor = color.NRGBA{R: 255, G: 165, B: 0, A: 100} // Light orange
		sl.textColor = color.Black
	case StatusError:
		sl.bgColor = color.NRGBA{R: 255, G: 0, B: 0, A: 100} // Light red
		sl.textColor = color.White
	default:
		sl.bgColor = color.Transparent
		sl.textColor = color.White
	}
}

// statusLabelRenderer implements fyne.WidgetRenderer
type statusLabelRenderer struct {
	label     *StatusLabel
	container *fyne.Container
	bgRect    *canvas.Rectangle
	textObj   *canvas.Text
}

func (r *statusLabelRenderer) MinSize() fyne.Size {
	return r.container.MinSize()
}

func (r *statusLabelRenderer) Layout(size fyne.Size) {
	r.container.Resize(size)
}

func (r *statusLabelRenderer) Refresh() {
	r.textObj.Text = r.label.text
	r.textObj.Color = r.label.textColor
	r.bgRect.FillColor = r.label.bgColor
	r.textObj.Refresh()
	r.bgRect.Refresh()
}

func (r *statusLabelRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.container}
}

func (r *statusLabelRenderer) Destroy() {
	// Nothing to destroy
}
