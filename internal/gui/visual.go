package gui

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/wordwise/internal/card"
)

// VisualDisplay renders the lookup's illustration. Raster content arrives
// as a base64 data URI, vector content as raw SVG markup.
type VisualDisplay struct {
	widget.BaseWidget

	container    *fyne.Container
	visualCanvas *canvas.Image
	statusLabel  *widget.Label
}

// NewVisualDisplay creates a new visual display widget
func NewVisualDisplay() *VisualDisplay {
	d := &VisualDisplay{}

	d.visualCanvas = canvas.NewImageFromResource(nil)
	d.visualCanvas.FillMode = canvas.ImageFillContain
	d.visualCanvas.SetMinSize(fyne.NewSize(240, 180))

	d.statusLabel = widget.NewLabel("No illustration")
	d.statusLabel.Alignment = fyne.TextAlignCenter

	d.container = container.NewBorder(
		nil,
		d.statusLabel,
		nil, nil,
		d.visualCanvas,
	)

	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer implements fyne.Widget
func (d *VisualDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.container)
}

// SetVisual displays the given content. Empty content clears the display.
func (d *VisualDisplay) SetVisual(kind card.VisualType, content string) {
	if content == "" {
		d.Clear()
		return
	}

	switch kind {
	case card.VisualSVG:
		// Fyne renders SVG resources natively
		d.visualCanvas.Image = nil
		d.visualCanvas.Resource = fyne.NewStaticResource("illustration.svg", []byte(content))
		d.visualCanvas.Refresh()
		d.statusLabel.SetText("Vector illustration")
	case card.VisualImage:
		img, err := decodeDataURIImage(content)
		if err != nil {
			d.statusLabel.SetText(fmt.Sprintf("Error decoding illustration: %v", err))
			return
		}
		d.visualCanvas.Resource = nil
		d.visualCanvas.Image = img
		d.visualCanvas.Refresh()
		d.statusLabel.SetText("Illustration")
	default:
		d.statusLabel.SetText(fmt.Sprintf("Unsupported visual type: %s", kind))
	}
}

// Clear clears the display
func (d *VisualDisplay) Clear() {
	d.visualCanvas.Image = nil
	d.visualCanvas.Resource = nil
	d.visualCanvas.Refresh()
	d.statusLabel.SetText("No illustration")
}

// SetGenerating shows a generating status
func (d *VisualDisplay) SetGenerating() {
	d.visualCanvas.Image = nil
	d.visualCanvas.Resource = nil
	d.visualCanvas.Refresh()
	d.statusLabel.SetText("Generating illustration...")
}

// decodeDataURIImage decodes a data:<mime>;base64,<payload> URI into an
// image.
func decodeDataURIImage(uri string) (image.Image, error) {
	comma := strings.Index(uri, ",")
	if !strings.HasPrefix(uri, "data:") || comma < 0 {
		return nil, fmt.Errorf("not a data URI")
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
