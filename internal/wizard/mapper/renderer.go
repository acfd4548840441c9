package mapper

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"bedrot-sim/internal/wizard/models"
)

// ============================================================
// Renderer
// ============================================================

type Renderer struct {
	// AssetBase - префикс для href картинок (например, адрес CDN); пусто - корень сайта.
	AssetBase string
}

func NewRenderer(assetBase string) *Renderer {
	return &Renderer{AssetBase: strings.TrimSuffix(assetBase, "/")}
}

// Render собирает SVG превью из сцены.
func (r *Renderer) Render(scene *models.Scene) (string, error) {
	if scene == nil {
		return "", fmt.Errorf("scene is nil")
	}

	width, height := r.sceneSize(scene)

	var elements []string
	elements = append(elements, r.renderBackground(scene, width, height))
	elements = append(elements, r.renderBase(scene, width, height))
	elements = append(elements, r.renderLayers(scene, width, height)...)
	if scene.Banner != nil {
		elements = append(elements, r.renderBanner(scene.Banner, width, height))
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func (r *Renderer) sceneSize(scene *models.Scene) (float64, float64) {
	if scene.Width > 0 && scene.Height > 0 {
		return float64(scene.Width), float64(scene.Height)
	}
	return models.StageWidth, models.StageHeight
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderBackground(scene *models.Scene, width, height float64) string {
	return fmt.Sprintf(`<image id="background" href="%s" x="0" y="0" width="%s" height="%s" preserveAspectRatio="xMidYMid slice" opacity="0.9" />`,
		r.href(scene.Background), formatFloat(width), formatFloat(height))
}

func (r *Renderer) renderBase(scene *models.Scene, width, height float64) string {
	if scene.Base == nil {
		w, h := width/2, height/2
		x, y := (width-w)/2, (height-h)/2
		return fmt.Sprintf(`<g id="base-placeholder"><rect x="%s" y="%s" width="%s" height="%s" fill="#f0f0f0" fill-opacity="0.5" stroke="#e2e8f0" stroke-width="4" stroke-dasharray="12 8" /><text x="%s" y="%s" text-anchor="middle" font-family="VT323, monospace" font-size="20" fill="#e2e8f0">[INSERT BED]</text></g>`,
			formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h), formatFloat(width/2), formatFloat(height/2))
	}
	return fmt.Sprintf(`<image id="base" href="%s" x="0" y="0" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" />`,
		r.href(scene.Base.Src), formatFloat(width), formatFloat(height))
}

func (r *Renderer) renderLayers(scene *models.Scene, width, height float64) []string {
	out := make([]string, 0, len(scene.Layers))

	for i, layer := range scene.Layers {
		w := float64(layer.Size.Pixels())
		x, y := layer.Slot.Origin(width, height, w, w)

		transform := ""
		if layer.Slot.Rotation != 0 {
			transform = fmt.Sprintf(` transform="rotate(%d %s %s)"`, layer.Slot.Rotation, formatFloat(x+w/2), formatFloat(y+w/2))
		}

		out = append(out, fmt.Sprintf(`<image id="%s-%d" href="%s" x="%s" y="%s" width="%s" height="%s" data-z="%d"%s />`,
			layer.Category, i, r.href(layer.Src), formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(w), layer.Z, transform))
	}

	return out
}

func (r *Renderer) renderBanner(banner *models.Banner, width, height float64) string {
	fontSize := 24.0
	w := math.Max(float64(len([]rune(banner.Text)))*fontSize*0.6+32, 80)
	h := fontSize + 16
	x := (width - w) / 2
	y := height * 0.10

	return fmt.Sprintf(`<g id="banner" transform="rotate(-2 %s %s)"><rect x="%s" y="%s" width="%s" height="%s" fill="#fff" stroke="#000" stroke-width="4" /><text x="%s" y="%s" text-anchor="middle" font-family="VT323, monospace" font-size="%s" font-weight="600" fill="#000">%s</text></g>`,
		formatFloat(width/2), formatFloat(y+h/2),
		formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h),
		formatFloat(width/2), formatFloat(y+h/2+fontSize/3), formatFloat(fontSize),
		html.EscapeString(banner.Text))
}

// ============================================================
// Formatting helpers
// ============================================================

func (r *Renderer) href(src string) string {
	return html.EscapeString(r.AssetBase + src)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*100)/100, 'f', -1, 64)
}
