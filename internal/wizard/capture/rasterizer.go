package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bedrot-sim/internal/wizard/models"
	"bedrot-sim/internal/wizard/scoring"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

var (
	backgroundColor  = color.RGBA{R: 0x2d, G: 0x2a, B: 0x2e, A: 0xff}
	placeholderFill  = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0x80}
	placeholderLine  = color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	panelColor       = color.RGBA{R: 0xe6, G: 0xda, B: 0xc3, A: 0xff}
	panelBorderColor = color.RGBA{R: 0x3e, G: 0x27, B: 0x23, A: 0xff}
)

// ============================================================
// Rasterizer
// ============================================================

// Rasterizer превращает сцену в PNG. Поворот слоёв в растре не применяется.
// Баннер и отчёт рисуются шрифтом 7x13 в координатах сцены и масштабируются вместе с ней;
// символы вне печатного ASCII выводятся как '?'.
type Rasterizer struct {
	AssetRoot  string
	PixelRatio int
	Logger     *zap.Logger
}

func NewRasterizer(assetRoot string, pixelRatio int, logger *zap.Logger) *Rasterizer {
	if pixelRatio < 1 {
		pixelRatio = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rasterizer{AssetRoot: assetRoot, PixelRatio: pixelRatio, Logger: logger}
}

type layerImage struct {
	src string
	img image.Image
}

// Capture рисует сцену и кодирует её в PNG.
func (r *Rasterizer) Capture(ctx context.Context, scene *models.Scene) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("scene is nil")
	}

	images, err := r.loadImages(ctx, scene)
	if err != nil {
		return nil, err
	}

	ratio := float64(r.PixelRatio)
	width, height := float64(scene.Width), float64(scene.Height)
	canvas := image.NewRGBA(image.Rect(0, 0, int(width*ratio), int(height*ratio)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	if bg := images[scene.Background]; bg != nil {
		xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), bg, bg.Bounds(), xdraw.Over, nil)
	}

	if scene.Base == nil {
		r.drawPlaceholder(canvas, scaleRect(width/4, height/4, width/2, height/2, ratio), "[INSERT BED]")
	} else {
		r.drawImage(canvas, images[scene.Base.Src], scaleRect(0, 0, width, height, ratio), scene.Base.Name)
	}

	for _, layer := range scene.Layers {
		w := float64(layer.Size.Pixels())
		x, y := layer.Slot.Origin(width, height, w, w)
		r.drawImage(canvas, images[layer.Src], scaleRect(x, y, w, w, ratio), layer.Name)
	}

	if scene.Banner != nil || scene.Stats != nil {
		overlay := image.NewRGBA(image.Rect(0, 0, scene.Width, scene.Height))
		if scene.Banner != nil {
			drawBanner(overlay, scene.Banner.Text, int(height*0.10))
		}
		if scene.Stats != nil {
			drawPanel(overlay, scoring.Summary(*scene.Stats))
		}
		xdraw.NearestNeighbor.Scale(canvas, canvas.Bounds(), overlay, overlay.Bounds(), xdraw.Over, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// loadImages читает картинки параллельно и только внутри AssetRoot. Отсутствующий файл - не ошибка
// (рисуется заглушка), битый файл - ошибка захвата.
func (r *Rasterizer) loadImages(ctx context.Context, scene *models.Scene) (map[string]image.Image, error) {
	root, err := os.OpenRoot(r.AssetRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.Logger.Warn("asset root not found, drawing placeholders", zap.String("root", r.AssetRoot))
			return map[string]image.Image{}, nil
		}
		return nil, fmt.Errorf("open asset root: %w", err)
	}
	defer root.Close()

	var srcs []string
	seen := map[string]bool{}
	add := func(src string) {
		if src != "" && !seen[src] {
			seen[src] = true
			srcs = append(srcs, src)
		}
	}
	add(scene.Background)
	if scene.Base != nil {
		add(scene.Base.Src)
	}
	for _, layer := range scene.Layers {
		add(layer.Src)
	}

	results := make([]layerImage, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := r.decode(root, src)
			if err != nil {
				return err
			}
			results[i] = layerImage{src: src, img: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make(map[string]image.Image, len(results))
	for _, res := range results {
		if res.img != nil {
			images[res.src] = res.img
		}
	}
	return images, nil
}

func (r *Rasterizer) decode(root *os.Root, src string) (image.Image, error) {
	name := filepath.FromSlash(strings.TrimPrefix(src, "/"))
	if !filepath.IsLocal(name) {
		r.Logger.Warn("asset outside root, drawing placeholder", zap.String("src", src))
		return nil, nil
	}
	f, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.Logger.Warn("asset not found, drawing placeholder", zap.String("src", src))
			return nil, nil
		}
		return nil, fmt.Errorf("open asset %s: %w", src, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", src, err)
	}
	return img, nil
}

// ============================================================
// Drawing helpers
// ============================================================

func (r *Rasterizer) drawImage(dst *image.RGBA, img image.Image, rect image.Rectangle, label string) {
	if img == nil {
		r.drawPlaceholder(dst, rect, label)
		return
	}
	xdraw.CatmullRom.Scale(dst, fitRect(rect, img.Bounds()), img, img.Bounds(), xdraw.Over, nil)
}

func (r *Rasterizer) drawPlaceholder(dst *image.RGBA, rect image.Rectangle, label string) {
	label = printable(label)
	draw.Draw(dst, rect, image.NewUniform(placeholderFill), image.Point{}, draw.Over)

	const dash, gap, stroke = 12, 8, 4
	line := image.NewUniform(placeholderLine)
	for x := rect.Min.X; x < rect.Max.X; x += dash + gap {
		end := min(x+dash, rect.Max.X)
		draw.Draw(dst, image.Rect(x, rect.Min.Y, end, rect.Min.Y+stroke), line, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(x, rect.Max.Y-stroke, end, rect.Max.Y), line, image.Point{}, draw.Src)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y += dash + gap {
		end := min(y+dash, rect.Max.Y)
		draw.Draw(dst, image.Rect(rect.Min.X, y, rect.Min.X+stroke, end), line, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(rect.Max.X-stroke, y, rect.Max.X, end), line, image.Point{}, draw.Src)
	}

	face := basicfont.Face7x13
	textW := font.MeasureString(face, label).Ceil()
	drawText(dst, label, (rect.Min.X+rect.Max.X-textW)/2, (rect.Min.Y+rect.Max.Y)/2, placeholderLine)
}

func drawBanner(dst *image.RGBA, text string, top int) {
	text = printable(text)
	face := basicfont.Face7x13
	textW := font.MeasureString(face, text).Ceil()
	w, h := textW+32, face.Height+16
	x := (dst.Bounds().Dx() - w) / 2

	draw.Draw(dst, image.Rect(x-4, top-4, x+w+4, top+h+4), image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(x, top, x+w, top+h), image.White, image.Point{}, draw.Src)
	drawText(dst, text, x+16, top+8+face.Ascent, color.Black)
}

func drawPanel(dst *image.RGBA, lines []string) {
	face := basicfont.Face7x13
	lineH := face.Height + 4
	w := 0
	for _, line := range lines {
		w = max(w, font.MeasureString(face, line).Ceil())
	}
	w += 24
	h := lineH*len(lines) + 16

	b := dst.Bounds()
	rect := image.Rect(b.Min.X+16, b.Max.Y-16-h, b.Min.X+16+w, b.Max.Y-16)
	draw.Draw(dst, rect.Inset(-4), image.NewUniform(panelBorderColor), image.Point{}, draw.Src)
	draw.Draw(dst, rect, image.NewUniform(panelColor), image.Point{}, draw.Src)

	for i, line := range lines {
		drawText(dst, line, rect.Min.X+12, rect.Min.Y+8+face.Ascent+i*lineH, panelBorderColor)
	}
}

func drawText(dst *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(printable(text))
}

// printable заменяет символы, которых нет в basicfont, на '?'.
func printable(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, text)
}

func scaleRect(x, y, w, h, ratio float64) image.Rectangle {
	return image.Rect(int(x*ratio), int(y*ratio), int((x+w)*ratio), int((y+h)*ratio))
}

// fitRect вписывает картинку в прямоугольник с сохранением пропорций (object-contain).
func fitRect(rect, src image.Rectangle) image.Rectangle {
	if src.Dx() == 0 || src.Dy() == 0 {
		return rect
	}
	scale := min(float64(rect.Dx())/float64(src.Dx()), float64(rect.Dy())/float64(src.Dy()))
	w, h := int(float64(src.Dx())*scale), int(float64(src.Dy())*scale)
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
