package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log"
	"math"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// Font size and margin scale against this reference height.
	baselineHeight = 1080.0
	baseFontSize   = 48.0
	baseMargin     = 24.0

	// The shadow blur stays fixed regardless of scale.
	shadowBlurRadius = 4

	jpegQuality = 85
)

// Annotator stamps a fingerprint prefix onto the top-right corner of a
// frame. Strictly cosmetic: whatever goes wrong, the caller gets bytes it
// can serve.
type Annotator struct {
	fnt *opentype.Font
}

// compile-time check: *Annotator must satisfy port.Annotator
var _ port.Annotator = (*Annotator)(nil)

func NewAnnotator() *Annotator {
	log.Println("initialising annotator...")
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// embedded font; if it does not parse nothing will, keep a nil
		// font and let Annotate fall through to the originals
		log.Printf("could not parse embedded font: %v", err)
	}
	return &Annotator{fnt: fnt}
}

// Annotate returns data with label drawn over it, or data unchanged if the
// image cannot be decoded or rendered.
func (a *Annotator) Annotate(data []byte, label string) (out []byte) {
	out = data
	defer func() {
		if r := recover(); r != nil {
			log.Printf("annotation panicked, serving original bytes: %v", r)
			out = data
		}
	}()

	annotated, err := a.render(data, label)
	if err != nil {
		log.Printf("annotation failed, serving original bytes: %v", err)
		return data
	}
	return annotated
}

func (a *Annotator) render(data []byte, label string) ([]byte, error) {
	if a.fnt == nil {
		return nil, fmt.Errorf("no usable font")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := src.Bounds()
	scale := float64(bounds.Dy()) / baselineHeight

	fontSize := baseFontSize * scale
	if fontSize < 1 {
		fontSize = 1
	}
	margin := int(math.Round(baseMargin * scale))
	if margin < 1 {
		margin = 1
	}

	face, err := opentype.NewFace(a.fnt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("face: %w", err)
	}
	defer func() {
		if cErr := face.Close(); cErr != nil {
			log.Printf("failed to close font face: %v", cErr)
		}
	}()

	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Src)

	// top-right, inset by the scaled margin
	width := font.MeasureString(face, label).Ceil()
	dot := fixed.P(
		bounds.Max.X-margin-width,
		bounds.Min.Y+margin+face.Metrics().Ascent.Ceil(),
	)

	// dark shadow layer first, blurred so the text stays legible over any
	// background, then the bright text on top
	shadow := image.NewRGBA(bounds)
	(&font.Drawer{
		Dst:  shadow,
		Src:  image.NewUniform(color.RGBA{A: 0xff}),
		Face: face,
		Dot:  dot,
	}).DrawString(label)
	boxBlur(shadow, shadowBlurRadius)
	draw.Draw(canvas, bounds, shadow, bounds.Min, draw.Over)

	(&font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  dot,
	}).DrawString(label)

	// always back out to JPEG, whatever the intermediate layers were
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// boxBlur applies a separable box blur of the given radius to img in place.
// Channels are premultiplied so averaging them directly is sound.
func boxBlur(img *image.RGBA, radius int) {
	if radius < 1 {
		return
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}

	tmp := image.NewRGBA(bounds)
	window := 2*radius + 1

	// horizontal pass: img → tmp
	for y := 0; y < h; y++ {
		var sum [4]int
		for x := -radius; x <= radius; x++ {
			addPixel(&sum, img, clamp(x, w-1), y, 1)
		}
		for x := 0; x < w; x++ {
			writePixel(tmp, x, y, sum, window)
			addPixel(&sum, img, clamp(x-radius, w-1), y, -1)
			addPixel(&sum, img, clamp(x+radius+1, w-1), y, 1)
		}
	}

	// vertical pass: tmp → img
	for x := 0; x < w; x++ {
		var sum [4]int
		for y := -radius; y <= radius; y++ {
			addPixel(&sum, tmp, x, clamp(y, h-1), 1)
		}
		for y := 0; y < h; y++ {
			writePixel(img, x, y, sum, window)
			addPixel(&sum, tmp, x, clamp(y-radius, h-1), -1)
			addPixel(&sum, tmp, x, clamp(y+radius+1, h-1), 1)
		}
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func addPixel(sum *[4]int, img *image.RGBA, x, y, sign int) {
	i := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	sum[0] += sign * int(img.Pix[i])
	sum[1] += sign * int(img.Pix[i+1])
	sum[2] += sign * int(img.Pix[i+2])
	sum[3] += sign * int(img.Pix[i+3])
}

func writePixel(img *image.RGBA, x, y int, sum [4]int, window int) {
	i := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	img.Pix[i] = uint8(sum[0] / window)
	img.Pix[i+1] = uint8(sum[1] / window)
	img.Pix[i+2] = uint8(sum[2] / window)
	img.Pix[i+3] = uint8(sum[3] / window)
}
