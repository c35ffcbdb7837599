// Package visualization moves images between piciem rasters and common
// image files so results can be inspected with ordinary viewers.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/uzunenes/piciem/pkg/raster"
)

// JPEGQuality is the quality used when exporting to JPEG.
const JPEGQuality = 90

// ToGray converts im into an 8-bit grayscale image. Intensities are rounded
// and clamped into [0, 255].
func ToGray(im *raster.Image) (*image.Gray, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	g := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
	for r := 0; r < im.Height; r++ {
		for c := 0; c < im.Width; c++ {
			v := math.Round(float64(raster.ClampValue(im.At(r, c), 0, raster.MaxIntensity)))
			g.Pix[r*g.Stride+c] = uint8(v)
		}
	}
	return g, nil
}

// FromImage converts any image into a raster using its luminance.
func FromImage(src image.Image) (*raster.Image, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, raster.ErrNilImage
	}
	if g, ok := src.(*image.Gray); ok {
		return fromGray(g), nil
	}

	gray := imaging.Grayscale(src)
	b := gray.Bounds()
	out := raster.New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(y, x, float32(gray.Pix[y*gray.Stride+x*4]))
		}
	}
	return out, nil
}

func fromGray(g *image.Gray) *raster.Image {
	b := g.Bounds()
	out := raster.New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(y-b.Min.Y, x-b.Min.X, float32(g.GrayAt(x, y).Y))
		}
	}
	return out
}

// Import decodes a PNG, JPEG, GIF, TIFF or BMP file into a grayscale raster.
// When width and height are both positive the image is rescaled to that
// size with a Catmull-Rom filter.
func Import(path string, width, height int) (*raster.Image, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening image: %w", err)
	}
	if width > 0 && height > 0 {
		dst := image.NewGray(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
		return fromGray(dst), nil
	}
	return FromImage(src)
}

// Export writes im to path. The format follows the file extension.
func Export(im *raster.Image, path string) error {
	g, err := ToGray(im)
	if err != nil {
		return err
	}
	if err := imaging.Save(g, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}
	return nil
}

// Montage places the images side by side on a black canvas, top aligned,
// separated by gap pixels. It is handy for before/after comparisons.
func Montage(gap int, images ...*raster.Image) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, raster.ErrNilImage
	}
	gap = max(gap, 0)

	width, height := gap*(len(images)-1), 0
	tiles := make([]*image.Gray, len(images))
	for i, im := range images {
		g, err := ToGray(im)
		if err != nil {
			return nil, fmt.Errorf("montage image %d: %w", i, err)
		}
		tiles[i] = g
		width += im.Width
		height = max(height, im.Height)
	}

	canvas := imaging.New(width, height, color.Black)
	x := 0
	for _, g := range tiles {
		canvas = imaging.Paste(canvas, g, image.Pt(x, 0))
		x += g.Rect.Dx() + gap
	}
	return canvas, nil
}

// Viewer gives access to rectangular regions of an image.
type Viewer struct {
	im *raster.Image
}

// NewViewer creates a viewer over im. The image is not copied.
func NewViewer(im *raster.Image) (*Viewer, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	return &Viewer{im: im}, nil
}

// ExtractRegion copies the height x width block whose top-left corner is (row, col).
func (v *Viewer) ExtractRegion(row, col, height, width int) (*raster.Image, error) {
	if row < 0 || col < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("region dimensions must be positive")
	}
	if row+height > v.im.Height || col+width > v.im.Width {
		return nil, fmt.Errorf("region extends beyond image boundaries")
	}

	out := raster.New(width, height)
	for r := 0; r < height; r++ {
		copy(out.Data[r*width:(r+1)*width], v.im.Data[(row+r)*v.im.Width+col:])
	}
	return out, nil
}

// SaveRegion extracts a region and exports it to path.
func (v *Viewer) SaveRegion(row, col, height, width int, path string) error {
	region, err := v.ExtractRegion(row, col, height, width)
	if err != nil {
		return err
	}
	return Export(region, path)
}
