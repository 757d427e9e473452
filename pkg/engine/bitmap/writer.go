package bitmap

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

// DefaultThreshold is the luminance below which a pixel is foreground
const DefaultThreshold = 0x80

// Options control how a color image is reduced to one bit per pixel
type Options struct {
	// Threshold is the luminance cut-off, DefaultThreshold when zero
	Threshold uint8
	// Invert treats bright pixels as foreground
	Invert bool
}

func (o *Options) foreground(c color.Color) bool {
	threshold := uint8(DefaultThreshold)
	invert := false
	if o != nil {
		if o.Threshold != 0 {
			threshold = o.Threshold
		}
		invert = o.Invert
	}
	dark := color.GrayModel.Convert(c).(color.Gray).Y < threshold
	return dark != invert
}

type encoder struct {
	w io.Writer
}

func (e *encoder) writeHeader(width, height int) error {
	var b [headerSize + paletteSize]byte

	imageSize := Stride(width) * height

	b[offSignature] = 'B'
	b[offSignature+1] = 'M'
	binary.LittleEndian.PutUint32(b[offFileSize:], uint32(len(b)+imageSize))
	binary.LittleEndian.PutUint32(b[offPixelData:], uint32(len(b)))
	binary.LittleEndian.PutUint32(b[offInfoSize:], infoHeaderSize)
	binary.LittleEndian.PutUint32(b[offWidth:], uint32(width))
	binary.LittleEndian.PutUint32(b[offHeight:], uint32(height))
	binary.LittleEndian.PutUint16(b[offPlanes:], 1)
	binary.LittleEndian.PutUint16(b[offDepth:], 1)
	binary.LittleEndian.PutUint32(b[offImageSize:], uint32(imageSize))
	// 72 DPI
	binary.LittleEndian.PutUint32(b[offResolution:], 2835)
	binary.LittleEndian.PutUint32(b[offResolution+4:], 2835)
	binary.LittleEndian.PutUint32(b[offColorsUsed:], 2)

	// Palette entry 0 is the background, entry 1 the foreground, stored BGRA
	copy(b[headerSize:], []byte{0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00})

	_, err := e.w.Write(b[:])
	return err
}

func (e *encoder) encode(m image.Image, o *Options) error {
	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	if err := e.writeHeader(width, height); err != nil {
		return err
	}

	row := make([]byte, Stride(width))
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < width; x++ {
			if o.foreground(m.At(b.Min.X+x, y)) {
				row[x>>3] |= 0x80 >> uint(x&7)
			}
		}
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the Image m to w as a one bit per pixel bitmap. Pixels darker
// than the threshold become foreground unless Options.Invert is set. A nil
// *Options selects the defaults.
func Encode(w io.Writer, m image.Image, o *Options) error {
	b := m.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > MaxWidth {
		return errors.New("bitmap: image is wrong size")
	}

	e := encoder{w: w}

	return e.encode(m, o)
}
