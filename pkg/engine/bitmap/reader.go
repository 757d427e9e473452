package bitmap

import (
	"encoding/binary"
	"io"
)

// Config holds the header fields of a bitmap
type Config struct {
	Width  int
	Height int
	Depth  int
	Offset int64
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	config Config

	header [headerSize]byte

	// Enough to hold one scanline of the widest accepted image
	row [maxStride]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.header[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrShortHeader
	}

	if d.header[offSignature] != 'B' || d.header[offSignature+1] != 'M' {
		return ErrSignature
	}

	d.config = Config{
		Width:  int(binary.LittleEndian.Uint32(d.header[offWidth:])),
		Height: int(binary.LittleEndian.Uint32(d.header[offHeight:])),
		Depth:  int(binary.LittleEndian.Uint16(d.header[offDepth:])),
		Offset: int64(binary.LittleEndian.Uint32(d.header[offPixelData:])),
	}
	return nil
}

func (d *decoder) validate(width, height int) error {
	if width > MaxWidth || d.config.Width != width || d.config.Height != height {
		return ErrDimensions
	}
	if d.config.Depth != 1 {
		return ErrDepth
	}
	if d.config.Offset < headerSize {
		return ErrSeek
	}
	return nil
}

func (d *decoder) decodePixels(width, height int, set func(x, y int)) error {
	stride := Stride(width)
	row := d.row[:stride]

	// The first scanline in the file is the bottom of the image
	for y := height - 1; y >= 0; y-- {
		if err := readFull(d.r, row); err != nil {
			if err != io.ErrUnexpectedEOF {
				return err
			}
			return ErrShortRow
		}
		for x := 0; x < width; x++ {
			if row[x>>3]&(0x80>>uint(x&7)) != 0 {
				set(x, y)
			}
		}
	}
	return nil
}

// Decode reads a monochrome bitmap of exactly width by height pixels from r
// and calls set for every foreground pixel, top-left origin.
//
// Nothing is retained between calls: every call re-reads the header and the
// pixel data. Any FormatError means the image is unusable even if some pixels
// were already delivered; header failures deliver no pixels.
func Decode(r io.ReadSeeker, width, height int, set func(x, y int)) error {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return err
	}
	if err := d.validate(width, height); err != nil {
		return err
	}
	if _, err := r.Seek(d.config.Offset, io.SeekStart); err != nil {
		return ErrSeek
	}
	return d.decodePixels(width, height, set)
}

// DecodeConfig returns the header fields of a bitmap without reading the
// pixel data. Only the signature is validated.
func DecodeConfig(r io.Reader) (Config, error) {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return Config{}, err
	}
	return d.config, nil
}
