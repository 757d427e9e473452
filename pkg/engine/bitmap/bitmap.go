/*
Package bitmap implements a decoder and encoder for one bit per pixel
Windows bitmaps, the format the star chart tiles are stored in.

The file starts with a 14 byte file header followed by a 40 byte info header.
Only the fields needed to locate and validate the pixel data are read: the
"BM" signature, the pixel data offset, the width, the height and the bit
depth, all little-endian. Scanlines are padded to a multiple of four bytes and
stored bottom to top. Within a scanline the most significant bit of the first
byte is the leftmost pixel; a set bit is a foreground pixel.
*/
package bitmap

const (
	headerSize     = 54
	fileHeaderSize = 14
	infoHeaderSize = 40
	paletteSize    = 2 * 4

	offSignature  = 0
	offFileSize   = 2
	offPixelData  = 10
	offInfoSize   = 14
	offWidth      = 18
	offHeight     = 22
	offPlanes     = 26
	offDepth      = 28
	offImageSize  = 34
	offResolution = 38
	offColorsUsed = 46

	// MaxWidth bounds the row buffer of the decoder
	MaxWidth = 256

	maxStride = (MaxWidth + 31) / 32 * 4
)

// Stride returns the number of bytes per scanline for a given pixel width
func Stride(width int) int {
	return (width + 31) / 32 * 4
}

// FormatError reports that the input is not a valid monochrome bitmap
type FormatError string

func (e FormatError) Error() string { return "bitmap: invalid format: " + string(e) }

// Each rejection is a distinct FormatError so callers can tell them apart
// with errors.Is.
var (
	ErrShortHeader = FormatError("truncated header")
	ErrSignature   = FormatError("bad signature")
	ErrDimensions  = FormatError("unexpected dimensions")
	ErrDepth       = FormatError("unsupported bit depth")
	ErrSeek        = FormatError("pixel data offset out of range")
	ErrShortRow    = FormatError("truncated row data")
)
