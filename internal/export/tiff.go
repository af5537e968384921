package export

import (
	"bufio"
	"encoding/binary"
	"image"
	"io"
)

// encodeCMYKTIFF writes an uncompressed baseline TIFF with Separated
// (CMYK) samples and X/YResolution tags carrying the print DPI. The
// golang.org/x/image/tiff encoder writes neither, which is why the
// exporter carries its own writer: print shops key physical size off the
// resolution tags, and the whole point of the pipeline is to hand them
// real ink channels.
//
// Values follow TIFF 6.0: ink coverage 0 = no ink, 255 = full ink, which
// matches image.CMYK's representation directly.
func encodeCMYKTIFF(w io.Writer, img *image.CMYK, dpi int) error {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	const (
		tagImageWidth      = 256
		tagImageLength     = 257
		tagBitsPerSample   = 258
		tagCompression     = 259
		tagPhotometric     = 262
		tagStripOffsets    = 273
		tagSamplesPerPixel = 277
		tagRowsPerStrip    = 278
		tagStripByteCounts = 279
		tagXResolution     = 282
		tagYResolution     = 283
		tagResolutionUnit  = 296
		tagInkSet          = 332

		typeShort    = 3
		typeLong     = 4
		typeRational = 5

		photometricSeparated = 5
		inkSetCMYK           = 1
		resolutionUnitInch   = 2
		compressionNone      = 1
	)

	type entry struct {
		tag, typ uint16
		count    uint32
		value    uint32
	}

	// Header (8) + entry count (2) + 13 entries (12 each) + next-IFD (4),
	// then the out-of-line values, then one strip of pixel data.
	const (
		headerSize  = 8
		entryCount  = 13
		ifdSize     = 2 + entryCount*12 + 4
		bitsOffset  = headerSize + ifdSize
		xResOffset  = bitsOffset + 8
		yResOffset  = xResOffset + 8
		pixelOffset = yResOffset + 8
	)
	stripBytes := uint32(width * height * 4)

	entries := []entry{
		{tagImageWidth, typeLong, 1, uint32(width)},
		{tagImageLength, typeLong, 1, uint32(height)},
		{tagBitsPerSample, typeShort, 4, bitsOffset},
		{tagCompression, typeShort, 1, compressionNone},
		{tagPhotometric, typeShort, 1, photometricSeparated},
		{tagStripOffsets, typeLong, 1, pixelOffset},
		{tagSamplesPerPixel, typeShort, 1, 4},
		{tagRowsPerStrip, typeLong, 1, uint32(height)},
		{tagStripByteCounts, typeLong, 1, stripBytes},
		{tagXResolution, typeRational, 1, xResOffset},
		{tagYResolution, typeRational, 1, yResOffset},
		{tagResolutionUnit, typeShort, 1, resolutionUnitInch},
		{tagInkSet, typeShort, 1, inkSetCMYK},
	}

	bw := bufio.NewWriter(w)

	// Little-endian header pointing at the IFD right behind it.
	bw.Write([]byte{'I', 'I', 42, 0})
	binary.Write(bw, binary.LittleEndian, uint32(headerSize))

	binary.Write(bw, binary.LittleEndian, uint16(entryCount))
	for _, e := range entries {
		binary.Write(bw, binary.LittleEndian, e.tag)
		binary.Write(bw, binary.LittleEndian, e.typ)
		binary.Write(bw, binary.LittleEndian, e.count)
		binary.Write(bw, binary.LittleEndian, e.value)
	}
	binary.Write(bw, binary.LittleEndian, uint32(0)) // no next IFD

	// Out-of-line values: four 8-bit samples, then the two DPI rationals.
	binary.Write(bw, binary.LittleEndian, [4]uint16{8, 8, 8, 8})
	binary.Write(bw, binary.LittleEndian, [2]uint32{uint32(dpi), 1})
	binary.Write(bw, binary.LittleEndian, [2]uint32{uint32(dpi), 1})

	// One strip, row by row so subimages with a wider stride stay correct.
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		start := img.PixOffset(img.Bounds().Min.X, y)
		if _, err := bw.Write(img.Pix[start : start+width*4]); err != nil {
			return err
		}
	}

	return bw.Flush()
}
