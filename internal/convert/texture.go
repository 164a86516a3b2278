package convert

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"

	"mouthfit/internal/utils"
)

// Texture formats as stored in the TEXV header.
const (
	TexFormatRGBA8888 = 0
	TexFormatDXT5     = 4
	TexFormatDXT1     = 7
	TexFormatRG88     = 8
	TexFormatR8       = 9
)

var (
	ErrInvalidTex = errors.New("not a texture file")
	ErrNoMipmap   = errors.New("texture has no image data")
)

// TexHeader is the fixed part of a .tex file.
type TexHeader struct {
	Format        uint32
	Flags         uint32
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	Container     string
	ImageCount    uint32
}

type texReader struct {
	r   *bufio.Reader
	err error
}

func (t *texReader) u32() uint32 {
	if t.err != nil {
		return 0
	}
	var v uint32
	t.err = binary.Read(t.r, binary.LittleEndian, &v)
	return v
}

// magic reads a NUL-terminated 8-byte tag.
func (t *texReader) magic() string {
	if t.err != nil {
		return ""
	}
	b := make([]byte, 9)
	if _, t.err = io.ReadFull(t.r, b); t.err != nil {
		return ""
	}
	return string(bytes.TrimRight(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

func readTexHeader(t *texReader) (TexHeader, error) {
	var h TexHeader
	if m := t.magic(); m != "TEXV0005" {
		if t.err != nil {
			return h, t.err
		}
		return h, fmt.Errorf("%w: magic %q", ErrInvalidTex, m)
	}
	if m := t.magic(); m != "TEXI0001" && t.err == nil {
		return h, fmt.Errorf("%w: info tag %q", ErrInvalidTex, m)
	}

	h.Format = t.u32()
	h.Flags = t.u32()
	h.TextureWidth = t.u32()
	h.TextureHeight = t.u32()
	h.ImageWidth = t.u32()
	h.ImageHeight = t.u32()
	t.u32() // unknown

	h.Container = t.magic()
	h.ImageCount = t.u32()
	switch h.Container {
	case "TEXB0001", "TEXB0002":
	case "TEXB0003":
		t.u32() // free image format
	default:
		if t.err == nil {
			return h, fmt.Errorf("%w: container %q", ErrInvalidTex, h.Container)
		}
	}
	return h, t.err
}

// DecodeTex decodes the first mipmap of the first image of a .tex stream.
func DecodeTex(r io.Reader) (image.Image, TexHeader, error) {
	t := &texReader{r: bufio.NewReader(r)}
	h, err := readTexHeader(t)
	if err != nil {
		return nil, h, err
	}
	if h.ImageCount == 0 {
		return nil, h, ErrNoMipmap
	}

	mipmaps := t.u32()
	if t.err == nil && mipmaps == 0 {
		return nil, h, ErrNoMipmap
	}
	w, hgt := t.u32(), t.u32()
	var compressed bool
	var rawSize uint32
	if h.Container != "TEXB0001" {
		compressed = t.u32() == 1
		rawSize = t.u32()
	}
	dataSize := t.u32()
	if t.err != nil {
		return nil, h, fmt.Errorf("read mipmap: %w", t.err)
	}
	if err := checkMipmapSize(w, hgt, compressed, rawSize, dataSize); err != nil {
		return nil, h, err
	}
	data := t.bytes(dataSize)
	if t.err != nil {
		return nil, h, fmt.Errorf("read mipmap: %w", t.err)
	}

	if compressed {
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, h, fmt.Errorf("lz4: %w", err)
		}
		data = out[:n]
	}

	pix, err := decodePixels(h.Format, data, w, hgt)
	if err != nil {
		return nil, h, err
	}
	img := &image.RGBA{Pix: pix, Stride: int(w) * 4, Rect: image.Rect(0, 0, int(w), int(hgt))}

	// Textures are padded to a power of two; crop to the real image.
	iw, ih := int(min(h.ImageWidth, w)), int(min(h.ImageHeight, hgt))
	if iw > 0 && ih > 0 && (iw < int(w) || ih < int(hgt)) {
		return img.SubImage(image.Rect(0, 0, iw, ih)), h, nil
	}
	return img, h, nil
}

// maxTexDimension bounds mipmap sizes so a corrupt header cannot force a
// huge allocation.
const maxTexDimension = 16384

func checkMipmapSize(w, h uint32, compressed bool, rawSize, dataSize uint32) error {
	if w == 0 || h == 0 || w > maxTexDimension || h > maxTexDimension {
		return fmt.Errorf("%w: mipmap size %dx%d", ErrInvalidTex, w, h)
	}
	limit := int(w) * int(h) * 4
	if compressed {
		if int(rawSize) > limit {
			return fmt.Errorf("%w: %d decompressed bytes for %dx%d", ErrInvalidTex, rawSize, w, h)
		}
		limit = lz4.CompressBlockBound(limit)
	}
	if int(dataSize) > limit {
		return fmt.Errorf("%w: %d data bytes for %dx%d", ErrInvalidTex, dataSize, w, h)
	}
	return nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	n := int(w) * int(h)
	blocks := int((w+3)/4) * int((h+3)/4)

	switch {
	case format == TexFormatRGBA8888 && len(data) >= n*4:
		return data[: n*4 : n*4], nil
	case format == TexFormatDXT5 && len(data) >= blocks*16:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case format == TexFormatDXT1 && len(data) >= blocks*8:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case format == TexFormatRG88 && len(data) >= n*2:
		pix := make([]byte, n*4)
		for i := 0; i < n; i++ {
			l, a := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = l, l, l, a
		}
		return pix, nil
	case format == TexFormatR8 && len(data) >= n:
		pix := make([]byte, n*4)
		for i := 0; i < n; i++ {
			v := data[i]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
		}
		return pix, nil
	}
	return nil, fmt.Errorf("%w: format %d with %d bytes for %dx%d", ErrUnsupportedFormat, format, len(data), w, h)
}

func DecodeTexFile(path string) (image.Image, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, h, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	utils.Debug("    Format: %d, Container: %s, Size: %dx%d", h.Format, h.Container, h.ImageWidth, h.ImageHeight)
	return img, nil
}
