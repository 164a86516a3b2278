package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"testing"

	"github.com/pierrec/lz4/v4"
)

type texSpec struct {
	format     uint32
	container  string
	w, h       uint32
	imgW, imgH uint32
	data       []byte
	compress   bool
	// Non-zero values replace the sizes written to the mipmap header.
	rawSize, dataSize uint32
}

func magic(buf *bytes.Buffer, s string) {
	b := make([]byte, 9)
	copy(b, s)
	buf.Write(b)
}

func buildTex(t *testing.T, s texSpec) []byte {
	t.Helper()
	var buf bytes.Buffer
	le := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }

	magic(&buf, "TEXV0005")
	magic(&buf, "TEXI0001")
	le(s.format)
	le(0)
	le(s.w)
	le(s.h)
	le(s.imgW)
	le(s.imgH)
	le(0)
	magic(&buf, s.container)
	le(1) // images
	if s.container == "TEXB0003" {
		le(0)
	}
	le(1) // mipmaps
	le(s.w)
	le(s.h)

	payload := s.data
	if s.container != "TEXB0001" {
		if s.compress {
			dst := make([]byte, lz4.CompressBlockBound(len(s.data)))
			n, err := lz4.CompressBlock(s.data, dst, nil)
			if err != nil || n == 0 {
				t.Fatalf("compress: n=%d err=%v", n, err)
			}
			payload = dst[:n]
			le(1)
		} else {
			le(0)
		}
		if s.rawSize != 0 {
			le(s.rawSize)
		} else {
			le(uint32(len(s.data)))
		}
	}
	if s.dataSize != 0 {
		le(s.dataSize)
	} else {
		le(uint32(len(payload)))
	}
	buf.Write(payload)
	return buf.Bytes()
}

func TestDecodeTexRGBA(t *testing.T) {
	pix := bytes.Repeat([]byte{10, 20, 30, 255}, 4*4)
	raw := buildTex(t, texSpec{format: TexFormatRGBA8888, container: "TEXB0003", w: 4, h: 4, imgW: 4, imgH: 4, data: pix})

	img, h, err := DecodeTex(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if h.Container != "TEXB0003" || h.Format != TexFormatRGBA8888 {
		t.Errorf("header = %+v", h)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, g, b, a := img.At(2, 3).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("pixel = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestDecodeTexLZ4Cropped(t *testing.T) {
	pix := bytes.Repeat([]byte{200, 0, 0, 255}, 8*8)
	raw := buildTex(t, texSpec{format: TexFormatRGBA8888, container: "TEXB0002", w: 8, h: 8, imgW: 5, imgH: 3, data: pix, compress: true})

	img, _, err := DecodeTex(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(5, 3) {
		t.Errorf("size = %v, want 5x3", got)
	}
}

func TestDecodeTexR8(t *testing.T) {
	raw := buildTex(t, texSpec{format: TexFormatR8, container: "TEXB0001", w: 2, h: 2, imgW: 2, imgH: 2, data: []byte{0, 64, 128, 255}})

	img, _, err := DecodeTex(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, a := img.At(1, 1).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel = %d alpha %d", r>>8, a>>8)
	}
}

func TestDecodeTexErrors(t *testing.T) {
	if _, _, err := DecodeTex(bytes.NewReader([]byte("PNG\x00\x00\x00\x00\x00\x00"))); !errors.Is(err, ErrInvalidTex) {
		t.Errorf("bad magic: err = %v", err)
	}

	short := buildTex(t, texSpec{format: TexFormatRGBA8888, container: "TEXB0003", w: 4, h: 4, imgW: 4, imgH: 4, data: make([]byte, 5)})
	if _, _, err := DecodeTex(bytes.NewReader(short)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("short data: err = %v", err)
	}

	full := buildTex(t, texSpec{format: TexFormatR8, container: "TEXB0003", w: 4, h: 4, imgW: 4, imgH: 4, data: make([]byte, 16)})
	if _, _, err := DecodeTex(bytes.NewReader(full[:len(full)-4])); err == nil {
		t.Error("truncated file should fail")
	}
}

func TestDecodeTexRejectsOversizedHeaders(t *testing.T) {
	pix := bytes.Repeat([]byte{1, 2, 3, 255}, 4*4)
	tests := []struct {
		name string
		spec texSpec
	}{
		{"huge dimensions", texSpec{format: TexFormatRGBA8888, container: "TEXB0003", w: 1 << 20, h: 1 << 20, data: pix}},
		{"huge data size", texSpec{format: TexFormatRGBA8888, container: "TEXB0003", w: 4, h: 4, data: pix, dataSize: 1 << 31}},
		{"huge decompressed size", texSpec{format: TexFormatRGBA8888, container: "TEXB0002", w: 4, h: 4, data: pix, compress: true, rawSize: 1 << 31}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := buildTex(t, tt.spec)
			if _, _, err := DecodeTex(bytes.NewReader(raw)); !errors.Is(err, ErrInvalidTex) {
				t.Errorf("err = %v, want ErrInvalidTex", err)
			}
		})
	}
}
