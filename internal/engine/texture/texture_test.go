package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	data := tgaHeader(tgaTrueColor, 1, 2, 24, 0)
	// bottom row first, stored as BGR
	data = append(data, 0, 0, 255 /* red */, 255, 0, 0 /* blue */)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, 0x20)
	// run of 2 green pixels, then one raw white pixel
	data = append(data, 0x81, 0, 255, 0, 128)
	data = append(data, 0x00, 255, 255, 255, 255)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	green := color.RGBA{G: 255, A: 128}
	if img.RGBAAt(0, 0) != green || img.RGBAAt(1, 0) != green {
		t.Errorf("run pixels = %v %v", img.RGBAAt(0, 0), img.RGBAAt(1, 0))
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("raw pixel = %v", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := map[string][]byte{
		"short":      {1, 2, 3},
		"colour map": append([]byte{0, 1}, make([]byte, 16)...),
		"type":       tgaHeader(3, 1, 1, 24, 0),
		"depth":      tgaHeader(tgaTrueColor, 1, 1, 16, 0),
		"truncated":  append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3),
	}
	for name, data := range tests {
		if _, err := DecodeTGA(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDecodeSniffsPNGAndBMP(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	src.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}

	for name, data := range map[string][]byte{"a.png": pngBuf.Bytes(), "b.bmp": bmpBuf.Bytes()} {
		img, err := Decode(name, data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := img.RGBAAt(1, 1); got != (color.RGBA{10, 20, 30, 255}) {
			t.Errorf("%s: pixel = %v", name, got)
		}
	}

	if _, err := Decode("c.png", []byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestFlipV(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	img.SetRGBA(0, 2, color.RGBA{R: 3, A: 255})

	out := FlipV(img)
	if out.RGBAAt(0, 0).R != 3 || out.RGBAAt(0, 2).R != 1 {
		t.Errorf("rows not mirrored")
	}
	if img.RGBAAt(0, 0).R != 1 {
		t.Errorf("source modified")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#4caf50")
	if err != nil || c != (color.RGBA{0x4c, 0xaf, 0x50, 0xff}) {
		t.Errorf("ParseColor = %v, %v", c, err)
	}
	c, err = ParseColor("ffffff80")
	if err != nil || c.A != 0x80 {
		t.Errorf("ParseColor with alpha = %v, %v", c, err)
	}
	for _, bad := range []string{"", "#fff", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestSolid(t *testing.T) {
	img := Solid(color.RGBA{R: 200, A: 255})
	if img.Bounds().Dx() != 1 || img.RGBAAt(0, 0).R != 200 {
		t.Errorf("unexpected solid image %v", img.RGBAAt(0, 0))
	}
}

func TestChecker(t *testing.T) {
	light := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	dark := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	img := Checker(light, dark, 8, 2)

	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// Cells alternate, so the two top cells differ greatly in brightness.
	left, right := img.RGBAAt(0, 0), img.RGBAAt(7, 0)
	if int(left.R)-int(right.R) < 100 {
		t.Errorf("cells not alternating: %v vs %v", left, right)
	}
	if left.A != 255 || right.A != 255 {
		t.Errorf("alpha not preserved")
	}

	if one := Checker(light, dark, 0, 0); one.Bounds().Dx() != 1 {
		t.Errorf("degenerate checker bounds = %v", one.Bounds())
	}
}
