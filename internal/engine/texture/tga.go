package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

var errTGATruncated = errors.New("tga: pixel data truncated")

type tgaReader struct {
	img    *image.RGBA
	data   []byte
	bpp    int
	width  int
	height int
	flip   bool
	n      int // pixels written
}

// DecodeTGA decodes an uncompressed or RLE true-colour TGA image (24 or 32 bit).
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}
	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: colour-mapped images not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if 18+idLength > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		data:   data[18+idLength:],
		bpp:    bpp / 8,
		width:  width,
		height: height,
		// bit 5 set means rows are stored top to bottom
		flip: descriptor&0x20 == 0,
	}

	var err error
	if imageType == tgaTrueColor {
		err = r.raw(width * height)
	} else {
		err = r.rle()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

func (r *tgaReader) pixel() (color.RGBA, error) {
	if len(r.data) < r.bpp {
		return color.RGBA{}, errTGATruncated
	}
	c := color.RGBA{R: r.data[2], G: r.data[1], B: r.data[0], A: 255}
	if r.bpp == 4 {
		c.A = r.data[3]
	}
	r.data = r.data[r.bpp:]
	return c, nil
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.n%r.width, r.n/r.width
	if r.flip {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

func (r *tgaReader) raw(count int) error {
	total := r.width * r.height
	for i := 0; i < count && r.n < total; i++ {
		c, err := r.pixel()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) rle() error {
	total := r.width * r.height
	for r.n < total {
		if len(r.data) == 0 {
			return errTGATruncated
		}
		packet := r.data[0]
		r.data = r.data[1:]
		count := int(packet&0x7F) + 1

		if packet&0x80 == 0 {
			if err := r.raw(count); err != nil {
				return err
			}
			continue
		}
		c, err := r.pixel()
		if err != nil {
			return err
		}
		for i := 0; i < count && r.n < total; i++ {
			r.put(c)
		}
	}
	return nil
}
