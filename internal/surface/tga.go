package surface

import (
	"errors"
	"fmt"
	"image"
)

// ErrNotTGA is returned by DecodeTGA for data that is not a true-colour TGA.
var ErrNotTGA = errors.New("not a supported TGA image")

const (
	tgaHeaderSize   = 18
	tgaUncompressed = 2
	tgaRLE          = 10
)

// DecodeTGA decodes uncompressed or RLE true-colour TGA data at 24 or 32
// bits per pixel. TGA has no magic number so image.Decode cannot sniff it;
// Decode falls back to this when the registered formats all fail.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrNotTGA, len(data))
	}
	idLen, mapType, kind := int(data[0]), data[1], data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topDown := data[17]&0x20 != 0

	switch {
	case mapType != 0:
		return nil, fmt.Errorf("%w: colour-mapped", ErrNotTGA)
	case kind != tgaUncompressed && kind != tgaRLE:
		return nil, fmt.Errorf("%w: type %d", ErrNotTGA, kind)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrNotTGA, bpp)
	case width == 0 || height == 0:
		return nil, fmt.Errorf("%w: empty image", ErrNotTGA)
	case tgaHeaderSize+idLen > len(data):
		return nil, fmt.Errorf("%w: truncated id field", ErrNotTGA)
	}

	px := &tgaPixels{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		src:     data[tgaHeaderSize+idLen:],
		stride:  bpp / 8,
		topDown: topDown,
	}
	if kind == tgaUncompressed {
		if len(px.src) < width*height*px.stride {
			return nil, fmt.Errorf("%w: truncated pixel data", ErrNotTGA)
		}
		for px.n < width*height {
			px.put(px.read())
		}
		return px.img, nil
	}

	for px.n < width*height && px.pos < len(px.src) {
		packet := px.src[px.pos]
		px.pos++
		count := int(packet&0x7f) + 1
		if packet&0x80 != 0 {
			if !px.has() {
				break
			}
			c := px.read()
			for range count {
				px.put(c)
			}
			continue
		}
		for range count {
			if !px.has() {
				break
			}
			px.put(px.read())
		}
	}
	return px.img, nil
}

// tgaPixels walks BGR(A) source pixels into an RGBA image in file order.
type tgaPixels struct {
	img     *image.RGBA
	src     []byte
	pos     int
	stride  int
	n       int
	topDown bool
}

func (p *tgaPixels) has() bool {
	return p.pos+p.stride <= len(p.src)
}

func (p *tgaPixels) read() [4]byte {
	s := p.src[p.pos : p.pos+p.stride]
	p.pos += p.stride
	c := [4]byte{s[2], s[1], s[0], 255}
	if p.stride == 4 {
		c[3] = s[3]
	}
	return c
}

func (p *tgaPixels) put(c [4]byte) {
	w, h := p.img.Rect.Dx(), p.img.Rect.Dy()
	if p.n >= w*h {
		return
	}
	x, y := p.n%w, p.n/w
	if !p.topDown {
		y = h - 1 - y
	}
	copy(p.img.Pix[p.img.PixOffset(x, y):], c[:])
	p.n++
}
