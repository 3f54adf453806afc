// Package imagecodec decodes the two Native32 image payload formats
// ("_YUV" chroma-subsampled run/literal coding, and "ARGB" 1-5-5-5
// run-length coding) into tightly packed RGBA buffers.
package imagecodec

import (
	"encoding/binary"

	"github.com/bugVanisher/native32/internal/errs"
)

// Image is a decoded RGBA buffer, row-major, 4 bytes per pixel.
type Image struct {
	Width, Height int
	Pixels        []byte // len == Width*Height*4
}

func clip(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// header reads the common 8-byte {width, height, payload_size} prelude
// shared by both codecs.
func header(data []byte) (width, height int, payloadSize uint32, err error) {
	if len(data) < 8 {
		return 0, 0, 0, errs.New(errs.TruncatedRecord, "image payload shorter than 8-byte header")
	}
	w := binary.LittleEndian.Uint16(data[0:2])
	h := binary.LittleEndian.Uint16(data[2:4])
	size := binary.LittleEndian.Uint32(data[4:8])
	return int(w), int(h), size, nil
}

// DecodeYUV decodes a "_YUV" image payload. data starts at the 8-byte
// header and runs at least 8+payload_size bytes.
func DecodeYUV(data []byte) (*Image, error) {
	width, height, payloadSize, err := header(data)
	if err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		return &Image{Width: width, Height: height, Pixels: nil}, nil
	}

	halfW, halfH := width/2, height/2
	luma := make([]byte, width*height)
	uPlane := make([]byte, halfW*halfH)
	vPlane := make([]byte, halfW*halfH)

	putQuad := func(pix int, quad []byte) {
		y := pix / halfW
		x := pix % halfW
		luma[(2*y)*width+(2*x)] = quad[0]
		luma[(2*y+1)*width+(2*x)] = quad[1]
		luma[(2*y)*width+(2*x+1)] = quad[2]
		luma[(2*y+1)*width+(2*x+1)] = quad[3]
		// Wire order is {Y00,Y01,Y10,Y11,V,U}: V before U.
		vPlane[pix] = quad[4]
		uPlane[pix] = quad[5]
	}

	end := int(payloadSize) + 8
	if end > len(data) {
		end = len(data)
	}
	i := 8
	pixel := 0
	totalQuads := halfW * halfH
	for i < end && pixel < totalQuads {
		if i+2 > len(data) {
			break
		}
		op := binary.LittleEndian.Uint16(data[i : i+2])
		if op == 0 {
			return nil, errs.New(errs.BadImageOp, "YUV op 0x0000 is illegal")
		}
		i += 2
		if op&0x8000 != 0 {
			count := int(op &^ 0x8000)
			for j := 0; j < count && pixel < totalQuads; j++ {
				if i+6 > len(data) {
					break
				}
				putQuad(pixel, data[i:i+6])
				pixel++
				i += 6
			}
		} else {
			count := int(op)
			if i+6 > len(data) {
				break
			}
			quad := data[i : i+6]
			for j := 0; j < count && pixel < totalQuads; j++ {
				putQuad(pixel, quad)
				pixel++
			}
			i += 6
		}
	}

	uFull := upsampleChroma(uPlane, halfW, halfH)
	vFull := upsampleChroma(vPlane, halfW, halfH)

	out := make([]byte, width*height*4)
	for idx := 0; idx < width*height; idx++ {
		y := luma[idx]
		if y == 0 {
			continue // already zeroed: fully transparent
		}
		c := int(y) - 16
		d := int(uFull[idx]) - 128
		e := int(vFull[idx]) - 128
		r := clip((298*c + 409*e + 128) >> 8)
		g := clip((298*c - 100*d - 208*e + 128) >> 8)
		b := clip((298*c + 516*d + 128) >> 8)
		out[idx*4+0] = r
		out[idx*4+1] = g
		out[idx*4+2] = b
		out[idx*4+3] = 255
	}
	return &Image{Width: width, Height: height, Pixels: out}, nil
}

// upsampleChroma doubles a (w x h) chroma plane to (2w x 2h) using
// transparency-aware nearest-neighbor interpolation: a transparent
// (zero) sample borrows from the next row/column in the direction
// being filled rather than propagating the zero.
func upsampleChroma(plane []byte, w, h int) []byte {
	rows := interpolateRows(plane, w, h)
	return interpolateCols(rows, w, h)
}

func interpolateRows(data []byte, w, h int) []byte {
	h2 := h * 2
	out := make([]byte, w*h2)
	for y := 0; y < h; y++ {
		for dy := 0; dy < 2; dy++ {
			y1 := y*2 + dy
			for x := 0; x < w; x++ {
				v := data[y*w+x]
				if dy == 0 {
					if y != 0 && v == 0 {
						v = data[(y-1)*w+x]
					}
				} else {
					if y != h-1 && v == 0 {
						v = data[(y+1)*w+x]
					}
				}
				out[y1*w+x] = v
			}
		}
	}
	return out
}

// interpolateCols doubles width. data is w x h2 (already row-doubled).
func interpolateCols(data []byte, w, h2 int) []byte {
	w2 := w * 2
	out := make([]byte, w2*h2)
	for y := 0; y < h2; y++ {
		for x := 0; x < w; x++ {
			v := data[y*w+x]
			for dx := 0; dx < 2; dx++ {
				x1 := x*2 + dx
				val := v
				if dx == 0 {
					if x != 0 && v == 0 {
						val = data[y*w+(x-1)]
					}
				} else {
					if x != w-1 && v == 0 {
						val = data[y*w+(x+1)]
					}
				}
				out[y*w2+x1] = val
			}
		}
	}
	return out
}

// DecodeARGB decodes an "ARGB" image payload.
func DecodeARGB(data []byte) (*Image, error) {
	width, height, payloadSize, err := header(data)
	if err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		return &Image{Width: width, Height: height}, nil
	}

	out := make([]byte, width*height*4)
	putPixel := func(pix int, value uint16) {
		off := pix * 4
		if value&0x8000 == 0 {
			return // already zeroed: transparent
		}
		out[off+0] = byte((value>>10)&0x1F) << 3
		out[off+1] = byte((value>>5)&0x1F) << 3
		out[off+2] = byte(value&0x1F) << 3
		out[off+3] = 255
	}

	end := int(payloadSize) + 8
	if end > len(data) {
		end = len(data)
	}
	i := 8
	pixel := 0
	total := width * height
	for i < end && pixel < total {
		if i+2 > len(data) {
			break
		}
		op := binary.LittleEndian.Uint16(data[i : i+2])
		if op == 0 {
			putPixel(pixel, 0)
			pixel++
			i += 2
		} else if op&0xC000 == 0xC000 {
			if i+4 > len(data) {
				break
			}
			value := binary.LittleEndian.Uint16(data[i+2 : i+4])
			count := int(op & 0x3FFF)
			for j := 0; j < count && pixel < total; j++ {
				putPixel(pixel, value)
				pixel++
			}
			i += 4
		} else {
			return nil, errs.New(errs.BadImageOp, "unrecognized ARGB op")
		}
	}
	return &Image{Width: width, Height: height, Pixels: out}, nil
}
