package imagecodec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// yuvQuadPayload builds a minimal 2x2 "_YUV" payload: one literal op
// covering the single quad, with the given luma quad and chroma pair.
func yuvQuadPayload(y00, y01, y10, y11, v, u byte) []byte {
	body := make([]byte, 2+6)
	binary.LittleEndian.PutUint16(body[0:2], 0x8001) // one literal quad
	body[2], body[3], body[4], body[5], body[6], body[7] = y00, y01, y10, y11, v, u

	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint16(out[0:2], 2)
	binary.LittleEndian.PutUint16(out[2:4], 2)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}

func TestDecodeYUVMidGreyWorkedExample(t *testing.T) {
	// Y=50, U=V=128 (neutral chroma): R=G=B=clip((298*(50-16)+128)>>8)=40.
	payload := yuvQuadPayload(50, 50, 50, 50, 128, 128)
	img, err := DecodeYUV(payload)
	require.NoError(t, err)
	require.Equal(t, 2, img.Width)
	require.Equal(t, 2, img.Height)
	require.Equal(t, byte(40), img.Pixels[0])
	require.Equal(t, byte(40), img.Pixels[1])
	require.Equal(t, byte(40), img.Pixels[2])
	require.Equal(t, byte(255), img.Pixels[3])
}

func TestDecodeYUVZeroLumaIsTransparent(t *testing.T) {
	payload := yuvQuadPayload(0, 0, 0, 0, 128, 128)
	img, err := DecodeYUV(payload)
	require.NoError(t, err)
	for i := 0; i < len(img.Pixels); i++ {
		require.Equal(t, byte(0), img.Pixels[i])
	}
}

func TestDecodeYUVRejectsZeroOp(t *testing.T) {
	out := make([]byte, 8+2)
	binary.LittleEndian.PutUint16(out[0:2], 2)
	binary.LittleEndian.PutUint16(out[2:4], 2)
	binary.LittleEndian.PutUint32(out[4:8], 2)
	binary.LittleEndian.PutUint16(out[8:10], 0)
	_, err := DecodeYUV(out)
	require.Error(t, err)
}

func argbRunPayload(value uint16, count int) []byte {
	body := make([]byte, 4)
	binary.LittleEndian.PutUint16(body[0:2], uint16(0xC000|count))
	binary.LittleEndian.PutUint16(body[2:4], value)

	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint16(out[0:2], 1)
	binary.LittleEndian.PutUint16(out[2:4], 1)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}

func TestDecodeARGBWhiteRunWorkedExample(t *testing.T) {
	// 1-5-5-5 all-ones (0xFFFF) is opaque white: each 5-bit channel
	// maxes at 31, scaled left by 3 bits -> 248.
	img, err := DecodeARGB(argbRunPayload(0xFFFF, 1))
	require.NoError(t, err)
	require.Equal(t, byte(248), img.Pixels[0])
	require.Equal(t, byte(248), img.Pixels[1])
	require.Equal(t, byte(248), img.Pixels[2])
	require.Equal(t, byte(255), img.Pixels[3])
}

func TestDecodeARGBTwoPixelRunWorkedExample(t *testing.T) {
	out := make([]byte, 8+4)
	binary.LittleEndian.PutUint16(out[0:2], 2)
	binary.LittleEndian.PutUint16(out[2:4], 1)
	binary.LittleEndian.PutUint32(out[4:8], 4)
	binary.LittleEndian.PutUint16(out[8:10], 0xC002)
	binary.LittleEndian.PutUint16(out[10:12], 0xFFFF)

	img, err := DecodeARGB(out)
	require.NoError(t, err)
	require.Equal(t, 2, img.Width)
	require.Equal(t, 1, img.Height)
	require.Equal(t, byte(248), img.Pixels[0])
	require.Equal(t, byte(255), img.Pixels[3])
	require.Equal(t, byte(248), img.Pixels[4])
	require.Equal(t, byte(255), img.Pixels[7])
}

func TestDecodeARGBTransparentRun(t *testing.T) {
	img, err := DecodeARGB(argbRunPayload(0x0000, 1))
	require.NoError(t, err)
	require.Equal(t, byte(0), img.Pixels[3])
}

func TestDecodeARGBRejectsUnknownOp(t *testing.T) {
	out := make([]byte, 8+2)
	binary.LittleEndian.PutUint16(out[0:2], 1)
	binary.LittleEndian.PutUint16(out[2:4], 1)
	binary.LittleEndian.PutUint32(out[4:8], 2)
	binary.LittleEndian.PutUint16(out[8:10], 0x4000) // neither 0 nor 0xC000-flagged
	_, err := DecodeARGB(out)
	require.Error(t, err)
}
