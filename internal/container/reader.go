// Package container implements the Native32 container boot sequence
// (thumbnail skip, header auto-location, directory decryption) and
// the lazy, memoized accessors over its record tables.
package container

import (
	"encoding/binary"

	"github.com/bugVanisher/native32/internal/bytecode"
	"github.com/bugVanisher/native32/internal/cipher"
	"github.com/bugVanisher/native32/internal/errs"
	"github.com/bugVanisher/native32/internal/imagecodec"
)

// Reader is an immutable byte store plus the lazily-materialized,
// memoized views over it. The table offsets in the embedded Header
// are Base-relative (SoundTbl excepted, which is absolute); the
// accessors fold in Base themselves.
type Reader struct {
	data []byte
	Header

	actionsCache map[int]cacheEntry
	imagesCache  map[int]*imagecodec.Image
	framesCache  map[int][]FrameObject
	moviesCache  map[int][]MovieFrame
	soundCache   map[int]Sound
	buttonCache  map[int][]ButtonEvent
}

type cacheEntry struct {
	instr bytecode.Instruction
	ok    bool
}

// Open runs the full boot sequence over data and returns a ready
// Reader: thumbnail skip, header auto-location, directory decryption.
func Open(data []byte) (*Reader, error) {
	r := &Reader{
		data:         data,
		actionsCache: make(map[int]cacheEntry),
		imagesCache:  make(map[int]*imagecodec.Image),
		framesCache:  make(map[int][]FrameObject),
		moviesCache:  make(map[int][]MovieFrame),
		soundCache:   make(map[int]Sound),
		buttonCache:  make(map[int][]ButtonEvent),
	}
	idx := skipThumbnail(data)
	magicIdx, colorspace, err := findHeader(data, idx)
	if err != nil {
		return nil, err
	}
	if err := r.processHeader(magicIdx, colorspace); err != nil {
		return nil, err
	}
	return r, nil
}

func skipThumbnail(data []byte) int {
	if len(data) >= 4 && string(data[0:4]) == "SWFT" {
		if len(data) < 16 {
			return 0
		}
		size := binary.LittleEndian.Uint32(data[12:16])
		return 16 + int(size)
	}
	return 0
}

func findHeader(data []byte, from int) (int, Colorspace, error) {
	for i := from; i+4 <= len(data); i++ {
		switch string(data[i : i+4]) {
		case "_YUV":
			return i, ColorspaceYUV, nil
		case "ARGB":
			return i, ColorspaceARGB, nil
		}
	}
	return 0, 0, errs.New(errs.HeaderNotFound, "no _YUV or ARGB magic found in container")
}

func nulTrim(s string) string {
	if i := indexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (r *Reader) processHeader(magicIdx int, colorspace Colorspace) error {
	data := r.data
	need := magicIdx + 0x60
	if need > len(data) {
		return errs.New(errs.TruncatedRecord, "container truncated before header base")
	}
	r.Colorspace = colorspace
	r.Generator = nulTrim(string(data[magicIdx+0x4 : magicIdx+0x24]))

	idx := magicIdx + 0x60
	base := idx
	r.Base = base

	if idx+0x18 > len(data) {
		return errs.New(errs.TruncatedRecord, "container truncated in fixed header fields")
	}
	r.FPSColorSize = binary.LittleEndian.Uint16(data[idx : idx+2])
	r.ActionStackVar = binary.LittleEndian.Uint16(data[idx+2 : idx+4])
	r.ButtonMovieClip = binary.LittleEndian.Uint16(data[idx+4 : idx+6])
	r.BufferSound = binary.LittleEndian.Uint16(data[idx+6 : idx+8])
	idx += 8
	r.LoadAddr = binary.LittleEndian.Uint32(data[idx : idx+4])
	r.BinarySize = binary.LittleEndian.Uint32(data[idx+4 : idx+8])
	r.MP3Offset = binary.LittleEndian.Uint32(data[idx+8 : idx+12])
	r.MP3Length = binary.LittleEndian.Uint32(data[idx+12 : idx+16])
	idx += 16

	if idx+0x20 > len(data) {
		return errs.New(errs.TruncatedRecord, "container truncated before directory block")
	}
	decrypted, _, err := cipher.DecryptHeader(data[idx : idx+0x20])
	if err != nil {
		return err
	}
	idx += 0x20

	var dir [8]uint32
	for i := 0; i < 8; i++ {
		dir[i] = binary.LittleEndian.Uint32(decrypted[i*4 : i*4+4])
	}
	// dir[0]=unkh, dir[1]=magic8202 (unused beyond the key-trial check)
	r.FrameTbl = dir[2]
	r.ImageTbl = dir[3]
	r.ActionTbl = dir[4]
	r.MovieTbl = dir[5]
	r.ButtonTbl = dir[6]
	r.ButtonCondTbl = dir[7]

	if idx+4 > len(data) {
		return errs.New(errs.TruncatedRecord, "container truncated before cursor bitmap")
	}
	r.CursorWidth = binary.LittleEndian.Uint16(data[idx : idx+2])
	r.CursorHeight = binary.LittleEndian.Uint16(data[idx+2 : idx+4])
	idx += 4
	cursorSize := 2 * int(r.CursorWidth) * int(r.CursorHeight)
	if idx+cursorSize > len(data) {
		return errs.New(errs.TruncatedRecord, "container truncated in cursor bitmap")
	}
	r.Cursor = data[idx : idx+cursorSize]
	idx += cursorSize
	r.SoundTbl = uint32(idx)

	return nil
}

// Resolution reports the cursor bitmap dimensions, reused by the host
// as the playback surface size per the boot sequence's layout.
func (r *Reader) Resolution() (uint16, uint16) {
	return r.CursorWidth, r.CursorHeight
}

func (r *Reader) getString(offset int) string {
	end := offset
	for end < len(r.data) && r.data[end] != 0 {
		end++
	}
	if offset >= len(r.data) {
		return ""
	}
	return string(r.data[offset:end])
}

// Action resolves one 1-based action-table entry, matching the
// bytecode.ActionSource interface so a bytecode.Disassembler can wrap
// a Reader directly.
func (r *Reader) Action(index int) (bytecode.Instruction, bool, error) {
	if entry, hit := r.actionsCache[index]; hit {
		return entry.instr, entry.ok, nil
	}
	instr, ok, err := r.decodeAction(index)
	if err != nil {
		return bytecode.Instruction{}, false, err
	}
	r.actionsCache[index] = cacheEntry{instr: instr, ok: ok}
	return instr, ok, nil
}

func (r *Reader) decodeAction(index int) (bytecode.Instruction, bool, error) {
	ptr := r.Base + int(r.ActionTbl) + (index-1)*8
	if ptr < 0 || ptr+8 > len(r.data) {
		return bytecode.Instruction{}, false, nil
	}
	rawOp := binary.LittleEndian.Uint32(r.data[ptr : ptr+4])
	rawPayload := binary.LittleEndian.Uint32(r.data[ptr+4 : ptr+8])

	op, ok := bytecode.ValidOp(rawOp)
	if !ok {
		return bytecode.Instruction{}, false, nil
	}

	if rawPayload == 0 || op == bytecode.OpEnd {
		return bytecode.Instruction{Op: op}, true, nil
	}

	payloadIdx := r.Base + int(rawPayload)
	if payloadIdx >= len(r.data) {
		return bytecode.Instruction{Op: op}, true, nil
	}
	if bytecode.IsBranch(op) {
		if payloadIdx+2 > len(r.data) {
			return bytecode.Instruction{}, false, errs.New(errs.TruncatedRecord, "branch payload out of bounds")
		}
		v := int16(binary.LittleEndian.Uint16(r.data[payloadIdx : payloadIdx+2]))
		return bytecode.Instruction{Op: op, Payload: bytecode.Payload{Kind: bytecode.PayloadInt, Int: v}}, true, nil
	}
	s := r.getString(payloadIdx)
	return bytecode.Instruction{Op: op, Payload: bytecode.Payload{Kind: bytecode.PayloadStr, Str: s}}, true, nil
}

// Frame resolves a 1-based frame's ordered FrameObject list.
func (r *Reader) Frame(index int) ([]FrameObject, error) {
	if cached, hit := r.framesCache[index]; hit {
		return cached, nil
	}
	ptrIdx := r.Base + int(r.FrameTbl) + 4*(index-1)
	if ptrIdx+4 > len(r.data) {
		return nil, nil
	}
	offset := binary.LittleEndian.Uint32(r.data[ptrIdx : ptrIdx+4])
	if offset == 0 || int(offset) > len(r.data) {
		return nil, nil
	}
	i := r.Base + int(offset)
	var objects []FrameObject
	for i+0x10 <= len(r.data) {
		objType := binary.LittleEndian.Uint16(r.data[i : i+2])
		if objType == 0x0000 || objType == 0xFFFF {
			break
		}
		idxField := binary.LittleEndian.Uint16(r.data[i+2 : i+4])
		x := int16(binary.LittleEndian.Uint16(r.data[i+4 : i+6]))
		y := int16(binary.LittleEndian.Uint16(r.data[i+6 : i+8]))
		depth := binary.LittleEndian.Uint16(r.data[i+8 : i+10])
		nameOff := binary.LittleEndian.Uint32(r.data[i+12 : i+16])
		var name *string
		if nameOff != 0 {
			s := r.getString(r.Base + int(nameOff))
			name = &s
		}
		objects = append(objects, FrameObject{
			Type: ObjectType(objType), Index: idxField, X: x, Y: y, Depth: depth, Name: name,
		})
		i += 0x10
	}
	r.framesCache[index] = objects
	return objects, nil
}

// Movie resolves a 1-based sub-movie's ordered MovieFrame list.
func (r *Reader) Movie(index int) ([]MovieFrame, error) {
	if cached, hit := r.moviesCache[index]; hit {
		return cached, nil
	}
	idxPtr := r.Base + int(r.MovieTbl) + 4*(index-1)
	if idxPtr+4 > len(r.data) {
		return nil, nil
	}
	ptr := r.Base + int(binary.LittleEndian.Uint32(r.data[idxPtr:idxPtr+4]))
	var frames []MovieFrame
	for ptr+0x0C <= len(r.data) {
		first := binary.LittleEndian.Uint16(r.data[ptr : ptr+2])
		if first == 0xFFFF || first == 0x0000 {
			break
		}
		image := first
		x := int16(binary.LittleEndian.Uint16(r.data[ptr+2 : ptr+4]))
		y := int16(binary.LittleEndian.Uint16(r.data[ptr+4 : ptr+6]))
		action := binary.LittleEndian.Uint16(r.data[ptr+6 : ptr+8])
		sound := binary.LittleEndian.Uint16(r.data[ptr+8 : ptr+10])
		u3 := int16(binary.LittleEndian.Uint16(r.data[ptr+10 : ptr+12]))
		frames = append(frames, MovieFrame{Image: image, X: x, Y: y, Action: action, Sound: sound, U3: u3})
		ptr += 0x0C
	}
	r.moviesCache[index] = frames
	return frames, nil
}

// Image decodes (and caches) a 1-based image-table entry.
func (r *Reader) Image(index int) (*imagecodec.Image, error) {
	if cached, hit := r.imagesCache[index]; hit {
		return cached, nil
	}
	ptr := r.Base + int(r.ImageTbl) + 4*(index-1)
	if ptr+4 > len(r.data) {
		return nil, errs.New(errs.TruncatedRecord, "image table index out of bounds")
	}
	offset := binary.LittleEndian.Uint32(r.data[ptr : ptr+4])
	if offset == 0xFFFFFFFF {
		r.imagesCache[index] = nil
		return nil, nil
	}
	start := r.Base + int(offset)
	if start+8 > len(r.data) {
		return nil, errs.New(errs.TruncatedRecord, "image header out of bounds")
	}
	size := binary.LittleEndian.Uint32(r.data[start+4 : start+8])
	end := start + 8 + int(size)
	if end > len(r.data) {
		end = len(r.data)
	}
	payload := r.data[start:end]

	var img *imagecodec.Image
	var err error
	if r.Colorspace == ColorspaceARGB {
		img, err = imagecodec.DecodeARGB(payload)
	} else {
		img, err = imagecodec.DecodeYUV(payload)
	}
	if err != nil {
		return nil, err
	}
	r.imagesCache[index] = img
	return img, nil
}

// Sound resolves (and caches) a 1-based sound-table entry, applying
// the RAW-format repack step (sample duplication, and for YUV-mode
// containers, 16-bit endian swap).
func (r *Reader) Sound(index int) (Sound, error) {
	if cached, hit := r.soundCache[index]; hit {
		return cached, nil
	}
	tableIdx := int(r.SoundTbl) + (index-1)*4
	if tableIdx+4 > len(r.data) {
		return Sound{}, errs.New(errs.TruncatedRecord, "sound table index out of bounds")
	}
	ptr := binary.LittleEndian.Uint32(r.data[tableIdx : tableIdx+4])
	flags := ptr & 0xF0000000
	addr := ptr & 0x0FFFFFFF

	var sound Sound
	switch flags {
	case 0xF0000000:
		begin := r.Base + int(r.MP3Offset) + int(addr)
		if begin+6 > len(r.data) {
			return Sound{}, errs.New(errs.TruncatedRecord, "mp3 sound header out of bounds")
		}
		size := binary.LittleEndian.Uint32(r.data[begin : begin+4])
		begin += 6
		end := begin + int(size)
		if end > len(r.data) {
			end = len(r.data)
		}
		sound = Sound{Format: AudioMP3, Payload: r.data[begin:end]}
	case 0x00000000:
		begin := r.Base + int(addr)
		if begin+4 > len(r.data) {
			return Sound{}, errs.New(errs.TruncatedRecord, "raw sound header out of bounds")
		}
		size := binary.LittleEndian.Uint32(r.data[begin : begin+4])
		begin += 4
		end := begin + int(size)
		if end > len(r.data) {
			end = len(r.data)
		}
		raw := r.data[begin:end]
		if r.Colorspace == ColorspaceARGB {
			sound = Sound{Format: AudioRaw16Mono, Payload: resample(raw)}
		} else {
			sound = Sound{Format: AudioRaw16Mono, Payload: endianSwapResample(raw)}
		}
	default:
		return Sound{}, errs.New(errs.UnsupportedSoundFormat, "unrecognized sound table flag nibble")
	}
	r.soundCache[index] = sound
	return sound, nil
}

// resample duplicates each source sample into two output samples
// (upsampling by repetition), preserving byte order.
func resample(data []byte) []byte {
	n := len(data) &^ 1
	out := make([]byte, 2*n)
	for i := 0; i < 2*n; i++ {
		out[i] = data[(2*(i/4))|(i&1)]
	}
	return out
}

// endianSwapResample is resample plus a 16-bit big->little endian
// swap, applied for YUV-mode containers' raw sound payloads.
func endianSwapResample(data []byte) []byte {
	n := len(data) &^ 1
	out := make([]byte, 2*n)
	for i := 0; i < 2*n; i++ {
		out[i] = data[(2*(i/4))|((i&1)^1)]
	}
	return out
}

// ButtonEvents resolves the ordered (keycode, action) pairs for a
// 1-based button index.
func (r *Reader) ButtonEvents(index int) ([]ButtonEvent, error) {
	if cached, hit := r.buttonCache[index]; hit {
		return cached, nil
	}
	condIdx := r.Base + int(r.ButtonCondTbl) + 4*(index-1)
	if condIdx+4 > len(r.data) {
		return nil, errs.New(errs.TruncatedRecord, "button condition table index out of bounds")
	}
	ptr := r.Base + int(binary.LittleEndian.Uint32(r.data[condIdx:condIdx+4]))
	if ptr+2 > len(r.data) {
		return nil, errs.New(errs.TruncatedRecord, "button condition stream out of bounds")
	}
	totalLen := binary.LittleEndian.Uint16(r.data[ptr : ptr+2])
	ptr += 2

	var events []ButtonEvent
	i := uint16(0)
	for i < totalLen && ptr+6 <= len(r.data) {
		keycode := binary.LittleEndian.Uint16(r.data[ptr : ptr+2])
		advLen := binary.LittleEndian.Uint16(r.data[ptr+2 : ptr+4])
		action := binary.LittleEndian.Uint16(r.data[ptr+4 : ptr+6])
		events = append(events, ButtonEvent{Keycode: keycode, ActionIndex: action})
		if advLen == 0 {
			break // defend against a zero-advance infinite loop on malformed input
		}
		i += advLen
		ptr += 6
	}
	r.buttonCache[index] = events
	return events, nil
}
