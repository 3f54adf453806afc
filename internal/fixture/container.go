// Package fixture builds minimal, valid-enough Native32 container
// byte buffers for tests, without depending on any real capture —
// container.Open's boot sequence and lazy accessors are exercised
// against the layout built here rather than the production encoder
// this format doesn't have.
package fixture

import (
	"encoding/binary"

	"github.com/bugVanisher/native32/internal/cipher"
)

// FrameObjectSpec describes one object placed on a root-timeline frame.
type FrameObjectSpec struct {
	Type  uint16
	Index uint16
	X, Y  int16
	Depth uint16
	Name  string // empty means no name offset
}

// MovieFrameSpec describes one entry of a sub-movie timeline.
type MovieFrameSpec struct {
	Image  uint16
	X, Y   int16
	Action uint16
	Sound  uint16
}

// SoundSpec describes one 1-based sound-table entry. MP3 is stored
// behind the MP3Offset indirection the real format uses; raw is
// stored as a plain size-prefixed PCM blob.
type SoundSpec struct {
	MP3     bool
	Payload []byte
}

// Builder accumulates frame/movie tables for a single container and
// renders them into one encrypted, directory-addressed byte buffer.
type Builder struct {
	Key     string // must be one of the cipher package's trial keys
	Frames  map[int][]FrameObjectSpec
	Movies  map[int][]MovieFrameSpec
	Sounds  map[int]SoundSpec
	CursorW uint16
	CursorH uint16
}

// NewBuilder returns an empty Builder keyed under the first DES trial
// key ("11111111"), matching what most captures in the wild use.
func NewBuilder() *Builder {
	return &Builder{
		Key:    "11111111",
		Frames: make(map[int][]FrameObjectSpec),
		Movies: make(map[int][]MovieFrameSpec),
		Sounds: make(map[int]SoundSpec),
	}
}

// Build renders the accumulated frames/movies into a complete "_YUV"
// container buffer, ready for container.Open.
func (b *Builder) Build() []byte {
	// The arena (frame/movie tables, strings, sound payloads) is laid
	// out after the fixed header, directory and cursor bitmap, but
	// every offset handed to the reader is Base-relative (Base is the
	// start of the fixed header, before all of that). arenaBase folds
	// that fixed prefix length into every alloc()'d offset up front.
	cursorLen := 4 + 2*int(b.CursorW)*int(b.CursorH)

	maxSound := 0
	for i := range b.Sounds {
		if i > maxSound {
			maxSound = i
		}
	}
	soundTableLen := 4 * maxSound

	// SoundTbl isn't a directory entry: the reader takes it to be
	// whatever immediately follows the cursor bitmap, so the sound
	// table (if any) must sit there, ahead of the rest of the arena.
	arenaBase := uint32(0x18 + 0x20 + cursorLen + soundTableLen)

	var arena []byte
	alloc := func(data []byte) uint32 {
		off := arenaBase + uint32(len(arena))
		arena = append(arena, data...)
		return off
	}
	allocString := func(s string) uint32 {
		return alloc(append([]byte(s), 0))
	}

	maxFrame, maxMovie := 0, 0
	for i := range b.Frames {
		if i > maxFrame {
			maxFrame = i
		}
	}
	for i := range b.Movies {
		if i > maxMovie {
			maxMovie = i
		}
	}

	frameOffsets := make([]uint32, maxFrame)
	for i := 1; i <= maxFrame; i++ {
		objs := b.Frames[i]
		var buf []byte
		for _, o := range objs {
			var nameOff uint32
			if o.Name != "" {
				nameOff = allocString(o.Name)
			}
			rec := make([]byte, 16)
			binary.LittleEndian.PutUint16(rec[0:2], o.Type)
			binary.LittleEndian.PutUint16(rec[2:4], o.Index)
			binary.LittleEndian.PutUint16(rec[4:6], uint16(o.X))
			binary.LittleEndian.PutUint16(rec[6:8], uint16(o.Y))
			binary.LittleEndian.PutUint16(rec[8:10], o.Depth)
			binary.LittleEndian.PutUint32(rec[12:16], nameOff)
			buf = append(buf, rec...)
		}
		buf = append(buf, make([]byte, 16)...) // terminator: all-zero objType
		frameOffsets[i-1] = alloc(buf)
	}

	movieOffsets := make([]uint32, maxMovie)
	for i := 1; i <= maxMovie; i++ {
		frames := b.Movies[i]
		var buf []byte
		for _, f := range frames {
			rec := make([]byte, 12)
			binary.LittleEndian.PutUint16(rec[0:2], f.Image)
			binary.LittleEndian.PutUint16(rec[2:4], uint16(f.X))
			binary.LittleEndian.PutUint16(rec[4:6], uint16(f.Y))
			binary.LittleEndian.PutUint16(rec[6:8], f.Action)
			binary.LittleEndian.PutUint16(rec[8:10], f.Sound)
			buf = append(buf, rec...)
		}
		term := make([]byte, 12)
		binary.LittleEndian.PutUint16(term[0:2], 0xFFFF)
		buf = append(buf, term...)
		movieOffsets[i-1] = alloc(buf)
	}

	soundPtrs := make([]uint32, maxSound)
	for i := 1; i <= maxSound; i++ {
		spec, ok := b.Sounds[i]
		if !ok {
			continue
		}
		if spec.MP3 {
			rec := make([]byte, 6+len(spec.Payload))
			binary.LittleEndian.PutUint32(rec[0:4], uint32(len(spec.Payload)))
			copy(rec[6:], spec.Payload)
			addr := alloc(rec) // MP3Offset is always 0 in this builder
			soundPtrs[i-1] = 0xF0000000 | addr
		} else {
			rec := make([]byte, 4+len(spec.Payload))
			binary.LittleEndian.PutUint32(rec[0:4], uint32(len(spec.Payload)))
			copy(rec[4:], spec.Payload)
			addr := alloc(rec)
			soundPtrs[i-1] = addr
		}
	}

	frameTbl := alloc(encodeUint32Table(frameOffsets))
	movieTbl := alloc(encodeUint32Table(movieOffsets))
	// No actions/buttons in this fixture generation: point the tables
	// at an always-empty/zero region so lookups cleanly miss.
	emptyTbl := alloc(make([]byte, 4))
	actionTbl := emptyTbl
	buttonTbl := emptyTbl
	buttonCondTbl := emptyTbl

	const magic = "_YUV"
	const base = 0x60

	header := make([]byte, base)
	copy(header[0:4], magic)
	copy(header[4:0x24], "native32-fixture")

	fixed := make([]byte, 0x18)
	// FPSColorSize, ActionStackVar, ButtonMovieClip, BufferSound all 0.
	// LoadAddr, BinarySize, MP3Offset, MP3Length all 0 (MP3Offset=0 means
	// MP3 sound addresses above are plain Base-relative offsets).
	header = append(header, fixed...)

	// Directory word layout (dir[i] = decrypted[i*4:i*4+4]): dir[0]=unkh,
	// dir[1]=magic8202, dir[2]=FrameTbl, dir[3]=ImageTbl, dir[4]=ActionTbl,
	// dir[5]=MovieTbl, dir[6]=ButtonTbl, dir[7]=ButtonCondTbl.
	plain := make([]byte, 0x20)
	copy(plain[4:8], "8202")
	binary.LittleEndian.PutUint32(plain[8:12], frameTbl)
	binary.LittleEndian.PutUint32(plain[12:16], emptyTbl) // ImageTbl: no images modeled yet
	binary.LittleEndian.PutUint32(plain[16:20], actionTbl)
	binary.LittleEndian.PutUint32(plain[20:24], movieTbl)
	binary.LittleEndian.PutUint32(plain[24:28], buttonTbl)
	binary.LittleEndian.PutUint32(plain[28:32], buttonCondTbl)

	var key [8]byte
	copy(key[:], b.Key)
	cipherText := cipher.Encrypt(plain, key)
	header = append(header, cipherText...)

	cursor := make([]byte, cursorLen)
	binary.LittleEndian.PutUint16(cursor[0:2], b.CursorW)
	binary.LittleEndian.PutUint16(cursor[2:4], b.CursorH)
	header = append(header, cursor...)
	header = append(header, encodeUint32Table(soundPtrs)...)

	return append(header, arena...)
}

func encodeUint32Table(values []uint32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], v)
	}
	return out
}
