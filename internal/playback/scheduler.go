// Package playback implements the 30 Hz tick-driven state machine
// that advances the root timeline and every sprite's timeline, fires
// per-frame actions and sounds, and manages sprite lifetimes, channel
// allocation and input polling.
package playback

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bugVanisher/native32/internal/bytecode"
	"github.com/bugVanisher/native32/internal/container"
	"github.com/bugVanisher/native32/internal/errs"
	"github.com/bugVanisher/native32/internal/host"
	"github.com/bugVanisher/native32/internal/vm"
)

// TickMS is the fixed 30 Hz tick period.
const TickMS = 1000 / 30

// Scheduler drives one loaded container's playback: the root
// timeline, every sprite's nested timeline, sound channel allocation
// and button input polling.
type Scheduler struct {
	reader *container.Reader
	host   host.Host
	vm     *vm.VM

	curFrameIndex int
	nextFrame     *int
	playing       bool
	curFrame      []container.FrameObject

	sprites  *spriteTable
	channels []*host.ChannelID // len == host-reported count; last slot is MP3-only
	ownerOf  []string          // sprite name owning each channel slot, "" if root-owned/free
	ticks    uint64
	vmTimeMS uint64

	reload *string // set by GetURL's SSL_PlayNext, consumed by the caller between ticks
	fatal  error   // set by runVM on a non-recoverable VM error, checked at the end of Tick
}

// New builds a Scheduler bound to a parsed container and a host,
// reserving numChannels sound-channel slots (the last is MP3-only).
func New(reader *container.Reader, h host.Host, numChannels int) *Scheduler {
	s := &Scheduler{
		reader:   reader,
		host:     h,
		sprites:  newSpriteTable(),
		channels: make([]*host.ChannelID, numChannels),
		ownerOf:  make([]string, numChannels),
		playing:  true,
	}
	first := 1
	s.nextFrame = &first
	s.vm = vm.New(reader, s)
	return s
}

// ReloadRequested returns the pending SSL_PlayNext target path, if any.
func (s *Scheduler) ReloadRequested() (string, bool) {
	if s.reload == nil {
		return "", false
	}
	return *s.reload, true
}

// Tick advances playback by exactly one 30 Hz step, per §4.F's fixed
// ordering: advance root frame, frame-level actions, sprite advance +
// sprite actions, buttons, reap finished sound channels. ctx carries
// only cancellation/instrumentation, matching the rest of the corpus's
// context-threaded calls; a tick itself is synchronous and never
// blocks on I/O.
func (s *Scheduler) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.ticks++

	if s.nextFrame == nil && s.playing {
		nf := s.curFrameIndex + 1
		s.nextFrame = &nf
	}
	if s.nextFrame != nil {
		s.curFrameIndex = *s.nextFrame
		s.nextFrame = nil
		if err := s.loadFrame(s.curFrameIndex); err != nil {
			return err
		}
	}

	for _, obj := range s.curFrame {
		if obj.Type == container.ObjectAction {
			s.runVM(int(obj.Index), "")
		}
	}

	if err := s.tickSprites(); err != nil {
		return err
	}

	s.pollButtons()
	s.reapSounds()
	s.render(ctx)

	s.vmTimeMS += TickMS

	if s.fatal != nil {
		err := s.fatal
		s.fatal = nil
		return err
	}
	return nil
}

// runVM executes one VM.Run call, treating StackUnderflow/UnknownOpcode
// as a recoverable trap (logged, the run aborts but the tick
// continues) but anything else (notably MalformedBytecode from
// exceeding the step bound, or an UnhandledUrlVerb from GetUrl2) as
// fatal: recorded on s.fatal and surfaced by Tick once the rest of
// this tick's bookkeeping (sprite survival, channel reaping) has run.
func (s *Scheduler) runVM(index int, target string) {
	if err := s.vm.Run(index, target); err != nil {
		kind := errs.KindOf(err)
		if kind == errs.StackUnderflow || kind == errs.UnknownOpcode {
			log.Error().Err(err).Int("action", index).Str("target", target).Msg("VM trap, aborting run")
			return
		}
		log.Error().Err(err).Int("action", index).Str("target", target).Msg("fatal VM error")
		if s.fatal == nil {
			s.fatal = err
		}
	}
}

// loadFrame replaces the current frame's object list and applies the
// sprite survive/evict rule: a sprite survives iff it is named again
// by the new frame's Movie objects, or it is cloned.
func (s *Scheduler) loadFrame(index int) error {
	objects, err := s.reader.Frame(index)
	if err != nil {
		return err
	}
	s.curFrame = objects

	present := make(map[string]bool, len(objects))
	for _, obj := range objects {
		if obj.Type != container.ObjectMovie || obj.Name == nil {
			continue
		}
		name := *obj.Name
		present[name] = true
		if _, exists := s.sprites.get(name); exists {
			continue
		}
		nf := 0
		s.sprites.set(name, &Sprite{
			Movie: int(obj.Index), X: int(obj.X), Y: int(obj.Y), Depth: int(obj.Depth),
			Frame: 0, nextFrame: &nf, playing: true, visible: true,
		})
	}

	for _, name := range s.sprites.names() {
		sp, _ := s.sprites.get(name)
		if !present[name] && !sp.cloned {
			s.sprites.delete(name)
		}
	}
	return nil
}

// tickSprites advances every sprite's nested timeline, iterating in
// insertion order.
func (s *Scheduler) tickSprites() error {
	for _, name := range s.sprites.names() {
		sp, ok := s.sprites.get(name)
		if !ok {
			continue // deleted by a prior sprite's action this same tick
		}
		frames, err := s.reader.Movie(sp.Movie)
		if err != nil {
			return err
		}

		if sp.nextFrame == nil && sp.playing && s.ticks%2 == 0 && sp.channel == nil {
			nf := sp.Frame + 1
			if sp.Frame >= len(frames)-1 {
				nf = 0
			}
			sp.nextFrame = &nf
		}

		if sp.nextFrame != nil {
			if sp.channel != nil {
				s.stopChannelFor(name, sp)
			}
			target := *sp.nextFrame
			if target == -1 {
				target = 0
			}
			if target < len(frames) {
				sp.Frame = target
				sp.nextFrame = nil
				mf := frames[sp.Frame]
				if mf.Sound != 0 {
					sp.channel = s.playSound(mf.Sound, name)
				}
				if mf.Action != 0 {
					s.runVM(int(mf.Action), name)
				}
			}
		}
	}
	return nil
}

// render assembles the current stage's draw list (root-level images
// plus every visible sprite's current frame image) in depth order and
// hands it to the host; actual blitting is entirely the host's concern.
func (s *Scheduler) render(ctx context.Context) {
	var entries []host.DrawEntry
	for _, obj := range s.curFrame {
		if obj.Type == container.ObjectImage {
			entries = append(entries, host.DrawEntry{Image: obj.Index, X: int(obj.X), Y: int(obj.Y), Depth: obj.Depth})
		}
	}
	for _, name := range s.sprites.names() {
		sp, ok := s.sprites.get(name)
		if !ok || !sp.visible {
			continue
		}
		frames, err := s.reader.Movie(sp.Movie)
		if err != nil || sp.Frame < 0 || sp.Frame >= len(frames) {
			continue
		}
		mf := frames[sp.Frame]
		if mf.Image == 0 {
			continue
		}
		entries = append(entries, host.DrawEntry{Image: mf.Image, X: sp.X, Y: sp.Y, Depth: uint16(sp.Depth)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Depth < entries[j].Depth })
	s.host.Render(ctx, entries)
}

func (s *Scheduler) pollButtons() {
	for _, obj := range s.curFrame {
		if obj.Type != container.ObjectButton {
			continue
		}
		events, err := s.reader.ButtonEvents(int(obj.Index))
		if err != nil {
			log.Error().Err(err).Int("button", int(obj.Index)).Msg("failed to read button events")
			continue
		}
		for _, ev := range events {
			input, known := host.WireKeycodeToInput[ev.Keycode]
			if known && s.host.KeyDown(input) {
				s.runVM(int(ev.ActionIndex), "")
			}
		}
	}
}

func (s *Scheduler) reapSounds() {
	for i, owner := range s.channels {
		if owner == nil {
			continue
		}
		if s.host.IsBusy(*owner) {
			continue
		}
		s.clearChannelOwner(i)
	}
}

// playSound starts a sound on the appropriate channel: the MP3
// channel is always the last slot; RAW sounds take the first free
// non-MP3 slot. The high byte of sound encodes loop count (0xFF =
// infinite); the low byte is the 1-based sound index.
func (s *Scheduler) playSound(sound uint16, owner string) *host.ChannelID {
	loops := int(sound >> 8)
	if loops == 0xFF {
		loops = -1
	}
	index := int(sound & 0xFF)

	rec, err := s.reader.Sound(index)
	if err != nil {
		log.Error().Err(err).Int("sound", index).Msg("failed to decode sound")
		return nil
	}

	if rec.Format == container.AudioMP3 {
		slot := len(s.channels) - 1
		s.stopChannelSlot(slot)
		id := s.host.PlayMP3(rec.Payload, loops)
		s.channels[slot] = &id
		s.ownerOf[slot] = owner
		return &id
	}

	for slot := 0; slot < len(s.channels)-1; slot++ {
		if s.channels[slot] != nil {
			continue
		}
		id, ok := s.host.PlayRaw(rec.Payload)
		if !ok {
			return nil
		}
		s.channels[slot] = &id
		s.ownerOf[slot] = owner
		return &id
	}
	return nil
}

func (s *Scheduler) stopChannelFor(name string, sp *Sprite) {
	for i, owner := range s.ownerOf {
		if owner == name && s.channels[i] != nil {
			s.stopChannelSlot(i)
			break
		}
	}
	sp.channel = nil
}

func (s *Scheduler) stopChannelSlot(i int) {
	if s.channels[i] == nil {
		return
	}
	s.host.Stop(*s.channels[i])
	s.clearChannelOwner(i)
}

func (s *Scheduler) clearChannelOwner(i int) {
	if owner := s.ownerOf[i]; owner != "" {
		if sp, ok := s.sprites.get(owner); ok {
			sp.channel = nil
		}
	}
	s.channels[i] = nil
	s.ownerOf[i] = ""
}

// --- vm.Host implementation -------------------------------------------------

func (s *Scheduler) Stop(target string) {
	if target == "" {
		s.playing = false
		return
	}
	if sp, ok := s.sprites.get(target); ok {
		sp.playing = false
	}
}

func (s *Scheduler) Play(target string) {
	if target == "" {
		s.playing = true
		return
	}
	if sp, ok := s.sprites.get(target); ok {
		sp.playing = true
	}
}

func (s *Scheduler) StopSounds(target string) {
	if target == "" {
		for i := range s.channels {
			s.stopChannelSlot(i)
		}
		return
	}
	if sp, ok := s.sprites.get(target); ok && sp.channel != nil {
		s.stopChannelFor(target, sp)
	}
}

func (s *Scheduler) GetFrame(target string) int {
	if target == "" {
		return s.curFrameIndex
	}
	if sp, ok := s.sprites.get(target); ok {
		return sp.Frame + 1
	}
	return 0
}

// GotoFrame sets the pending frame target and always stops playback of
// that target, including when reached through NextFrame/PreviousFrame.
// frame is 1-based; a sprite's pending frame is stored 0-based.
func (s *Scheduler) GotoFrame(target string, frame int) {
	if target == "" {
		s.nextFrame = &frame
		s.playing = false
		return
	}
	if sp, ok := s.sprites.get(target); ok {
		nf := frame - 1
		sp.nextFrame = &nf
		sp.playing = false
	}
}

func (s *Scheduler) SetProperty(target string, prop vm.Property, value string) {
	sp, ok := s.sprites.get(target)
	if !ok {
		return
	}
	switch prop {
	case vm.PropX:
		sp.X = int(parseFloatOrZero(value))
	case vm.PropY:
		sp.Y = int(parseFloatOrZero(value))
	case vm.PropVisible:
		sp.visible = parseFloatOrZero(value) != 0
	case vm.PropCurrentFrame:
		nf := int(parseFloatOrZero(value))
		sp.nextFrame = &nf
	case vm.PropName:
		s.sprites.set(value, sp)
		s.sprites.delete(target)
	}
}

func (s *Scheduler) GetProperty(target string, prop vm.Property) string {
	sp, ok := s.sprites.get(target)
	if !ok {
		return "0"
	}
	switch prop {
	case vm.PropX:
		return fmt.Sprintf("%d", sp.X)
	case vm.PropY:
		return fmt.Sprintf("%d", sp.Y)
	case vm.PropVisible:
		if sp.visible {
			return "1"
		}
		return "0"
	case vm.PropCurrentFrame:
		if sp.nextFrame == nil && sp.playing {
			return fmt.Sprintf("%d", sp.Frame+2)
		}
		return fmt.Sprintf("%d", sp.Frame+1)
	case vm.PropTotalFrames:
		frames, err := s.reader.Movie(sp.Movie)
		if err != nil {
			return "0"
		}
		return fmt.Sprintf("%d", len(frames))
	case vm.PropName:
		return target
	default:
		return "0"
	}
}

func (s *Scheduler) CloneSprite(src, dst string, depth int) {
	orig, ok := s.sprites.get(src)
	if !ok {
		return
	}
	nf := orig.Frame
	s.sprites.set(dst, &Sprite{
		Movie: orig.Movie, X: orig.X, Y: orig.Y, Depth: depth,
		Frame: -1, nextFrame: &nf, playing: orig.playing, visible: true, cloned: true,
	})
}

func (s *Scheduler) RemoveSprite(name string) {
	sp, ok := s.sprites.get(name)
	if !ok {
		return
	}
	if sp.channel != nil {
		s.stopChannelFor(name, sp)
	}
	s.sprites.delete(name)
}

func (s *Scheduler) RunFrameActions(frameIndex int) {
	objects, err := s.reader.Frame(frameIndex)
	if err != nil {
		log.Error().Err(err).Int("frame", frameIndex).Msg("Call: failed to read frame")
		return
	}
	for _, obj := range objects {
		if obj.Type == container.ObjectAction {
			s.runVM(int(obj.Index), "")
		}
	}
}

func (s *Scheduler) NowMS() uint64 {
	return s.vmTimeMS
}

// GetURL dispatches a GetUrl2 call: target is "+"-delimited as
// (_, verb, arg). SSL_PlayNext queues a container reload; SSL_Get/Save
// SSLData round-trip a companion save file through the host;
// SSL_PlayPlan/SSL_PlayProg are no-ops. Any other verb is fatal.
func (s *Scheduler) GetURL(url, target string) error {
	parts := strings.Split(target, "+")
	if len(parts) < 2 {
		return errs.New(errs.UnhandledUrlVerb, "GetUrl2 target missing verb: "+target)
	}
	verb := parts[1]
	switch verb {
	case "SSL_PlayNext":
		segments := strings.Split(url, "+")
		last := segments[len(segments)-1]
		s.reload = &last
		return nil
	case "SSL_PlayPlan", "SSL_PlayProg":
		return nil
	case "SSL_GetSSLData":
		if len(parts) < 3 {
			return errs.New(errs.UnhandledUrlVerb, "SSL_GetSSLData missing success var")
		}
		data, ok := s.host.ReadCompanion(".ssl_sav")
		if !ok {
			s.vm.SetVar(parts[2], "N")
			return nil
		}
		s.vm.SetVar(url, string(data))
		s.vm.SetVar(parts[2], "S")
		return nil
	case "SSL_SaveSSLData":
		if len(parts) < 3 {
			return errs.New(errs.UnhandledUrlVerb, "SSL_SaveSSLData missing success var")
		}
		if err := s.host.WriteCompanion(".ssl_sav", []byte(url)); err != nil {
			return err
		}
		s.vm.SetVar(parts[2], "S")
		return nil
	default:
		return errs.New(errs.UnhandledUrlVerb, "unhandled GetUrl2 verb: "+verb)
	}
}

func parseFloatOrZero(s string) float64 {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	if err != nil {
		return 0
	}
	return f
}

var _ bytecode.ActionSource = (*container.Reader)(nil)
