package playback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/native32/internal/container"
	"github.com/bugVanisher/native32/internal/fixture"
	"github.com/bugVanisher/native32/internal/host"
)

func twoFrameHeroFoeContainer(t *testing.T) *container.Reader {
	t.Helper()
	b := fixture.NewBuilder()
	b.Frames[1] = []fixture.FrameObjectSpec{
		{Type: uint16(container.ObjectMovie), Index: 1, Name: "hero"},
		{Type: uint16(container.ObjectMovie), Index: 2, Name: "foe"},
	}
	b.Frames[2] = []fixture.FrameObjectSpec{
		{Type: uint16(container.ObjectMovie), Index: 1, Name: "hero"},
	}
	b.Movies[1] = []fixture.MovieFrameSpec{{Image: 1}}
	b.Movies[2] = []fixture.MovieFrameSpec{{Image: 1}}

	r, err := container.Open(b.Build())
	require.NoError(t, err)
	return r
}

func TestSchedulerReapsUnnamedSpriteOnFrameChange(t *testing.T) {
	reader := twoFrameHeroFoeContainer(t)
	h := host.NewNoop(t.TempDir())
	s := New(reader, h, 4)

	require.NoError(t, s.Tick(context.Background()))
	require.ElementsMatch(t, []string{"hero", "foe"}, s.sprites.names())

	s.GotoFrame("", 2)
	require.NoError(t, s.Tick(context.Background()))
	require.Equal(t, []string{"hero"}, s.sprites.names())
}

func TestSchedulerKeepsClonedSpriteAcrossFrameChange(t *testing.T) {
	reader := twoFrameHeroFoeContainer(t)
	h := host.NewNoop(t.TempDir())
	s := New(reader, h, 4)

	require.NoError(t, s.Tick(context.Background()))
	s.CloneSprite("foe", "foe2", 100)
	require.ElementsMatch(t, []string{"hero", "foe", "foe2"}, s.sprites.names())

	s.GotoFrame("", 2)
	require.NoError(t, s.Tick(context.Background()))
	require.ElementsMatch(t, []string{"hero", "foe2"}, s.sprites.names())

	_, foeExists := s.sprites.get("foe")
	require.False(t, foeExists)
}

// busyHost reports every channel as still playing, matching the pygame
// semantics the reap step was ported from: a sound started this tick
// hasn't finished yet and must survive reapSounds until a later tick
// observes it done.
type busyHost struct {
	*host.Noop
}

func (h *busyHost) IsBusy(ch host.ChannelID) bool { return true }

func TestSchedulerRoutesRawToFirstSlot(t *testing.T) {
	b := fixture.NewBuilder()
	b.Frames[1] = []fixture.FrameObjectSpec{
		{Type: uint16(container.ObjectMovie), Index: 1, Name: "hero"},
	}
	// Sound word layout: low byte is the 1-based sound index, high
	// byte is loop count (0 here, i.e. play once).
	b.Movies[1] = []fixture.MovieFrameSpec{{Image: 1, Sound: 1}}
	b.Sounds[1] = fixture.SoundSpec{Payload: []byte{1, 2, 3, 4}}
	reader, err := container.Open(b.Build())
	require.NoError(t, err)

	h := &busyHost{host.NewNoop(t.TempDir())}
	s := New(reader, h, 3)

	require.NoError(t, s.Tick(context.Background()))
	require.NotNil(t, s.channels[0])
	require.Nil(t, s.channels[1])
	require.Nil(t, s.channels[2])
	require.Equal(t, "hero", s.ownerOf[0])
}

func TestSchedulerRoutesMP3ToLastSlot(t *testing.T) {
	b := fixture.NewBuilder()
	b.Frames[1] = []fixture.FrameObjectSpec{
		{Type: uint16(container.ObjectMovie), Index: 1, Name: "hero"},
	}
	b.Movies[1] = []fixture.MovieFrameSpec{{Image: 1, Sound: 1}}
	b.Sounds[1] = fixture.SoundSpec{MP3: true, Payload: []byte{9, 9, 9}}
	reader, err := container.Open(b.Build())
	require.NoError(t, err)

	h := &busyHost{host.NewNoop(t.TempDir())}
	s := New(reader, h, 3)

	require.NoError(t, s.Tick(context.Background()))
	require.Nil(t, s.channels[0])
	require.Nil(t, s.channels[1])
	require.NotNil(t, s.channels[2])
	require.Equal(t, "hero", s.ownerOf[2])
}
