package container_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/native32/internal/container"
	"github.com/bugVanisher/native32/internal/fixture"
)

func TestOpenParsesBootSequence(t *testing.T) {
	b := fixture.NewBuilder()
	b.CursorW, b.CursorH = 4, 2
	b.Frames[1] = []fixture.FrameObjectSpec{
		{Type: uint16(container.ObjectMovie), Index: 1, X: 10, Y: 20, Depth: 1, Name: "hero"},
	}
	b.Movies[1] = []fixture.MovieFrameSpec{
		{Image: 1, X: 0, Y: 0},
	}
	data := b.Build()

	r, err := container.Open(data)
	require.NoError(t, err)
	require.Equal(t, container.ColorspaceYUV, r.Colorspace)
	require.Equal(t, "native32-fixture", r.Generator)

	w, h := r.Resolution()
	require.Equal(t, uint16(4), w)
	require.Equal(t, uint16(2), h)
}

func TestFrameResolvesNamedMovieObject(t *testing.T) {
	b := fixture.NewBuilder()
	b.Frames[1] = []fixture.FrameObjectSpec{
		{Type: uint16(container.ObjectMovie), Index: 1, X: 10, Y: 20, Depth: 3, Name: "hero"},
		{Type: uint16(container.ObjectMovie), Index: 2, X: 30, Y: 40, Depth: 4, Name: "foe"},
	}
	b.Movies[1] = []fixture.MovieFrameSpec{{Image: 1}}
	b.Movies[2] = []fixture.MovieFrameSpec{{Image: 1}}
	data := b.Build()

	r, err := container.Open(data)
	require.NoError(t, err)

	objs, err := r.Frame(1)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	require.Equal(t, container.ObjectMovie, objs[0].Type)
	require.Equal(t, uint16(1), objs[0].Index)
	require.Equal(t, int16(10), objs[0].X)
	require.Equal(t, int16(20), objs[0].Y)
	require.NotNil(t, objs[0].Name)
	require.Equal(t, "hero", *objs[0].Name)
	require.Equal(t, "foe", *objs[1].Name)
}

func TestFrameBeyondTableIsEmptyNotError(t *testing.T) {
	b := fixture.NewBuilder()
	b.Frames[1] = []fixture.FrameObjectSpec{{Type: uint16(container.ObjectImage), Index: 1}}
	data := b.Build()

	r, err := container.Open(data)
	require.NoError(t, err)

	objs, err := r.Frame(2)
	require.NoError(t, err)
	require.Empty(t, objs)
}

func TestMovieResolvesOrderedFrameList(t *testing.T) {
	b := fixture.NewBuilder()
	b.Frames[1] = []fixture.FrameObjectSpec{{Type: uint16(container.ObjectMovie), Index: 1}}
	b.Movies[1] = []fixture.MovieFrameSpec{
		{Image: 1, X: 1, Y: 2, Action: 0, Sound: 0},
		{Image: 2, X: 3, Y: 4, Action: 0, Sound: 0},
	}
	data := b.Build()

	r, err := container.Open(data)
	require.NoError(t, err)

	frames, err := r.Movie(1)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, uint16(1), frames[0].Image)
	require.Equal(t, uint16(2), frames[1].Image)
	require.Equal(t, int16(3), frames[1].X)
}

func TestOpenFailsWithoutMagic(t *testing.T) {
	_, err := container.Open(make([]byte, 200))
	require.Error(t, err)
}

func TestOpenFailsOnTruncatedHeader(t *testing.T) {
	b := fixture.NewBuilder()
	data := b.Build()
	_, err := container.Open(data[:0x60+8])
	require.Error(t, err)
}
