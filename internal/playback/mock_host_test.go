package playback

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/native32/internal/bytecode"
	"github.com/bugVanisher/native32/internal/vm"
)

type fakeActionSource map[int]bytecode.Instruction

func (f fakeActionSource) Action(index int) (bytecode.Instruction, bool, error) {
	instr, ok := f[index]
	return instr, ok, nil
}

// TestVMDrivesMockHost exercises the bytecode interpreter against
// MockVMHost directly, independent of a real Scheduler, to pin down
// which Host methods a Stop/CloneSprite/RemoveSprite program invokes.
func TestVMDrivesMockHost(t *testing.T) {
	src := fakeActionSource{
		// Stack order bottom->top must be src, dst, depth: CloneSprite
		// pops depth first, then dst, then src.
		1: {Op: bytecode.OpPush, Payload: bytecode.Payload{Kind: bytecode.PayloadStr, Str: "hero"}},
		2: {Op: bytecode.OpPush, Payload: bytecode.Payload{Kind: bytecode.PayloadStr, Str: "clone1"}},
		3: {Op: bytecode.OpPush, Payload: bytecode.Payload{Kind: bytecode.PayloadInt, Int: 50}},
		4: {Op: bytecode.OpCloneSprite},
		5: {Op: bytecode.OpStop},
		6: {Op: bytecode.OpEnd},
	}

	ctrl := gomock.NewController(t)
	host := NewMockVMHost(ctrl)
	host.EXPECT().CloneSprite("hero", "clone1", 50)
	host.EXPECT().Stop("_root")

	v := vm.New(src, host)
	require.NoError(t, v.Run(1, "_root"))
}
