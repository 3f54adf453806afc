package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/native32/internal/bytecode"
	"github.com/bugVanisher/native32/internal/errs"
)

// fakeSource is a fixed, in-memory bytecode.ActionSource keyed by
// 1-based instruction index, used to drive the VM without a
// container.Reader.
type fakeSource map[int]bytecode.Instruction

func (f fakeSource) Action(index int) (bytecode.Instruction, bool, error) {
	instr, ok := f[index]
	return instr, ok, nil
}

// fakeHost is a minimal recording Host double for VM unit tests; it
// doesn't need gomock's expectation machinery since these tests only
// assert on calls actually made, not call ordering/arity.
type fakeHost struct {
	gotoCalls []struct {
		target string
		frame  int
	}
	urlErr error
	gotURL struct{ url, target string }
}

func (h *fakeHost) Stop(target string)    {}
func (h *fakeHost) Play(target string)    {}
func (h *fakeHost) StopSounds(s string)   {}
func (h *fakeHost) GetFrame(s string) int { return 0 }
func (h *fakeHost) GotoFrame(target string, frame int) {
	h.gotoCalls = append(h.gotoCalls, struct {
		target string
		frame  int
	}{target, frame})
}
func (h *fakeHost) SetProperty(target string, prop Property, value string) {}
func (h *fakeHost) GetProperty(target string, prop Property) string        { return "0" }
func (h *fakeHost) CloneSprite(src, dst string, depth int)                  {}
func (h *fakeHost) RemoveSprite(name string)                                {}
func (h *fakeHost) RunFrameActions(frameIndex int)                          {}
func (h *fakeHost) GetURL(url, target string) error {
	h.gotURL.url, h.gotURL.target = url, target
	return h.urlErr
}
func (h *fakeHost) NowMS() uint64 { return 0 }

func strPayload(s string) bytecode.Payload {
	return bytecode.Payload{Kind: bytecode.PayloadStr, Str: s}
}

func intPayload(n int16) bytecode.Payload {
	return bytecode.Payload{Kind: bytecode.PayloadInt, Int: n}
}

func TestVMArithmeticScenario(t *testing.T) {
	// Push "2.5"; Push "1.5"; Add; ToInteger; End
	src := fakeSource{
		1: {Op: bytecode.OpPush, Payload: strPayload("2.5")},
		2: {Op: bytecode.OpPush, Payload: strPayload("1.5")},
		3: {Op: bytecode.OpAdd},
		4: {Op: bytecode.OpToInteger},
		5: {Op: bytecode.OpEnd},
	}

	v := New(src, &fakeHost{})
	require.NoError(t, v.Run(1, ""))
}

func TestVMJumpSkipsOverPushA(t *testing.T) {
	// 0: Push "1"; 1: If +2; 2: Push "A"; 3: Jump +1; 4: Push "B"; 5: End
	// (1-based table here; instruction 0 of the scenario is table index 1.)
	src := fakeSource{
		1: {Op: bytecode.OpPush, Payload: strPayload("1")},
		2: {Op: bytecode.OpIf, Payload: intPayload(2)},
		3: {Op: bytecode.OpPush, Payload: strPayload("A")},
		4: {Op: bytecode.OpJump, Payload: intPayload(1)},
		5: {Op: bytecode.OpPush, Payload: strPayload("B")},
		6: {Op: bytecode.OpEnd},
	}

	require.NoError(t, New(src, &fakeHost{}).Run(1, ""))

	// jumpTarget(2, 2) = 2+2+1 = 5, landing on "Push B", matching the
	// pc+payload+1 rule for non-negative branch payloads.
	require.Equal(t, 5, jumpTarget(2, 2))
}

func TestVMStackUnderflowTraps(t *testing.T) {
	src := fakeSource{
		1: {Op: bytecode.OpAdd},
		2: {Op: bytecode.OpEnd},
	}
	err := New(src, &fakeHost{}).Run(1, "")
	require.Error(t, err)
	require.Equal(t, errs.StackUnderflow, errs.KindOf(err))
}

func TestVMGotoFrameAppliesOneBasedWireOffset(t *testing.T) {
	src := fakeSource{
		1: {Op: bytecode.OpGotoFrame, Payload: intPayload(4)},
		2: {Op: bytecode.OpEnd},
	}
	h := &fakeHost{}
	require.NoError(t, New(src, h).Run(1, ""))
	require.Len(t, h.gotoCalls, 1)
	require.Equal(t, 5, h.gotoCalls[0].frame) // wire payload is 0-based, +1 applied
}

func TestVMGetUrl2PropagatesHostError(t *testing.T) {
	// OpGetUrl2 pops tgt (top of stack) then url, so the "+"-delimited
	// verb string must be pushed last to land in tgt.
	src := fakeSource{
		1: {Op: bytecode.OpPush, Payload: strPayload("some.url")},
		2: {Op: bytecode.OpPush, Payload: strPayload("_root+SSL_Unknown")},
		3: {Op: bytecode.OpGetUrl2},
		4: {Op: bytecode.OpEnd},
	}
	h := &fakeHost{urlErr: errs.New(errs.UnhandledUrlVerb, "unhandled")}
	err := New(src, h).Run(1, "")
	require.Error(t, err)
	require.Equal(t, "some.url", h.gotURL.url)
	require.Equal(t, "_root+SSL_Unknown", h.gotURL.target)
}
