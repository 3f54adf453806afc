// Package vm implements the Native32 stack bytecode interpreter: a
// typed-coercion, string-valued stack machine with host callbacks for
// every opcode that mutates playback state.
package vm

import (
	"math/rand"

	"github.com/bugVanisher/native32/internal/bytecode"
	"github.com/bugVanisher/native32/internal/errs"
)

// Property is one of the stage-object properties Get/SetProperty can
// target, numbered to match the wire enum the bytecode encodes.
type Property int

const (
	PropX             Property = 0
	PropY             Property = 1
	PropXScale        Property = 2
	PropYScale        Property = 3
	PropCurrentFrame  Property = 4
	PropTotalFrames   Property = 5
	PropAlpha         Property = 6
	PropVisible       Property = 7
	PropWidth         Property = 8
	PropHeight        Property = 9
	PropName          Property = 13
)

// Host is the capability set the VM calls back into for every opcode
// with a playback-visible side effect. The playback scheduler
// implements it.
type Host interface {
	Stop(target string)
	Play(target string)
	StopSounds(target string)
	GetFrame(target string) int
	GotoFrame(target string, frame int)
	SetProperty(target string, prop Property, value string)
	GetProperty(target string, prop Property) string
	CloneSprite(src, dst string, depth int)
	RemoveSprite(name string)
	// RunFrameActions executes every Action object of the given
	// 1-based frame index, as invoked by the Call opcode.
	RunFrameActions(frameIndex int)
	GetURL(url, target string) error
	NowMS() uint64
}

// MaxSteps bounds a single Run call's instruction count, defending
// against runaway or malformed bytecode per the "no cancellation
// inside a run" concurrency model.
const MaxSteps = 1_000_000

// VM executes disassembled instructions against an action source,
// maintaining its own variable table and a seeded RNG across Run
// calls (persistent state, matching the source's single ActionVM
// instance per container load).
type VM struct {
	Source bytecode.ActionSource
	Host   Host

	vars map[string]string
	rand *rand.Rand
}

// New builds a VM bound to a bytecode source and a playback host.
func New(source bytecode.ActionSource, host Host) *VM {
	return &VM{
		Source: source,
		Host:   host,
		vars:   make(map[string]string),
		rand:   rand.New(rand.NewSource(0)),
	}
}

// Run executes the action table starting at the 1-based index until
// an End instruction, a StackUnderflow/UnknownOpcode trap (recovered,
// logged by the caller, and treated as a no-op End), or MaxSteps is
// exceeded (a fatal errs.MalformedBytecode).
func (v *VM) Run(index int, target string) error {
	var stack []string

	pop := func() (string, error) {
		n := len(stack)
		if n == 0 {
			return "", errs.New(errs.StackUnderflow, "pop on empty stack")
		}
		top := stack[n-1]
		stack = stack[:n-1]
		return top, nil
	}
	push := func(s string) { stack = append(stack, s) }

	pc := index
	for steps := 0; ; steps++ {
		if steps >= MaxSteps {
			return errs.New(errs.MalformedBytecode, "VM.Run exceeded the maximum instruction count")
		}
		instr, ok, err := v.Source.Action(pc)
		if err != nil {
			return err
		}
		if !ok {
			return errs.New(errs.UnknownOpcode, "unknown or out-of-range opcode")
		}

		npc := pc + 1
		var trapErr error

		switch instr.Op {
		case bytecode.OpPush:
			push(payloadString(instr.Payload))
		case bytecode.OpPop:
			_, trapErr = pop()
		case bytecode.OpSetVariable:
			val, e1 := pop()
			name, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				v.vars[lowerKey(name)] = val
			}
		case bytecode.OpGetVariable:
			name, e := pop()
			if trapErr = e; trapErr == nil {
				push(v.vars[lowerKey(name)])
			}
		case bytecode.OpNot:
			a, e := pop()
			if trapErr = e; trapErr == nil {
				push(boolToStr(toInt(a) == 0))
			}
		case bytecode.OpAdd:
			trapErr = v.binaryFloat(&stack, func(a, b float64) float64 { return a + b })
		case bytecode.OpSubtract:
			trapErr = v.binaryFloat(&stack, func(a, b float64) float64 { return a - b })
		case bytecode.OpMultiply:
			trapErr = v.binaryFloat(&stack, func(a, b float64) float64 { return a * b })
		case bytecode.OpDivide:
			trapErr = v.binaryFloat(&stack, func(a, b float64) float64 { return a / b })
		case bytecode.OpEquals:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(boolToStr(toFloat(a) == toFloat(b)))
			}
		case bytecode.OpLess:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(boolToStr(toFloat(a) < toFloat(b)))
			}
		case bytecode.OpAnd:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(boolToStr(toInt(a) != 0 && toInt(b) != 0))
			}
		case bytecode.OpOr:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(boolToStr(toInt(a) != 0 || toInt(b) != 0))
			}
		case bytecode.OpStringEquals:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(strEquals(a, b))
			}
		case bytecode.OpStringAdd:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(a + b)
			}
		case bytecode.OpStringLess:
			b, e1 := pop()
			a, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(strLess(a, b))
			}
		case bytecode.OpStringExtract:
			c, e1 := pop()
			b, e2 := pop()
			a, e3 := pop()
			if trapErr = firstErr(e1, e2, e3); trapErr == nil {
				push(stringExtract(a, toInt(b), toInt(c)))
			}
		case bytecode.OpStringLength:
			a, e := pop()
			if trapErr = e; trapErr == nil {
				push(numToString(float64(len(a))))
			}
		case bytecode.OpToInteger:
			a, e := pop()
			if trapErr = e; trapErr == nil {
				push(numToString(float64(toInt(a))))
			}
		case bytecode.OpCharToAscii:
			a, e := pop()
			if trapErr = e; trapErr == nil {
				push(numToString(float64(charToAscii(a))))
			}
		case bytecode.OpAsciiToChar:
			a, e := pop()
			if trapErr = e; trapErr == nil {
				push(asciiToChar(toInt(a)))
			}
		case bytecode.OpJump:
			npc = jumpTarget(pc, instr.Payload.Int)
		case bytecode.OpIf:
			cond, e := pop()
			if trapErr = e; trapErr == nil && toInt(cond) != 0 {
				npc = jumpTarget(pc, instr.Payload.Int)
			}
		case bytecode.OpCall:
			a, e := pop()
			if trapErr = e; trapErr == nil {
				v.Host.RunFrameActions(int(toInt(a)))
			}
		case bytecode.OpEnd:
			return nil
		case bytecode.OpStop:
			v.Host.Stop(target)
		case bytecode.OpPlay:
			v.Host.Play(target)
		case bytecode.OpStopSounds:
			v.Host.StopSounds(target)
		case bytecode.OpNextFrame:
			v.Host.GotoFrame(target, v.Host.GetFrame(target)+1)
		case bytecode.OpPreviousFrame:
			v.Host.GotoFrame(target, v.Host.GetFrame(target)-1)
		case bytecode.OpGotoFrame:
			v.Host.GotoFrame(target, int(instr.Payload.Int)+1)
		case bytecode.OpSetTarget:
			target = instr.Payload.Str
		case bytecode.OpGotoFrame2:
			f, e := pop()
			if trapErr = e; trapErr == nil {
				v.Host.GotoFrame(target, int(toInt(f)))
			}
		case bytecode.OpSetTarget2:
			s, e := pop()
			if trapErr = e; trapErr == nil {
				target = s
			}
		case bytecode.OpSetProperty:
			val, e1 := pop()
			prop, e2 := pop()
			tgt, e3 := pop()
			if trapErr = firstErr(e1, e2, e3); trapErr == nil {
				v.Host.SetProperty(tgt, Property(toInt(prop)), val)
			}
		case bytecode.OpGetProperty:
			prop, e1 := pop()
			tgt, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				push(v.Host.GetProperty(tgt, Property(toInt(prop))))
			}
		case bytecode.OpCloneSprite:
			depth, e1 := pop()
			dst, e2 := pop()
			src, e3 := pop()
			if trapErr = firstErr(e1, e2, e3); trapErr == nil {
				v.Host.CloneSprite(src, dst, int(toInt(depth)))
			}
		case bytecode.OpRemoveSprite:
			name, e := pop()
			if trapErr = e; trapErr == nil {
				v.Host.RemoveSprite(name)
			}
		case bytecode.OpRandomNumber:
			n, e := pop()
			if trapErr = e; trapErr == nil {
				bound := int(toInt(n))
				if bound <= 0 {
					push("0")
				} else {
					push(numToString(float64(v.rand.Intn(bound))))
				}
			}
		case bytecode.OpGetTime:
			push(numToString(float64(v.Host.NowMS())))
		case bytecode.OpGetUrl2:
			tgt, e1 := pop()
			url, e2 := pop()
			if trapErr = firstErr(e1, e2); trapErr == nil {
				trapErr = v.Host.GetURL(url, tgt)
			}
		case bytecode.OpTrace:
			_, trapErr = pop()
		case bytecode.OpWaitForFrame, bytecode.OpGotoLabel:
			// Recognized but inert: no Host callback is specified for
			// these in the observed runtime behavior.
		default:
			trapErr = errs.New(errs.UnknownOpcode, "opcode has no VM handler")
		}

		if trapErr != nil {
			return trapErr
		}
		pc = npc
	}
}

// SetVar assigns a VM variable directly, bypassing the stack. Used by
// the host's GetUrl2 handler to post SSL_GetSSLData results and
// success flags back into the running action.
func (v *VM) SetVar(name, value string) {
	v.vars[lowerKey(name)] = value
}

func payloadString(p bytecode.Payload) string {
	switch p.Kind {
	case bytecode.PayloadInt:
		return numToString(float64(p.Int))
	case bytecode.PayloadStr:
		return p.Str
	default:
		return ""
	}
}

// jumpTarget applies the Jump/If control-flow rule: pc+payload+1 when
// payload is non-negative, pc+payload otherwise.
func jumpTarget(pc int, payload int16) int {
	if payload >= 0 {
		return pc + int(payload) + 1
	}
	return pc + int(payload)
}

func (v *VM) binaryFloat(stack *[]string, f func(a, b float64) float64) error {
	s := *stack
	if len(s) < 2 {
		return errs.New(errs.StackUnderflow, "binary op needs 2 operands")
	}
	b := s[len(s)-1]
	a := s[len(s)-2]
	*stack = append(s[:len(s)-2], numToString(f(toFloat(a), toFloat(b))))
	return nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
