package bytecode

// ActionSource resolves a single 1-based action-table entry. It is
// satisfied by *container.Reader without either package importing the
// other.
type ActionSource interface {
	Action(index int) (Instruction, bool, error)
}

// Disassembler is a thin, index-addressed cache over an ActionSource,
// used by dump/decompile tooling that walks the full action table
// rather than following the VM's program counter one step at a time.
type Disassembler struct {
	source ActionSource
	cache  map[int]cacheEntry
}

type cacheEntry struct {
	instr Instruction
	ok    bool
}

// NewDisassembler wraps source with an indexed cache.
func NewDisassembler(source ActionSource) *Disassembler {
	return &Disassembler{source: source, cache: make(map[int]cacheEntry)}
}

// At returns the disassembled instruction at index, caching the
// result. ok is false once the action table's terminator (an unknown
// opcode) is reached.
func (d *Disassembler) At(index int) (Instruction, bool, error) {
	if entry, hit := d.cache[index]; hit {
		return entry.instr, entry.ok, nil
	}
	instr, ok, err := d.source.Action(index)
	if err != nil {
		return Instruction{}, false, err
	}
	d.cache[index] = cacheEntry{instr: instr, ok: ok}
	return instr, ok, nil
}

// All walks the action table from index 1 until the terminator,
// returning every instruction in order.
func (d *Disassembler) All() ([]Instruction, error) {
	var out []Instruction
	for i := 1; ; i++ {
		instr, ok, err := d.At(i)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, instr)
	}
	return out, nil
}
