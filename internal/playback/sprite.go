package playback

import "github.com/bugVanisher/native32/internal/host"

// Sprite is the runtime state of one sub-movie instance on stage.
type Sprite struct {
	Movie int
	X, Y  int
	Depth int
	Frame int

	nextFrame *int
	playing   bool
	visible   bool
	cloned    bool
	channel   *host.ChannelID
}

// spriteTable is an insertion-order preserving name -> *Sprite map,
// matching the Stage invariant that draw order comes from Depth, not
// map/insertion order, while frame-transition bookkeeping (survive,
// delete) walks in insertion order.
type spriteTable struct {
	order []string
	byKey map[string]*Sprite
}

func newSpriteTable() *spriteTable {
	return &spriteTable{byKey: make(map[string]*Sprite)}
}

func (t *spriteTable) get(name string) (*Sprite, bool) {
	s, ok := t.byKey[name]
	return s, ok
}

func (t *spriteTable) set(name string, s *Sprite) {
	if _, exists := t.byKey[name]; !exists {
		t.order = append(t.order, name)
	}
	t.byKey[name] = s
}

func (t *spriteTable) delete(name string) {
	if _, exists := t.byKey[name]; !exists {
		return
	}
	delete(t.byKey, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// names returns sprite names in insertion order.
func (t *spriteTable) names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *spriteTable) len() int {
	return len(t.order)
}
