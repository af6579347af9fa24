package radio

import "github.com/apa-radio/touchradio/radioshim"

// PressedSet tracks which buttons are currently drawn pressed.
type PressedSet struct {
	pressed [radioshim.NumButtons]bool
	n       int
}

// Add marks id pressed and reports whether it was newly added.
func (p *PressedSet) Add(id radioshim.ButtonID) bool {
	if p.pressed[id] {
		return false
	}
	p.pressed[id] = true
	p.n++
	return true
}

func (p *PressedSet) Has(id radioshim.ButtonID) bool {
	return p.pressed[id]
}

func (p *PressedSet) Empty() bool {
	return p.n == 0
}

func (p *PressedSet) Len() int {
	return p.n
}

// Drain calls fn for every pressed button in ButtonID order and empties
// the set.
func (p *PressedSet) Drain(fn func(radioshim.ButtonID)) {
	if p.n == 0 {
		return
	}
	for i := range p.pressed {
		if p.pressed[i] {
			p.pressed[i] = false
			fn(radioshim.ButtonID(i))
		}
	}
	p.n = 0
}
