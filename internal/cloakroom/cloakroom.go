package cloakroom

import (
	"fmt"
	"sort"
)

// Cloakroom owns a fixed range of lockers numbered 1..NumLockers and tracks
// which of them are in use.
type Cloakroom struct {
	numLockers int
	maxItems   int
	inUse      map[int]inUse
}

// New creates a cloakroom of numLockers lockers, each holding up to
// maxItemsPerLocker items.
func New(numLockers, maxItemsPerLocker int) (*Cloakroom, error) {
	if numLockers <= 0 || maxItemsPerLocker <= 0 {
		return nil, ErrInvalidLayout
	}
	return &Cloakroom{
		numLockers: numLockers,
		maxItems:   maxItemsPerLocker,
		inUse:      make(map[int]inUse, numLockers),
	}, nil
}

// NumLockers returns the number of lockers in the cloakroom.
func (c *Cloakroom) NumLockers() int {
	return c.numLockers
}

// MaxItemsPerLocker returns the capacity shared by every locker.
func (c *Cloakroom) MaxItemsPerLocker() int {
	return c.maxItems
}

// FindFreeLocker checks out the lowest numbered free locker. It reports
// false when every locker is in use.
func (c *Cloakroom) FindFreeLocker() (*Locker, bool) {
	if len(c.inUse) >= c.numLockers {
		return nil, false
	}

	number := 1
	for {
		if _, taken := c.inUse[number]; !taken {
			break
		}
		number++
	}
	c.inUse[number] = beingChanged{}

	return c.newLocker(number, Items{}), true
}

// Close stores the locker's contents and returns the key that reopens it.
// The locker handle is released.
func (c *Cloakroom) Close(l *Locker) (*Key, error) {
	if err := c.checkLocker(l); err != nil {
		return nil, err
	}
	c.inUse[l.number] = closedWith{items: l.release()}

	return &Key{owner: c, number: l.number}, nil
}

// Open redeems a key and checks the locker out again with its stored
// contents. The key cannot be used again.
func (c *Cloakroom) Open(k *Key) (*Locker, error) {
	if k == nil || k.owner != c {
		return nil, ErrForeignKey
	}
	if k.used {
		return nil, ErrKeyUsed
	}
	k.used = true

	record, ok := c.inUse[k.number]
	if !ok {
		return nil, fmt.Errorf("%w: no record for locker number %d", ErrInconsistentState, k.number)
	}
	closed, ok := record.(closedWith)
	if !ok {
		return nil, fmt.Errorf("%w: locker number %d holds no stored contents", ErrInconsistentState, k.number)
	}
	c.inUse[k.number] = beingChanged{}

	return c.newLocker(k.number, closed.items), nil
}

// Vacate empties a checked out locker and frees its slot for the next
// customer, returning the contents. The locker handle is released.
func (c *Cloakroom) Vacate(l *Locker) (Items, error) {
	if err := c.checkLocker(l); err != nil {
		return Items{}, err
	}
	delete(c.inUse, l.number)

	return l.release(), nil
}

// LockerState reports the state of a slot without changing it. Numbers
// outside 1..NumLockers are NonExistent.
func (c *Cloakroom) LockerState(number int) SlotState {
	state := SlotState{Number: number}
	if number < 1 || number > c.numLockers {
		state.Status = NonExistent
		return state
	}

	switch record := c.inUse[number].(type) {
	case nil:
		state.Status = Free
	case beingChanged:
		state.Status = ContentsBeingChanged
	case closedWith:
		state.Status = Closed
		state.Items = record.items
	}
	return state
}

// ClosedLockers lists every closed locker with its contents, lowest number first.
func (c *Cloakroom) ClosedLockers() []ClosedLocker {
	out := make([]ClosedLocker, 0, len(c.inUse))
	for number, record := range c.inUse {
		if closed, ok := record.(closedWith); ok {
			out = append(out, ClosedLocker{Number: number, Items: closed.items})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// Occupancy counts the slots in each state.
func (c *Cloakroom) Occupancy() Occupancy {
	var o Occupancy
	for _, record := range c.inUse {
		switch record.(type) {
		case beingChanged:
			o.ContentsBeingChanged++
		case closedWith:
			o.Closed++
		}
	}
	o.Free = c.numLockers - o.ContentsBeingChanged - o.Closed
	return o
}

func (c *Cloakroom) newLocker(number int, items Items) *Locker {
	return &Locker{
		owner:    c,
		number:   number,
		maxItems: c.maxItems,
		items:    items,
	}
}

func (c *Cloakroom) checkLocker(l *Locker) error {
	if l == nil || l.owner != c {
		return ErrForeignLocker
	}
	if l.released {
		return ErrLockerReleased
	}
	return nil
}
