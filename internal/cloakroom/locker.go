package cloakroom

import "fmt"

// Locker is an open locker checked out to a single caller. It stays usable
// until it is handed back through Cloakroom.Close or Cloakroom.Vacate.
type Locker struct {
	owner    *Cloakroom
	number   int
	maxItems int
	items    Items
	released bool
}

// Number returns the locker number printed on the door.
func (l *Locker) Number() int {
	return l.number
}

// MaxItems returns the number of items the locker can hold.
func (l *Locker) MaxItems() int {
	return l.maxItems
}

// Total returns the number of items currently in the locker.
func (l *Locker) Total() int {
	return l.items.Total()
}

// Items returns a copy of the current contents.
func (l *Locker) Items() Items {
	return l.items
}

// Released reports whether the locker has been handed back.
func (l *Locker) Released() bool {
	return l.released
}

// SetCoats replaces the number of coats.
func (l *Locker) SetCoats(n uint8) error {
	return l.Set(Coats, n)
}

// SetBackpacks replaces the number of backpacks.
func (l *Locker) SetBackpacks(n uint8) error {
	return l.Set(Backpacks, n)
}

// SetUmbrellas replaces the number of umbrellas.
func (l *Locker) SetUmbrellas(n uint8) error {
	return l.Set(Umbrellas, n)
}

// SetOtherItems replaces the number of other items.
func (l *Locker) SetOtherItems(n uint8) error {
	return l.Set(OtherItems, n)
}

// Set replaces the count for one category. The change is rejected with
// ErrCapacityExceeded, leaving the contents untouched, when the new total
// would exceed MaxItems.
func (l *Locker) Set(c Category, n uint8) error {
	if l.released {
		return ErrLockerReleased
	}
	if c < Coats || c > OtherItems {
		return fmt.Errorf("set %s: unknown category", c)
	}
	if l.items.Total()-int(l.items.Get(c))+int(n) > l.maxItems {
		return ErrCapacityExceeded
	}
	l.items.set(c, n)
	return nil
}

func (l *Locker) release() Items {
	l.released = true
	contents := l.items
	l.items = Items{}
	return contents
}

// Key unlocks one closed locker. Keys are only issued by Cloakroom.Close
// and can be redeemed once.
type Key struct {
	owner  *Cloakroom
	number int
	used   bool
}

// LockerNumber returns the number of the locker the key opens.
func (k *Key) LockerNumber() int {
	return k.number
}

// Used reports whether the key has already been redeemed.
func (k *Key) Used() bool {
	return k.used
}
