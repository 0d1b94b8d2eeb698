package cloakroom

import "fmt"

// Category identifies one kind of item a locker can hold.
type Category int

const (
	Coats Category = iota
	Backpacks
	Umbrellas
	OtherItems
)

var categoryNames = [...]string{"coats", "backpacks", "umbrellas", "other items"}

// Categories returns every category in canonical order.
func Categories() []Category {
	return []Category{Coats, Backpacks, Umbrellas, OtherItems}
}

func (c Category) String() string {
	if c < Coats || c > OtherItems {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Items counts the things stored in one locker.
type Items struct {
	Coats      uint8 `json:"coats"`
	Backpacks  uint8 `json:"backpacks"`
	Umbrellas  uint8 `json:"umbrellas"`
	OtherItems uint8 `json:"otherItems"`
}

// Total returns the number of items across all categories.
func (i Items) Total() int {
	return int(i.Coats) + int(i.Backpacks) + int(i.Umbrellas) + int(i.OtherItems)
}

// Get returns the count for a single category.
func (i Items) Get(c Category) uint8 {
	switch c {
	case Coats:
		return i.Coats
	case Backpacks:
		return i.Backpacks
	case Umbrellas:
		return i.Umbrellas
	case OtherItems:
		return i.OtherItems
	}
	return 0
}

func (i *Items) set(c Category, n uint8) {
	switch c {
	case Coats:
		i.Coats = n
	case Backpacks:
		i.Backpacks = n
	case Umbrellas:
		i.Umbrellas = n
	case OtherItems:
		i.OtherItems = n
	}
}

// String renders the canonical description used wherever contents are shown.
func (i Items) String() string {
	return fmt.Sprintf("num coats: %d, num backpacks: %d, num umbrellas: %d, num other items: %d",
		i.Coats, i.Backpacks, i.Umbrellas, i.OtherItems)
}
