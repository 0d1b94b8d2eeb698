package cloakroom

import "fmt"

// Status is the observable state of a locker slot.
type Status int

const (
	NonExistent Status = iota
	Free
	ContentsBeingChanged
	Closed
)

var statusNames = [...]string{"non-existent", "free", "contents-being-changed", "closed"}

func (s Status) String() string {
	if s < NonExistent || s > Closed {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText renders the status name in JSON and YAML output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SlotState is a read-only snapshot of one locker slot. Items is only
// meaningful when Status is Closed.
type SlotState struct {
	Number int
	Status Status
	Items  Items
}

// ClosedLocker pairs a closed locker number with its stored contents.
type ClosedLocker struct {
	Number int   `json:"lockerNumber"`
	Items  Items `json:"items"`
}

// Occupancy counts slots per status.
type Occupancy struct {
	Free                 int `json:"free"`
	ContentsBeingChanged int `json:"contentsBeingChanged"`
	Closed               int `json:"closed"`
}

// inUse is the record kept for a slot that is not free.
type inUse interface {
	inUse()
}

type beingChanged struct{}

type closedWith struct {
	items Items
}

func (beingChanged) inUse() {}
func (closedWith) inUse()   {}
