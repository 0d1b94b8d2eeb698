package cloakroom

import "errors"

var (
	// ErrInvalidLayout is returned by New when the locker count or capacity is not positive.
	ErrInvalidLayout = errors.New("number of lockers and items per locker must be positive")
	// ErrCapacityExceeded is returned when a change would put more items in a locker than it holds.
	ErrCapacityExceeded = errors.New("not enough space in locker")
	// ErrLockerReleased is returned when a Locker is used after being closed or vacated.
	ErrLockerReleased = errors.New("locker has already been handed back")
	// ErrKeyUsed is returned when a Key is presented a second time.
	ErrKeyUsed = errors.New("key has already been used")
	// ErrForeignLocker is returned when a Locker issued by another cloakroom is handed in.
	ErrForeignLocker = errors.New("locker does not belong to this cloakroom")
	// ErrForeignKey is returned when a Key issued by another cloakroom is presented.
	ErrForeignKey = errors.New("key does not belong to this cloakroom")
	// ErrInconsistentState signals that a live key referenced a slot that is not closed.
	// It indicates a defect rather than a user error.
	ErrInconsistentState = errors.New("locker records are inconsistent")
)
