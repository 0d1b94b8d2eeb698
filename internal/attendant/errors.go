package attendant

import "errors"

var (
	// ErrNoFreeLockers is returned by Deposit when every locker is in use.
	ErrNoFreeLockers = errors.New("there are no free lockers")
	// ErrUnknownKey is returned when a presented token has no outstanding key.
	ErrUnknownKey = errors.New("key not found")
	// ErrRecordsOutOfSync is returned by Audit when closed lockers and outstanding keys disagree.
	ErrRecordsOutOfSync = errors.New("closed lockers and outstanding keys do not match")
)
