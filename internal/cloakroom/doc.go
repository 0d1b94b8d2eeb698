// Package cloakroom models a bank of numbered, capacity-bounded lockers.
// A caller takes a free Locker, changes its contents, then hands it back
// either to be closed (receiving a Key) or vacated (receiving the Items).
// Lockers and Keys are single-use handles: once surrendered they are
// invalidated and every further use fails.
//
// A Cloakroom is not safe for concurrent use; callers that share one
// across goroutines must serialise every operation.
package cloakroom
