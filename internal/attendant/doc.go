// Package attendant runs a cloakroom on behalf of remote customers. It
// serialises access to the single-threaded cloakroom model and keeps the
// keys of closed lockers in a storage.KeyStore, handing customers an opaque
// token in their place.
package attendant
