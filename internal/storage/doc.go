// Package storage keeps outstanding locker keys for customers who reach the
// cloakroom over the network and therefore cannot hold a Key value directly.
package storage
