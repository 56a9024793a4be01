// Package storage implements a bounded multi-commodity warehouse.
//
// A Storage has a fixed per-container capacity and a fixed aggregate capacity.
// A container is allocated the first time a commodity is stored and released
// only through RemoveContainer once it is empty. Deposits that do not fit are
// returned as overflow; withdrawals that cannot be satisfied return the amount
// actually taken. Only negative quantities, invalid capacities and running out
// of room for a new container are reported as errors.
package storage
