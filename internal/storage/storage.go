package storage

import (
	"fmt"
	"math"
)

// Option configures a Storage at construction
type Option func(*Storage)

// WithStrictAllocationCheck applies the container allocation check on every Store call,
// including deposits into commodities that already hold a container. Once the warehouse
// is fully allocated, such deposits fail with ErrCapacityExceeded.
func WithStrictAllocationCheck() Option {
	return func(s *Storage) {
		s.strictAllocation = true
	}
}

// Entry is one allocated container
type Entry struct {
	Commodity Commodity `json:"commodity" yaml:"commodity"`
	Amount    float64   `json:"amount" yaml:"amount"`
}

// Storage is a fixed-capacity warehouse split into per-commodity containers.
// It is not safe for concurrent use; callers sharing an instance must serialize
// Store, Withdraw and RemoveContainer.
type Storage struct {
	containerCapacity float64
	storageCapacity   float64
	strictAllocation  bool

	contents map[Commodity]float64
	order    []Commodity // allocation order, used for rendering
}

// New creates an empty storage. containerCapacity must not be negative and
// storageCapacity must be at least containerCapacity. NaN fails both checks.
func New(containerCapacity, storageCapacity float64, opts ...Option) (*Storage, error) {
	if !(containerCapacity >= 0) {
		return nil, &Error{
			Kind:    KindInvalidConfiguration,
			Op:      "new",
			Message: fmt.Sprintf("container capacity %v must be a non-negative number", containerCapacity),
		}
	}
	if !(storageCapacity >= containerCapacity) {
		return nil, &Error{
			Kind:    KindInvalidConfiguration,
			Op:      "new",
			Message: fmt.Sprintf("storage capacity %v must be at least container capacity %v", storageCapacity, containerCapacity),
		}
	}

	s := &Storage{
		containerCapacity: containerCapacity,
		storageCapacity:   storageCapacity,
		contents:          make(map[Commodity]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ContainerCapacity returns the maximum quantity a single container holds
func (s *Storage) ContainerCapacity() float64 {
	return s.containerCapacity
}

// StorageCapacity returns the ceiling on containers * container capacity
func (s *Storage) StorageCapacity() float64 {
	return s.storageCapacity
}

// StrictAllocation reports whether WithStrictAllocationCheck was applied
func (s *Storage) StrictAllocation() bool {
	return s.strictAllocation
}

// ContainerCount returns the number of allocated containers
func (s *Storage) ContainerCount() int {
	return len(s.contents)
}

// MaxContainers returns how many containers fit in the warehouse, or -1 when
// the count is unbounded or does not fit in an int.
func (s *Storage) MaxContainers() int {
	if s.containerCapacity == 0 {
		return -1
	}
	n := math.Floor(s.storageCapacity / s.containerCapacity)
	if math.IsNaN(n) || n >= math.MaxInt {
		return -1
	}
	return int(n)
}

// HasContainer reports whether c currently has a container
func (s *Storage) HasContainer(c Commodity) bool {
	_, ok := s.contents[c]
	return ok
}

// Store deposits amount of c and returns the overflow that did not fit.
func (s *Storage) Store(c Commodity, amount float64) (float64, error) {
	if !(amount >= 0) {
		return 0, &Error{
			Kind:      KindInvalidArgument,
			Op:        "store",
			Commodity: c,
			Message:   fmt.Sprintf("amount %v is not a non-negative number", amount),
		}
	}

	current, allocated := s.contents[c]
	if !allocated || s.strictAllocation {
		if float64(len(s.contents)+1)*s.containerCapacity > s.storageCapacity {
			return 0, &Error{
				Kind:      KindCapacityExceeded,
				Op:        "store",
				Commodity: c,
				Message:   "not enough room for a new container",
			}
		}
	}

	if !allocated {
		s.order = append(s.order, c)
	}

	available := s.containerCapacity - current
	if amount <= available {
		s.contents[c] = current + amount
		return 0, nil
	}
	s.contents[c] = s.containerCapacity
	return amount - available, nil
}

// Withdraw removes up to amount of c. It returns 0 when the request was fully
// satisfied, otherwise the quantity actually removed, which empties the container.
// An unallocated commodity behaves as an empty container and stays unallocated.
func (s *Storage) Withdraw(c Commodity, amount float64) (float64, error) {
	if !(amount >= 0) {
		return 0, &Error{
			Kind:      KindInvalidArgument,
			Op:        "withdraw",
			Commodity: c,
			Message:   fmt.Sprintf("amount %v is not a non-negative number", amount),
		}
	}

	current, allocated := s.contents[c]
	if !allocated {
		return 0, nil
	}
	if amount <= current {
		s.contents[c] = current - amount
		return 0, nil
	}
	s.contents[c] = 0
	return current, nil
}

// RemoveContainer deallocates the container for c if it is empty. It returns
// false when the container still holds something. Removing an unallocated
// commodity succeeds without changing anything.
func (s *Storage) RemoveContainer(c Commodity) bool {
	current, allocated := s.contents[c]
	if current > 0 {
		return false
	}
	if allocated {
		delete(s.contents, c)
		s.dropFromOrder(c)
	}
	return true
}

// AmountOf returns the quantity stored for c, 0 when unallocated
func (s *Storage) AmountOf(c Commodity) float64 {
	return s.contents[c]
}

// FreeSpace returns the room left in the container for c
func (s *Storage) FreeSpace(c Commodity) float64 {
	return s.containerCapacity - s.AmountOf(c)
}

// Contents returns the allocated containers in allocation order
func (s *Storage) Contents() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, c := range s.order {
		entries = append(entries, Entry{Commodity: c, Amount: s.contents[c]})
	}
	return entries
}

func (s *Storage) dropFromOrder(c Commodity) {
	for i, existing := range s.order {
		if existing == c {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
