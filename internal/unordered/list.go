// Package unordered provides a dense list with constant time removal.
//
// Removal moves the last element into the freed slot, so element order is
// not stable. Callers must only rely on membership.
package unordered

type List[T any] struct {
	items []T
}

func New[T any](items ...T) *List[T] {
	l := &List[T]{items: make([]T, len(items))}
	copy(l.items, items)
	return l
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) At(i int) T { return l.items[i] }

func (l *List[T]) Add(item T) { l.items = append(l.items, item) }

// RemoveAt swaps the last element into i and shrinks the list.
func (l *List[T]) RemoveAt(i int) {
	last := len(l.items) - 1
	l.items[i] = l.items[last]
	var zero T
	l.items[last] = zero
	l.items = l.items[:last]
}

// RemoveFunc removes every element for which remove returns true and
// returns how many were removed. Elements are visited once each.
func (l *List[T]) RemoveFunc(remove func(T) bool) int {
	removed := 0
	for i := 0; i < len(l.items); {
		if remove(l.items[i]) {
			l.RemoveAt(i)
			removed++
			continue
		}
		i++
	}
	return removed
}

// Items exposes the backing slice, valid until the next mutation.
func (l *List[T]) Items() []T { return l.items }
