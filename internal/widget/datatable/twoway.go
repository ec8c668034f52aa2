package datatable

// TwoWayMap maps keys to positions and back. Positions always run from 0
// to Len()-1 with no gaps, and updates touch both directions so the two
// views cannot disagree.
type TwoWayMap[K comparable] struct {
	forward map[K]int
	reverse map[int]K
}

// NewTwoWayMap creates an empty map.
func NewTwoWayMap[K comparable]() *TwoWayMap[K] {
	return &TwoWayMap[K]{
		forward: make(map[K]int),
		reverse: make(map[int]K),
	}
}

// Append places key at the next free position and returns it. A key
// already present keeps its position and Append reports false.
func (m *TwoWayMap[K]) Append(key K) (int, bool) {
	if index, ok := m.forward[key]; ok {
		return index, false
	}
	index := len(m.forward)
	m.forward[key] = index
	m.reverse[index] = key
	return index, true
}

// Index returns the position of key.
func (m *TwoWayMap[K]) Index(key K) (int, bool) {
	index, ok := m.forward[key]
	return index, ok
}

// Key returns the key at index.
func (m *TwoWayMap[K]) Key(index int) (K, bool) {
	key, ok := m.reverse[index]
	return key, ok
}

// Contains reports whether key is present.
func (m *TwoWayMap[K]) Contains(key K) bool {
	_, ok := m.forward[key]
	return ok
}

// Len returns the number of entries.
func (m *TwoWayMap[K]) Len() int {
	return len(m.forward)
}

// Reorder replaces the mapping so keys[i] sits at position i. Repeated
// keys keep their first position.
func (m *TwoWayMap[K]) Reorder(keys []K) {
	m.Clear()
	for _, k := range keys {
		m.Append(k)
	}
}

// Clear removes every entry.
func (m *TwoWayMap[K]) Clear() {
	clear(m.forward)
	clear(m.reverse)
}
