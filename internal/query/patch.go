package query

// Identifiable is implemented by every model pointer
type Identifiable interface {
	GetID() string
}

// ReplaceByID returns items with the element sharing item's id replaced.
// found is false when no element matched.
func ReplaceByID[T Identifiable](items []T, item T) (out []T, found bool) {
	out = make([]T, len(items))
	for i, existing := range items {
		if existing.GetID() == item.GetID() {
			out[i] = item
			found = true
			continue
		}
		out[i] = existing
	}
	return out, found
}

// Prepend returns a new slice with item first
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// RemoveByID returns items without the element whose id is id
func RemoveByID[T Identifiable](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, existing := range items {
		if existing.GetID() != id {
			out = append(out, existing)
		}
	}
	return out
}

// PatchItem replaces item inside the cached collection at key, if cached
func PatchItem[T Identifiable](c *Client, key Key, item T) {
	UpdateData(c, key, func(old []T, exists bool) ([]T, bool) {
		if !exists {
			return nil, false
		}
		return ReplaceByID(old, item)
	})
}
