package models

// cloneSlice copies a slice, preserving nil-ness so snapshot shapes survive
// a round trip unchanged.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Clone returns a copy whose nested slices share no memory with t. Handed
// out by the state container so callers can hold snapshots while the
// authoritative collections keep mutating.
func (t Task) Clone() Task {
	t.Subtasks = cloneSlice(t.Subtasks)
	t.Comments = cloneSlice(t.Comments)
	t.Attachments = cloneSlice(t.Attachments)
	t.SharedWith = cloneSlice(t.SharedWith)
	return t
}

// Clone returns a copy whose nested slices share no memory with l.
func (l TaskList) Clone() TaskList {
	l.SharedWith = cloneSlice(l.SharedWith)
	return l
}
