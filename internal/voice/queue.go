package voice

// TrackQueue is the ordered list of tracks waiting behind the active one.
// It has no lock of its own: every call happens under the owning session's
// mutex, which is what keeps FIFO order and single dequeue correct.
type TrackQueue struct {
	items []*Track
}

// PushBack appends a track to the tail.
func (q *TrackQueue) PushBack(t *Track) {
	q.items = append(q.items, t)
}

// PopFront removes and returns the head, or nil if the queue is empty.
func (q *TrackQueue) PopFront() *Track {
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t
}

// Len returns the number of queued tracks.
func (q *TrackQueue) Len() int {
	return len(q.items)
}

// Clear drops every queued track.
func (q *TrackQueue) Clear() {
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = nil
}
