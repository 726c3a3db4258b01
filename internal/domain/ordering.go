package domain

import "container/heap"

// AppointmentHeap is a min-heap of appointments keyed on the canonical
// date-time string, soonest first. Equal keys keep their insertion
// order within a single fill; across refills the relative order of
// duplicates is unspecified. Not safe for concurrent use.
type AppointmentHeap struct {
	items apptItems
	seq   uint64

	lastSeq    uint64
	lastPopped bool
}

type apptItem struct {
	appt Appointment
	seq  uint64
}

type apptItems []apptItem

func (q apptItems) Len() int { return len(q) }

func (q apptItems) Less(i, j int) bool {
	di, dj := q[i].appt.DateTime(), q[j].appt.DateTime()
	if di != dj {
		return di < dj
	}
	return q[i].seq < q[j].seq
}

func (q apptItems) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *apptItems) Push(x any) { *q = append(*q, x.(apptItem)) }

func (q *apptItems) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

func NewAppointmentHeap() *AppointmentHeap {
	return &AppointmentHeap{}
}

func (h *AppointmentHeap) Len() int { return h.items.Len() }

func (h *AppointmentHeap) Push(a Appointment) {
	h.seq++
	heap.Push(&h.items, apptItem{appt: a, seq: h.seq})
}

// Peek returns the soonest appointment without removing it.
func (h *AppointmentHeap) Peek() (Appointment, bool) {
	if len(h.items) == 0 {
		return Appointment{}, false
	}
	return h.items[0].appt, true
}

// Pop removes and returns the soonest appointment.
func (h *AppointmentHeap) Pop() (Appointment, bool) {
	if len(h.items) == 0 {
		return Appointment{}, false
	}
	it := heap.Pop(&h.items).(apptItem)
	h.lastSeq = it.seq
	h.lastPopped = true
	return it.appt, true
}

// Reinsert undoes the most recent Pop: the appointment re-enters the
// heap at its original position among equal keys, so a failed
// downstream write leaves the visible head unchanged.
func (h *AppointmentHeap) Reinsert(a Appointment) {
	if !h.lastPopped {
		h.Push(a)
		return
	}
	h.lastPopped = false
	heap.Push(&h.items, apptItem{appt: a, seq: h.lastSeq})
}

// Clear discards all contents; sequence numbering restarts.
func (h *AppointmentHeap) Clear() {
	h.items = h.items[:0]
	h.seq = 0
	h.lastPopped = false
}
