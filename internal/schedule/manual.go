package schedule

import (
	"sort"
	"time"
)

// ManualScheduler is a virtual clock. Callbacks run synchronously inside
// Advance, in deadline order; ties run in scheduling order.
type ManualScheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	at        time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) Handle {
	m.seq++
	t := &manualTask{at: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls
// due. Callbacks scheduled by a running callback also run if they fall due
// before the new time.
func (m *ManualScheduler) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.popDue(end)
		if t == nil {
			break
		}
		m.now = t.at
		t.fn()
	}
	m.now = end
}

// Now returns the virtual time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// Pending returns the number of callbacks that have not run or been
// cancelled.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) popDue(end time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at != m.tasks[j].at {
			return m.tasks[i].at < m.tasks[j].at
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	if m.tasks[0].at > end {
		return nil
	}
	t := m.tasks[0]
	m.tasks = m.tasks[1:]
	return t
}
