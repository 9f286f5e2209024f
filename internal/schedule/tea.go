package schedule

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg is delivered to the update loop when a timer expires. Pass it to
// TeaScheduler.Fire.
type FireMsg struct {
	ID uint64
}

// TeaScheduler schedules callbacks as tea.Tick commands. It must only be used
// from the update loop: Schedule queues a command that the model returns via
// Cmd, and Fire runs the callback when the FireMsg comes back.
type TeaScheduler struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

// NewTeaScheduler creates an empty scheduler.
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{pending: make(map[uint64]func())}
}

type teaHandle struct {
	s  *TeaScheduler
	id uint64
}

func (h teaHandle) Cancel() { delete(h.s.pending, h.id) }

// Schedule implements Scheduler.
func (s *TeaScheduler) Schedule(d time.Duration, fn func()) Handle {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{ID: id}
	}))
	return teaHandle{s: s, id: id}
}

// Cmd drains the commands queued since the last call. It returns nil when
// nothing was scheduled.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Fire runs the callback for msg unless it was cancelled. It reports
// whether a callback ran.
func (s *TeaScheduler) Fire(msg FireMsg) bool {
	fn, ok := s.pending[msg.ID]
	if !ok {
		return false
	}
	delete(s.pending, msg.ID)
	fn()
	return true
}

// Pending returns the number of armed callbacks.
func (s *TeaScheduler) Pending() int { return len(s.pending) }
