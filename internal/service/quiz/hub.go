package quiz

import (
	"sync"

	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

const subscriberBuffer = 64

// hub fans machine events out to subscribers. Slow subscribers lose
// transcript events rather than stall the machine; outcome events always
// arrive.
type hub struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan quiz.Event
	closed bool
	logger *zap.Logger
}

func newHub(logger *zap.Logger) *hub {
	return &hub{subs: make(map[int]chan quiz.Event), logger: logger}
}

func (h *hub) subscribe() (<-chan quiz.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan quiz.Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.next
	h.next++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

func (h *hub) publish(event quiz.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for id, ch := range h.subs {
		h.deliver(id, ch, event)
	}

	if event.Kind == quiz.EventClosed {
		h.closed = true
		for id, ch := range h.subs {
			delete(h.subs, id)
			close(ch)
		}
	}
}

// mustDeliver reports whether a subscriber has to see the event even when it
// is lagging.
func mustDeliver(kind quiz.EventKind) bool {
	switch kind {
	case quiz.EventFinal, quiz.EventReady, quiz.EventNoMatch, quiz.EventClosed:
		return true
	}
	return false
}

// deliver never blocks. When the buffer is full an ordinary event is dropped;
// an outcome event evicts the oldest ordinary event still buffered. Callers
// hold h.mu, so the hub is the only sender on ch.
func (h *hub) deliver(id int, ch chan quiz.Event, event quiz.Event) {
	select {
	case ch <- event:
		return
	default:
	}

	if !mustDeliver(event.Kind) {
		h.logger.Warn("dropping event for slow subscriber",
			zap.Int("subscriber", id), zap.String("kind", string(event.Kind)))
		return
	}

	pending := make([]quiz.Event, 0, cap(ch))
drain:
	for {
		select {
		case e := <-ch:
			pending = append(pending, e)
		default:
			break drain
		}
	}

	if len(pending) == cap(ch) {
		victim := 0
		for i, e := range pending {
			if !mustDeliver(e.Kind) {
				victim = i
				break
			}
		}
		h.logger.Warn("evicting buffered event for slow subscriber",
			zap.Int("subscriber", id), zap.String("kind", string(pending[victim].Kind)))
		pending = append(pending[:victim], pending[victim+1:]...)
	}

	for _, e := range append(pending, event) {
		select {
		case ch <- e:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				zap.Int("subscriber", id), zap.String("kind", string(e.Kind)))
		}
	}
}
