package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

func TestHubFanOut(t *testing.T) {
	h := newHub(zap.NewNop())
	a, cancelA := h.subscribe()
	b, cancelB := h.subscribe()
	defer cancelB()

	h.publish(quiz.Event{Kind: quiz.EventReady})
	assert.Equal(t, quiz.EventReady, (<-a).Kind)
	assert.Equal(t, quiz.EventReady, (<-b).Kind)

	cancelA()
	cancelA()
	_, ok := <-a
	assert.False(t, ok)

	h.publish(quiz.Event{Kind: quiz.EventFinal})
	assert.Equal(t, quiz.EventFinal, (<-b).Kind)
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := newHub(zap.NewNop())
	ch, cancel := h.subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.publish(quiz.Event{Kind: quiz.EventEntryAdded})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHubKeepsOutcomeEventsForSlowSubscriber(t *testing.T) {
	h := newHub(zap.NewNop())
	ch, cancel := h.subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer; i++ {
		h.publish(quiz.Event{Kind: quiz.EventEntryAdded})
	}
	h.publish(quiz.Event{Kind: quiz.EventNoMatch})
	h.publish(quiz.Event{Kind: quiz.EventFinal})
	h.publish(quiz.Event{Kind: quiz.EventReady})
	h.publish(quiz.Event{Kind: quiz.EventEntryAdded})

	require.Len(t, ch, subscriberBuffer)
	var got []quiz.EventKind
	for len(ch) > 0 {
		got = append(got, (<-ch).Kind)
	}
	assert.Equal(t, []quiz.EventKind{quiz.EventNoMatch, quiz.EventFinal, quiz.EventReady}, got[len(got)-3:])
	for _, kind := range got[:len(got)-3] {
		assert.Equal(t, quiz.EventEntryAdded, kind)
	}
}

func TestHubClosesSubscribersOnClosedEvent(t *testing.T) {
	h := newHub(zap.NewNop())
	ch, cancel := h.subscribe()

	h.publish(quiz.Event{Kind: quiz.EventClosed})
	e, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, quiz.EventClosed, e.Kind)
	_, ok = <-ch
	assert.False(t, ok)
	cancel()

	late, _ := h.subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
