package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	other, cleanupOther := hub.Subscribe("other")
	defer cleanupOther()

	hub.Publish(TopicAttendance, Event{Event: "attendance.clock_in", Data: "u1"})

	select {
	case ev := <-ch:
		assert.Equal(t, TopicAttendance, ev.Topic)
		assert.Equal(t, "attendance.clock_in", ev.Event)
		assert.False(t, ev.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case <-other:
		t.Fatal("event leaked to another topic")
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe(TopicAttendance)
	_, cleanup2 := hub.Subscribe(TopicAttendance)
	require.Equal(t, 2, hub.SubscriberCount(TopicAttendance))

	cleanup()
	cleanup()
	assert.Equal(t, 1, hub.SubscriberCount(TopicAttendance))

	cleanup2()
	assert.Equal(t, 0, hub.SubscriberCount(TopicAttendance))
}

func TestHub_PublishDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish(TopicAttendance, Event{Event: "attendance.clock_in"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
}
