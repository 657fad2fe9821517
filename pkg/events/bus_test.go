package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFansOutToAllSubscribers(t *testing.T) {
	bus := NewBus[string]()
	var a, b []string
	bus.Subscribe(func(v string) { a = append(a, v) })
	bus.Subscribe(func(v string) { b = append(b, v) })

	bus.Publish("one")
	bus.Publish("two")

	assert.Equal(t, []string{"one", "two"}, a)
	assert.Equal(t, []string{"one", "two"}, b)
}

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus[int]()
	var order []int
	unsubs := make([]func(), 0, 8)
	for i := 0; i < 8; i++ {
		i := i
		unsubs = append(unsubs, bus.Subscribe(func(int) { order = append(order, i) }))
	}
	unsubs[3]()
	bus.Subscribe(func(int) { order = append(order, 8) })

	bus.Publish(0)
	assert.Equal(t, []int{0, 1, 2, 4, 5, 6, 7, 8}, order)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	unsubscribe := bus.Subscribe(func(int) { calls++ })
	require.Equal(t, 1, bus.Len())

	bus.Publish(1)
	unsubscribe()
	unsubscribe()
	bus.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBusNilSubscriberIgnored(t *testing.T) {
	bus := NewBus[int]()
	unsubscribe := bus.Subscribe(nil)
	unsubscribe()
	assert.Equal(t, 0, bus.Len())
	bus.Publish(1)
}

func TestBusClose(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	bus.Subscribe(func(int) { calls++ })
	bus.Close()
	bus.Publish(1)
	bus.Subscribe(func(int) { calls++ })
	bus.Publish(2)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBusSubscribeDuringPublishSeesNextEvent(t *testing.T) {
	bus := NewBus[int]()
	var late []int
	bus.Subscribe(func(v int) {
		if v == 1 {
			bus.Subscribe(func(v int) { late = append(late, v) })
		}
	})
	bus.Publish(1)
	bus.Publish(2)
	assert.Equal(t, []int{2}, late)
}
