package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	event := map[string]any{"type": "order_created", "orderID": 7}

	msg, err := newMessage(TopicOrder, "7", event)
	require.NoError(t, err)
	assert.Equal(t, TopicOrder, msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "order_created", decoded["type"])
	assert.EqualValues(t, 7, decoded["orderID"])
	assert.NotEmpty(t, decoded["eventID"])
	assert.NotEmpty(t, decoded["occurredAt"])

	_, mutated := event["eventID"]
	assert.False(t, mutated)
}

func TestNewMessage_KeepsExplicitID(t *testing.T) {
	msg, err := newMessage(TopicCart, "", map[string]any{"eventID": "fixed"})
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"eventID":"fixed"`)
}

func TestNewMessage_UnencodableEvent(t *testing.T) {
	_, err := newMessage(TopicCart, "", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)

	p, err := NewProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.PublishEvent(context.Background(), TopicCart, "k", map[string]any{"type": "cart_cleared"}))
	require.NoError(t, p.Close())
}
