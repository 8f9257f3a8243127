package event

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EncodesPayload(t *testing.T) {
	ev, err := New(TypeSaleRecorded, SaleRecordedPayload{SaleID: "s1", Type: "repair", Amount: 50, PaymentMethod: "cash"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, TypeSaleRecorded, ev.EventType)
	assert.False(t, ev.Timestamp.IsZero())

	var p SaleRecordedPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Equal(t, "s1", p.SaleID)
	assert.Nil(t, p.JobID)
}

func TestNew_RejectsUnencodablePayload(t *testing.T) {
	_, err := New(TypeJobCompleted, make(chan int))
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	ev, err := New(TypeJobCompleted, JobCompletedPayload{JobID: "j1"})
	require.NoError(t, err)

	assert.NoError(t, p.Publish(context.Background(), "j1", ev))
	assert.NoError(t, p.Close())
}
