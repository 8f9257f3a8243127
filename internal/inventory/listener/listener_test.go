package listener

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adjustCall struct {
	id     string
	delta  int
	reason string
}

type recordingUseCase struct {
	inventory.UseCase
	mu    sync.Mutex
	calls []adjustCall
}

func (r *recordingUseCase) AdjustStock(ctx context.Context, id string, delta int, reason string) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, adjustCall{id, delta, reason})
	return &model.InventoryItem{ID: id}, nil
}

// sliceReader replays messages then blocks until the context ends.
type sliceReader struct {
	msgs []kafka.Message
}

func (s *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(s.msgs) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := s.msgs[0]
	s.msgs = s.msgs[1:]
	return m, nil
}

func (s *sliceReader) Close() error { return nil }

func message(t *testing.T, eventType string, payload any) kafka.Message {
	t.Helper()
	ev, err := event.New(eventType, payload)
	require.NoError(t, err)
	value, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestInventoryListener_AppliesStockAdjustments(t *testing.T) {
	uc := &recordingUseCase{}
	reader := &sliceReader{msgs: []kafka.Message{
		message(t, event.TypeStockAdjusted, event.StockAdjustedPayload{ItemID: "a", Delta: -2, Reason: "return"}),
		message(t, event.TypeSaleRecorded, event.SaleRecordedPayload{SaleID: "s"}),
		{Value: []byte("not json")},
		message(t, event.TypeStockAdjusted, event.StockAdjustedPayload{ItemID: "b", Delta: 5}),
	}}
	l := NewInventoryListener(reader, uc, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		return len(uc.calls) == 2
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []adjustCall{
		{"a", -2, "return"},
		{"b", 5, "external adjustment"},
	}, uc.calls)
}
