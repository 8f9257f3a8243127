package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"go.uber.org/zap"
)

type InventoryListener struct {
	consumer event.Reader
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer event.Reader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Inventory Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var ev event.Event
	if err := json.Unmarshal(value, &ev); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if ev.EventType != event.TypeStockAdjusted {
		return
	}

	var p event.StockAdjustedPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		l.logger.Error("Failed to unmarshal stock payload", zap.String("event_id", ev.EventID), zap.Error(err))
		return
	}

	reason := p.Reason
	if reason == "" {
		reason = "external adjustment"
	}
	if _, err := l.uc.AdjustStock(ctx, p.ItemID, p.Delta, reason); err != nil {
		l.logger.Error("Failed to apply stock adjustment",
			zap.String("event_id", ev.EventID),
			zap.String("item_id", p.ItemID),
			zap.Int("delta", p.Delta),
			zap.Error(err),
		)
	}
}
