package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"pfas-demo/internal/model"
)

type MessageWriter interface {
	Create(msg *model.Message) error
}

// MessagePersistWorker drains the persist queue into the message store.
// Undecodable deliveries are dropped; store failures are requeued once.
type MessagePersistWorker struct {
	conn      *amqp.Connection
	repo      MessageWriter
	queueName string
	log       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMessagePersistWorker(conn *amqp.Connection, repo MessageWriter, queueName string) *MessagePersistWorker {
	return &MessagePersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		log:       slog.Default().With("component", "persist_worker", "queue", queueName),
	}
}

func (w *MessagePersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}
	if err := ch.Qos(16, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					w.log.Warn("delivery channel closed")
					return
				}
				w.handle(d)
			}
		}
	}()

	w.log.Info("persist worker started")
	return nil
}

func (w *MessagePersistWorker) handle(d amqp.Delivery) {
	msg, err := decodeMessage(d.Body)
	if err != nil {
		w.log.Error("decode message failed", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.repo.Create(msg); err != nil {
		w.log.Error("persist message failed", "session_id", msg.SessionID, "redelivered", d.Redelivered, "error", err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func decodeMessage(body []byte) (*model.Message, error) {
	var msg model.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, err
	}
	if msg.SessionID == "" || msg.UserID == 0 {
		return nil, fmt.Errorf("message missing session or user")
	}
	return &msg, nil
}

func (w *MessagePersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
