package worker

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"pfas-demo/internal/model"
)

func TestDecodeMessage(t *testing.T) {
	msg, err := decodeMessage([]byte(`{"session_id":"s-1","user_id":3,"role":"user","content":"hi"}`))
	if err != nil {
		t.Fatalf("decodeMessage() error = %v", err)
	}
	if msg.SessionID != "s-1" || msg.UserID != 3 || msg.Content != "hi" {
		t.Fatalf("decoded = %+v", msg)
	}

	if _, err := decodeMessage([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed body")
	}
	if _, err := decodeMessage([]byte(`{"content":"orphan"}`)); err == nil {
		t.Fatal("expected error for message without session")
	}
}

// recordingAck captures how a delivery was settled.
type recordingAck struct {
	acks    int
	nacks   int
	requeue bool
}

func (a *recordingAck) Ack(uint64, bool) error { a.acks++; return nil }

func (a *recordingAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacks++
	a.requeue = requeue
	return nil
}

func (a *recordingAck) Reject(_ uint64, requeue bool) error {
	a.nacks++
	a.requeue = requeue
	return nil
}

type fakeWriter struct {
	err   error
	saved []*model.Message
}

func (f *fakeWriter) Create(msg *model.Message) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, msg)
	return nil
}

func TestHandleSettlesDeliveries(t *testing.T) {
	valid := []byte(`{"session_id":"s-1","user_id":3,"role":"user","content":"hi"}`)
	storeDown := errors.New("db unavailable")

	cases := []struct {
		name        string
		body        []byte
		redelivered bool
		storeErr    error
		wantAcks    int
		wantNacks   int
		wantRequeue bool
		wantSaved   int
	}{
		{name: "persisted", body: valid, wantAcks: 1, wantSaved: 1},
		{name: "undecodable body dropped", body: []byte(`{"broken`), wantNacks: 1},
		{name: "missing session dropped", body: []byte(`{"user_id":3}`), wantNacks: 1},
		{name: "store failure requeued", body: valid, storeErr: storeDown, wantNacks: 1, wantRequeue: true},
		{name: "second store failure dropped", body: valid, redelivered: true, storeErr: storeDown, wantNacks: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writer := &fakeWriter{err: tc.storeErr}
			w := NewMessagePersistWorker(nil, writer, "pfas.chat.persist")
			ack := &recordingAck{}

			w.handle(amqp.Delivery{Acknowledger: ack, Body: tc.body, Redelivered: tc.redelivered})

			if ack.acks != tc.wantAcks || ack.nacks != tc.wantNacks {
				t.Fatalf("acks/nacks = %d/%d, want %d/%d", ack.acks, ack.nacks, tc.wantAcks, tc.wantNacks)
			}
			if ack.requeue != tc.wantRequeue {
				t.Fatalf("requeue = %v, want %v", ack.requeue, tc.wantRequeue)
			}
			if len(writer.saved) != tc.wantSaved {
				t.Fatalf("saved = %d, want %d", len(writer.saved), tc.wantSaved)
			}
		})
	}
}
