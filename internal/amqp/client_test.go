package amqp

import (
	"testing"
	"time"
)

func TestTransferRecordedMessageRoundTrip(t *testing.T) {
	msg := NewTransferRecordedMessage(42, "b7f3")
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := TransferRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.TransactionID != 42 || decoded.Code != "b7f3" {
		t.Fatalf("round trip mangled message: %+v", decoded)
	}
	if !decoded.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp drifted: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestTransferRecordedMessageFromInvalidJSON(t *testing.T) {
	if _, err := TransferRecordedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
