package amqp

import (
	"encoding/json"
	"time"
)

// TransferRecordedMessage announces a newly recorded transfer. It
// carries only the ledger id and code; the worker loads the full entry
// from storage before exporting it.
type TransferRecordedMessage struct {
	TransactionID int64     `json:"transactionId"`
	Code          string    `json:"code"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewTransferRecordedMessage(id int64, code string) *TransferRecordedMessage {
	return &TransferRecordedMessage{
		TransactionID: id,
		Code:          code,
		Timestamp:     time.Now(),
	}
}

func (m *TransferRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransferRecordedMessageFromJSON(data []byte) (*TransferRecordedMessage, error) {
	var msg TransferRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
