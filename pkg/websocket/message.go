package websocket

import "time"

const (
	MessageBoardRefresh  = "board.refresh"
	MessageOrderMoved    = "order.moved"
	MessageOrderTransfer = "order.transferred"
)

// Envelope is the wire format for every board stream message.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
