package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pokerhands/poker"
)

// MessageType identifies the payload carried in Message.Data
type MessageType string

const (
	// Client → Server
	MessageTypeCompare  MessageType = "compare"
	MessageTypeClassify MessageType = "classify"

	// Server → Client
	MessageTypeCompareResult  MessageType = "compare_result"
	MessageTypeClassifyResult MessageType = "classify_result"
	MessageTypeError          MessageType = "error"
)

// Error codes sent in ErrorData
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInvalidHand    = "invalid_hand"
	ErrorCodeUnknownType    = "unknown_type"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with the given time
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type CompareData struct {
	Player1 []string `json:"player1"`
	Player2 []string `json:"player2"`
}

type ClassifyData struct {
	Hand []string `json:"hand"`
}

// Server → Client Messages

type HandResult struct {
	Cards    []string `json:"cards"` // tie-break order
	Category string   `json:"category"`
	Strength int      `json:"strength"`
}

type CompareResultData struct {
	Winner      string     `json:"winner"` // player1, player2 or tie
	Player1     HandResult `json:"player1"`
	Player2     HandResult `json:"player2"`
	Explanation string     `json:"explanation"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newHandResult(h poker.Hand) HandResult {
	cards := h.Cards()
	symbols := make([]string, len(cards))
	for i, c := range cards {
		symbols[i] = c.String()
	}
	return HandResult{
		Cards:    symbols,
		Category: h.Category().String(),
		Strength: h.Strength(),
	}
}
