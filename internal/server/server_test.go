package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func dialTestServer(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msgType MessageType, requestID string, data any) *Message {
	t.Helper()
	msg, err := NewMessage(msgType, data, time.Now())
	require.NoError(t, err)
	msg.RequestID = requestID
	require.NoError(t, conn.WriteJSON(msg))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	return &reply
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer("", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestCompare(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	conn := dialTestServer(t, NewServer("", testLogger(), WithClock(clock)))

	reply := roundTrip(t, conn, MessageTypeCompare, "req-1", CompareData{
		Player1: []string{"5H", "5C", "6S", "7S", "KD"},
		Player2: []string{"2C", "3S", "8S", "8D", "TD"},
	})
	require.Equal(t, MessageTypeCompareResult, reply.Type)
	assert.Equal(t, "req-1", reply.RequestID)
	assert.True(t, reply.Timestamp.Equal(clock.Now()), "timestamp comes from the injected clock")

	var data CompareResultData
	require.NoError(t, json.Unmarshal(reply.Data, &data))
	assert.Equal(t, "player2", data.Winner)
	assert.Equal(t, "PAIR of 8 beats PAIR of 5", data.Explanation)
	assert.Equal(t, HandResult{
		Cards:    []string{"5H", "5C", "KD", "7S", "6S"},
		Category: "PAIR",
		Strength: 2,
	}, data.Player1)
	assert.Equal(t, "PAIR", data.Player2.Category)
}

func TestCompareSequentialRequests(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t, NewServer("", testLogger()))

	tests := []struct {
		p1, p2 []string
		winner string
	}{
		{[]string{"2D", "9C", "AS", "AH", "AC"}, []string{"3D", "6D", "7D", "TD", "QD"}, "player2"},
		{[]string{"2H", "2D", "4C", "4D", "4S"}, []string{"3C", "3D", "3S", "9S", "9D"}, "player1"},
		{[]string{"5H", "5C", "6D", "7S", "8C"}, []string{"5D", "5S", "6C", "7H", "8D"}, "tie"},
	}
	for _, tt := range tests {
		reply := roundTrip(t, conn, MessageTypeCompare, "", CompareData{Player1: tt.p1, Player2: tt.p2})
		require.Equal(t, MessageTypeCompareResult, reply.Type)

		var data CompareResultData
		require.NoError(t, json.Unmarshal(reply.Data, &data))
		assert.Equal(t, tt.winner, data.Winner)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t, NewServer("", testLogger()))

	reply := roundTrip(t, conn, MessageTypeClassify, "c1", ClassifyData{Hand: []string{"AH", "2D", "3C", "4S", "5H"}})
	require.Equal(t, MessageTypeClassifyResult, reply.Type)

	var data HandResult
	require.NoError(t, json.Unmarshal(reply.Data, &data))
	assert.Equal(t, HandResult{
		Cards:    []string{"5H", "4S", "3C", "2D", "AH"},
		Category: "STRAIGHT",
		Strength: 5,
	}, data)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t, NewServer("", testLogger()))

	tests := []struct {
		name     string
		msgType  MessageType
		data     any
		wantCode string
		wantText string
	}{
		{
			name:     "bad card",
			msgType:  MessageTypeClassify,
			data:     ClassifyData{Hand: []string{"1H", "2D", "3C", "4S", "5H"}},
			wantCode: ErrorCodeInvalidHand,
			wantText: "invalid card format",
		},
		{
			name:     "short hand",
			msgType:  MessageTypeCompare,
			data:     CompareData{Player1: []string{"2H", "3H", "4H", "5H", "6H"}, Player2: []string{"2C"}},
			wantCode: ErrorCodeInvalidHand,
			wantText: "player2: invalid hand size",
		},
		{
			name:     "unknown type",
			msgType:  MessageType("shuffle"),
			data:     struct{}{},
			wantCode: ErrorCodeUnknownType,
			wantText: "shuffle",
		},
		{
			name:     "wrong payload shape",
			msgType:  MessageTypeClassify,
			data:     "AH 2D 3C 4S 5H",
			wantCode: ErrorCodeInvalidMessage,
		},
	}

	// Requests share one connection: errors must not close it
	for _, tt := range tests {
		reply := roundTrip(t, conn, tt.msgType, tt.name, tt.data)
		require.Equal(t, MessageTypeError, reply.Type, tt.name)
		assert.Equal(t, tt.name, reply.RequestID)

		var data ErrorData
		require.NoError(t, json.Unmarshal(reply.Data, &data))
		assert.Equal(t, tt.wantCode, data.Code, tt.name)
		assert.Contains(t, data.Message, tt.wantText, tt.name)
	}
}

func TestMalformedJSON(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t, NewServer("", testLogger()))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, MessageTypeError, reply.Type)

	// Connection is still usable
	ok := roundTrip(t, conn, MessageTypeClassify, "", ClassifyData{Hand: []string{"TH", "JH", "QH", "KH", "AH"}})
	assert.Equal(t, MessageTypeClassifyResult, ok.Type)
}

func TestReadTimeoutClosesIdleConnection(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t, NewServer("", testLogger(), WithReadTimeout(50*time.Millisecond)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseAbnormalClosure),
		"expected the server to drop the connection, got %v", err)
}

func TestStartStopsOnCancel(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := NewServer(addr, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
