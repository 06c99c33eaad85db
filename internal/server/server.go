// Package server exposes hand evaluation over a WebSocket connection.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerhands/internal/tally"
	"github.com/lox/pokerhands/poker"
)

const shutdownTimeout = 5 * time.Second

// Server answers compare and classify requests over WebSocket
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	logger      *log.Logger
	clock       quartz.Clock
	readTimeout time.Duration
	active      atomic.Int64
	evaluated   atomic.Int64
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for timestamps and read deadlines
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithReadTimeout closes connections idle for longer than d (0 disables)
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = d
	}
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes served by s
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down", "evaluated", s.evaluated.Load())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// handleWebSocket upgrades the request and answers messages until the
// client goes away
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Debug("Client connected", "remote", r.RemoteAddr, "total", s.active.Add(1))
	defer func() {
		s.logger.Debug("Client disconnected", "remote", r.RemoteAddr, "total", s.active.Add(-1))
	}()

	for {
		if s.readTimeout > 0 {
			_ = conn.SetReadDeadline(s.clock.Now().Add(s.readTimeout))
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Read failed", "remote", r.RemoteAddr, "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := conn.WriteJSON(s.errorMessage("", ErrorCodeInvalidMessage, err.Error())); err != nil {
				return
			}
			continue
		}

		reply := s.handleMessage(&msg)
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("Write failed", "remote", r.RemoteAddr, "error", err)
			return
		}
	}
}

// handleMessage evaluates one request and builds the reply
func (s *Server) handleMessage(msg *Message) *Message {
	switch msg.Type {
	case MessageTypeCompare:
		var data CompareData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return s.errorMessage(msg.RequestID, ErrorCodeInvalidMessage, err.Error())
		}
		p1, err := poker.ParseHand(data.Player1)
		if err != nil {
			return s.errorMessage(msg.RequestID, ErrorCodeInvalidHand, "player1: "+err.Error())
		}
		p2, err := poker.ParseHand(data.Player2)
		if err != nil {
			return s.errorMessage(msg.RequestID, ErrorCodeInvalidHand, "player2: "+err.Error())
		}

		s.evaluated.Add(1)
		round := tally.Round{Player1: p1, Player2: p2}
		return s.reply(msg.RequestID, MessageTypeCompareResult, CompareResultData{
			Winner:      round.Outcome().String(),
			Player1:     newHandResult(p1),
			Player2:     newHandResult(p2),
			Explanation: poker.Explain(p1, p2),
		})

	case MessageTypeClassify:
		var data ClassifyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return s.errorMessage(msg.RequestID, ErrorCodeInvalidMessage, err.Error())
		}
		hand, err := poker.ParseHand(data.Hand)
		if err != nil {
			return s.errorMessage(msg.RequestID, ErrorCodeInvalidHand, err.Error())
		}

		s.evaluated.Add(1)
		return s.reply(msg.RequestID, MessageTypeClassifyResult, newHandResult(hand))

	default:
		return s.errorMessage(msg.RequestID, ErrorCodeUnknownType, fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *Server) reply(requestID string, messageType MessageType, data any) *Message {
	msg, err := NewMessage(messageType, data, s.clock.Now())
	if err != nil {
		// Reply payloads are plain structs; failing to encode them is a bug
		panic(fmt.Sprintf("server: encode %s: %v", messageType, err))
	}
	msg.RequestID = requestID
	return msg
}

func (s *Server) errorMessage(requestID, code, message string) *Message {
	s.logger.Debug("Rejecting request", "requestId", requestID, "code", code, "error", message)
	return s.reply(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}
