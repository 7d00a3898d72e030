package quiz

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ReviseMessage 修改答案消息
type ReviseMessage struct {
	Axis  string `json:"axis" validate:"required"`
	Value string `json:"value" validate:"required,max=64"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// wsConn 串行化对同一连接的写操作
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(msg outgoingMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg.Timestamp = time.Now().Unix()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

// handleWebSocket 处理WebSocket连接：入站为作答指令，出站为会话事件
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 先订阅再取快照，避免升级期间的事件丢失
	events, unsubscribe, err := h.quizSvc.Subscribe(ctx, sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	defer unsubscribe()

	snap, err := h.quizSvc.Snapshot(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer raw.Close()
	conn := &wsConn{conn: raw}

	logger := h.logger.With(zap.String("sessionId", sessionID))
	logger.Info("websocket connected")

	_ = raw.SetReadDeadline(time.Now().Add(readTimeout))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(readTimeout))
	})

	if err := conn.send(outgoingMessage{Type: "snapshot", SessionID: sessionID, Data: snap}); err != nil {
		return
	}

	go h.pingLoop(ctx, raw)
	go h.forwardEvents(ctx, conn, events, raw)

	for {
		var msg inboundMessage
		if err := raw.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		_ = raw.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, conn, sessionID, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, conn *wsConn, sessionID string, msg *inboundMessage) {
	var (
		snap quiz.Snapshot
		err  error
	)

	switch msg.Type {
	case "answer":
		var payload answerRequest
		if !h.decodeMessage(conn, msg.Data, &payload) {
			return
		}
		snap, err = h.quizSvc.Answer(ctx, sessionID, payload.Value, payload.Label)
	case "revise":
		var payload ReviseMessage
		if !h.decodeMessage(conn, msg.Data, &payload) {
			return
		}
		axis, ok := breed.ParseAxis(payload.Axis)
		if !ok {
			h.sendErrorMessage(conn, "unknown axis: "+payload.Axis)
			return
		}
		snap, err = h.quizSvc.Revise(ctx, sessionID, axis, payload.Value)
	case "retry":
		snap, err = h.quizSvc.Retry(ctx, sessionID)
	case "restart":
		snap, err = h.quizSvc.Restart(ctx, sessionID)
	case "snapshot":
		snap, err = h.quizSvc.Snapshot(ctx, sessionID)
	default:
		h.sendErrorMessage(conn, "unsupported message type: "+msg.Type)
		return
	}

	if err != nil {
		h.sendError(conn, err)
		return
	}
	_ = conn.send(outgoingMessage{Type: "snapshot", SessionID: sessionID, Data: snap})
}

func (h *Handler) decodeMessage(conn *wsConn, raw json.RawMessage, dst interface{}) bool {
	if len(raw) == 0 {
		h.sendErrorMessage(conn, "missing message data")
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		h.sendErrorMessage(conn, "invalid message data")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		h.sendErrorMessage(conn, err.Error())
		return false
	}
	return true
}

// forwardEvents 将会话事件写入连接；会话关闭时发送关闭帧
func (h *Handler) forwardEvents(ctx context.Context, conn *wsConn, events <-chan quiz.Event, raw *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				_ = raw.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(writeTimeout))
				return
			}
			if err := conn.send(outgoingMessage{Type: "event", SessionID: event.SessionID, Data: event}); err != nil {
				return
			}
		}
	}
}

func (h *Handler) sendError(conn *wsConn, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		h.logger.Error("websocket request failed", zap.Error(err))
	}
	_ = conn.send(outgoingMessage{Type: "error", Data: map[string]any{
		"status":  statusFor(err),
		"message": err.Error(),
	}})
}

func (h *Handler) sendErrorMessage(conn *wsConn, message string) {
	_ = conn.send(outgoingMessage{Type: "error", Data: map[string]any{
		"status":  http.StatusBadRequest,
		"message": message,
	}})
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
