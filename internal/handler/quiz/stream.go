package quiz

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// handleEvents 通过SSE推送会话事件，直到会话关闭或客户端断开
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel, err := h.quizSvc.Subscribe(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	defer cancel()

	snap, err := h.quizSvc.Snapshot(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	logger := h.logger.With(zap.String("sessionId", sessionID))
	logger.Debug("sse stream opened")
	defer logger.Debug("sse stream closed")

	if err := utils.SendSSEEvent(w, flusher, "snapshot", snap); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, string(event.Kind), event); err != nil {
				logger.Debug("sse write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
