package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
	quizService "github.com/zhouzirui/pawmatch/backend/internal/service/quiz"
	"github.com/zhouzirui/pawmatch/backend/pkg/utils"
)

var validate = validator.New()

// Handler 问卷服务的HTTP处理器
type Handler struct {
	quizSvc *quizService.Service
	logger  *zap.Logger
}

// New 创建问卷处理器
func New(quizSvc *quizService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		quizSvc: quizSvc,
		logger:  logger,
	}
}

// RegisterRoutes 注册问卷相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/quiz", func(q chi.Router) {
		q.Get("/questions", h.handleListQuestions)
		q.Post("/sessions", h.handleCreateSession)
		q.Get("/sessions/{sessionID}", h.handleGetSession)
		q.Delete("/sessions/{sessionID}", h.handleCloseSession)
		q.Post("/sessions/{sessionID}/answers", h.handleAnswer)
		q.Put("/sessions/{sessionID}/answers/{axis}", h.handleRevise)
		q.Post("/sessions/{sessionID}/retry", h.handleRetry)
		q.Post("/sessions/{sessionID}/restart", h.handleRestart)
		q.Get("/sessions/{sessionID}/events", h.handleEvents)
		q.Get("/ws/{sessionID}", h.handleWebSocket)
	})
}

type createSessionRequest struct {
	QuestionSet string `json:"questionSet" validate:"omitempty,oneof=classic cozy"`
}

type answerRequest struct {
	Value string `json:"value" validate:"required,max=64"`
	Label string `json:"label" validate:"omitempty,max=200"`
}

type reviseRequest struct {
	Value string `json:"value" validate:"required,max=64"`
}

// handleListQuestions 返回题库
func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	set, err := quiz.QuestionSetByName(r.URL.Query().Get("set"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, set)
}

// handleCreateSession 创建问卷会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload createSessionRequest
	if !decodeAndValidate(w, r, &payload, true) {
		return
	}

	snap, err := h.quizSvc.CreateSession(r.Context(), payload.QuestionSet)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, snap)
}

// handleGetSession 查询会话快照
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quizSvc.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleCloseSession 关闭会话
func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.quizSvc.CloseSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnswer 回答当前问题
func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload answerRequest
	if !decodeAndValidate(w, r, &payload, false) {
		return
	}

	snap, err := h.quizSvc.Answer(r.Context(), chi.URLParam(r, "sessionID"), payload.Value, payload.Label)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleRevise 修改已回答的问题并重新匹配
func (h *Handler) handleRevise(w http.ResponseWriter, r *http.Request) {
	axis, ok := breed.ParseAxis(chi.URLParam(r, "axis"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "unknown axis: "+chi.URLParam(r, "axis"))
		return
	}

	var payload reviseRequest
	if !decodeAndValidate(w, r, &payload, false) {
		return
	}

	snap, err := h.quizSvc.Revise(r.Context(), chi.URLParam(r, "sessionID"), axis, payload.Value)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleRetry 在无匹配或目录未就绪后重新匹配
func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quizSvc.Retry(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleRestart 回到第一题
func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quizSvc.Restart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			utils.RespondError(w, http.StatusBadRequest, "invalid request body")
			return false
		}
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// statusFor 将服务层错误映射为HTTP状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, quizService.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, quizService.ErrInvalidOption),
		errors.Is(err, quizService.ErrNotAnswered),
		errors.Is(err, quiz.ErrInvalidValue),
		errors.Is(err, quiz.ErrUnknownQuestionSet):
		return http.StatusBadRequest
	case errors.Is(err, quizService.ErrAnswerPending),
		errors.Is(err, quizService.ErrNotAwaitingAnswer),
		errors.Is(err, quizService.ErrNotAwaitingRetry):
		return http.StatusConflict
	case errors.Is(err, quizService.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("quiz request failed", zap.Error(err))
	}
	utils.RespondError(w, status, err.Error())
}
