package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/taskboard/internal/middleware"
	"github.com/hitoshi/taskboard/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	UpdateTask(ctx context.Context, identity *model.Identity, taskID int64, title string, description *string) error
	MoveTask(ctx context.Context, identity *model.Identity, taskID int64, status string) error
	DeleteTask(ctx context.Context, identity *model.Identity, taskID int64) error
}

// TaskHandler はタスク単体操作のHTTPハンドラー。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// taskUpdateRequest はタスク更新リクエストのボディ。
type taskUpdateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// taskMoveRequest はタスク移動リクエストのボディ。
type taskMoveRequest struct {
	Status string `json:"status"`
}

// UpdateTask はタスクのタイトルと説明を更新する。
// PUT /tasks/{taskID}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.UpdateTask(r.Context(), identity, taskID, req.Title, req.Description); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MoveTask はタスクのステータスを変更する。
// PATCH /tasks/{taskID}/move
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req taskMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.MoveTask(r.Context(), identity, taskID, req.Status); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask はタスクを削除する。
// 存在しないタスクは404、存在するが所有していないタスクは403を返す。
// DELETE /tasks/{taskID}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), identity, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTaskID はパスパラメータからタスクIDを取り出す。
// 数値として解釈できないIDは存在しないタスクと同様に404として扱う。
func parseTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil || id <= 0 {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewTaskNotFoundError())
		return 0, false
	}
	return id, true
}
