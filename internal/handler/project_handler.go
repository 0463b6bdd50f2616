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

// ProjectServiceInterface はプロジェクトハンドラーが必要とするサービスインターフェース。
type ProjectServiceInterface interface {
	CreateProject(ctx context.Context, identity *model.Identity, name string, description *string) (*model.Project, error)
	GetProject(ctx context.Context, identity *model.Identity, projectID int64) (*model.Project, error)
	ListProjects(ctx context.Context, identity *model.Identity) ([]*model.Project, error)
	UpdateProject(ctx context.Context, identity *model.Identity, projectID int64, name string, description *string) error
	DeleteProject(ctx context.Context, identity *model.Identity, projectID int64) error
	CreateTask(ctx context.Context, identity *model.Identity, projectID int64, title string, description *string) (*model.Task, error)
	ListTasks(ctx context.Context, identity *model.Identity, projectID int64) ([]*model.Task, error)
}

// ProjectHandler はプロジェクト管理のHTTPハンドラー。
type ProjectHandler struct {
	service ProjectServiceInterface
}

// NewProjectHandler はProjectHandlerを生成する。
func NewProjectHandler(service ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// projectRequest はプロジェクト作成・更新リクエストのボディ。
type projectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// taskCreateRequest はタスク作成リクエストのボディ。
type taskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// projectResponse はプロジェクト情報のAPIレスポンス。
// 永続化モデルをそのまま返さず、owner_idやタイムスタンプなどの
// 内部フィールドは含めない。
type projectResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// taskResponse はタスク情報のAPIレスポンス。
// projectResponseと同様、タイムスタンプなどの内部フィールドは含めない。
type taskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	ProjectID   int64   `json:"project_id"`
}

// CreateProject はプロジェクト作成を処理する。
// POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	project, err := h.service.CreateProject(r.Context(), identity, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

// ListProjects は認証済みユーザーの所有プロジェクト一覧を返す。
// GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	projects, err := h.service.ListProjects(r.Context(), identity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]projectResponse, len(projects))
	for i, p := range projects {
		results[i] = toProjectResponse(p)
	}
	writeJSON(w, http.StatusOK, results)
}

// GetProject はプロジェクト詳細を取得する。
// GET /projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	projectID, ok := parseProjectID(w, r)
	if !ok {
		return
	}

	project, err := h.service.GetProject(r.Context(), identity, projectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

// UpdateProject はプロジェクトの名前と説明を更新する。
// PUT /projects/{projectID}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	projectID, ok := parseProjectID(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.UpdateProject(r.Context(), identity, projectID, req.Name, req.Description); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProject はプロジェクトを削除する。配下のタスクも削除される。
// DELETE /projects/{projectID}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	projectID, ok := parseProjectID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProject(r.Context(), identity, projectID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTask はプロジェクト配下のタスク作成を処理する。
// POST /projects/{projectID}/tasks
func (h *ProjectHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	projectID, ok := parseProjectID(w, r)
	if !ok {
		return
	}

	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	task, err := h.service.CreateTask(r.Context(), identity, projectID, req.Title, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// ListTasks はプロジェクト配下のタスク一覧を返す。
// GET /projects/{projectID}/tasks
func (h *ProjectHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	projectID, ok := parseProjectID(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), identity, projectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		results[i] = toTaskResponse(t)
	}
	writeJSON(w, http.StatusOK, results)
}

// parseProjectID はパスパラメータからプロジェクトIDを取り出す。
// 数値として解釈できないIDは存在しないプロジェクトと同様に404として扱う。
func parseProjectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil || id <= 0 {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewProjectNotFoundError())
		return 0, false
	}
	return id, true
}

// toProjectResponse はmodel.ProjectからAPIレスポンスに変換する。
func toProjectResponse(project *model.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
	}
}

// toTaskResponse はmodel.TaskからAPIレスポンスに変換する。
func toTaskResponse(task *model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		ProjectID:   task.ProjectID,
	}
}
