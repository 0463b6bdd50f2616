package task

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskboard/internal/authz"
	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/security"
)

// --- フェイク定義 ---

// fakeTaskRepo はタスクと親プロジェクト所有者の対応を保持する。
type fakeTaskRepo struct {
	tasks map[int64]*model.Task
	// project_id -> owner_id
	projectOwners map[int64]int64
	err           error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:         map[int64]*model.Task{},
		projectOwners: map[int64]int64{},
	}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *model.Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks[id], nil
}

func (f *fakeTaskRepo) ExistsByIDAndProjectOwner(ctx context.Context, taskID, ownerID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	t, ok := f.tasks[taskID]
	if !ok {
		return false, nil
	}
	owner, ok := f.projectOwners[t.ProjectID]
	return ok && owner == ownerID, nil
}

func (f *fakeTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := []*model.Task{}
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *model.Task) error {
	if f.err != nil {
		return f.err
	}
	existing, ok := f.tasks[task.ID]
	if !ok {
		return errors.New("no rows affected")
	}
	existing.Title = task.Title
	existing.Description = task.Description
	return nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	if f.err != nil {
		return f.err
	}
	existing, ok := f.tasks[id]
	if !ok {
		return errors.New("no rows affected")
	}
	existing.Status = status
	return nil
}

func (f *fakeTaskRepo) DeleteByID(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.tasks[id]; !ok {
		return errors.New("no rows affected")
	}
	delete(f.tasks, id)
	return nil
}

// fakeProjectStore はGuard生成に必要な最小実装。
type fakeProjectStore struct{}

func (f *fakeProjectStore) ExistsByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error) {
	return false, nil
}

func newTestService() (*Service, *fakeTaskRepo) {
	repo := newFakeTaskRepo()
	guard := authz.NewGuard(&fakeProjectStore{}, repo)
	svc := NewService(repo, guard, security.NewFieldSanitizer())
	return svc, repo
}

func identityOf(userID int64) *model.Identity {
	return &model.Identity{UserID: userID, Email: "user@example.com", Name: "User"}
}

// seedTask はproject 10（所有者owner）配下にタスクを1件登録する。
func seedTask(repo *fakeTaskRepo, taskID, owner int64) {
	repo.projectOwners[10] = owner
	repo.tasks[taskID] = &model.Task{
		ID:        taskID,
		Title:     "既存タスク",
		Status:    model.TaskStatusPending,
		ProjectID: 10,
	}
}

// --- UpdateTask ---

func TestService_UpdateTask(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	if err := svc.UpdateTask(context.Background(), identityOf(1), 100, "改訂タイトル", nil); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if repo.tasks[100].Title != "改訂タイトル" {
		t.Errorf("Title = %q, want 改訂タイトル", repo.tasks[100].Title)
	}
	if repo.tasks[100].Status != model.TaskStatusPending {
		t.Errorf("Status = %q, should not change on update", repo.tasks[100].Status)
	}
}

// タスク不在と所有権なしが同一のTASK_NOT_FOUNDになることを検証
func TestService_UpdateTask_NotFoundAndNotOwnedIndistinguishable(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	tests := []struct {
		name   string
		userID int64
		taskID int64
	}{
		{"missing task", 1, 999},
		{"other user's task", 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateTask(context.Background(), identityOf(tt.userID), tt.taskID, "改訂", nil)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != "TASK_NOT_FOUND" {
				t.Errorf("Code = %q, want TASK_NOT_FOUND", apiErr.Code)
			}
		})
	}
}

func TestService_UpdateTask_Validation(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	err := svc.UpdateTask(context.Background(), identityOf(1), 100, "", nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
	if repo.tasks[100].Title != "既存タスク" {
		t.Error("task should not change on validation failure")
	}
}

// --- MoveTask ---

func TestService_MoveTask(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	tests := []struct {
		name   string
		status string
	}{
		{"known status", "En Progreso"},
		{"known status done", "Terminado"},
		{"unknown status is persisted as-is", "Bloqueado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.MoveTask(context.Background(), identityOf(1), 100, tt.status); err != nil {
				t.Fatalf("MoveTask() error = %v", err)
			}
			if got := repo.tasks[100].Status; string(got) != tt.status {
				t.Errorf("Status = %q, want %q", got, tt.status)
			}
		})
	}
}

func TestService_MoveTask_EmptyStatus(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	err := svc.MoveTask(context.Background(), identityOf(1), 100, "")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestService_MoveTask_NotOwned(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	err := svc.MoveTask(context.Background(), identityOf(2), 100, "Terminado")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "TASK_NOT_FOUND" {
		t.Fatalf("expected TASK_NOT_FOUND, got %v", err)
	}
	if repo.tasks[100].Status != model.TaskStatusPending {
		t.Error("status should not change")
	}
}

// --- DeleteTask ---

func TestService_DeleteTask(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	if err := svc.DeleteTask(context.Background(), identityOf(1), 100); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, ok := repo.tasks[100]; ok {
		t.Error("task should be deleted")
	}
}

// 削除だけは不在（404）と所有権なし（403）を区別して報告する
func TestService_DeleteTask_DistinguishesMissingFromDenied(t *testing.T) {
	svc, repo := newTestService()
	seedTask(repo, 100, 1)

	tests := []struct {
		name     string
		userID   int64
		taskID   int64
		wantCode string
	}{
		{"missing task", 1, 999, "TASK_NOT_FOUND"},
		{"existing but not owned", 2, 100, "TASK_DELETE_DENIED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.DeleteTask(context.Background(), identityOf(tt.userID), tt.taskID)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.wantCode)
			}
		})
	}

	if _, ok := repo.tasks[100]; !ok {
		t.Error("task should still exist after denied delete")
	}
}

func TestService_DeleteTask_StorageError(t *testing.T) {
	svc, repo := newTestService()
	repo.err = errors.New("connection refused")

	err := svc.DeleteTask(context.Background(), identityOf(1), 100)
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("storage error should not map to APIError, got %v", apiErr)
	}
	if err == nil {
		t.Fatal("expected error")
	}
}
