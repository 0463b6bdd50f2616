package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskboard/internal/model"
)

// --- フェイク定義 ---

type fakeProjectStore struct {
	// owner_id -> project_id の所有関係
	owned map[int64]map[int64]bool
	err   error
}

func (f *fakeProjectStore) ExistsByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.owned[ownerID][id], nil
}

type fakeTaskStore struct {
	// owner_id -> task_id の推移的所有関係
	owned map[int64]map[int64]bool
	err   error
}

func (f *fakeTaskStore) ExistsByIDAndProjectOwner(ctx context.Context, taskID, ownerID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.owned[ownerID][taskID], nil
}

func identityOf(userID int64) *model.Identity {
	return &model.Identity{UserID: userID, Email: "user@example.com", Name: "User"}
}

// --- OwnsProject ---

func TestGuard_OwnsProject(t *testing.T) {
	projects := &fakeProjectStore{
		owned: map[int64]map[int64]bool{
			1: {10: true},
		},
	}
	guard := NewGuard(projects, &fakeTaskStore{})

	tests := []struct {
		name      string
		userID    int64
		projectID int64
		want      bool
	}{
		{"owner", 1, 10, true},
		{"different user", 2, 10, false},
		{"missing project", 1, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.OwnsProject(context.Background(), identityOf(tt.userID), tt.projectID)
			if err != nil {
				t.Fatalf("OwnsProject() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("OwnsProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuard_OwnsProject_StorageError(t *testing.T) {
	projects := &fakeProjectStore{err: errors.New("connection refused")}
	guard := NewGuard(projects, &fakeTaskStore{})

	if _, err := guard.OwnsProject(context.Background(), identityOf(1), 10); err == nil {
		t.Fatal("expected error when storage fails")
	}
}

// --- OwnsTaskViaProject ---

// タスク不在・プロジェクト不在・所有者不一致がすべてfalseで
// 区別できないことを検証
func TestGuard_OwnsTaskViaProject(t *testing.T) {
	tasks := &fakeTaskStore{
		owned: map[int64]map[int64]bool{
			1: {100: true},
		},
	}
	guard := NewGuard(&fakeProjectStore{}, tasks)

	tests := []struct {
		name   string
		userID int64
		taskID int64
		want   bool
	}{
		{"transitive owner", 1, 100, true},
		{"other user's task", 2, 100, false},
		{"missing task", 1, 999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.OwnsTaskViaProject(context.Background(), identityOf(tt.userID), tt.taskID)
			if err != nil {
				t.Fatalf("OwnsTaskViaProject() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("OwnsTaskViaProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuard_OwnsTaskViaProject_StorageError(t *testing.T) {
	tasks := &fakeTaskStore{err: errors.New("connection refused")}
	guard := NewGuard(&fakeProjectStore{}, tasks)

	if _, err := guard.OwnsTaskViaProject(context.Background(), identityOf(1), 100); err == nil {
		t.Fatal("expected error when storage fails")
	}
}
