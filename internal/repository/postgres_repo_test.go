package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresProjectRepoはProjectRepositoryインターフェースを満たすことを検証
func TestPostgresProjectRepo_ImplementsInterface(t *testing.T) {
	var _ ProjectRepository = (*PostgresProjectRepo)(nil)
}

// PostgresTaskRepoはTaskRepositoryインターフェースを満たすことを検証
func TestPostgresTaskRepo_ImplementsInterface(t *testing.T) {
	var _ TaskRepository = (*PostgresTaskRepo)(nil)
}

// 各リポジトリのコンストラクタが正しく初期化されることを検証
func TestNewRepos_Initialize(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Error("expected non-nil user repo")
	}
	if NewPostgresProjectRepo(nil) == nil {
		t.Error("expected non-nil project repo")
	}
	if NewPostgresTaskRepo(nil) == nil {
		t.Error("expected non-nil task repo")
	}
}

// タスクには所有者フィールドが存在せず、所有者は常にプロジェクト経由で
// 導出されるというモデル不変条件をコンパイルレベルで固定する
func TestTaskModel_HasNoOwnerField(t *testing.T) {
	task := model.Task{
		ID:        1,
		Title:     "仕様書レビュー",
		Status:    model.TaskStatusPending,
		ProjectID: 10,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Taskが直接参照できるのはProjectIDのみ
	if task.ProjectID != 10 {
		t.Errorf("ProjectID = %d, want 10", task.ProjectID)
	}
}

// プロジェクトのOwnerIDは作成時に設定され、Update対象の列に含まれないこと
// （SQL文レベルの保証はUpdateのクエリ文字列に依存する）の概念検証
func TestProjectModel_OwnerIsImmutableByConvention(t *testing.T) {
	project := model.Project{
		ID:      1,
		Name:    "Launch",
		OwnerID: 42,
	}

	if project.OwnerID != 42 {
		t.Errorf("OwnerID = %d, want 42", project.OwnerID)
	}
}
