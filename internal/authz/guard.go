// Package authz はリソースアクセスの所有権チェックを提供する。
//
// すべてのプロジェクト・タスク操作はストレージ操作に先立って
// Guardのチェックを通過しなければならない。チェック失敗は
// 「存在しない」と区別できない結果として扱い、リソースの存在有無を
// 外部に開示しない。
package authz

import (
	"context"
	"fmt"

	"github.com/hitoshi/taskboard/internal/model"
)

// ProjectOwnershipStore はプロジェクト所有権の確認に必要なストレージ操作。
// repository.ProjectRepositoryの部分集合として定義する。
type ProjectOwnershipStore interface {
	ExistsByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error)
}

// TaskOwnershipStore はタスク所有権チェーンの確認に必要なストレージ操作。
// repository.TaskRepositoryの部分集合として定義する。
type TaskOwnershipStore interface {
	ExistsByIDAndProjectOwner(ctx context.Context, taskID, ownerID int64) (bool, error)
}

// Guard は認証済みアイデンティティと対象リソースの所有関係を判定する。
// プロジェクトは直接所有（owner_id）、タスクは親プロジェクト経由の
// 推移的所有（User→Project→Task）をリクエストごとに再計算する。
// 導出した所有者をタスク側にキャッシュすることはしない。
type Guard struct {
	projects ProjectOwnershipStore
	tasks    TaskOwnershipStore
}

// NewGuard はGuardを生成する。
func NewGuard(projects ProjectOwnershipStore, tasks TaskOwnershipStore) *Guard {
	return &Guard{
		projects: projects,
		tasks:    tasks,
	}
}

// OwnsProject は指定IDのプロジェクトが存在し、かつその所有者が
// identityのユーザーである場合にtrueを返す。
// 「取得してから比較する」のではなく、idと所有者の両条件を含む
// 単一のフィルタ付き検索として実装されるため、所有しないプロジェクトの
// 行データがアプリケーション層に現れることはない。
func (g *Guard) OwnsProject(ctx context.Context, identity *model.Identity, projectID int64) (bool, error) {
	ok, err := g.projects.ExistsByIDAndOwner(ctx, projectID, identity.UserID)
	if err != nil {
		return false, fmt.Errorf("プロジェクト所有権の確認に失敗しました: %w", err)
	}
	return ok, nil
}

// OwnsTaskViaProject は指定IDのタスクが存在し、その親プロジェクトが存在し、
// かつ親プロジェクトの所有者がidentityのユーザーである場合にtrueを返す。
// タスク不在・プロジェクト不在・所有者不一致はいずれもfalseであり、
// 呼び出し元からは区別できない。
func (g *Guard) OwnsTaskViaProject(ctx context.Context, identity *model.Identity, taskID int64) (bool, error) {
	ok, err := g.tasks.ExistsByIDAndProjectOwner(ctx, taskID, identity.UserID)
	if err != nil {
		return false, fmt.Errorf("タスク所有権チェーンの確認に失敗しました: %w", err)
	}
	return ok, nil
}
