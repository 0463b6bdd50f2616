// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskboard/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail は指定メールアドレスのユーザーが存在するかを返す。
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	Create(ctx context.Context, user *model.User) error

	// UpdateName は指定ユーザーの表示名を更新する。
	// 対象行が存在しない場合はエラーを返す。
	UpdateName(ctx context.Context, id int64, name string) error
}

// ProjectRepository はプロジェクトデータの永続化インターフェース。
// 所有権フィルタをSQLに押し込み、呼び出し元が所有しない行を
// アプリケーション層に持ち出さないことを原則とする。
type ProjectRepository interface {
	// Create はプロジェクトを作成し、採番されたIDをproject.IDに設定する。
	Create(ctx context.Context, project *model.Project) error

	// FindByIDAndOwner はIDと所有者IDの両方が一致するプロジェクトを
	// 単一のフィルタ付き検索で取得する。存在しない場合・所有者が
	// 異なる場合はいずれもnilを返し、両者は区別できない。
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Project, error)

	// ExistsByIDAndOwner はIDと所有者IDの両方が一致するプロジェクトの
	// 有無を返す。行データを取得しない所有権チェック専用クエリ。
	ExistsByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error)

	// ListByOwner は指定所有者のプロジェクト一覧をID昇順で返す。
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Project, error)

	// Update はプロジェクトの名前と説明を更新する。所有者は変更しない。
	Update(ctx context.Context, project *model.Project) error

	// DeleteByID は指定IDのプロジェクトを削除する。
	// 配下のタスクはCASCADE削除される。
	DeleteByID(ctx context.Context, id int64) error
}

// TaskRepository はタスクデータの永続化インターフェース。
type TaskRepository interface {
	// Create はタスクを作成し、採番されたIDをtask.IDに設定する。
	Create(ctx context.Context, task *model.Task) error

	// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
	// 所有権を確認しない生の検索であり、呼び出し元は必ず所有権チェックと
	// 組み合わせて使用すること。
	FindByID(ctx context.Context, id int64) (*model.Task, error)

	// ExistsByIDAndProjectOwner はタスクが存在し、かつその親プロジェクトの
	// 所有者がownerIDである場合にtrueを返す。tasks→projectsのJOINによる
	// 所有権チェーン（深さ2）の探索で、リクエストごとに再計算される。
	ExistsByIDAndProjectOwner(ctx context.Context, taskID, ownerID int64) (bool, error)

	// ListByProject は指定プロジェクトのタスク一覧をID昇順で返す。
	ListByProject(ctx context.Context, projectID int64) ([]*model.Task, error)

	// Update はタスクのタイトルと説明を更新する。ステータスと所属プロジェクトは変更しない。
	Update(ctx context.Context, task *model.Task) error

	// UpdateStatus はタスクのステータスのみを更新する。
	// 値の列挙検証は行わず、任意の文字列をそのまま永続化する。
	UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error

	// DeleteByID は指定IDのタスクを削除する。
	DeleteByID(ctx context.Context, id int64) error
}
