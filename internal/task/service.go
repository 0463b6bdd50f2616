// Package task は既存タスクの更新・移動・削除のドメインロジックを提供する。
// タスクの作成と一覧は親プロジェクトのコンテキストで行われるため、
// projectパッケージが担当する。
package task

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/hitoshi/taskboard/internal/authz"
	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
	"github.com/hitoshi/taskboard/internal/security"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
)

// Service はタスク単体を対象とする操作のビジネスロジックを提供する。
// タスクは所有者を直接持たず、親プロジェクトの所有者が推移的な所有者となる。
// すべての操作はストレージ変更に先立って所有権チェーンを再計算する。
type Service struct {
	taskRepo  repository.TaskRepository
	guard     *authz.Guard
	sanitizer security.FieldSanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(taskRepo repository.TaskRepository, guard *authz.Guard, sanitizer security.FieldSanitizer) *Service {
	return &Service{
		taskRepo:  taskRepo,
		guard:     guard,
		sanitizer: sanitizer,
	}
}

// UpdateTask はタスクのタイトルと説明を更新する。
// 所有権チェーンのチェック失敗時はタスク不在と区別できない
// TASK_NOT_FOUNDを返す。ステータスはこの操作では変更されない。
func (s *Service) UpdateTask(ctx context.Context, identity *model.Identity, taskID int64, title string, description *string) error {
	title = s.sanitizer.Sanitize(title)
	description = s.sanitizeOptional(description)

	if fields := validateTaskInput(title, description); len(fields) > 0 {
		return model.NewValidationError(fields)
	}

	owns, err := s.guard.OwnsTaskViaProject(ctx, identity, taskID)
	if err != nil {
		return err
	}
	if !owns {
		return model.NewTaskNotFoundError()
	}

	task := &model.Task{
		ID:          taskID,
		Title:       title,
		Description: description,
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("タスクの更新に失敗しました: %w", err)
	}

	return nil
}

// MoveTask はタスクのステータスを変更する。
// ステータス値は必須だが、値の内容は検証せずそのまま永続化する。
// 既知の状態（Pendiente・En Progreso・Terminado）以外の文字列も拒否しない。
func (s *Service) MoveTask(ctx context.Context, identity *model.Identity, taskID int64, status string) error {
	if status == "" {
		return model.NewValidationError(map[string]string{
			"status": "ステータスは必須です。",
		})
	}

	owns, err := s.guard.OwnsTaskViaProject(ctx, identity, taskID)
	if err != nil {
		return err
	}
	if !owns {
		return model.NewTaskNotFoundError()
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, model.TaskStatus(status)); err != nil {
		return fmt.Errorf("タスクステータスの更新に失敗しました: %w", err)
	}

	slog.Info("task moved",
		slog.Int64("task_id", taskID),
		slog.String("status", status),
	)

	return nil
}

// DeleteTask はタスクを削除する。
// 他の操作と異なり、タスクの不在（TASK_NOT_FOUND）と所有権なし
// （TASK_DELETE_DENIED）を区別して報告する。
// タスクの存在確認が先、所有権チェックが後の2段階で判定する。
func (s *Service) DeleteTask(ctx context.Context, identity *model.Identity, taskID int64) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if task == nil {
		return model.NewTaskNotFoundError()
	}

	owns, err := s.guard.OwnsTaskViaProject(ctx, identity, taskID)
	if err != nil {
		return err
	}
	if !owns {
		return model.NewTaskDeleteDeniedError()
	}

	if err := s.taskRepo.DeleteByID(ctx, taskID); err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}

	slog.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", identity.UserID),
	)

	return nil
}

// sanitizeOptional は任意の説明フィールドをサニタイズする。
// サニタイズ結果が空になった場合はnilに正規化する。
func (s *Service) sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := s.sanitizer.Sanitize(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// validateTaskInput はタスクの入力値を検証し、
// フィールド別のエラーメッセージを返す。
func validateTaskInput(title string, description *string) map[string]string {
	fields := map[string]string{}

	if title == "" {
		fields["title"] = "タスクのタイトルは必須です。"
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		fields["title"] = fmt.Sprintf("タイトルは%d文字以内で入力してください。", maxTitleLength)
	}

	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		fields["description"] = fmt.Sprintf("説明は%d文字以内で入力してください。", maxDescriptionLength)
	}

	return fields
}
