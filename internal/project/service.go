// Package project はプロジェクト管理のドメインロジックを提供する。
package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/hitoshi/taskboard/internal/authz"
	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
	"github.com/hitoshi/taskboard/internal/security"
)

const (
	maxNameLength            = 100
	maxDescriptionLength     = 500
	maxTaskTitleLength       = 200
	maxTaskDescriptionLength = 1000
)

// Service はプロジェクトと、プロジェクト配下のタスク作成・一覧の
// ビジネスロジックを提供する。
// 既存リソースを対象とするすべての操作は、ストレージ操作に先立って
// 所有権チェックを行い、失敗時は存在しない場合と同一の結果を返す。
type Service struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	guard       *authz.Guard
	sanitizer   security.FieldSanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	guard *authz.Guard,
	sanitizer security.FieldSanitizer,
) *Service {
	return &Service{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		guard:       guard,
		sanitizer:   sanitizer,
	}
}

// CreateProject は認証済みユーザーを所有者とする新規プロジェクトを作成する。
// 所有者は作成時に1度だけ設定され、以降変更されない。
func (s *Service) CreateProject(ctx context.Context, identity *model.Identity, name string, description *string) (*model.Project, error) {
	name = s.sanitizer.Sanitize(name)
	description = s.sanitizeOptional(description)

	if fields := validateProjectInput(name, description); len(fields) > 0 {
		return nil, model.NewValidationError(fields)
	}

	now := time.Now()
	project := &model.Project{
		Name:        name,
		Description: description,
		OwnerID:     identity.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("プロジェクトの作成に失敗しました: %w", err)
	}

	slog.Info("project created",
		slog.Int64("project_id", project.ID),
		slog.Int64("owner_id", identity.UserID),
	)

	return project, nil
}

// GetProject は認証済みユーザーが所有するプロジェクトを取得する。
// 所有権チェックと取得はidと所有者の両条件を含む単一のフィルタ付き
// 検索として実行され、存在しない場合と所有者が異なる場合はいずれも
// PROJECT_NOT_FOUNDとなる。
func (s *Service) GetProject(ctx context.Context, identity *model.Identity, projectID int64) (*model.Project, error) {
	project, err := s.projectRepo.FindByIDAndOwner(ctx, projectID, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの取得に失敗しました: %w", err)
	}
	if project == nil {
		return nil, model.NewProjectNotFoundError()
	}

	return project, nil
}

// ListProjects は認証済みユーザーが所有するプロジェクト一覧を返す。
// フィルタはストレージ層で行う。所有プロジェクトがない場合は空の一覧を返す。
func (s *Service) ListProjects(ctx context.Context, identity *model.Identity) ([]*model.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("プロジェクト一覧の取得に失敗しました: %w", err)
	}

	return projects, nil
}

// UpdateProject はプロジェクトの名前と説明を更新する。
// 所有権チェックが最初のデータ依存ステップであり、失敗時は
// PROJECT_NOT_FOUNDを返す。
func (s *Service) UpdateProject(ctx context.Context, identity *model.Identity, projectID int64, name string, description *string) error {
	name = s.sanitizer.Sanitize(name)
	description = s.sanitizeOptional(description)

	if fields := validateProjectInput(name, description); len(fields) > 0 {
		return model.NewValidationError(fields)
	}

	owns, err := s.guard.OwnsProject(ctx, identity, projectID)
	if err != nil {
		return err
	}
	if !owns {
		return model.NewProjectNotFoundError()
	}

	project := &model.Project{
		ID:          projectID,
		Name:        name,
		Description: description,
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("プロジェクトの更新に失敗しました: %w", err)
	}

	return nil
}

// DeleteProject はプロジェクトを削除する。配下のタスクも削除される。
// 所有権チェック失敗時はPROJECT_NOT_FOUNDを返す。
func (s *Service) DeleteProject(ctx context.Context, identity *model.Identity, projectID int64) error {
	owns, err := s.guard.OwnsProject(ctx, identity, projectID)
	if err != nil {
		return err
	}
	if !owns {
		return model.NewProjectNotFoundError()
	}

	if err := s.projectRepo.DeleteByID(ctx, projectID); err != nil {
		return fmt.Errorf("プロジェクトの削除に失敗しました: %w", err)
	}

	slog.Info("project deleted",
		slog.Int64("project_id", projectID),
		slog.Int64("owner_id", identity.UserID),
	)

	return nil
}

// CreateTask は指定プロジェクト配下に新規タスクを作成する。
// プロジェクトの所有権チェック失敗時はPROJECT_NOT_FOUNDを返す。
// ステータスは常に初期値Pendienteで作成される。
func (s *Service) CreateTask(ctx context.Context, identity *model.Identity, projectID int64, title string, description *string) (*model.Task, error) {
	title = s.sanitizer.Sanitize(title)
	description = s.sanitizeOptional(description)

	if fields := validateTaskInput(title, description); len(fields) > 0 {
		return nil, model.NewValidationError(fields)
	}

	owns, err := s.guard.OwnsProject(ctx, identity, projectID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, model.NewProjectNotFoundError()
	}

	now := time.Now()
	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      model.TaskStatusPending,
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("タスクの作成に失敗しました: %w", err)
	}

	slog.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", projectID),
	)

	return task, nil
}

// ListTasks は指定プロジェクトのタスク一覧を返す。
// プロジェクトの所有権チェック失敗時はPROJECT_NOT_FOUNDを返す。
func (s *Service) ListTasks(ctx context.Context, identity *model.Identity, projectID int64) ([]*model.Task, error) {
	owns, err := s.guard.OwnsProject(ctx, identity, projectID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, model.NewProjectNotFoundError()
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}

	return tasks, nil
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

// validateProjectInput はプロジェクトの入力値を検証し、
// フィールド別のエラーメッセージを返す。
func validateProjectInput(name string, description *string) map[string]string {
	fields := map[string]string{}

	if name == "" {
		fields["name"] = "プロジェクト名は必須です。"
	} else if utf8.RuneCountInString(name) > maxNameLength {
		fields["name"] = fmt.Sprintf("プロジェクト名は%d文字以内で入力してください。", maxNameLength)
	}

	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		fields["description"] = fmt.Sprintf("説明は%d文字以内で入力してください。", maxDescriptionLength)
	}

	return fields
}

// validateTaskInput はタスクの入力値を検証し、
// フィールド別のエラーメッセージを返す。
func validateTaskInput(title string, description *string) map[string]string {
	fields := map[string]string{}

	if title == "" {
		fields["title"] = "タスクのタイトルは必須です。"
	} else if utf8.RuneCountInString(title) > maxTaskTitleLength {
		fields["title"] = fmt.Sprintf("タイトルは%d文字以内で入力してください。", maxTaskTitleLength)
	}

	if description != nil && utf8.RuneCountInString(*description) > maxTaskDescriptionLength {
		fields["description"] = fmt.Sprintf("説明は%d文字以内で入力してください。", maxTaskDescriptionLength)
	}

	return fields
}
