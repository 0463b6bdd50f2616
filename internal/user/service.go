// Package user は認証済みユーザー自身のプロフィール管理を提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
	"github.com/hitoshi/taskboard/internal/security"
)

const maxNameLength = 100

// Service はプロフィールの取得・更新のビジネスロジックを提供する。
// 操作対象は常に認証済みアイデンティティ自身であり、
// 他ユーザーのプロフィールを参照・変更する経路は存在しない。
type Service struct {
	userRepo  repository.UserRepository
	sanitizer security.FieldSanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, sanitizer security.FieldSanitizer) *Service {
	return &Service{
		userRepo:  userRepo,
		sanitizer: sanitizer,
	}
}

// GetProfile は認証済みユーザー自身のプロフィールを取得する。
// トークンは有効だがユーザー行が既に存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}

// UpdateProfile は認証済みユーザー自身の表示名を更新する。
// 変更できるのは表示名のみで、メールアドレスとパスワードは対象外。
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name string) error {
	name = s.sanitizer.Sanitize(name)

	if name == "" {
		return model.NewValidationError(map[string]string{
			"name": "表示名は必須です。",
		})
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return model.NewValidationError(map[string]string{
			"name": fmt.Sprintf("表示名は%d文字以内で入力してください。", maxNameLength),
		})
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	if err := s.userRepo.UpdateName(ctx, userID, name); err != nil {
		return fmt.Errorf("プロフィールの更新に失敗しました: %w", err)
	}

	slog.Info("profile updated", slog.Int64("user_id", userID))

	return nil
}
