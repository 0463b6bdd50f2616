package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/lib/pq"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
	"github.com/hitoshi/taskboard/internal/security"
)

const (
	maxNameLength  = 100
	maxEmailLength = 255
	minPasswordLen = 6
	// bcryptは72バイトを超える入力を受け付けない
	maxPasswordLen = 72
)

// MetricsRecorder は認証イベントの記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordRegistration()
	RecordLoginSuccess()
	RecordLoginFailure()
}

// Service は登録・ログインのビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	hasher    *PasswordHasher
	codec     *TokenCodec
	sanitizer security.FieldSanitizer
	metrics   MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	hasher *PasswordHasher,
	codec *TokenCodec,
	sanitizer security.FieldSanitizer,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		userRepo:  userRepo,
		hasher:    hasher,
		codec:     codec,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Register は新規ユーザーを登録する。
// メールアドレスが既に使用されている場合はEMAIL_TAKENエラーを返し、
// 新しいユーザー行は作成しない。
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = s.sanitizer.Sanitize(name)
	email = s.sanitizer.Sanitize(email)

	if fields := validateRegisterInput(name, email, password); len(fields) > 0 {
		return nil, model.NewValidationError(fields)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("メールアドレスの重複確認に失敗しました: %w", err)
	}
	if exists {
		return nil, model.NewEmailTakenError()
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// ExistsByEmailとCreateの間に同じメールアドレスの登録が
		// 割り込んだ場合はunique制約違反になるため、EMAIL_TAKENに正規化する
		if isUniqueViolation(err) {
			return nil, model.NewEmailTakenError()
		}
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	s.metrics.RecordRegistration()
	slog.Info("new user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login は認証情報を検証し、成功時に署名付きトークンを発行する。
// メールアドレス不明とパスワード不一致は外部から区別できないよう、
// どちらも同一のINVALID_CREDENTIALSエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.RecordLoginFailure()
		return "", model.NewInvalidCredentialsError()
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	s.metrics.RecordLoginSuccess()
	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
	)

	return token, nil
}

// validateRegisterInput は登録の入力値を検証し、
// フィールド別のエラーメッセージを返す。
func validateRegisterInput(name, email, password string) map[string]string {
	fields := map[string]string{}

	if name == "" {
		fields["name"] = "表示名は必須です。"
	} else if utf8.RuneCountInString(name) > maxNameLength {
		fields["name"] = fmt.Sprintf("表示名は%d文字以内で入力してください。", maxNameLength)
	}

	if email == "" {
		fields["email"] = "メールアドレスは必須です。"
	} else if len(email) > maxEmailLength {
		fields["email"] = fmt.Sprintf("メールアドレスは%d文字以内で入力してください。", maxEmailLength)
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "メールアドレスの形式が正しくありません。"
	}

	if password == "" {
		fields["password"] = "パスワードは必須です。"
	} else if len(password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("パスワードは%d文字以上で入力してください。", minPasswordLen)
	} else if len(password) > maxPasswordLen {
		fields["password"] = fmt.Sprintf("パスワードは%dバイト以内で入力してください。", maxPasswordLen)
	}

	return fields
}

// isUniqueViolation はPostgreSQLのunique制約違反（SQLSTATE 23505）かを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
