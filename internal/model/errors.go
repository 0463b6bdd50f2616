// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// Fieldsはバリデーションエラー時のフィールド別メッセージ（任意）。
type APIError struct {
	Code     string            // エラーコード
	Message  string            // エラーメッセージ
	Category string            // カテゴリ: auth, validation, resource, system
	Action   string            // ユーザー向け対処方法
	Fields   map[string]string // フィールド別のバリデーションメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeProjectNotFound    = "PROJECT_NOT_FOUND"
	ErrCodeTaskNotFound       = "TASK_NOT_FOUND"
	ErrCodeTaskDeleteDenied   = "TASK_DELETE_DENIED"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
)

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に使用されています。",
		Category: "validation",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス不明とパスワード不一致を区別できない意図的に汎用的なメッセージを返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は認証が必要なエラーを生成する。
// トークン欠落・署名不正・期限切れのいずれでも同一のレスポンスとなる。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインして有効なトークンを取得してください。",
	}
}

// NewValidationError はフィールド別メッセージ付きのバリデーションエラーを生成する。
func NewValidationError(fields map[string]string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  "入力内容に誤りがあります。",
		Category: "validation",
		Action:   "各フィールドのエラーメッセージを確認してください。",
		Fields:   fields,
	}
}

// NewProjectNotFoundError はプロジェクト未検出エラーを生成する。
// プロジェクトが存在しない場合と呼び出し元が所有者でない場合の両方で使用し、
// 存在の有無を外部に開示しない。
func NewProjectNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeProjectNotFound,
		Message:  "指定されたプロジェクトが見つかりません。",
		Category: "resource",
		Action:   "プロジェクトIDを確認してください。",
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
// タスクが存在しない場合と所有権チェーンが一致しない場合の両方で使用する。
func NewTaskNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotFound,
		Message:  "指定されたタスクが見つかりません。",
		Category: "resource",
		Action:   "タスクIDを確認してください。",
	}
}

// NewTaskDeleteDeniedError はタスク削除の所有権エラーを生成する。
// 削除パスのみタスクの存在確認後に所有権不一致を403として区別する。
func NewTaskDeleteDeniedError() *APIError {
	return &APIError{
		Code:     ErrCodeTaskDeleteDenied,
		Message:  "このタスクを削除する権限がありません。",
		Category: "auth",
		Action:   "自分が所有するプロジェクトのタスクのみ削除できます。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
