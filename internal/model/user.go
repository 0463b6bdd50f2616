// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、APIレスポンスには決して含めない。
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity は検証済みトークンから導出された認証済みユーザーコンテキストを表す。
// 永続化されず、リクエストのライフサイクル内でのみ有効。
type Identity struct {
	UserID int64
	Email  string
	Name   string
}
