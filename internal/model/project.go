// Package model はドメインモデルを定義する。
package model

import "time"

// Project はユーザーが所有するプロジェクトを表す。
// OwnerIDは作成時に1度だけ設定され、以降変更されない。
type Project struct {
	ID          int64
	Name        string
	Description *string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
