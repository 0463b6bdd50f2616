// Package model はドメインモデルを定義する。
package model

import "time"

// Task はプロジェクト配下のタスクを表す。
// 直接の所有者フィールドを持たず、所有者は常に親プロジェクトの
// OwnerIDから導出する（非正規化によるキャッシュは行わない）。
// ProjectIDは作成時に1度だけ設定され、以降変更されない。
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	ProjectID   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus はタスクのワークフロー状態を表す。
// 慣習上の3値を定数として定義するが、列挙値としての検証は行わず、
// 任意の文字列をそのまま受け入れて永続化する。
type TaskStatus string

const (
	// TaskStatusPending は初期状態。タスク作成時に必ず設定される。
	TaskStatusPending TaskStatus = "Pendiente"
	// TaskStatusInProgress は作業中の状態。
	TaskStatusInProgress TaskStatus = "En Progreso"
	// TaskStatusDone は完了状態。
	TaskStatusDone TaskStatus = "Terminado"
)
