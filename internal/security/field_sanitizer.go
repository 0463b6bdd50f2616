// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FieldSanitizer はユーザー入力のテキストフィールド（プロジェクト名・
// タスクタイトル・説明文）をサニタイズし、格納型XSSからクライアントを
// 保護する。bluemondayの厳格ポリシーを使用し、HTMLタグを一切許可しない。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizer はテキストフィールドのサニタイズ機能のインターフェースを定義する。
// 永続化前のすべてのユーザー入力文字列に適用される。
type FieldSanitizer interface {
	// Sanitize は入力からHTMLタグを全て除去し、前後の空白を削った
	// プレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// fieldSanitizer はFieldSanitizerの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type fieldSanitizer struct {
	policy *bluemonday.Policy
}

// NewFieldSanitizer はFieldSanitizerの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たないため、scriptタグやイベント属性を
// 含むあらゆるマークアップが除去される。
func NewFieldSanitizer() *fieldSanitizer {
	return &fieldSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグを全て除去したプレーンテキストを返す。
// bluemondayはタグ除去後のテキストをHTMLエスケープするため、
// 元のプレーンテキストに戻すためにUnescapeStringを適用する。
func (s *fieldSanitizer) Sanitize(input string) string {
	cleaned := s.policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
