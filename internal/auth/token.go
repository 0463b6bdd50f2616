package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hitoshi/taskboard/internal/model"
)

// ErrInvalidToken はトークン検証失敗を表す。
// 署名不正・発行者不一致・オーディエンス不一致・期限切れ・形式不正の
// いずれであっても同一のエラーを返し、呼び出し元は一様に拒否する。
var ErrInvalidToken = errors.New("token is invalid or expired")

// tokenClaims はトークンに含めるクレームセット。
// sub（ユーザーID）、email、name、jti、exp、iss、audで構成される。
type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenCodec は署名付き・期限付きのアイデンティティトークンの
// 発行と検証を行う。サーバープロセスのみが保持する対称鍵による
// HMAC-SHA256署名を使用し、サーバー側セッション状態を持たない。
// 失効リストは存在しないため、漏洩したトークンは自然失効まで有効である
// （設計上の受容事項）。
type TokenCodec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenCodec はTokenCodecを生成する。
func NewTokenCodec(secret, issuer, audience string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Issue はユーザーのアイデンティティを主張する署名付きトークンを発行する。
// jtiにはトークンごとに一意なUUIDを割り当て、有効期限は発行時刻+TTLの
// 絶対時刻とする。
func (c *TokenCodec) Issue(user *model.User) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.New().String(),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify はトークンを検証し、成功時は認証済みアイデンティティを返す。
// 署名・発行者・オーディエンス・有効期限のいずれかが不正な場合は
// 一律ErrInvalidTokenを返す（部分的な信頼は許さない）。
func (c *TokenCodec) Verify(tokenString string) (*model.Identity, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
