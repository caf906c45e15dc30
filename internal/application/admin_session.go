package application

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sanosuguru/fit365-classes/internal/config"
)

const adminSubject = "admin"

// AdminSessionGuard は管理者トークンの発行と検証を行う
// トークンは共有シークレットで署名したHS256のJWTで、シークレット自体は含まない
type AdminSessionGuard struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAdminSessionGuard(cfg config.AdminConfig) *AdminSessionGuard {
	return &AdminSessionGuard{
		secret: []byte(cfg.Password),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// WithClock はテスト用に時計を差し替える
func (g *AdminSessionGuard) WithClock(now func() time.Time) *AdminSessionGuard {
	g.now = now
	return g
}

// Mint はパスワードを確認してトークンを発行する
func (g *AdminSessionGuard) Mint(password string) (string, time.Duration, error) {
	if password == "" {
		return "", 0, ErrPasswordRequired
	}
	if subtle.ConstantTimeCompare([]byte(password), g.secret) != 1 {
		return "", 0, ErrInvalidPassword
	}

	issuedAt := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(g.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", 0, fmt.Errorf("トークン署名に失敗: %w", err)
	}
	return token, g.ttl, nil
}

// Verify はトークンを検証する
// 署名不一致（シークレット変更を含む）、期限切れ、subject違いはすべて ErrInvalidToken
func (g *AdminSessionGuard) Verify(tokenString string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(adminSubject),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}

	// 発行から有効期間を超えたトークンは exp に関係なく拒否する
	if claims.IssuedAt == nil || g.now().Sub(claims.IssuedAt.Time) > g.ttl {
		return ErrInvalidToken
	}
	return nil
}
