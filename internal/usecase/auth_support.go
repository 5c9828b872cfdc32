package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type PasswordVerifier interface {
	Verify(hash string, password string) bool
}

type BcryptPasswordHasher struct{}

func (BcryptPasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func (BcryptPasswordVerifier) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// アクセストークンの発行だけを担う。検証はmiddleware側
type AccessTokenIssuer interface {
	Issue(userID string, role string, now time.Time) (string, error)
}

type JWTAccessTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTAccessTokenIssuer(secret string, ttl time.Duration) *JWTAccessTokenIssuer {
	return &JWTAccessTokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *JWTAccessTokenIssuer) Issue(userID string, role string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// 32バイトのランダムトークン（hex 64文字）
func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// リフレッシュトークンは平文を保存しない
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
