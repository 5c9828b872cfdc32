package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	"github.com/paralyuzov/food-delivery-api/internal/mail"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 15 * time.Minute
	refreshTokenTTL      = 7 * 24 * time.Hour
)

type AuthUsecase struct {
	users         repo.UserRepository
	refreshTokens repo.RefreshTokenRepository
	hasher        PasswordHasher
	verifier      PasswordVerifier
	issuer        AccessTokenIssuer
	mailer        mail.Sender
	idGen         IDGenerator
	clock         Clock
	logger        zerolog.Logger
}

func NewAuthUsecase(
	users repo.UserRepository,
	refreshTokens repo.RefreshTokenRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	mailer mail.Sender,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		refreshTokens: refreshTokens,
		hasher:        hasher,
		verifier:      verifier,
		issuer:        issuer,
		mailer:        mailer,
		idGen:         idGen,
		clock:         clock,
		logger:        logger,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type UserOutput struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Phone           string     `json:"phone"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"is_email_verified"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type TokenPair struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         UserOutput `json:"user"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if err != repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	token, err := generateSecureToken()
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	expiry := now.Add(verificationTokenTTL)
	user := model.User{
		ID:                           u.idGen.NewID(),
		Email:                        email,
		PasswordHash:                 hash,
		FirstName:                    in.FirstName,
		LastName:                     in.LastName,
		Phone:                        in.Phone,
		Role:                         model.RoleCustomer,
		IsEmailVerified:              false,
		EmailVerificationToken:       &token,
		EmailVerificationTokenExpiry: &expiry,
		IsActive:                     true,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}

	if err := u.users.Create(ctx, &user); err != nil {
		if err == repo.ErrDuplicate {
			return UserOutput{}, NewHTTPError(http.StatusConflict, "email already registered")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//メール送信失敗で登録は失敗させない
	u.sendVerification(user, token)

	return toUserOutput(user), nil
}

func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return NewHTTPError(http.StatusBadRequest, "token is required")
	}

	user, err := u.users.FindByVerificationToken(ctx, token, u.clock.Now())
	if err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "invalid or expired verification token")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	user.EmailVerificationTokenExpiry = nil
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user.IsEmailVerified {
		return NewHTTPError(http.StatusBadRequest, "email already verified")
	}

	token, err := generateSecureToken()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	expiry := u.clock.Now().Add(verificationTokenTTL)
	user.EmailVerificationToken = &token
	user.EmailVerificationTokenExpiry = &expiry
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.sendVerification(*user, token)
	return nil
}

// Loginは失敗理由を区別せず同じ401を返す
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == repo.ErrNotFound {
			return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !user.IsActive || !user.IsEmailVerified || !u.verifier.Verify(user.PasswordHash, password) {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := u.clock.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := u.users.Update(ctx, user); err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issuePair(ctx, *user, now)
}

// Refreshはトークンを使い捨てにする。古いものは全て無効化
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	stored, err := u.refreshTokens.FindByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if err == repo.ErrNotFound {
			return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	if stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	user, err := u.users.FindByID(ctx, stored.UserID)
	if err != nil || !user.IsActive {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	if err := u.refreshTokens.DeleteByUserID(ctx, user.ID); err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issuePair(ctx, *user, now)
}

func (u *AuthUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) GetCurrentUser(ctx context.Context, userID string) (UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*user), nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, userID string, current string, next string) error {
	if len(next) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(user.PasswordHash, current) {
		return NewHTTPError(http.StatusBadRequest, "current password is incorrect")
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	user.PasswordHash = hash
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//既存セッションは全て失効させる
	if err := u.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ForgotPasswordはアドレスの存在を外に漏らさない
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == repo.ErrNotFound {
			return nil
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := generateSecureToken()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	expiry := u.clock.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordTokenExpiry = &expiry
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	go func(usr model.User, tok string) {
		if err := u.mailer.SendResetPasswordEmail(usr.Email, usr.FirstName, tok); err != nil {
			u.logger.Error().Err(err).Str("user_id", usr.ID).Msg("failed to send reset password email")
		}
	}(*user, token)

	return nil
}

func (u *AuthUsecase) ResetPassword(ctx context.Context, token string, password string) error {
	if token == "" {
		return NewHTTPError(http.StatusBadRequest, "token is required")
	}
	if len(password) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	user, err := u.users.FindByResetToken(ctx, token, u.clock.Now())
	if err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "invalid or expired reset token")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	user.PasswordHash = hash
	user.ResetPasswordToken = nil
	user.ResetPasswordTokenExpiry = nil
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.refreshTokens.DeleteByUserID(ctx, user.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) issuePair(ctx context.Context, user model.User, now time.Time) (TokenPair, error) {
	access, err := u.issuer.Issue(user.ID, string(user.Role), now)
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	refresh, err := generateSecureToken()
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	record := model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: now.Add(refreshTokenTTL),
		CreatedAt: now,
	}
	if err := u.refreshTokens.Create(ctx, &record); err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserOutput(user),
	}, nil
}

func (u *AuthUsecase) sendVerification(user model.User, token string) {
	go func() {
		if err := u.mailer.SendVerificationEmail(user.Email, user.FirstName, token); err != nil {
			u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to send verification email")
		}
	}()
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		IsActive:        u.IsActive,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}
