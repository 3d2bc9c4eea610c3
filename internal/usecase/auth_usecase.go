package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	repo "github.com/IcaroDrumond17/onhappy/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	// emailかパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// パスワード照合の約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// アクセストークン発行の約束。実装はcmd/api側。
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	users    repo.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	logger   *slog.Logger
}

func NewAuthUsecase(users repo.UserRepository, verifier PasswordVerifier, issuer TokenIssuer, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{users: users, verifier: verifier, issuer: issuer, logger: logger}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token     string
	ExpiresIn int64 // 秒
	User      model.User
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		u.logger.Error("erro no login", slog.Any("error", err))
		return LoginOutput{}, err
	}
	if user == nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	now := time.Now()
	token, expiresAt, err := u.issuer.Issue(*user, now)
	if err != nil {
		u.logger.Error("erro ao emitir token", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return LoginOutput{}, err
	}

	return LoginOutput{
		Token:     token,
		ExpiresIn: int64(expiresAt.Sub(now).Seconds()),
		User:      *user,
	}, nil
}

// 認証済みユーザー自身の取得（/me）
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		u.logger.Error("erro ao obter usuário autenticado", slog.Int64("user_id", userID), slog.Any("error", err))
		return model.User{}, err
	}
	if user == nil {
		return model.User{}, repo.ErrNotFound
	}
	return *user, nil
}

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
