// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance_backend/internal/feature/auth/domain/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// maxSessionsPerUser は1ユーザーが同時に保持できるセッション数の上限です。
	// 上限到達時は最も古いセッションが破棄されます。
	maxSessionsPerUser = 5

	// refreshTokenTTL はリフレッシュセッションの有効期間です。
	refreshTokenTTL = 30 * 24 * time.Hour
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// TokenPair はログイン・リフレッシュ成功時に発行されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // アクセストークンの有効期間（秒）
}

// ClientInfo はセッションに記録するクライアント情報です。
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users          UserRepository
	sessions       SessionRepository
	jwtGenerator   JWTGenerator
	accessTokenTTL time.Duration
	now            func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// accessTokenTTLはJWTジェネレーターの有効期間と一致させます。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, accessTokenTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:          users,
		sessions:       sessions,
		jwtGenerator:   jwtGenerator,
		accessTokenTTL: accessTokenTTL,
		now:            time.Now,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: email, Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュセッションを発行します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (TokenPair, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return TokenPair{}, errors.New("invalid email or password")
	}

	return u.issueTokens(ctx, user, client)
}

// Refresh はリフレッシュトークンを検証し、新しいトークンの組を発行します。
// 使用済みセッションは失効させ、トークンをローテーションします。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if session.IsRevoked() {
		return TokenPair{}, ErrSessionRevoked
	}
	if session.IsExpired() {
		return TokenPair{}, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return TokenPair{}, err
	}

	// ローテーション: 使用済みセッションを失効させてから新規発行する
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return TokenPair{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	return u.issueTokens(ctx, user, ClientInfo{UserAgent: session.UserAgent, IPAddress: session.IPAddress})
}

// Logout は指定されたリフレッシュセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrInvalidRefreshToken
	}
	return u.sessions.Revoke(ctx, refreshToken)
}

// issueTokens はアクセストークンとリフレッシュセッションを発行します。
// セッション数が上限に達している場合、最も古いセッションを破棄します。
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, client ClientInfo) (TokenPair, error) {
	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate token: %w", err)
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return TokenPair{}, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: u.now(),
		ExpiresAt: u.now().Add(refreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return TokenPair{}, fmt.Errorf("failed to create session: %w", err)
	}

	return TokenPair{
		AccessToken:  token,
		RefreshToken: session.ID,
		ExpiresIn:    int64(u.accessTokenTTL.Seconds()),
	}, nil
}
