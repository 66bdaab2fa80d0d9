package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tiktok/config"
	"tiktok/internal/domain/entity"
	"tiktok/internal/domain/repository"
	"tiktok/internal/domain/service"
	"tiktok/internal/infra/auth"
	"tiktok/internal/infra/mail"
	"tiktok/internal/infra/persistence/memory"
	"tiktok/internal/infra/qrcode"
	"tiktok/internal/infra/validator"
	"tiktok/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	sendVerification := true

	return &config.Config{
		SecretKey: "test_secret_key_very_long_for_testing",
		Token: &config.TokenConfig{
			AccessLifetime:       5 * time.Minute,
			RefreshLifetime:      7 * 24 * time.Hour,
			VerificationLifetime: 24 * time.Hour,
		},
		Auth: &config.AuthConfig{
			BcryptCost:            bcrypt.MinCost,
			SendVerificationEmail: &sendVerification,
		},
		Email: &config.EmailConfig{
			Backend:         config.EmailBackendMemory,
			DefaultFrom:     "webmaster@localhost",
			VerificationURL: "http://localhost:8000/api/v1/auth/verify-email/",
		},
		QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M", BaseURL: "https://tiktok.test"},
	}
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []service.AccountEvent
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, *event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}

	return types
}

// accountFixture wires the real services against the in-memory store.
type accountFixture struct {
	cfg       *config.Config
	store     *memory.Store
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	tokens    service.TokenService
	codec     service.VerificationCodec
	mailer    *mail.MemorySender
	publisher *recordingPublisher

	users    usecase.UserUsecase
	profiles usecase.ProfileUsecase
	sessions usecase.SessionUsecase
	authz    service.Authorizer
}

func newAccountFixture(t *testing.T, mutate ...func(cfg *config.Config)) *accountFixture {
	t.Helper()

	cfg := newTestConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	codec, err := auth.NewVerificationCodec(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	fx := &accountFixture{
		cfg:       cfg,
		store:     store,
		userRepo:  memory.NewUserRepository(store),
		hasher:    auth.NewBcryptHasher(cfg),
		tokens:    tokens,
		codec:     codec,
		mailer:    mail.NewMemorySender(),
		publisher: &recordingPublisher{},
	}

	logger := newDiscardLogger()
	inputValidator := validator.New()

	authenticator := NewCredentialAuthenticator(AuthenticatorParams{
		UserRepo: fx.userRepo,
		Hasher:   fx.hasher,
		Config:   cfg,
		Logger:   logger,
	})

	fx.users = NewUserService(UserServiceParams{
		TxManager:         memory.NewTransactionManager(store),
		UserRepo:          fx.userRepo,
		Hasher:            fx.hasher,
		TokenService:      tokens,
		VerificationCodec: codec,
		Authenticator:     authenticator,
		MailSender:        fx.mailer,
		EventPublisher:    fx.publisher,
		Validator:         inputValidator,
		Config:            cfg,
		Logger:            logger,
	})
	fx.profiles = NewProfileService(ProfileServiceParams{
		UserRepo:  fx.userRepo,
		QRCode:    qrcode.New(cfg),
		Validator: inputValidator,
		Logger:    logger,
	})
	fx.sessions = NewSessionService(SessionServiceParams{
		TokenService: tokens,
		Validator:    inputValidator,
		Logger:       logger,
	})
	fx.authz = NewTokenAuthorizer(AuthorizerParams{
		TokenService: tokens,
		UserRepo:     fx.userRepo,
		Config:       cfg,
	})

	return fx
}

func (fx *accountFixture) register(t *testing.T, email, password string) *entity.User {
	t.Helper()

	out, err := fx.users.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Email:    email,
		Password: password,
		Username: "tester",
	})
	require.NoError(t, err)

	return out.User
}

func (fx *accountFixture) activate(t *testing.T, user *entity.User) {
	t.Helper()

	token, err := fx.codec.Issue(user)
	require.NoError(t, err)

	_, err = fx.users.VerifyEmail(context.Background(), &usecase.VerifyEmailInput{Token: token})
	require.NoError(t, err)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
