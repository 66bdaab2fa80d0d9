package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"tiktok/config"
	apimiddleware "tiktok/internal/delivery/api/middleware"
	"tiktok/internal/delivery/api/router"
	"tiktok/internal/delivery/api/router/handler"
	"tiktok/internal/domain/entity"
	"tiktok/internal/domain/service"
	"tiktok/internal/infra/auth"
	"tiktok/internal/infra/mail"
	"tiktok/internal/infra/persistence/memory"
	"tiktok/internal/infra/pubsub"
	"tiktok/internal/infra/qrcode"
	"tiktok/internal/infra/validator"
	"tiktok/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type apiFixture struct {
	e      *echo.Echo
	mailer *mail.MemorySender
	codec  service.VerificationCodec
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{
		SecretKey: "test_secret_key_very_long_for_testing",
		Auth:      &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Database:  &config.DatabaseConfig{Driver: config.DriverMemory},
		Metrics:   &config.MetricsConfig{Enabled: true},
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	hasher := auth.NewBcryptHasher(cfg)
	inputValidator := validator.New()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	codec, err := auth.NewVerificationCodec(cfg)
	require.NoError(t, err)
	mailer := mail.NewMemorySender()

	authenticator := impl.NewCredentialAuthenticator(impl.AuthenticatorParams{
		UserRepo: userRepo, Hasher: hasher, Config: cfg, Logger: logger,
	})
	authorizer := impl.NewTokenAuthorizer(impl.AuthorizerParams{
		TokenService: tokens, UserRepo: userRepo, Config: cfg,
	})

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager:         memory.NewTransactionManager(store),
		UserRepo:          userRepo,
		Hasher:            hasher,
		TokenService:      tokens,
		VerificationCodec: codec,
		Authenticator:     authenticator,
		MailSender:        mailer,
		EventPublisher:    pubsub.NewNoopPublisher(logger),
		Validator:         inputValidator,
		Config:            cfg,
		Logger:            logger,
	})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{
		UserRepo: userRepo, QRCode: qrcode.New(cfg), Validator: inputValidator, Logger: logger,
	})
	sessionUC := impl.NewSessionService(impl.SessionServiceParams{
		TokenService: tokens, Validator: inputValidator, Logger: logger,
	})

	e := NewEcho(cfg, logger, router.RouterParams{
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: userUC, Logger: logger}),
		ProfileHandler: handler.NewProfileHandler(handler.ProfileHandlerParams{ProfileUC: profileUC}),
		SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{SessionUC: sessionUC}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(authorizer),
		Config:         cfg,
	})

	return &apiFixture{e: e, mailer: mailer, codec: codec}
}

func (fx *apiFixture) do(t *testing.T, method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func (fx *apiFixture) signupAndLogin(t *testing.T, email string) handler.LoginResponse {
	t.Helper()

	rec, _ := fx.do(t, http.MethodPost, "/api/v1/auth/signup/", "", map[string]string{
		"email": email, "password": "password1", "username": "user",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := fx.do(t, http.MethodPost, "/api/v1/auth/login/", "", map[string]string{
		"email": email, "password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login handler.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))

	return login
}

func TestAPI_Signup(t *testing.T) {
	fx := newAPIFixture(t)

	rec, env := fx.do(t, http.MethodPost, "/api/v1/auth/signup/", "", map[string]string{
		"email":      "alice@example.com",
		"password":   "password1",
		"username":   "alice",
		"phone":      "0912345678",
		"first_name": "Alice",
		"last_name":  "L",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice", user["first_name"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "is_active")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	assert.Len(t, fx.mailer.Messages(), 1)
}

func TestAPI_Signup_FieldErrors(t *testing.T) {
	fx := newAPIFixture(t)
	fx.signupAndLogin(t, "taken@example.com")

	rec, env := fx.do(t, http.MethodPost, "/api/v1/auth/signup/", "", map[string]string{
		"email": "taken@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.JSONEq(t, `{"email":"user with this email already exists."}`, string(env.Data))

	rec, env = fx.do(t, http.MethodPost, "/api/v1/auth/signup/", "", map[string]string{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"email":"Enter a valid email address.","password":"This field is required."}`, string(env.Data))
}

func TestAPI_Signup_MalformedBody(t *testing.T) {
	fx := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup/", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	fx.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":{"error":"Malformed request body"}}`, rec.Body.String())
}

func TestAPI_Login(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "bob@example.com")

	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, "bob@example.com", login.User.Email)
	assert.Equal(t, "user", login.User.Username)

	rec, env := fx.do(t, http.MethodPost, "/api/v1/auth/login/", "", map[string]string{
		"email": "bob@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid Credentials"}`, string(env.Data))
}

func TestAPI_VerifyEmail(t *testing.T) {
	fx := newAPIFixture(t)
	fx.signupAndLogin(t, "carol@example.com")

	messages := fx.mailer.Messages()
	require.Len(t, messages, 1)
	link, err := url.Parse(strings.TrimPrefix(messages[0].Body, "Click here to verify your email: "))
	require.NoError(t, err)
	target := link.Path + "?" + link.RawQuery

	rec, env := fx.do(t, http.MethodGet, target, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Email verified successfully"}`, string(env.Data))

	rec, env = fx.do(t, http.MethodGet, target, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Email already verified"}`, string(env.Data))
}

func TestAPI_VerifyEmail_Errors(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "dan@example.com")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "missing", target: "/api/v1/auth/verify-email/", want: "Token is required"},
		{name: "garbage", target: "/api/v1/auth/verify-email/?token=abc", want: "Invalid or expired token"},
		{name: "session token", target: "/api/v1/auth/verify-email/?token=" + login.AccessToken, want: "Invalid token purpose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := fx.do(t, http.MethodGet, tt.target, "", nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, string(env.Data))
		})
	}
}

func TestAPI_Profile(t *testing.T) {
	fx := newAPIFixture(t)
	first := fx.signupAndLogin(t, "erin@example.com")
	second := fx.signupAndLogin(t, "fred@example.com")

	rec, env := fx.do(t, http.MethodGet, "/api/v1/auth/profile/", first.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var own handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &own))
	assert.Equal(t, first.User.ID, own.ID)

	rec, env = fx.do(t, http.MethodGet, "/api/v1/auth/profile/?id="+itoa(second.User.ID), first.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var other handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &other))
	assert.Equal(t, "fred@example.com", other.Email)

	rec, env = fx.do(t, http.MethodGet, "/api/v1/auth/profile/?id=999", first.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No User matches the given query."}`, string(env.Data))

	for _, id := range []string{"0", "-3"} {
		rec, env = fx.do(t, http.MethodGet, "/api/v1/auth/profile/?id="+id, first.AccessToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"No User matches the given query."}`, string(env.Data))
	}

	rec, env = fx.do(t, http.MethodGet, "/api/v1/auth/profile/?id=abc", first.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid user id"}`, string(env.Data))
}

func TestAPI_Profile_RequiresAccessToken(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "gina@example.com")

	for name, token := range map[string]string{
		"none":    "",
		"refresh": login.RefreshToken,
		"garbage": "abc",
	} {
		t.Run(name, func(t *testing.T) {
			rec, env := fx.do(t, http.MethodGet, "/api/v1/auth/profile/", token, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
			assert.Contains(t, string(env.Data), `"error"`)
		})
	}
}

func TestAPI_UpdateProfile(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "hank@example.com")

	rec, env := fx.do(t, http.MethodPut, "/api/v1/auth/profile/update", login.AccessToken, map[string]string{
		"last_name": "Hill",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var user handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Hill", user.LastName)
	assert.Equal(t, "user", user.Username)

	rec, env = fx.do(t, http.MethodPut, "/api/v1/auth/profile/update", login.AccessToken, map[string]string{
		"phone": strings.Repeat("9", 16),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), `"phone"`)
}

func TestAPI_ProfileQRCode(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "ivy@example.com")

	rec, _ := fx.do(t, http.MethodGet, "/api/v1/auth/profile/qrcode", login.AccessToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestAPI_TokenRefreshAndVerify(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "jack@example.com")

	rec, env := fx.do(t, http.MethodPost, "/api/v1/auth/token/refresh/", "", map[string]string{"refresh": login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	var access handler.AccessResponse
	require.NoError(t, json.Unmarshal(env.Data, &access))
	assert.NotEmpty(t, access.Access)

	rec, env = fx.do(t, http.MethodPost, "/api/v1/auth/token/verify/", "", map[string]string{"token": access.Access})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, string(env.Data))

	rec, _ = fx.do(t, http.MethodPost, "/api/v1/auth/token/refresh/", "", map[string]string{"refresh": login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = fx.do(t, http.MethodPost, "/api/v1/auth/token/verify/", "", map[string]string{"token": "abc"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_VerificationTokenIsNotAnAccessToken(t *testing.T) {
	fx := newAPIFixture(t)
	login := fx.signupAndLogin(t, "kate@example.com")

	token, err := fx.codec.Issue(&entity.User{ID: login.User.ID})
	require.NoError(t, err)

	rec, _ := fx.do(t, http.MethodGet, "/api/v1/auth/profile/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = fx.do(t, http.MethodPost, "/api/v1/auth/token/verify/", "", map[string]string{"token": token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	fx := newAPIFixture(t)

	rec, env := fx.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))

	rec, _ = fx.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestAPI_UnknownRoute(t *testing.T) {
	fx := newAPIFixture(t)

	rec, env := fx.do(t, http.MethodGet, "/api/v1/auth/nope/", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
