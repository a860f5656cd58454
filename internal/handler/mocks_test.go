package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"gamerslobby/backend/internal/auth"
	"gamerslobby/backend/internal/config"
	"gamerslobby/backend/internal/handler"
	"gamerslobby/backend/internal/models"
	"gamerslobby/backend/internal/repository"
	"gamerslobby/backend/internal/router"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, opts repository.ListOptions) ([]models.User, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	args := m.Called(ctx, pseudo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByCountry(ctx context.Context, country string) (*models.User, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone int64) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockGameRepository is a mock implementation of repository.GameRepository.
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) List(ctx context.Context, opts repository.ListOptions) ([]models.Game, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByName(ctx context.Context, name string) (*models.Game, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGameRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockConsoleRepository is a mock implementation of repository.ConsoleRepository.
type MockConsoleRepository struct {
	mock.Mock
}

func (m *MockConsoleRepository) List(ctx context.Context, opts repository.ListOptions) ([]models.Console, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Console), args.Error(1)
}

func (m *MockConsoleRepository) FindByID(ctx context.Context, id uint) (*models.Console, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Console), args.Error(1)
}

func (m *MockConsoleRepository) FindByName(ctx context.Context, name string) (*models.Console, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Console), args.Error(1)
}

func (m *MockConsoleRepository) Create(ctx context.Context, console *models.Console) error {
	args := m.Called(ctx, console)
	return args.Error(0)
}

func (m *MockConsoleRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConsoleRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockLobbyRepository is a mock implementation of repository.LobbyRepository.
type MockLobbyRepository struct {
	mock.Mock
}

func (m *MockLobbyRepository) List(ctx context.Context, opts repository.ListOptions) ([]models.Lobby, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lobby), args.Error(1)
}

func (m *MockLobbyRepository) FindByID(ctx context.Context, id uint) (*models.Lobby, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lobby), args.Error(1)
}

func (m *MockLobbyRepository) FindByLocalUser(ctx context.Context, userID uint) (*models.Lobby, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lobby), args.Error(1)
}

func (m *MockLobbyRepository) FindByAwayUser(ctx context.Context, userID uint) (*models.Lobby, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lobby), args.Error(1)
}

func (m *MockLobbyRepository) FindByGameConsole(ctx context.Context, gameConsoleID uint) (*models.Lobby, error) {
	args := m.Called(ctx, gameConsoleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lobby), args.Error(1)
}

func (m *MockLobbyRepository) Create(ctx context.Context, lobby *models.Lobby) error {
	args := m.Called(ctx, lobby)
	return args.Error(0)
}

func (m *MockLobbyRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLobbyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// testEnv bundles the wired router and its mocked repositories.
type testEnv struct {
	router   *gin.Engine
	tokens   *auth.TokenService
	users    *MockUserRepository
	games    *MockGameRepository
	consoles *MockConsoleRepository
	lobbies  *MockLobbyRepository
}

func newEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:          "8000",
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
		CORSOrigins:   "http://localhost:3000",
	}

	env := &testEnv{
		tokens:   auth.NewTokenService(cfg.JWTSecret, 24*time.Hour),
		users:    new(MockUserRepository),
		games:    new(MockGameRepository),
		consoles: new(MockConsoleRepository),
		lobbies:  new(MockLobbyRepository),
	}

	env.router = router.New(
		cfg,
		env.tokens,
		handler.NewAuthHandler(env.users, env.tokens),
		handler.NewUserHandler(env.users),
		handler.NewGameHandler(env.games),
		handler.NewConsoleHandler(env.consoles),
		handler.NewLobbyHandler(env.lobbies),
	)

	return env
}

func (e *testEnv) request(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) cookieFor(pseudo string, id uint, admin int) *http.Cookie {
	token, err := e.tokens.Issue(pseudo, id, admin)
	if err != nil {
		panic(err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}
