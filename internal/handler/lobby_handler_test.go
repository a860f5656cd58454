package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gamerslobby/backend/internal/models"
	"gamerslobby/backend/internal/repository"
)

const validLobbyBody = `{
	"price": 10.5,
	"id_user_local": 1,
	"id_user_away": 2,
	"id_game_console": 3,
	"score_local": 0,
	"score_away": 0,
	"date": "2026-09-01"
}`

func TestCreateLobby_Valid(t *testing.T) {
	env := newEnv()

	env.lobbies.On("Create", mock.Anything, mock.AnythingOfType("*models.Lobby")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Lobby).ID = 8
	}).Return(nil)

	w := env.request(http.MethodPost, "/lobbies", validLobbyBody)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(8), resp["id"])
	assert.Equal(t, float64(10.5), resp["price"])
	assert.Equal(t, float64(1), resp["id_user_local"])
	assert.Equal(t, float64(2), resp["id_user_away"])
}

func TestCreateLobby_MissingFields(t *testing.T) {
	env := newEnv()

	w := env.request(http.MethodPost, "/lobbies", `{"price": 10.5}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	for _, field := range []string{"id_user_local", "id_user_away", "id_game_console", "score_local", "score_away", "date"} {
		assert.Contains(t, w.Body.String(), `\"`+field+`\" is required`)
	}
	env.lobbies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Recording a shut-out: an explicit zero score must be written.
func TestUpdateLobby_ZeroScoreApplied(t *testing.T) {
	env := newEnv()
	cookie := env.cookieFor("player", 1, 0)

	env.lobbies.On("FindByID", mock.Anything, uint(8)).Return(&models.Lobby{ID: 8}, nil)
	env.lobbies.On("Update", mock.Anything, uint(8), map[string]interface{}{
		"score_local": 3,
		"score_away":  0,
	}).Return(int64(1), nil)

	w := env.request(http.MethodPut, "/lobbies/8", `{"score_local": 3, "score_away": 0}`, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	env.lobbies.AssertExpectations(t)
}

func TestUpdateLobby_RequiresAuth(t *testing.T) {
	env := newEnv()

	w := env.request(http.MethodPut, "/lobbies/8", `{"score_local": 3}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLobbies_DefaultOrder(t *testing.T) {
	env := newEnv()

	env.lobbies.On("List", mock.Anything, repository.ListOptions{}).Return([]models.Lobby{
		{ID: 1}, {ID: 2}, {ID: 3},
	}, nil)

	w := env.request(http.MethodGet, "/lobbies", "", env.cookieFor("admin", 1, 1))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lobbies : 0-3/4", w.Header().Get("Content-Range"))
	env.lobbies.AssertExpectations(t)
}

func TestGetLobbies_LocalUserFilter(t *testing.T) {
	env := newEnv()

	env.lobbies.On("FindByLocalUser", mock.Anything, uint(5)).Return(&models.Lobby{ID: 2, IDUserLocal: 5}, nil)

	w := env.request(http.MethodGet, "/lobbies?local=5", "", env.cookieFor("admin", 1, 1))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id_user_local":5`)
	env.lobbies.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetLobbies_AwayUserFilterNoMatch(t *testing.T) {
	env := newEnv()

	env.lobbies.On("FindByAwayUser", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	w := env.request(http.MethodGet, "/lobbies?away=9", "", env.cookieFor("admin", 1, 1))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLobby_AdminRequired(t *testing.T) {
	env := newEnv()

	w := env.request(http.MethodDelete, "/lobbies/8", "", env.cookieFor("player", 2, 0))

	assert.Equal(t, http.StatusForbidden, w.Code)
	env.lobbies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteLobby_NotFound(t *testing.T) {
	env := newEnv()

	env.lobbies.On("Delete", mock.Anything, uint(8)).Return(int64(0), nil)

	w := env.request(http.MethodDelete, "/lobbies/8", "", env.cookieFor("admin", 1, 1))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Lobby not found")
}
