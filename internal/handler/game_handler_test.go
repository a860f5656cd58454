package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gamerslobby/backend/internal/models"
)

func TestCreateGame_Valid(t *testing.T) {
	env := newEnv()

	env.games.On("FindByName", mock.Anything, "Rocket League").Return(nil, gorm.ErrRecordNotFound)
	env.games.On("Create", mock.Anything, mock.AnythingOfType("*models.Game")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Game).ID = 4
	}).Return(nil)

	w := env.request(http.MethodPost, "/games", `{"name": "Rocket League"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(4), resp["id"])
	assert.Equal(t, "Rocket League", resp["name"])
}

func TestCreateGame_MissingName(t *testing.T) {
	env := newEnv()

	w := env.request(http.MethodPost, "/games", `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `\"name\" is required`)
	env.games.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGame_NameTooLong(t *testing.T) {
	env := newEnv()

	name := make([]byte, 81)
	for i := range name {
		name[i] = 'x'
	}

	w := env.request(http.MethodPost, "/games", `{"name": "`+string(name)+`"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateGame_DuplicateName(t *testing.T) {
	env := newEnv()

	env.games.On("FindByName", mock.Anything, "Rocket League").Return(&models.Game{ID: 2, Name: "Rocket League"}, nil)

	w := env.request(http.MethodPost, "/games", `{"name": "Rocket League"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Name already exists")
	env.games.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Renaming a game to its own current name is not a conflict.
func TestUpdateGame_SameNameSameRecord(t *testing.T) {
	env := newEnv()
	cookie := env.cookieFor("player", 2, 0)

	env.games.On("FindByID", mock.Anything, uint(2)).Return(&models.Game{ID: 2, Name: "Rocket League"}, nil)
	env.games.On("FindByName", mock.Anything, "Rocket League").Return(&models.Game{ID: 2, Name: "Rocket League"}, nil)
	env.games.On("Update", mock.Anything, uint(2), map[string]interface{}{"name": "Rocket League"}).Return(int64(1), nil)

	w := env.request(http.MethodPut, "/games/2", `{"name": "Rocket League"}`, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	env.games.AssertExpectations(t)
}

func TestUpdateGame_NameTakenByOther(t *testing.T) {
	env := newEnv()
	cookie := env.cookieFor("player", 2, 0)

	env.games.On("FindByID", mock.Anything, uint(2)).Return(&models.Game{ID: 2, Name: "Rocket League"}, nil)
	env.games.On("FindByName", mock.Anything, "FIFA 23").Return(&models.Game{ID: 9, Name: "FIFA 23"}, nil)

	w := env.request(http.MethodPut, "/games/2", `{"name": "FIFA 23"}`, cookie)

	assert.Equal(t, http.StatusConflict, w.Code)
	env.games.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetGameByID_NotFound(t *testing.T) {
	env := newEnv()

	env.games.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

	w := env.request(http.MethodGet, "/games/5", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Game not found")
}

func TestDeleteGame(t *testing.T) {
	env := newEnv()

	env.games.On("Delete", mock.Anything, uint(5)).Return(int64(1), nil)

	w := env.request(http.MethodDelete, "/games/5", "", env.cookieFor("admin", 1, 1))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Game deleted")
}

func TestGetGames_ContentRange(t *testing.T) {
	env := newEnv()

	env.games.On("List", mock.Anything, mock.Anything).Return([]models.Game{
		{ID: 1, Name: "Rocket League"},
		{ID: 2, Name: "FIFA 23"},
		{ID: 3, Name: "Mario Kart 8"},
	}, nil)

	w := env.request(http.MethodGet, "/games", "", env.cookieFor("admin", 1, 1))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "games : 0-3/4", w.Header().Get("Content-Range"))
}

func TestCreateConsole_DuplicateName(t *testing.T) {
	env := newEnv()

	env.consoles.On("FindByName", mock.Anything, "PS5").Return(&models.Console{ID: 1, Name: "PS5"}, nil)

	w := env.request(http.MethodPost, "/consoles", `{"name": "PS5"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	env.consoles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateConsole_Valid(t *testing.T) {
	env := newEnv()

	env.consoles.On("FindByName", mock.Anything, "Switch").Return(nil, gorm.ErrRecordNotFound)
	env.consoles.On("Create", mock.Anything, mock.AnythingOfType("*models.Console")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Console).ID = 2
	}).Return(nil)

	w := env.request(http.MethodPost, "/consoles", `{"name": "Switch"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Switch")
}
