package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierr "gamerslobby/backend/internal/errors"
	"gamerslobby/backend/internal/models"
	"gamerslobby/backend/internal/repository"
)

// GameHandler serves the /games resource.
type GameHandler struct {
	games repository.GameRepository
}

// NewGameHandler builds a game handler on top of the given repository.
func NewGameHandler(games repository.GameRepository) *GameHandler {
	return &GameHandler{games: games}
}

// GamePayload is the create/update body for games.
type GamePayload struct {
	Name *string `json:"name" binding:"omitempty,max=80"`
}

// Validate schema-checks the request body; name is required on create.
func (h *GameHandler) Validate(c *gin.Context) {
	var p GamePayload
	if !bindPayload(c, &p) {
		return
	}

	var missing []string
	if p.Name == nil {
		missing = append(missing, "name")
	}
	if !requireOnCreate(c, missing) {
		return
	}

	c.Set(payloadKey, &p)
	c.Next()
}

// RecordExists short-circuits updates aimed at an unknown id.
func (h *GameHandler) RecordExists(c *gin.Context) {
	if _, err := h.games.FindByID(c.Request.Context(), pathID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("Game not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}
	c.Next()
}

// NameIsFree rejects a candidate name already held by a different game.
func (h *GameHandler) NameIsFree(c *gin.Context) {
	p := gamePayload(c)
	if p.Name == nil {
		c.Next()
		return
	}

	existing, err := h.games.FindByName(c.Request.Context(), *p.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Next()
			return
		}
		apierr.Abort(c, err)
		return
	}

	if existing.ID != pathID(c) {
		apierr.Abort(c, apierr.Conflict("Name already exists"))
		return
	}
	c.Next()
}

func gamePayload(c *gin.Context) *GamePayload {
	return c.MustGet(payloadKey).(*GamePayload)
}

// GetAll godoc
// @Summary  List games
// @Tags     games
// @Produce  json
// @Success  200  {array}  models.Game
// @Router   /games [get]
func (h *GameHandler) GetAll(c *gin.Context) {
	opts, ok := parseListOptions(c, map[string]string{
		"id":   "id",
		"name": "name",
	})
	if !ok {
		return
	}

	games, err := h.games.List(c.Request.Context(), opts)
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if games == nil {
		games = []models.Game{}
	}

	setContentRange(c, "games", len(games))
	c.JSON(http.StatusOK, games)
}

// GetByID godoc
// @Summary  Get a game by id
// @Tags     games
// @Produce  json
// @Param    id  path  int  true  "Game ID"
// @Success  200  {object}  models.Game
// @Failure  404  {object}  map[string]string
// @Router   /games/{id} [get]
func (h *GameHandler) GetByID(c *gin.Context) {
	game, err := h.games.FindByID(c.Request.Context(), pathID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("Game not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, game)
}

// Create godoc
// @Summary  Create a game
// @Tags     games
// @Accept   json
// @Produce  json
// @Param    input  body  GamePayload  true  "Game info"
// @Success  201  {object}  models.Game
// @Failure  409  {object}  map[string]string
// @Failure  422  {object}  map[string]string
// @Router   /games [post]
func (h *GameHandler) Create(c *gin.Context) {
	p := gamePayload(c)

	game := models.Game{Name: *p.Name}
	if err := h.games.Create(c.Request.Context(), &game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierr.Abort(c, apierr.Conflict("Name already exists"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, game)
}

// Update godoc
// @Summary   Update a game
// @Tags      games
// @Accept    json
// @Produce   json
// @Security  CookieAuth
// @Param     id     path  int          true  "Game ID"
// @Param     input  body  GamePayload  true  "Fields to update"
// @Success   200  {object}  models.Game
// @Failure   404  {object}  map[string]string
// @Router    /games/{id} [put]
func (h *GameHandler) Update(c *gin.Context) {
	id := pathID(c)
	p := gamePayload(c)

	if p.Name != nil {
		rows, err := h.games.Update(c.Request.Context(), id, map[string]interface{}{"name": *p.Name})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apierr.Abort(c, apierr.Conflict("Name already exists"))
			} else {
				apierr.Abort(c, apierr.Internal("Game can't be updated"))
			}
			return
		}
		if rows == 0 {
			apierr.Abort(c, apierr.NotFound("Game not found"))
			return
		}
		if rows != 1 {
			apierr.Abort(c, apierr.Internal("Game can't be updated"))
			return
		}
	}

	game, err := h.games.FindByID(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, apierr.Internal("Game can't be updated"))
		return
	}

	c.JSON(http.StatusOK, game)
}

// Delete godoc
// @Summary   Delete a game
// @Tags      games
// @Produce   json
// @Security  CookieAuth
// @Param     id  path  int  true  "Game ID"
// @Success   200  {object}  map[string]string
// @Failure   404  {object}  map[string]string
// @Router    /games/{id} [delete]
func (h *GameHandler) Delete(c *gin.Context) {
	rows, err := h.games.Delete(c.Request.Context(), pathID(c))
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if rows != 1 {
		apierr.Abort(c, apierr.NotFound("Game not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}
