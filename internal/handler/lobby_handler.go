package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierr "gamerslobby/backend/internal/errors"
	"gamerslobby/backend/internal/models"
	"gamerslobby/backend/internal/repository"
)

// LobbyHandler serves the /lobbies resource.
type LobbyHandler struct {
	lobbies repository.LobbyRepository
}

// NewLobbyHandler builds a lobby handler on top of the given repository.
func NewLobbyHandler(lobbies repository.LobbyRepository) *LobbyHandler {
	return &LobbyHandler{lobbies: lobbies}
}

// LobbyPayload is the create/update body. References are bare numeric ids;
// out-of-range references are not validated here, the two participants and
// the game/console pairing are the store's concern.
type LobbyPayload struct {
	Price         *float64 `json:"price"`
	IDUserLocal   *uint    `json:"id_user_local"`
	IDUserAway    *uint    `json:"id_user_away"`
	IDGameConsole *uint    `json:"id_game_console"`
	ScoreLocal    *int     `json:"score_local"`
	ScoreAway     *int     `json:"score_away"`
	Date          *string  `json:"date" binding:"omitempty,max=255"`
}

// Validate schema-checks the request body; every field is required on
// create, optional on update.
func (h *LobbyHandler) Validate(c *gin.Context) {
	var p LobbyPayload
	if !bindPayload(c, &p) {
		return
	}

	var missing []string
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if p.IDUserLocal == nil {
		missing = append(missing, "id_user_local")
	}
	if p.IDUserAway == nil {
		missing = append(missing, "id_user_away")
	}
	if p.IDGameConsole == nil {
		missing = append(missing, "id_game_console")
	}
	if p.ScoreLocal == nil {
		missing = append(missing, "score_local")
	}
	if p.ScoreAway == nil {
		missing = append(missing, "score_away")
	}
	if p.Date == nil {
		missing = append(missing, "date")
	}
	if !requireOnCreate(c, missing) {
		return
	}

	c.Set(payloadKey, &p)
	c.Next()
}

// RecordExists short-circuits updates aimed at an unknown id.
func (h *LobbyHandler) RecordExists(c *gin.Context) {
	if _, err := h.lobbies.FindByID(c.Request.Context(), pathID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("Lobby not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}
	c.Next()
}

func lobbyPayload(c *gin.Context) *LobbyPayload {
	return c.MustGet(payloadKey).(*LobbyPayload)
}

// GetAll godoc
// @Summary      List lobbies
// @Description  Returns all lobbies. The local/away/gameConsole query
// @Description  parameters narrow the result to the first match for that
// @Description  reference.
// @Tags         lobbies
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   models.Lobby
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /lobbies [get]
func (h *LobbyHandler) GetAll(c *gin.Context) {
	if lobby, handled := h.findByReference(c); handled {
		if lobby != nil {
			c.JSON(http.StatusOK, []models.Lobby{*lobby})
		}
		return
	}

	opts, ok := parseListOptions(c, map[string]string{
		"id":              "id",
		"price":           "price",
		"id_user_local":   "id_user_local",
		"id_user_away":    "id_user_away",
		"id_game_console": "id_game_console",
		"score_local":     "score_local",
		"score_away":      "score_away",
		"date":            "date",
	})
	if !ok {
		return
	}

	lobbies, err := h.lobbies.List(c.Request.Context(), opts)
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if lobbies == nil {
		lobbies = []models.Lobby{}
	}

	setContentRange(c, "lobbies", len(lobbies))
	c.JSON(http.StatusOK, lobbies)
}

// findByReference resolves the optional local/away/gameConsole filters.
// handled reports that the request carried such a filter and a response or
// failure was produced.
func (h *LobbyHandler) findByReference(c *gin.Context) (*models.Lobby, bool) {
	lookups := []struct {
		param string
		find  func(id uint) (*models.Lobby, error)
	}{
		{"local", func(id uint) (*models.Lobby, error) {
			return h.lobbies.FindByLocalUser(c.Request.Context(), id)
		}},
		{"away", func(id uint) (*models.Lobby, error) {
			return h.lobbies.FindByAwayUser(c.Request.Context(), id)
		}},
		{"gameConsole", func(id uint) (*models.Lobby, error) {
			return h.lobbies.FindByGameConsole(c.Request.Context(), id)
		}},
	}

	for _, lookup := range lookups {
		raw := c.Query(lookup.param)
		if raw == "" {
			continue
		}

		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierr.Abort(c, apierr.Unprocessable(`"`+lookup.param+`" must be a number`))
			return nil, true
		}

		lobby, err := lookup.find(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierr.Abort(c, apierr.NotFound("Lobby not found"))
			} else {
				apierr.Abort(c, err)
			}
			return nil, true
		}
		return lobby, true
	}

	return nil, false
}

// GetByID godoc
// @Summary  Get a lobby by id
// @Tags     lobbies
// @Produce  json
// @Param    id  path  int  true  "Lobby ID"
// @Success  200  {object}  models.Lobby
// @Failure  404  {object}  map[string]string
// @Router   /lobbies/{id} [get]
func (h *LobbyHandler) GetByID(c *gin.Context) {
	lobby, err := h.lobbies.FindByID(c.Request.Context(), pathID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("Lobby not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, lobby)
}

// Create godoc
// @Summary  Create a lobby
// @Tags     lobbies
// @Accept   json
// @Produce  json
// @Param    input  body  LobbyPayload  true  "Lobby info"
// @Success  201  {object}  models.Lobby
// @Failure  422  {object}  map[string]string
// @Router   /lobbies [post]
func (h *LobbyHandler) Create(c *gin.Context) {
	p := lobbyPayload(c)

	lobby := models.Lobby{
		Price:         *p.Price,
		IDUserLocal:   *p.IDUserLocal,
		IDUserAway:    *p.IDUserAway,
		IDGameConsole: *p.IDGameConsole,
		ScoreLocal:    *p.ScoreLocal,
		ScoreAway:     *p.ScoreAway,
		Date:          *p.Date,
	}

	if err := h.lobbies.Create(c.Request.Context(), &lobby); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, lobby)
}

// Update godoc
// @Summary      Update a lobby
// @Description  Partial update, typically to record scores and date after
// @Description  a match. Explicit zero scores are applied.
// @Tags         lobbies
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id     path  int           true  "Lobby ID"
// @Param        input  body  LobbyPayload  true  "Fields to update"
// @Success      200  {object}  models.Lobby
// @Failure      404  {object}  map[string]string
// @Router       /lobbies/{id} [put]
func (h *LobbyHandler) Update(c *gin.Context) {
	id := pathID(c)
	p := lobbyPayload(c)

	values := p.updateValues()
	if len(values) > 0 {
		rows, err := h.lobbies.Update(c.Request.Context(), id, values)
		if err != nil {
			apierr.Abort(c, apierr.Internal("Lobby can't be updated"))
			return
		}
		if rows == 0 {
			apierr.Abort(c, apierr.NotFound("Lobby not found"))
			return
		}
		if rows != 1 {
			apierr.Abort(c, apierr.Internal("Lobby can't be updated"))
			return
		}
	}

	lobby, err := h.lobbies.FindByID(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, apierr.Internal("Lobby can't be updated"))
		return
	}

	c.JSON(http.StatusOK, lobby)
}

// Delete godoc
// @Summary   Delete a lobby
// @Tags      lobbies
// @Produce   json
// @Security  CookieAuth
// @Param     id  path  int  true  "Lobby ID"
// @Success   200  {object}  map[string]string
// @Failure   404  {object}  map[string]string
// @Router    /lobbies/{id} [delete]
func (h *LobbyHandler) Delete(c *gin.Context) {
	rows, err := h.lobbies.Delete(c.Request.Context(), pathID(c))
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if rows != 1 {
		apierr.Abort(c, apierr.NotFound("Lobby not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lobby deleted"})
}

func (p *LobbyPayload) updateValues() map[string]interface{} {
	values := map[string]interface{}{}

	if p.Price != nil {
		values["price"] = *p.Price
	}
	if p.IDUserLocal != nil {
		values["id_user_local"] = *p.IDUserLocal
	}
	if p.IDUserAway != nil {
		values["id_user_away"] = *p.IDUserAway
	}
	if p.IDGameConsole != nil {
		values["id_game_console"] = *p.IDGameConsole
	}
	if p.ScoreLocal != nil {
		values["score_local"] = *p.ScoreLocal
	}
	if p.ScoreAway != nil {
		values["score_away"] = *p.ScoreAway
	}
	if p.Date != nil {
		values["date"] = *p.Date
	}

	return values
}
