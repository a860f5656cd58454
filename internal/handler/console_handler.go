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

// ConsoleHandler serves the /consoles resource. Same shape as games: a
// single unique name.
type ConsoleHandler struct {
	consoles repository.ConsoleRepository
}

// NewConsoleHandler builds a console handler on top of the given
// repository.
func NewConsoleHandler(consoles repository.ConsoleRepository) *ConsoleHandler {
	return &ConsoleHandler{consoles: consoles}
}

// ConsolePayload is the create/update body for consoles.
type ConsolePayload struct {
	Name *string `json:"name" binding:"omitempty,max=80"`
}

// Validate schema-checks the request body; name is required on create.
func (h *ConsoleHandler) Validate(c *gin.Context) {
	var p ConsolePayload
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
func (h *ConsoleHandler) RecordExists(c *gin.Context) {
	if _, err := h.consoles.FindByID(c.Request.Context(), pathID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("Console not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}
	c.Next()
}

// NameIsFree rejects a candidate name already held by a different console.
func (h *ConsoleHandler) NameIsFree(c *gin.Context) {
	p := consolePayload(c)
	if p.Name == nil {
		c.Next()
		return
	}

	existing, err := h.consoles.FindByName(c.Request.Context(), *p.Name)
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

func consolePayload(c *gin.Context) *ConsolePayload {
	return c.MustGet(payloadKey).(*ConsolePayload)
}

func (h *ConsoleHandler) GetAll(c *gin.Context) {
	opts, ok := parseListOptions(c, map[string]string{
		"id":   "id",
		"name": "name",
	})
	if !ok {
		return
	}

	consoles, err := h.consoles.List(c.Request.Context(), opts)
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if consoles == nil {
		consoles = []models.Console{}
	}

	setContentRange(c, "consoles", len(consoles))
	c.JSON(http.StatusOK, consoles)
}

func (h *ConsoleHandler) GetByID(c *gin.Context) {
	console, err := h.consoles.FindByID(c.Request.Context(), pathID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("Console not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, console)
}

func (h *ConsoleHandler) Create(c *gin.Context) {
	p := consolePayload(c)

	console := models.Console{Name: *p.Name}
	if err := h.consoles.Create(c.Request.Context(), &console); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierr.Abort(c, apierr.Conflict("Name already exists"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, console)
}

func (h *ConsoleHandler) Update(c *gin.Context) {
	id := pathID(c)
	p := consolePayload(c)

	if p.Name != nil {
		rows, err := h.consoles.Update(c.Request.Context(), id, map[string]interface{}{"name": *p.Name})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apierr.Abort(c, apierr.Conflict("Name already exists"))
			} else {
				apierr.Abort(c, apierr.Internal("Console can't be updated"))
			}
			return
		}
		if rows == 0 {
			apierr.Abort(c, apierr.NotFound("Console not found"))
			return
		}
		if rows != 1 {
			apierr.Abort(c, apierr.Internal("Console can't be updated"))
			return
		}
	}

	console, err := h.consoles.FindByID(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, apierr.Internal("Console can't be updated"))
		return
	}

	c.JSON(http.StatusOK, console)
}

func (h *ConsoleHandler) Delete(c *gin.Context) {
	rows, err := h.consoles.Delete(c.Request.Context(), pathID(c))
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if rows != 1 {
		apierr.Abort(c, apierr.NotFound("Console not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Console deleted"})
}
