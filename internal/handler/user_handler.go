package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamerslobby/backend/internal/auth"
	apierr "gamerslobby/backend/internal/errors"
	"gamerslobby/backend/internal/models"
	"gamerslobby/backend/internal/repository"
)

const birthdayLayout = "2006-01-02"

// UserHandler serves the /utilisateurs resource.
type UserHandler struct {
	users repository.UserRepository
}

// NewUserHandler builds a user handler on top of the given repository.
func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// region --- DTOs ---

// UserPayload is the create/update body. Every field is a pointer so an
// absent field and an explicit zero value stay distinguishable: an
// explicit 0 or "" IS applied on update. Presence requirements depend on
// the method and are enforced by Validate.
type UserPayload struct {
	Pseudo             *string  `json:"pseudo" binding:"omitempty,max=25"`
	Firstname          *string  `json:"firstname" binding:"omitempty,max=255"`
	Lastname           *string  `json:"lastname" binding:"omitempty,max=255"`
	Email              *string  `json:"email" binding:"omitempty,max=255"`
	Password           *string  `json:"password" binding:"omitempty,min=8,max=200"`
	BirthdayDate       *string  `json:"birthday_date" binding:"omitempty,datetime=2006-01-02"`
	Phone              *int64   `json:"phone"`
	Picture            *string  `json:"picture" binding:"omitempty,max=255"`
	Wallet             *float64 `json:"wallet"`
	PlaystationAccount *string  `json:"playstation_account" binding:"omitempty,max=200"`
	XboxAccount        *string  `json:"xbox_account" binding:"omitempty,max=200"`
	NintendoAccount    *string  `json:"nintendo_account" binding:"omitempty,max=200"`
	SteamAccount       *string  `json:"steam_account" binding:"omitempty,max=200"`
	IsAdmin            *int     `json:"is_admin" binding:"omitempty,min=0,max=1"`
	Country            *string  `json:"country" binding:"omitempty,max=100"`
}

// UserResponse is a user as returned to clients; the password hash never
// appears here.
type UserResponse struct {
	ID                 uint    `json:"id"`
	Pseudo             string  `json:"pseudo"`
	Firstname          string  `json:"firstname"`
	Lastname           string  `json:"lastname"`
	Email              string  `json:"email"`
	BirthdayDate       string  `json:"birthday_date"`
	Phone              int64   `json:"phone"`
	Picture            string  `json:"picture"`
	Wallet             float64 `json:"wallet"`
	PlaystationAccount string  `json:"playstation_account"`
	XboxAccount        string  `json:"xbox_account"`
	NintendoAccount    string  `json:"nintendo_account"`
	SteamAccount       string  `json:"steam_account"`
	IsAdmin            int     `json:"is_admin"`
	Country            string  `json:"country"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Pseudo:             user.Pseudo,
		Firstname:          user.Firstname,
		Lastname:           user.Lastname,
		Email:              user.Email,
		BirthdayDate:       user.BirthdayDate.Format(birthdayLayout),
		Phone:              user.Phone,
		Picture:            user.Picture,
		Wallet:             user.Wallet,
		PlaystationAccount: user.PlaystationAccount,
		XboxAccount:        user.XboxAccount,
		NintendoAccount:    user.NintendoAccount,
		SteamAccount:       user.SteamAccount,
		IsAdmin:            user.IsAdmin,
		Country:            user.Country,
	}
}

// endregion

// region --- Middleware ---

// Validate schema-checks the request body. Required fields apply to
// creates only; all violations are reported together.
func (h *UserHandler) Validate(c *gin.Context) {
	var p UserPayload
	if !bindPayload(c, &p) {
		return
	}

	var missing []string
	if p.Pseudo == nil {
		missing = append(missing, "pseudo")
	}
	if p.Firstname == nil {
		missing = append(missing, "firstname")
	}
	if p.Lastname == nil {
		missing = append(missing, "lastname")
	}
	if p.Email == nil {
		missing = append(missing, "email")
	}
	if p.Password == nil {
		missing = append(missing, "password")
	}
	if p.BirthdayDate == nil {
		missing = append(missing, "birthday_date")
	}
	if !requireOnCreate(c, missing) {
		return
	}

	c.Set(payloadKey, &p)
	c.Next()
}

// RecordExists short-circuits updates aimed at an unknown id.
func (h *UserHandler) RecordExists(c *gin.Context) {
	if _, err := h.users.FindByID(c.Request.Context(), pathID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("User not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}
	c.Next()
}

// EmailIsFree rejects a candidate email already held by a different user.
// Advisory only: the unique index on the column is the real boundary, the
// guard just produces the friendlier 409 before the insert is attempted.
func (h *UserHandler) EmailIsFree(c *gin.Context) {
	p := userPayload(c)
	if p.Email == nil {
		c.Next()
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), *p.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Next()
			return
		}
		apierr.Abort(c, err)
		return
	}

	if existing.ID != pathID(c) {
		apierr.Abort(c, apierr.Conflict("Email already exists"))
		return
	}
	c.Next()
}

// PseudoIsFree rejects a candidate pseudo already held by a different
// user.
func (h *UserHandler) PseudoIsFree(c *gin.Context) {
	p := userPayload(c)
	if p.Pseudo == nil {
		c.Next()
		return
	}

	existing, err := h.users.FindByPseudo(c.Request.Context(), *p.Pseudo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Next()
			return
		}
		apierr.Abort(c, err)
		return
	}

	if existing.ID != pathID(c) {
		apierr.Abort(c, apierr.Conflict("Pseudo already exists"))
		return
	}
	c.Next()
}

func userPayload(c *gin.Context) *UserPayload {
	return c.MustGet(payloadKey).(*UserPayload)
}

// endregion

// region --- Handlers ---

// GetAll godoc
// @Summary      List users
// @Description  Returns all users, sorted and windowed by query parameters.
// @Description  The country/phone parameters narrow the result to the first
// @Description  match for that value.
// @Tags         users
// @Produce      json
// @Param        sortBy    query  string  false  "Sort field"
// @Param        order     query  string  false  "ASC or DESC"
// @Param        firstItem query  int     false  "Offset"
// @Param        limit     query  int     false  "Max rows"
// @Success      200  {array}   UserResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /utilisateurs [get]
func (h *UserHandler) GetAll(c *gin.Context) {
	if user, handled := h.findByReference(c); handled {
		if user != nil {
			c.JSON(http.StatusOK, []UserResponse{newUserResponse(*user)})
		}
		return
	}

	opts, ok := parseListOptions(c, map[string]string{
		"id":            "id",
		"pseudo":        "pseudo",
		"firstname":     "firstname",
		"lastname":      "lastname",
		"email":         "email",
		"birthday_date": "birthday_date",
		"wallet":        "wallet",
		"country":       "country",
	})
	if !ok {
		return
	}

	users, err := h.users.List(c.Request.Context(), opts)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, newUserResponse(user))
	}

	setContentRange(c, "utilisateurs", len(responses))
	c.JSON(http.StatusOK, responses)
}

// findByReference resolves the optional country/phone filters. handled
// reports that the request carried such a filter and a response or failure
// was produced.
func (h *UserHandler) findByReference(c *gin.Context) (*models.User, bool) {
	if country := c.Query("country"); country != "" {
		user, err := h.users.FindByCountry(c.Request.Context(), country)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierr.Abort(c, apierr.NotFound("User not found"))
			} else {
				apierr.Abort(c, err)
			}
			return nil, true
		}
		return user, true
	}

	if raw := c.Query("phone"); raw != "" {
		phone, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierr.Abort(c, apierr.Unprocessable(`"phone" must be a number`))
			return nil, true
		}

		user, err := h.users.FindByPhone(c.Request.Context(), phone)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierr.Abort(c, apierr.NotFound("User not found"))
			} else {
				apierr.Abort(c, err)
			}
			return nil, true
		}
		return user, true
	}

	return nil, false
}

// GetByID godoc
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      404  {object}  map[string]string
// @Router       /utilisateurs/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), pathID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Abort(c, apierr.NotFound("User not found"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(*user))
}

// Create godoc
// @Summary      Sign up a new user
// @Description  Creates a user; the password is hashed server-side and the
// @Description  plaintext is never persisted.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body  UserPayload  true  "User info"
// @Success      201  {object}  UserResponse
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /utilisateurs [post]
func (h *UserHandler) Create(c *gin.Context) {
	p := userPayload(c)

	hash, err := auth.HashPassword(*p.Password)
	if err != nil {
		apierr.Abort(c, apierr.Internal("User can't be created"))
		return
	}

	birthday, err := time.Parse(birthdayLayout, *p.BirthdayDate)
	if err != nil {
		apierr.Abort(c, apierr.Unprocessable(`"birthday_date" must be a date in 2006-01-02 format`))
		return
	}

	user := models.User{
		Pseudo:             *p.Pseudo,
		Firstname:          *p.Firstname,
		Lastname:           *p.Lastname,
		Email:              *p.Email,
		PasswordHash:       hash,
		BirthdayDate:       birthday,
		Phone:              deref(p.Phone),
		Picture:            deref(p.Picture),
		Wallet:             deref(p.Wallet),
		PlaystationAccount: deref(p.PlaystationAccount),
		XboxAccount:        deref(p.XboxAccount),
		NintendoAccount:    deref(p.NintendoAccount),
		SteamAccount:       deref(p.SteamAccount),
		IsAdmin:            deref(p.IsAdmin),
		Country:            deref(p.Country),
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Guard race lost: the unique index caught the duplicate.
			apierr.Abort(c, apierr.Conflict("Email or pseudo already exists"))
		} else {
			apierr.Abort(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Update godoc
// @Summary      Update a user
// @Description  Partial update; only fields present in the payload are
// @Description  touched, explicit zero values included. A supplied
// @Description  password is re-hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id     path  int          true  "User ID"
// @Param        input  body  UserPayload  true  "Fields to update"
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /utilisateurs/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id := pathID(c)
	p := userPayload(c)

	values, err := p.updateValues()
	if err != nil {
		apierr.Abort(c, apierr.Internal("User can't be updated"))
		return
	}

	if len(values) > 0 {
		rows, err := h.users.Update(c.Request.Context(), id, values)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apierr.Abort(c, apierr.Conflict("Email or pseudo already exists"))
			} else {
				apierr.Abort(c, apierr.Internal("User can't be updated"))
			}
			return
		}
		if rows == 0 {
			apierr.Abort(c, apierr.NotFound("User not found"))
			return
		}
		if rows != 1 {
			apierr.Abort(c, apierr.Internal("User can't be updated"))
			return
		}
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, apierr.Internal("User can't be updated"))
		return
	}

	c.JSON(http.StatusOK, newUserResponse(*user))
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /utilisateurs/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	rows, err := h.users.Delete(c.Request.Context(), pathID(c))
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	if rows != 1 {
		apierr.Abort(c, apierr.NotFound("User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// endregion

// updateValues maps the present payload fields to columns. Explicit zero
// values are applied; absent fields are skipped.
func (p *UserPayload) updateValues() (map[string]interface{}, error) {
	values := map[string]interface{}{}

	if p.Pseudo != nil {
		values["pseudo"] = *p.Pseudo
	}
	if p.Firstname != nil {
		values["firstname"] = *p.Firstname
	}
	if p.Lastname != nil {
		values["lastname"] = *p.Lastname
	}
	if p.Email != nil {
		values["email"] = *p.Email
	}
	if p.Password != nil {
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		values["hash_password"] = hash
	}
	if p.BirthdayDate != nil {
		birthday, err := time.Parse(birthdayLayout, *p.BirthdayDate)
		if err != nil {
			return nil, err
		}
		values["birthday_date"] = birthday
	}
	if p.Phone != nil {
		values["phone"] = *p.Phone
	}
	if p.Picture != nil {
		values["picture"] = *p.Picture
	}
	if p.Wallet != nil {
		values["wallet"] = *p.Wallet
	}
	if p.PlaystationAccount != nil {
		values["playstation_account"] = *p.PlaystationAccount
	}
	if p.XboxAccount != nil {
		values["xbox_account"] = *p.XboxAccount
	}
	if p.NintendoAccount != nil {
		values["nintendo_account"] = *p.NintendoAccount
	}
	if p.SteamAccount != nil {
		values["steam_account"] = *p.SteamAccount
	}
	if p.IsAdmin != nil {
		values["is_admin"] = *p.IsAdmin
	}
	if p.Country != nil {
		values["country"] = *p.Country
	}

	return values, nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
