package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamerslobby/backend/internal/auth"
	apierr "gamerslobby/backend/internal/errors"
	"gamerslobby/backend/internal/repository"
)

// AuthHandler serves /login.
type AuthHandler struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthHandler builds the login handler.
func NewAuthHandler(users repository.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// LoginInput is the login body.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse echoes the identity embedded in the issued token.
type LoginResponse struct {
	ID     uint   `json:"id"`
	Pseudo string `json:"pseudo"`
	Admin  int    `json:"admin"`
}

// Login godoc
// @Summary      Log in
// @Description  Verifies email/password, sets the user_token cookie and
// @Description  returns the caller's identity. Unknown email and wrong
// @Description  password are indistinguishable on purpose.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body  LoginInput  true  "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if !bindPayload(c, &input) {
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), input.Email)
	if err != nil {
		apierr.Abort(c, apierr.Unauthorized("Email or password incorrect"))
		return
	}

	// Any verification failure, malformed stored digest included, reads as
	// bad credentials.
	ok, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		apierr.Abort(c, apierr.Unauthorized("Email or password incorrect"))
		return
	}

	token, err := h.tokens.Issue(user.Pseudo, user.ID, user.IsAdmin)
	if err != nil {
		apierr.Abort(c, apierr.Internal("Failed to generate token"))
		return
	}

	c.SetCookie(auth.CookieName, token, int(h.tokens.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, LoginResponse{
		ID:     user.ID,
		Pseudo: user.Pseudo,
		Admin:  user.IsAdmin,
	})
}
