package auth

import (
	"github.com/gin-gonic/gin"

	apierr "gamerslobby/backend/internal/errors"
)

// CookieName is the cookie carrying the session token.
const CookieName = "user_token"

const claimsKey = "authClaims"

// Required gates a route on a present and valid session token. On success
// the parsed claims are attached to the request context for downstream
// middleware and handlers.
func Required(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			apierr.Abort(c, apierr.Unauthorized("Unauthorized, please connect"))
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			apierr.Abort(c, apierr.Unauthorized("Unauthorized, please connect"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminOnly requires the admin claim to be set. It must run after
// Required; without claims in the context it fails closed with 401.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			apierr.Abort(c, apierr.Unauthorized("Unauthorized, please connect"))
			return
		}

		if claims.Admin != 1 {
			apierr.Abort(c, apierr.Forbidden("Forbidden"))
			return
		}

		c.Next()
	}
}

// CurrentClaims returns the claims attached by Required, if any.
func CurrentClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
