package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierr "gamerslobby/backend/internal/errors"
)

// payloadKey holds the validated request payload for the guards and the
// terminal handler of the chain.
const payloadKey = "payload"

// RegisterTagNames makes validator report json field names instead of Go
// struct field names in aggregated error messages. Called once at router
// setup.
func RegisterTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindPayload binds the JSON body into dst. Validation is exhaustive: all
// field violations are collected into one Unprocessable failure instead of
// stopping at the first.
func bindPayload(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldErrorMessage(fe))
		}
		apierr.Abort(c, apierr.Unprocessable(strings.Join(msgs, ". ")))
	} else {
		apierr.Abort(c, apierr.Unprocessable("request body is not valid JSON"))
	}
	return false
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%q must be at most %s characters long", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%q must be at least %s characters long", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%q must be a date in %s format", fe.Field(), fe.Param())
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	default:
		return fmt.Sprintf("%q fails the %q constraint", fe.Field(), fe.Tag())
	}
}

// requireOnCreate enforces the presence mode of the schema: fields are
// required when the method is POST and optional otherwise, so partial
// updates pass while incomplete creates fail. Missing fields are reported
// together.
func requireOnCreate(c *gin.Context, missing []string) bool {
	if c.Request.Method != http.MethodPost || len(missing) == 0 {
		return true
	}

	msgs := make([]string, len(missing))
	for i, field := range missing {
		msgs[i] = fmt.Sprintf("%q is required", field)
	}
	apierr.Abort(c, apierr.Unprocessable(strings.Join(msgs, ". ")))
	return false
}

// pathID parses the :id path parameter. 0 means absent or malformed; the
// record lookups turn that into NotFound.
func pathID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
