// Package httpx holds the request binding and error rendering helpers used by
// every route handler.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
)

var registerTagName sync.Once

var (
	enumsMu sync.RWMutex
	enums   = map[string][]string{}
)

// RegisterEnum adds a validator tag that accepts exactly values, so binding
// tags and domain enums share one source. Call it from package init.
func RegisterEnum(tag string, values []string) {
	allowed := append([]string(nil), values...)

	enumsMu.Lock()
	enums[tag] = allowed
	enumsMu.Unlock()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		got := fl.Field().String()
		for _, a := range allowed {
			if a == got {
				return true
			}
		}
		return false
	})
}

func enumValues(tag string) ([]string, bool) {
	enumsMu.RLock()
	defer enumsMu.RUnlock()
	values, ok := enums[tag]
	return values, ok
}

// useJSONFieldNames makes validator errors report the json name of a field.
func useJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// BindJSON decodes the request body into dst, rejecting unknown fields, and
// runs the binding validator over the result.
func BindJSON(c *gin.Context, dst any) error {
	useJSONFieldNames()

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is required")
		}
		if strings.HasPrefix(err.Error(), "json: unknown field ") {
			return apperr.BadRequest("unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field "))
		}
		return apperr.BadRequest("invalid request body")
	}
	// anything but trailing whitespace after the first value is rejected
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperr.BadRequest("request body must be a single JSON object")
	}

	if binding.Validator == nil {
		return nil
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperr.BadRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		if values, ok := enumValues(fe.Tag()); ok {
			return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(values, " "))
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Fail writes {error: message} for err. Taxonomy errors keep their own
// message; anything else is logged and answered with the generic fallback.
func Fail(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("path", c.FullPath()).
			Msg(fallback)
		c.AbortWithStatusJSON(apperr.Status(kind), gin.H{"error": fallback})
		return
	}
	c.AbortWithStatusJSON(apperr.Status(kind), gin.H{"error": err.Error()})
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTime accepts an RFC 3339 timestamp or a plain calendar date.
func ParseTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.BadRequest(field + " must be a date")
}
