package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"

	"portfolio_api/internal/errs"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report validation failures by their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// writeError renders err as {"error": msg, "field"?: name}. Untyped and
// internal errors are logged under event and rendered without detail.
func (h *Handler) writeError(c *gin.Context, event string, err error) {
	e := errs.From(err)
	if e.Kind == errs.KindInternal {
		if h.log != nil {
			h.log.Errorw(event, "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		}
	} else if h.log != nil {
		h.log.Debugw(event, "path", c.Request.URL.Path, "kind", e.Kind.String(), "err", err)
	}

	body := gin.H{"error": e.Message}
	if e.Field != "" {
		body["field"] = e.Field
	}
	c.AbortWithStatusJSON(e.StatusCode(), body)
}

// bindJSON decodes the request body into dst. It writes a 400 and returns
// false when the body is malformed or fails validation.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.writeError(c, "bad_request_body", bindingError(err))
		return false
	}
	return true
}

// bindingError maps decoder and validator failures to a BadRequest that names
// the offending field where possible.
func bindingError(err error) *errs.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			return errs.MissingField(field)
		case "email":
			return errs.InvalidField(field, "not a valid email address")
		case "min", "max", "gte", "lte", "gt", "lt":
			return errs.InvalidField(field, "out of range")
		default:
			return errs.InvalidField(field, "failed "+fe.Tag()+" check")
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return errs.InvalidField(typeErr.Field, "expected "+typeErr.Type.String())
	}
	var fieldErr *fieldError
	if errors.As(err, &fieldErr) {
		return errs.InvalidField(fieldErr.field, fieldErr.reason)
	}
	if errors.Is(err, io.EOF) {
		return errs.BadRequest("request body is required")
	}
	return &errs.Error{Kind: errs.KindBadRequest, Message: "malformed JSON body", Cause: err}
}

// fieldError is returned by custom JSON decoders for a single field.
type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string { return e.field + ": " + e.reason }

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.InvalidField(name, "must be a positive integer")
	}
	return id, nil
}

// queryBool parses an optional boolean query parameter. Absent or empty
// means no constraint.
func queryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, errs.InvalidField(key, "must be true or false")
	}
	return &v, nil
}

func queryString(c *gin.Context, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}
