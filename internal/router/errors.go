package router

import (
	"errors"
	"fmt"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/logger"
)

// respondError maps service errors onto the standard error envelope. Anything
// that is not a global.APIError is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	var apiErr *global.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, global.NewErrorBody(apiErr.Status, apiErr.Message, c.Request.URL.Path, nil))
		return
	}

	logger.L().Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError,
		global.NewErrorBody(http.StatusInternalServerError, "Internal server error", c.Request.URL.Path, nil))
}

// respondBindError turns gin binding failures into a 400 with a per-field
// message map.
func respondBindError(c *gin.Context, err error) {
	var fields map[string]string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[lowerFirst(fe.Field())] = validationMessage(fe)
		}
	}

	c.JSON(http.StatusBadRequest,
		global.NewErrorBody(http.StatusBadRequest, "Validation failed", c.Request.URL.Path, fields))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "nohtml":
		return "HTML/script content is not allowed"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// parseObjectID reads a path parameter as a Mongo object id, answering the
// request with a 400 when it is malformed.
func parseObjectID(c *gin.Context, param string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			global.NewErrorBody(http.StatusBadRequest, "Invalid id", c.Request.URL.Path, nil))
		return bson.ObjectID{}, false
	}
	return id, true
}
