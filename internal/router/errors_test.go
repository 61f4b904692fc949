package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

func testContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) global.ErrorBody {
	t.Helper()
	var body global.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondErrorMapsAPIError(t *testing.T) {
	c, w := testContext("")

	respondError(c, global.NotFound("Book not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Book not found", body.Message)
	assert.Equal(t, "/api/test", body.Path)
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	c, w := testContext("")

	respondError(c, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestRespondBindErrorCollectsFieldMessages(t *testing.T) {
	c, w := testContext(`{"email":"not-an-email","password":"short","firstName":"A"}`)

	var req models.RegisterRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	respondBindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "must be a valid email address", body.Errors["email"])
	assert.Equal(t, "must be at least 8", body.Errors["password"])
	assert.Equal(t, "must be at least 2", body.Errors["firstName"])
	assert.Equal(t, "is required", body.Errors["lastName"])
}

func TestRespondBindErrorRejectsHTMLContent(t *testing.T) {
	c, w := testContext(`{"shippingAddress":"<script>alert(1)</script>"}`)

	var req models.CheckoutRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	respondBindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "HTML/script content is not allowed", body.Errors["shippingAddress"])
}

func TestBindAcceptsPlainShippingAddress(t *testing.T) {
	c, _ := testContext(`{"shippingAddress":"1 Main St, Springfield"}`)

	var req models.CheckoutRequest
	require.NoError(t, c.ShouldBindJSON(&req))
}

func TestRespondBindErrorOnMalformedJSON(t *testing.T) {
	c, w := testContext(`{`)

	var req models.RegisterRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	respondBindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Empty(t, body.Errors)
}

func TestParseObjectID(t *testing.T) {
	c, w := testContext("")
	c.Params = gin.Params{{Key: "id", Value: "68b0f00000000000000000aa"}}

	id, ok := parseObjectID(c, "id")
	require.True(t, ok)
	assert.Equal(t, "68b0f00000000000000000aa", id.Hex())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseObjectIDRejectsGarbage(t *testing.T) {
	c, w := testContext("")
	c.Params = gin.Params{{Key: "id", Value: "not-hex"}}

	_, ok := parseObjectID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid id")
}
