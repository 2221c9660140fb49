package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusRequest struct {
	Status   string `json:"status" binding:"required,order_status"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Note     string `json:"note" binding:"max=5"`
}

type returnStatusRequest struct {
	Status string `json:"status" binding:"required,return_status"`
}

func bindBody(t *testing.T, body string, obj any) error {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(obj)
}

func TestSetupValidator(t *testing.T) {
	require.NoError(t, SetupValidator())
	require.NoError(t, SetupValidator())

	t.Run("accepts known statuses", func(t *testing.T) {
		assert.NoError(t, bindBody(t, `{"status":"SHIPPED","quantity":1}`, &statusRequest{}))
		assert.NoError(t, bindBody(t, `{"status":"APPROVED"}`, &returnStatusRequest{}))
	})

	t.Run("unknown order status", func(t *testing.T) {
		err := bindBody(t, `{"status":"LOST","quantity":1}`, &statusRequest{})
		require.Error(t, err)

		code, _, details := ValidationFailure(err)
		assert.Equal(t, "INVALID_STATUS", code)
		assert.Contains(t, details["fields"], "status")
	})

	t.Run("order status is not a return status", func(t *testing.T) {
		err := bindBody(t, `{"status":"SHIPPED"}`, &returnStatusRequest{})
		code, _, _ := ValidationFailure(err)
		assert.Equal(t, "INVALID_STATUS", code)
	})

	t.Run("bad quantity", func(t *testing.T) {
		err := bindBody(t, `{"status":"PENDING","quantity":-2}`, &statusRequest{})
		code, _, details := ValidationFailure(err)
		assert.Equal(t, "INVALID_QUANTITY", code)
		assert.Equal(t, map[string]any{"quantity": "Must be at least 1"}, details["fields"])
	})

	t.Run("other field", func(t *testing.T) {
		err := bindBody(t, `{"status":"PENDING","quantity":1,"note":"too long"}`, &statusRequest{})
		code, _, details := ValidationFailure(err)
		assert.Equal(t, "INVALID_INPUT", code)
		assert.Equal(t, map[string]any{"note": "Must be at most 5 characters"}, details["fields"])
	})
}

func TestValidationFailure_Malformed(t *testing.T) {
	code, msg, details := ValidationFailure(errors.New("unexpected EOF"))
	assert.Equal(t, "INVALID_INPUT", code)
	assert.Equal(t, "Malformed request body", msg)
	assert.Nil(t, details)
}
