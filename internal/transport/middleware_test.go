package transport_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/untangle-ai/agent-broker/internal/mocks"
	portapikey "github.com/untangle-ai/agent-broker/internal/port/apikey"
	"github.com/untangle-ai/agent-broker/internal/transport"
	"github.com/untangle-ai/agent-broker/internal/transport/auth"
)

func init() { gin.SetMode(gin.TestMode) }

func newAuthedRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIKeyReader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockAPIKeyReader(ctrl)

	r := gin.New()
	r.Use(transport.APIKeyAuth(keys))
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := auth.CallerID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"caller_id": id})
	})
	return r, keys
}

func get(r *gin.Engine, apiKey string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/whoami", nil)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	r, keys := newAuthedRouter(t)
	userID := uuid.New()

	keys.EXPECT().Verify(gomock.Any(), "key-123").
		Return(portapikey.Key{ID: uuid.New(), UserID: userID, Active: true}, nil)

	w := get(r, "key-123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	r, _ := newAuthedRouter(t)
	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuth_UnknownKey(t *testing.T) {
	r, keys := newAuthedRouter(t)

	keys.EXPECT().Verify(gomock.Any(), "bad-key").
		Return(portapikey.Key{}, portapikey.ErrNotFound)

	w := get(r, "bad-key")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuth_LookupFailure(t *testing.T) {
	r, keys := newAuthedRouter(t)

	keys.EXPECT().Verify(gomock.Any(), "key-123").
		Return(portapikey.Key{}, errors.New("db down"))

	w := get(r, "key-123")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSMiddlewareAllowsAPIKeyHeader(t *testing.T) {
	r := gin.New()
	r.Use(transport.CORSMiddleware())

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodOptions, "/anything", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 204, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "x-api-key")
}
