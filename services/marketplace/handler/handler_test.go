package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	model "diamond-exchange/internal/models"
	"diamond-exchange/services/marketplace/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	seller = model.Actor{ID: "seller1", Role: model.RoleUser}
	buyer  = model.Actor{ID: "buyer1", Role: model.RoleUser}
	admin  = model.Actor{ID: "admin1", Role: model.RoleAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter returns a router that authenticates every request as actor
func newTestRouter(actor model.Actor) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) { helpers.SetActor(c, actor) })
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// perform sends body (raw string or JSON-encoded value) and decodes the envelope
func perform(t *testing.T, router *gin.Engine, method, url string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// decode unmarshals the envelope data into a map
func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}
