package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"diamond-exchange/internal/app"
	"diamond-exchange/internal/config"
	model "diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	sellerActor = model.Actor{ID: "seller-1", Role: model.RoleUser}
	buyerA      = model.Actor{ID: "buyer-a", Role: model.RoleUser}
	buyerB      = model.Actor{ID: "buyer-b", Role: model.RoleUser}
	buyerC      = model.Actor{ID: "buyer-c", Role: model.RoleUser}
	adminActor  = model.Actor{ID: "admin-1", Role: model.RoleAdmin}
)

// Response mirrors the JSON envelope every route answers with
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// Exchange is an in-process exchange driven through its HTTP router
type Exchange struct {
	t   *testing.T
	app *app.App
}

// SetupExchange wires a full exchange over the in-memory store with the given
// consistency tier.
func SetupExchange(t *testing.T, tier repository.ConsistencyTier) *Exchange {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Profile = config.ProfileTest
	cfg.LogLevel = "error"
	cfg.Consistency = string(tier)
	cfg.JWTSigningKey = "integration-key"
	cfg.Documents.StorageDir = t.TempDir()

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return &Exchange{t: t, app: a}
}

// Do executes an HTTP request as actor and returns the decoded envelope
func (e *Exchange) Do(actor model.Actor, method, url string, body any) (Response, *httptest.ResponseRecorder) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			e.t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if actor.ID != "" {
		token, err := e.app.Tokens.Issue(actor, time.Hour)
		if err != nil {
			e.t.Fatalf("failed to issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Router.ServeHTTP(w, req)

	var resp Response
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			e.t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return resp, w
}

// MustDo is Do that fails the test unless the status matches
func (e *Exchange) MustDo(actor model.Actor, method, url string, body any, wantStatus int, out any) Response {
	e.t.Helper()
	resp, w := e.Do(actor, method, url, body)
	require.Equal(e.t, wantStatus, w.Code, "%s %s: %s", method, url, w.Body.String())
	if out != nil {
		require.NoError(e.t, json.Unmarshal(resp.Data, out))
	}
	return resp
}

// CreateItem lists a new AVAILABLE stone for seller
func (e *Exchange) CreateItem(seller model.Actor, price string) model.Item {
	var item model.Item
	e.MustDo(seller, http.MethodPost, "/api/v1/inventory", map[string]any{
		"title":    "Round brilliant",
		"shape":    "round",
		"carat":    "1.2",
		"color":    "E",
		"clarity":  "VS1",
		"price":    price,
		"currency": "USD",
	}, http.StatusCreated, &item)
	return item
}

// OpenAuction creates an auction that is already running
func (e *Exchange) OpenAuction(seller model.Actor, itemID, basePrice string) model.Auction {
	now := time.Now().UTC()
	var a model.Auction
	e.MustDo(seller, http.MethodPost, "/api/v1/auctions", map[string]any{
		"inventory_id": itemID,
		"base_price":   basePrice,
		"start_date":   now.Add(-time.Minute).Format(time.RFC3339),
		"end_date":     now.Add(time.Hour).Format(time.RFC3339),
	}, http.StatusCreated, &a)
	return a
}

// GetItem reads an item back
func (e *Exchange) GetItem(itemID string) model.Item {
	var item model.Item
	e.MustDo(sellerActor, http.MethodGet, "/api/v1/inventory/"+itemID, nil, http.StatusOK, &item)
	return item
}

// Fetch performs an unauthenticated GET and returns the raw recorder
func (e *Exchange) Fetch(url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}
