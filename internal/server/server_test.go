package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deal "diamond-exchange/internal/dealService"
	"diamond-exchange/internal/metrics"
	model "diamond-exchange/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key"

func init() {
	gin.SetMode(gin.TestMode)
}

// dealLister answers List with the caller's id so tests can see the actor
type dealLister struct{}

func (dealLister) Create(context.Context, string, model.Actor) (model.Deal, error) {
	return model.Deal{}, nil
}

func (dealLister) UpdateStatus(context.Context, string, deal.Change, model.Actor) (model.Deal, error) {
	return model.Deal{}, nil
}

func (dealLister) Get(context.Context, string, model.Actor) (model.Deal, error) {
	return model.Deal{}, nil
}

func (dealLister) List(_ context.Context, actor model.Actor) ([]model.Deal, error) {
	return []model.Deal{{DealID: "d1", BuyerID: actor.ID}}, nil
}

func (dealLister) GenerateInvoice(context.Context, string, model.Actor) (model.Deal, []byte, error) {
	return model.Deal{}, nil, nil
}

func TestTokenService_Verify(t *testing.T) {
	t.Parallel()
	tokens := NewTokenService(testKey, "diamond-exchange")

	valid, err := tokens.Issue(model.Actor{ID: "u1", Role: model.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := tokens.Issue(model.Actor{ID: "u1", Role: model.RoleUser}, -time.Minute)
	require.NoError(t, err)
	foreign, err := NewTokenService("another-key", "diamond-exchange").Issue(model.Actor{ID: "u1"}, time.Hour)
	require.NoError(t, err)
	otherIssuer, err := NewTokenService(testKey, "elsewhere").Issue(model.Actor{ID: "u1"}, time.Hour)
	require.NoError(t, err)
	noSubject, err := tokens.Issue(model.Actor{Role: model.RoleUser}, time.Hour)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			Issuer:    "diamond-exchange",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "diamond-exchange"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    model.Actor
		wantErr error
	}{
		{name: "valid_admin", token: valid, want: model.Actor{ID: "u1", Role: model.RoleAdmin}},
		{name: "expired", token: expired, wantErr: ErrTokenExpired},
		{name: "wrong_key", token: foreign, wantErr: ErrInvalidToken},
		{name: "wrong_issuer", token: otherIssuer, wantErr: ErrInvalidToken},
		{name: "missing_subject", token: noSubject, wantErr: ErrInvalidToken},
		{name: "unknown_role", token: badRole, wantErr: ErrInvalidToken},
		{name: "alg_none", token: unsigned, wantErr: ErrInvalidToken},
		{name: "garbage", token: "not.a.jwt", wantErr: ErrInvalidToken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tokens.Verify(tc.token)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRouter_AuthAndOperationalRoutes(t *testing.T) {
	t.Parallel()
	tokens := NewTokenService(testKey, "diamond-exchange")
	m := metrics.New()
	router := SetupRouter(Services{Deals: dealLister{}}, tokens, m)

	serve := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, serve(http.MethodGet, "/health", "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/v1/deals", "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/v1/deals", "garbage").Code)

	token, err := tokens.Issue(model.Actor{ID: "buyer-7", Role: model.RoleUser}, time.Hour)
	require.NoError(t, err)
	w := serve(http.MethodGet, "/api/v1/deals", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"buyer_id":"buyer-7"`)

	metricsBody := serve(http.MethodGet, "/metrics", "").Body.String()
	require.Contains(t, metricsBody, "diamond_exchange_http_request_duration_seconds")
	require.Contains(t, metricsBody, `route="/api/v1/deals"`)
}
