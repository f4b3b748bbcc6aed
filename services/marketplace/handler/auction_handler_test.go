package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	auction "diamond-exchange/internal/auctionService"
	"diamond-exchange/internal/marketerrors"
	model "diamond-exchange/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func auctionRouter(ctrl *gomock.Controller, actor model.Actor) (*gin.Engine, *MockAuctionServiceInterface) {
	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	router := newTestRouter(actor)
	router.POST("/auctions", h.CreateAuctionHandler)
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/auctions/:auction_id", h.GetAuctionHandler)
	router.PATCH("/auctions/:auction_id", h.UpdateAuctionHandler)
	router.DELETE("/auctions/:auction_id", h.DeleteAuctionHandler)
	return router, mockService
}

func TestCreateAuctionHandler(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			requestBody: map[string]any{
				"inventory_id": "item1",
				"base_price":   "600",
				"start_date":   start.Format(time.RFC3339),
				"end_date":     end.Format(time.RFC3339),
			},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Create(gomock.Any(), seller, gomock.Any()).
					DoAndReturn(func(_ any, _ model.Actor, in auction.CreateInput) (auction.View, error) {
						require.Equal(t, "item1", in.InventoryID)
						require.True(t, in.StartDate.Equal(start))
						require.True(t, in.EndDate.Equal(end))
						return auction.View{
							Auction: model.Auction{AuctionID: "auc1", InventoryID: "item1", BasePrice: in.BasePrice},
							Phase:   model.PhasePending,
						}, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_window",
			requestBody:    map[string]any{"inventory_id": "item1", "base_price": "600"},
			mockSetup:      func(*MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "price_below_item",
			requestBody: map[string]any{
				"inventory_id": "item1",
				"base_price":   "10",
				"start_date":   start.Format(time.RFC3339),
				"end_date":     end.Format(time.RFC3339),
			},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Create(gomock.Any(), seller, gomock.Any()).Return(auction.View{}, marketerrors.ErrPriceTooLow)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not_owner",
			requestBody: map[string]any{
				"inventory_id": "item1",
				"base_price":   "600",
				"start_date":   start.Format(time.RFC3339),
				"end_date":     end.Format(time.RFC3339),
			},
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Create(gomock.Any(), seller, gomock.Any()).Return(auction.View{}, marketerrors.ErrNotOwner)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			router, mockService := auctionRouter(ctrl, seller)
			tc.mockSetup(mockService)

			w, resp := perform(t, router, http.MethodPost, "/auctions", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			if w.Code == http.StatusCreated {
				data := decode(t, resp.Data)
				require.Equal(t, "PENDING", data["phase"])
				require.Equal(t, "600", data["base_price"])
			}
		})
	}
}

func TestListAuctionsHandler_PhaseFilter(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	router, mockService := auctionRouter(ctrl, buyer)

	mockService.EXPECT().List(gomock.Any(), auction.Filter{Phase: model.PhaseOpen}).Return([]auction.View{
		{Auction: model.Auction{AuctionID: "auc1"}, Phase: model.PhaseOpen},
	}, nil)

	w, resp := perform(t, router, http.MethodGet, "/auctions?phase=OPEN", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 1)
	require.Equal(t, "OPEN", views[0]["phase"])
}

func TestUpdateAndDeleteAuctionHandlers_HasBids(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	router, mockService := auctionRouter(ctrl, seller)

	mockService.EXPECT().Update(gomock.Any(), "auc1", seller, gomock.Any()).
		DoAndReturn(func(_ any, _ string, _ model.Actor, patch auction.Patch) (auction.View, error) {
			require.NotNil(t, patch.BasePrice)
			require.True(t, patch.BasePrice.Equal(decimal.NewFromInt(900)))
			require.Nil(t, patch.StartDate)
			return auction.View{}, marketerrors.ErrHasBids
		})
	mockService.EXPECT().Delete(gomock.Any(), "auc1", seller).Return(marketerrors.ErrHasBids)
	mockService.EXPECT().Get(gomock.Any(), "auc1").Return(auction.View{Auction: model.Auction{AuctionID: "auc1"}}, nil)

	w, resp := perform(t, router, http.MethodPatch, "/auctions/auc1", map[string]any{"base_price": "900"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, marketerrors.ErrHasBids.Message, resp.Message)

	w, _ = perform(t, router, http.MethodDelete, "/auctions/auc1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = perform(t, router, http.MethodGet, "/auctions/auc1", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
