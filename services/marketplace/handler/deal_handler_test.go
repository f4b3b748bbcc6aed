package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	deal "diamond-exchange/internal/dealService"
	"diamond-exchange/internal/marketerrors"
	model "diamond-exchange/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dealRouter(ctrl *gomock.Controller, actor model.Actor) (*gin.Engine, *MockDealServiceInterface) {
	mockService := NewMockDealServiceInterface(ctrl)
	h := NewDealHandler(mockService)

	router := newTestRouter(actor)
	router.POST("/deals", h.CreateDealHandler)
	router.GET("/deals", h.ListDealsHandler)
	router.GET("/deals/:deal_id", h.GetDealHandler)
	router.PATCH("/deals/:deal_id/status", h.UpdateDealStatusHandler)
	router.POST("/deals/:deal_id/invoice", h.GenerateInvoiceHandler)
	return router, mockService
}

func TestCreateDealHandler(t *testing.T) {
	t.Parallel()
	bidID := "0b6f1f8e-3c1a-4d4e-9f57-1f1d1f1d1f1d"

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockDealServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: map[string]any{"bid_id": bidID},
			mockSetup: func(m *MockDealServiceInterface) {
				m.EXPECT().Create(gomock.Any(), bidID, seller).Return(model.Deal{
					DealID:       "d1",
					BidID:        bidID,
					BuyerID:      buyer.ID,
					SellerID:     seller.ID,
					AgreedAmount: decimal.NewFromInt(700),
					Status:       model.DealCreated,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "deal created successfully",
		},
		{
			name:           "missing_bid_id",
			requestBody:    map[string]any{},
			mockSetup:      func(*MockDealServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "malformed_bid_id",
			requestBody: map[string]any{"bid_id": "nope"},
			mockSetup: func(m *MockDealServiceInterface) {
				m.EXPECT().Create(gomock.Any(), "nope", seller).Return(model.Deal{}, marketerrors.ErrInvalidID)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    marketerrors.ErrInvalidID.Message,
		},
		{
			name:        "duplicate",
			requestBody: map[string]any{"bid_id": bidID},
			mockSetup: func(m *MockDealServiceInterface) {
				m.EXPECT().Create(gomock.Any(), bidID, seller).Return(model.Deal{}, marketerrors.ErrDuplicateDeal)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    marketerrors.ErrDuplicateDeal.Message,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			router, mockService := dealRouter(ctrl, seller)
			tc.mockSetup(mockService)

			w, resp := perform(t, router, http.MethodPost, "/deals", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp.Message, tc.expectedMsg)
		})
	}
}

func TestUpdateDealStatusHandler_PassesDetails(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	router, mockService := dealRouter(ctrl, seller)

	want := deal.Change{
		Status:  model.DealShipped,
		Details: deal.Details{Courier: "Brinks", TrackingNumber: "TRK-1"},
	}
	mockService.EXPECT().UpdateStatus(gomock.Any(), "d1", want, seller).
		Return(model.Deal{DealID: "d1", Status: model.DealShipped}, nil)

	w, resp := perform(t, router, http.MethodPatch, "/deals/d1/status", map[string]any{
		"status":          "SHIPPED",
		"courier":         "Brinks",
		"tracking_number": "TRK-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "SHIPPED", decode(t, resp.Data)["status"])
}

func TestUpdateDealStatusHandler_InvalidTransition(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	router, mockService := dealRouter(ctrl, admin)

	mockService.EXPECT().UpdateStatus(gomock.Any(), "d1", gomock.Any(), admin).
		Return(model.Deal{}, marketerrors.ErrInvalidTransition)

	w, resp := perform(t, router, http.MethodPatch, "/deals/d1/status", map[string]any{"status": "SHIPPED"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, marketerrors.ErrInvalidTransition.Message, resp.Message)
}

func TestListDealsHandler(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	router, mockService := dealRouter(ctrl, buyer)

	mockService.EXPECT().List(gomock.Any(), buyer).Return(nil, nil)

	w, resp := perform(t, router, http.MethodGet, "/deals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", string(resp.Data))
}

func TestGetDealHandler_Forbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	router, mockService := dealRouter(ctrl, buyer)

	mockService.EXPECT().Get(gomock.Any(), "d1", buyer).Return(model.Deal{}, marketerrors.ErrNotAuthorized)

	w, _ := perform(t, router, http.MethodGet, "/deals/d1", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestGenerateInvoiceHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		mockSetup      func(m *MockDealServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			mockSetup: func(m *MockDealServiceInterface) {
				m.EXPECT().GenerateInvoice(gomock.Any(), "d1", buyer).
					Return(model.Deal{DealID: "d1", PDFPath: "/deal-summaries/d1.pdf"}, []byte("%PDF-1.7"), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "renderer_down",
			mockSetup: func(m *MockDealServiceInterface) {
				m.EXPECT().GenerateInvoice(gomock.Any(), "d1", buyer).
					Return(model.Deal{}, nil, errors.New("render: 502 bad gateway"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			router, mockService := dealRouter(ctrl, buyer)
			tc.mockSetup(mockService)

			w, resp := perform(t, router, http.MethodPost, "/deals/d1/invoice", nil)
			require.Equal(t, tc.expectedStatus, w.Code)
			if w.Code == http.StatusCreated {
				var invoice struct {
					PDFPath string `json:"pdf_path"`
					Size    int    `json:"size"`
				}
				require.NoError(t, json.Unmarshal(resp.Data, &invoice))
				require.Equal(t, "/deal-summaries/d1.pdf", invoice.PDFPath)
				require.Equal(t, 8, invoice.Size)
			}
		})
	}
}
