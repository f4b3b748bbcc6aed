package handler

import (
	"context"
	"net/http"

	deal "diamond-exchange/internal/dealService"
	model "diamond-exchange/internal/models"
	"diamond-exchange/services/marketplace/helpers"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

type DealServiceInterface interface {
	Create(ctx context.Context, bidID string, actor model.Actor) (model.Deal, error)
	UpdateStatus(ctx context.Context, dealID string, change deal.Change, actor model.Actor) (model.Deal, error)
	Get(ctx context.Context, dealID string, actor model.Actor) (model.Deal, error)
	List(ctx context.Context, actor model.Actor) ([]model.Deal, error)
	GenerateInvoice(ctx context.Context, dealID string, actor model.Actor) (model.Deal, []byte, error)
}

type DealHandler struct {
	service DealServiceInterface
}

func NewDealHandler(service DealServiceInterface) *DealHandler {
	return &DealHandler{service: service}
}

// CreateDealHandler handles POST /deals
func (h *DealHandler) CreateDealHandler(c *gin.Context) {
	var req helpers.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateDealHandler", err)
		return
	}

	actor := helpers.Actor(c)
	d, err := h.service.Create(c.Request.Context(), req.BidID, actor)
	if err != nil {
		helpers.HandleServiceError(c, "CreateDealHandler", err, map[string]any{"bid_id": req.BidID, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, d, "deal created successfully")
	helpers.LogSuccess("CreateDealHandler", "deal created successfully", map[string]any{
		"deal_id":   d.DealID,
		"bid_id":    d.BidID,
		"buyer_id":  d.BuyerID,
		"seller_id": d.SellerID,
	})
}

// ListDealsHandler handles GET /deals
func (h *DealHandler) ListDealsHandler(c *gin.Context) {
	actor := helpers.Actor(c)
	deals, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		helpers.HandleServiceError(c, "ListDealsHandler", err, map[string]any{"actor_id": actor.ID})
		return
	}

	if deals == nil {
		deals = []model.Deal{}
	}

	utils.JSONResponse(c, http.StatusOK, deals, "deals retrieved successfully")
	helpers.LogSuccess("ListDealsHandler", "deals retrieved successfully", map[string]any{
		"actor_id": actor.ID,
		"count":    len(deals),
	})
}

// GetDealHandler handles GET /deals/:deal_id
func (h *DealHandler) GetDealHandler(c *gin.Context) {
	id := c.Param("deal_id")
	actor := helpers.Actor(c)
	d, err := h.service.Get(c.Request.Context(), id, actor)
	if err != nil {
		helpers.HandleServiceError(c, "GetDealHandler", err, map[string]any{"deal_id": id, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, d, "deal retrieved successfully")
}

// UpdateDealStatusHandler handles PATCH /deals/:deal_id/status
func (h *DealHandler) UpdateDealStatusHandler(c *gin.Context) {
	id := c.Param("deal_id")
	var req helpers.DealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateDealStatusHandler", err)
		return
	}

	actor := helpers.Actor(c)
	d, err := h.service.UpdateStatus(c.Request.Context(), id, req.Change(), actor)
	if err != nil {
		helpers.HandleServiceError(c, "UpdateDealStatusHandler", err, map[string]any{
			"deal_id":  id,
			"status":   req.Status,
			"actor_id": actor.ID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, d, "deal status updated successfully")
	helpers.LogSuccess("UpdateDealStatusHandler", "deal status updated successfully", map[string]any{
		"deal_id": id,
		"status":  d.Status,
	})
}

// GenerateInvoiceHandler handles POST /deals/:deal_id/invoice
func (h *DealHandler) GenerateInvoiceHandler(c *gin.Context) {
	id := c.Param("deal_id")
	actor := helpers.Actor(c)
	d, doc, err := h.service.GenerateInvoice(c.Request.Context(), id, actor)
	if err != nil {
		helpers.HandleServiceError(c, "GenerateInvoiceHandler", err, map[string]any{"deal_id": id, "actor_id": actor.ID})
		return
	}

	resp := helpers.InvoiceResponse{DealID: d.DealID, PDFPath: d.PDFPath, Size: len(doc)}
	utils.JSONResponse(c, http.StatusCreated, resp, "invoice generated successfully")
	helpers.LogSuccess("GenerateInvoiceHandler", "invoice generated successfully", map[string]any{
		"deal_id":  d.DealID,
		"pdf_path": d.PDFPath,
	})
}
