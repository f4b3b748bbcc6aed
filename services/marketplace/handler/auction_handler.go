package handler

import (
	"context"
	"net/http"

	auction "diamond-exchange/internal/auctionService"
	model "diamond-exchange/internal/models"
	"diamond-exchange/services/marketplace/helpers"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	Create(ctx context.Context, actor model.Actor, in auction.CreateInput) (auction.View, error)
	Update(ctx context.Context, auctionID string, actor model.Actor, patch auction.Patch) (auction.View, error)
	Delete(ctx context.Context, auctionID string, actor model.Actor) error
	Get(ctx context.Context, auctionID string) (auction.View, error)
	List(ctx context.Context, filter auction.Filter) ([]auction.View, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	actor := helpers.Actor(c)
	view, err := h.service.Create(c.Request.Context(), actor, req.Input())
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{
			"inventory_id": req.InventoryID,
			"actor_id":     actor.ID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, view, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id":   view.AuctionID,
		"inventory_id": view.InventoryID,
		"base_price":   view.BasePrice.String(),
	})
}

// ListAuctionsHandler handles GET /auctions?inventory_id=&phase=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	filter := auction.Filter{
		InventoryID: c.Query("inventory_id"),
		Phase:       model.AuctionPhase(c.Query("phase")),
	}
	views, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		helpers.HandleServiceError(c, "ListAuctionsHandler", err, nil)
		return
	}

	if views == nil {
		views = []auction.View{}
	}

	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"phase": filter.Phase,
		"count": len(views),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	id := c.Param("auction_id")
	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "auction retrieved successfully")
}

// UpdateAuctionHandler handles PATCH /auctions/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	id := c.Param("auction_id")
	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	actor := helpers.Actor(c)
	view, err := h.service.Update(c.Request.Context(), id, actor, req.Patch())
	if err != nil {
		helpers.HandleServiceError(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": id, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{"auction_id": id})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	id := c.Param("auction_id")
	actor := helpers.Actor(c)
	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		helpers.HandleServiceError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": id, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{"auction_id": id})
}
