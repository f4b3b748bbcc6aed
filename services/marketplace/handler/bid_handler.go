package handler

import (
	"context"
	"net/http"

	bidding "diamond-exchange/internal/biddingService"
	model "diamond-exchange/internal/models"
	"diamond-exchange/services/marketplace/helpers"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BidServiceInterface interface {
	SubmitAuctionBid(ctx context.Context, auctionID string, buyer model.Actor, amount decimal.Decimal) (model.Bid, error)
	SubmitRequirementBid(ctx context.Context, requirementID string, seller model.Actor, offer bidding.Offer) (model.Bid, error)
	UpdateStatus(ctx context.Context, bidID string, status model.BidStatus, actor model.Actor) (model.Bid, error)
	ListAuctionBids(ctx context.Context, auctionID string, actor model.Actor) ([]model.Bid, error)
	MyAuctionBid(ctx context.Context, auctionID string, buyer model.Actor) (model.Bid, error)
	ListRequirementBids(ctx context.Context, requirementID string, actor model.Actor) ([]model.Bid, error)
	MyRequirementBid(ctx context.Context, requirementID string, seller model.Actor) (model.Bid, error)
}

type BidHandler struct {
	service BidServiceInterface
}

func NewBidHandler(service BidServiceInterface) *BidHandler {
	return &BidHandler{service: service}
}

// PlaceAuctionBidHandler handles POST /auctions/:auction_id/bids
func (h *BidHandler) PlaceAuctionBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	var req helpers.AuctionBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceAuctionBidHandler", err)
		return
	}

	buyer := helpers.Actor(c)
	bid, err := h.service.SubmitAuctionBid(c.Request.Context(), auctionID, buyer, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceAuctionBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"buyer_id":   buyer.ID,
			"amount":     req.Amount.String(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid, "bid recorded successfully")
	helpers.LogSuccess("PlaceAuctionBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"buyer_id":   buyer.ID,
		"amount":     bid.Amount.String(),
	})
}

// ListAuctionBidsHandler handles GET /auctions/:auction_id/bids
func (h *BidHandler) ListAuctionBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.ListAuctionBids(c.Request.Context(), auctionID, helpers.Actor(c))
	if err != nil {
		helpers.HandleServiceError(c, "ListAuctionBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("ListAuctionBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// MyAuctionBidHandler handles GET /auctions/:auction_id/bids/mine
func (h *BidHandler) MyAuctionBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	buyer := helpers.Actor(c)
	bid, err := h.service.MyAuctionBid(c.Request.Context(), auctionID, buyer)
	if err != nil {
		helpers.HandleServiceError(c, "MyAuctionBidHandler", err, map[string]any{"auction_id": auctionID, "buyer_id": buyer.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bid, "bid retrieved successfully")
}

// PlaceRequirementBidHandler handles POST /requirements/:requirement_id/bids
func (h *BidHandler) PlaceRequirementBidHandler(c *gin.Context) {
	requirementID := c.Param("requirement_id")
	var req helpers.RequirementBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceRequirementBidHandler", err)
		return
	}

	seller := helpers.Actor(c)
	bid, err := h.service.SubmitRequirementBid(c.Request.Context(), requirementID, seller, req.Offer())
	if err != nil {
		helpers.HandleServiceError(c, "PlaceRequirementBidHandler", err, map[string]any{
			"requirement_id": requirementID,
			"seller_id":      seller.ID,
			"inventory_id":   req.InventoryID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid, "offer recorded successfully")
	helpers.LogSuccess("PlaceRequirementBidHandler", "offer recorded successfully", map[string]any{
		"bid_id":         bid.BidID,
		"requirement_id": requirementID,
		"seller_id":      seller.ID,
	})
}

// ListRequirementBidsHandler handles GET /requirements/:requirement_id/bids
func (h *BidHandler) ListRequirementBidsHandler(c *gin.Context) {
	requirementID := c.Param("requirement_id")
	bids, err := h.service.ListRequirementBids(c.Request.Context(), requirementID, helpers.Actor(c))
	if err != nil {
		helpers.HandleServiceError(c, "ListRequirementBidsHandler", err, map[string]any{"requirement_id": requirementID})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "offers retrieved successfully")
}

// MyRequirementBidHandler handles GET /requirements/:requirement_id/bids/mine
func (h *BidHandler) MyRequirementBidHandler(c *gin.Context) {
	requirementID := c.Param("requirement_id")
	seller := helpers.Actor(c)
	bid, err := h.service.MyRequirementBid(c.Request.Context(), requirementID, seller)
	if err != nil {
		helpers.HandleServiceError(c, "MyRequirementBidHandler", err, map[string]any{"requirement_id": requirementID, "seller_id": seller.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bid, "offer retrieved successfully")
}

// UpdateBidStatusHandler handles PATCH /bids/:bid_id/status
func (h *BidHandler) UpdateBidStatusHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	var req helpers.BidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateBidStatusHandler", err)
		return
	}

	actor := helpers.Actor(c)
	bid, err := h.service.UpdateStatus(c.Request.Context(), bidID, req.Status, actor)
	if err != nil {
		helpers.HandleServiceError(c, "UpdateBidStatusHandler", err, map[string]any{
			"bid_id":   bidID,
			"status":   req.Status,
			"actor_id": actor.ID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bid, "bid status updated successfully")
	helpers.LogSuccess("UpdateBidStatusHandler", "bid status updated successfully", map[string]any{
		"bid_id": bidID,
		"status": bid.Status,
	})
}
