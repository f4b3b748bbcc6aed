package handler

import (
	"context"
	"net/http"

	inventory "diamond-exchange/internal/inventoryService"
	model "diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
	"diamond-exchange/services/marketplace/helpers"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

type InventoryServiceInterface interface {
	Create(ctx context.Context, actor model.Actor, in inventory.CreateInput) (model.Item, error)
	Get(ctx context.Context, itemID string) (model.Item, error)
	List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error)
	StatusLog(ctx context.Context, itemID string) ([]model.InventoryStatusLog, error)
	Update(ctx context.Context, itemID string, actor model.Actor, patch inventory.Patch) (model.Item, error)
	AttachMedia(ctx context.Context, itemID string, actor model.Actor, images []string, video string) (model.Item, error)
	Delete(ctx context.Context, itemID string, actor model.Actor) error
}

type InventoryHandler struct {
	service InventoryServiceInterface
}

func NewInventoryHandler(service InventoryServiceInterface) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// CreateItemHandler handles POST /inventory
func (h *InventoryHandler) CreateItemHandler(c *gin.Context) {
	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	actor := helpers.Actor(c)
	item, err := h.service.Create(c.Request.Context(), actor, req.Input())
	if err != nil {
		helpers.HandleServiceError(c, "CreateItemHandler", err, map[string]any{"seller_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "inventory item created successfully")
	helpers.LogSuccess("CreateItemHandler", "inventory item created successfully", map[string]any{
		"item_id":   item.ItemID,
		"seller_id": item.SellerID,
		"barcode":   item.Barcode,
	})
}

// ListItemsHandler handles GET /inventory?seller_id=&status=
func (h *InventoryHandler) ListItemsHandler(c *gin.Context) {
	filter := repository.ItemFilter{
		SellerID: c.Query("seller_id"),
		Status:   model.ItemStatus(c.Query("status")),
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		helpers.HandleServiceError(c, "ListItemsHandler", err, nil)
		return
	}

	if items == nil {
		items = []model.Item{}
	}

	utils.JSONResponse(c, http.StatusOK, items, "inventory retrieved successfully")
	helpers.LogSuccess("ListItemsHandler", "inventory retrieved successfully", map[string]any{
		"seller_id": filter.SellerID,
		"count":     len(items),
	})
}

// GetItemHandler handles GET /inventory/:item_id
func (h *InventoryHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	item, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		helpers.HandleServiceError(c, "GetItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "inventory item retrieved successfully")
}

// StatusLogHandler handles GET /inventory/:item_id/history
func (h *InventoryHandler) StatusLogHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	entries, err := h.service.StatusLog(c.Request.Context(), itemID)
	if err != nil {
		helpers.HandleServiceError(c, "StatusLogHandler", err, map[string]any{"item_id": itemID})
		return
	}

	if entries == nil {
		entries = []model.InventoryStatusLog{}
	}

	utils.JSONResponse(c, http.StatusOK, entries, "status history retrieved successfully")
}

// UpdateItemHandler handles PATCH /inventory/:item_id
func (h *InventoryHandler) UpdateItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	var req helpers.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateItemHandler", err)
		return
	}

	actor := helpers.Actor(c)
	item, err := h.service.Update(c.Request.Context(), itemID, actor, req.Patch())
	if err != nil {
		helpers.HandleServiceError(c, "UpdateItemHandler", err, map[string]any{"item_id": itemID, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "inventory item updated successfully")
	helpers.LogSuccess("UpdateItemHandler", "inventory item updated successfully", map[string]any{
		"item_id": item.ItemID,
		"status":  item.Status,
	})
}

// AttachMediaHandler handles PUT /inventory/:item_id/media
func (h *InventoryHandler) AttachMediaHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	var req helpers.MediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AttachMediaHandler", err)
		return
	}

	actor := helpers.Actor(c)
	item, err := h.service.AttachMedia(c.Request.Context(), itemID, actor, req.Images, req.Video)
	if err != nil {
		helpers.HandleServiceError(c, "AttachMediaHandler", err, map[string]any{"item_id": itemID, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "media attached successfully")
	helpers.LogSuccess("AttachMediaHandler", "media attached successfully", map[string]any{
		"item_id": item.ItemID,
		"images":  len(item.Images),
	})
}

// DeleteItemHandler handles DELETE /inventory/:item_id
func (h *InventoryHandler) DeleteItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	actor := helpers.Actor(c)
	if err := h.service.Delete(c.Request.Context(), itemID, actor); err != nil {
		helpers.HandleServiceError(c, "DeleteItemHandler", err, map[string]any{"item_id": itemID, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "inventory item deleted successfully")
	helpers.LogSuccess("DeleteItemHandler", "inventory item deleted successfully", map[string]any{"item_id": itemID})
}
