package handler

import (
	"context"
	"net/http"

	model "diamond-exchange/internal/models"
	requirement "diamond-exchange/internal/requirementService"
	"diamond-exchange/services/marketplace/helpers"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

type RequirementServiceInterface interface {
	Upsert(ctx context.Context, buyer model.Actor, in requirement.Input) (model.Requirement, bool, error)
	Update(ctx context.Context, requirementID string, actor model.Actor, in requirement.Input) (model.Requirement, error)
	Expire(ctx context.Context, requirementID string, actor model.Actor) (model.Requirement, error)
	Delete(ctx context.Context, requirementID string, actor model.Actor) error
	Get(ctx context.Context, requirementID string) (model.Requirement, error)
	ListAll(ctx context.Context, status model.RequirementStatus) ([]model.Requirement, error)
	ListMine(ctx context.Context, buyer model.Actor) ([]model.Requirement, error)
}

type RequirementHandler struct {
	service RequirementServiceInterface
}

func NewRequirementHandler(service RequirementServiceInterface) *RequirementHandler {
	return &RequirementHandler{service: service}
}

// UpsertRequirementHandler handles POST /requirements. A new requirement
// answers 201, an updated one 200.
func (h *RequirementHandler) UpsertRequirementHandler(c *gin.Context) {
	var req helpers.RequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpsertRequirementHandler", err)
		return
	}

	buyer := helpers.Actor(c)
	saved, created, err := h.service.Upsert(c.Request.Context(), buyer, req.Input())
	if err != nil {
		helpers.HandleServiceError(c, "UpsertRequirementHandler", err, map[string]any{"buyer_id": buyer.ID})
		return
	}

	status, message := http.StatusOK, "requirement updated successfully"
	if created {
		status, message = http.StatusCreated, "requirement created successfully"
	}
	utils.JSONResponse(c, status, saved, message)
	helpers.LogSuccess("UpsertRequirementHandler", message, map[string]any{
		"requirement_id": saved.RequirementID,
		"buyer_id":       saved.BuyerID,
	})
}

// ListRequirementsHandler handles GET /requirements?status=
func (h *RequirementHandler) ListRequirementsHandler(c *gin.Context) {
	status := model.RequirementStatus(c.Query("status"))
	reqs, err := h.service.ListAll(c.Request.Context(), status)
	if err != nil {
		helpers.HandleServiceError(c, "ListRequirementsHandler", err, nil)
		return
	}

	if reqs == nil {
		reqs = []model.Requirement{}
	}

	utils.JSONResponse(c, http.StatusOK, reqs, "requirements retrieved successfully")
	helpers.LogSuccess("ListRequirementsHandler", "requirements retrieved successfully", map[string]any{"count": len(reqs)})
}

// ListMyRequirementsHandler handles GET /requirements/mine
func (h *RequirementHandler) ListMyRequirementsHandler(c *gin.Context) {
	buyer := helpers.Actor(c)
	reqs, err := h.service.ListMine(c.Request.Context(), buyer)
	if err != nil {
		helpers.HandleServiceError(c, "ListMyRequirementsHandler", err, map[string]any{"buyer_id": buyer.ID})
		return
	}

	if reqs == nil {
		reqs = []model.Requirement{}
	}

	utils.JSONResponse(c, http.StatusOK, reqs, "requirements retrieved successfully")
}

// GetRequirementHandler handles GET /requirements/:requirement_id
func (h *RequirementHandler) GetRequirementHandler(c *gin.Context) {
	id := c.Param("requirement_id")
	req, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, "GetRequirementHandler", err, map[string]any{"requirement_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, req, "requirement retrieved successfully")
}

// UpdateRequirementHandler handles PATCH /requirements/:requirement_id
func (h *RequirementHandler) UpdateRequirementHandler(c *gin.Context) {
	id := c.Param("requirement_id")
	var body helpers.RequirementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		helpers.HandleBindError(c, "UpdateRequirementHandler", err)
		return
	}

	actor := helpers.Actor(c)
	req, err := h.service.Update(c.Request.Context(), id, actor, body.Input())
	if err != nil {
		helpers.HandleServiceError(c, "UpdateRequirementHandler", err, map[string]any{"requirement_id": id, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, req, "requirement updated successfully")
	helpers.LogSuccess("UpdateRequirementHandler", "requirement updated successfully", map[string]any{"requirement_id": id})
}

// ExpireRequirementHandler handles POST /requirements/:requirement_id/expire
func (h *RequirementHandler) ExpireRequirementHandler(c *gin.Context) {
	id := c.Param("requirement_id")
	actor := helpers.Actor(c)
	req, err := h.service.Expire(c.Request.Context(), id, actor)
	if err != nil {
		helpers.HandleServiceError(c, "ExpireRequirementHandler", err, map[string]any{"requirement_id": id, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, req, "requirement expired successfully")
	helpers.LogSuccess("ExpireRequirementHandler", "requirement expired successfully", map[string]any{
		"requirement_id": id,
		"status":         req.Status,
	})
}

// DeleteRequirementHandler handles DELETE /requirements/:requirement_id
func (h *RequirementHandler) DeleteRequirementHandler(c *gin.Context) {
	id := c.Param("requirement_id")
	actor := helpers.Actor(c)
	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		helpers.HandleServiceError(c, "DeleteRequirementHandler", err, map[string]any{"requirement_id": id, "actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "requirement deleted successfully")
	helpers.LogSuccess("DeleteRequirementHandler", "requirement deleted successfully", map[string]any{"requirement_id": id})
}
