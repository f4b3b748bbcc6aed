package server

import (
	"net/http"

	"diamond-exchange/internal/metrics"
	handler "diamond-exchange/services/marketplace/handler"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

// Services are the engines behind the HTTP routes
type Services struct {
	Inventory    handler.InventoryServiceInterface
	Requirements handler.RequirementServiceInterface
	Auctions     handler.AuctionServiceInterface
	Bids         handler.BidServiceInterface
	Deals        handler.DealServiceInterface
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services, tokens *TokenService, m *metrics.Metrics) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())             // recover from panics
	router.Use(RequestLoggerMiddleware(m)) // custom request logging

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	inventoryHandler := handler.NewInventoryHandler(svc.Inventory)
	requirementHandler := handler.NewRequirementHandler(svc.Requirements)
	auctionHandler := handler.NewAuctionHandler(svc.Auctions)
	bidHandler := handler.NewBidHandler(svc.Bids)
	dealHandler := handler.NewDealHandler(svc.Deals)

	api := router.Group("/api/v1", AuthMiddleware(tokens))

	inventory := api.Group("/inventory")
	{
		inventory.POST("", inventoryHandler.CreateItemHandler)
		inventory.GET("", inventoryHandler.ListItemsHandler)
		inventory.GET("/:item_id", inventoryHandler.GetItemHandler)
		inventory.GET("/:item_id/history", inventoryHandler.StatusLogHandler)
		inventory.PATCH("/:item_id", inventoryHandler.UpdateItemHandler)
		inventory.PUT("/:item_id/media", inventoryHandler.AttachMediaHandler)
		inventory.DELETE("/:item_id", inventoryHandler.DeleteItemHandler)
	}

	requirements := api.Group("/requirements")
	{
		requirements.POST("", requirementHandler.UpsertRequirementHandler)
		requirements.GET("", requirementHandler.ListRequirementsHandler)
		requirements.GET("/mine", requirementHandler.ListMyRequirementsHandler)
		requirements.GET("/:requirement_id", requirementHandler.GetRequirementHandler)
		requirements.PATCH("/:requirement_id", requirementHandler.UpdateRequirementHandler)
		requirements.POST("/:requirement_id/expire", requirementHandler.ExpireRequirementHandler)
		requirements.DELETE("/:requirement_id", requirementHandler.DeleteRequirementHandler)

		requirements.POST("/:requirement_id/bids", bidHandler.PlaceRequirementBidHandler)
		requirements.GET("/:requirement_id/bids", bidHandler.ListRequirementBidsHandler)
		requirements.GET("/:requirement_id/bids/mine", bidHandler.MyRequirementBidHandler)
	}

	auctions := api.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PATCH("/:auction_id", auctionHandler.UpdateAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.DeleteAuctionHandler)

		auctions.POST("/:auction_id/bids", bidHandler.PlaceAuctionBidHandler)
		auctions.GET("/:auction_id/bids", bidHandler.ListAuctionBidsHandler)
		auctions.GET("/:auction_id/bids/mine", bidHandler.MyAuctionBidHandler)
	}

	bids := api.Group("/bids")
	{
		bids.PATCH("/:bid_id/status", bidHandler.UpdateBidStatusHandler)
	}

	deals := api.Group("/deals")
	{
		deals.POST("", dealHandler.CreateDealHandler)
		deals.GET("", dealHandler.ListDealsHandler)
		deals.GET("/:deal_id", dealHandler.GetDealHandler)
		deals.PATCH("/:deal_id/status", dealHandler.UpdateDealStatusHandler)
		deals.POST("/:deal_id/invoice", dealHandler.GenerateInvoiceHandler)
	}

	return router
}
