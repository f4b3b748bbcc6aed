package helpers

import (
	"time"

	auction "diamond-exchange/internal/auctionService"
	bidding "diamond-exchange/internal/biddingService"
	deal "diamond-exchange/internal/dealService"
	inventory "diamond-exchange/internal/inventoryService"
	model "diamond-exchange/internal/models"
	requirement "diamond-exchange/internal/requirementService"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs. Amounts travel as decimal strings or JSON numbers;
// positivity is checked by the engines, not by binding.

type CreateItemRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Shape       string          `json:"shape" binding:"required"`
	Carat       decimal.Decimal `json:"carat"`
	Cut         string          `json:"cut"`
	Color       string          `json:"color" binding:"required"`
	Clarity     string          `json:"clarity" binding:"required"`
	Lab         string          `json:"lab"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Images      []string        `json:"images"`
	Video       string          `json:"video"`
}

func (r CreateItemRequest) Input() inventory.CreateInput {
	return inventory.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Grading: model.Grading{
			Shape:    r.Shape,
			Carat:    r.Carat,
			Cut:      r.Cut,
			Color:    r.Color,
			Clarity:  r.Clarity,
			Lab:      r.Lab,
			Location: r.Location,
		},
		Price:    r.Price,
		Currency: r.Currency,
		Images:   r.Images,
		Video:    r.Video,
	}
}

type UpdateItemRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Grading     *model.Grading    `json:"grading"`
	Price       *decimal.Decimal  `json:"price"`
	Currency    *string           `json:"currency"`
	Images      *[]string         `json:"images"`
	Video       *string           `json:"video"`
	Status      *model.ItemStatus `json:"status"`
}

func (r UpdateItemRequest) Patch() inventory.Patch {
	return inventory.Patch{
		Title:       r.Title,
		Description: r.Description,
		Grading:     r.Grading,
		Price:       r.Price,
		Currency:    r.Currency,
		Images:      r.Images,
		Video:       r.Video,
		Status:      r.Status,
	}
}

type MediaRequest struct {
	Images []string `json:"images"`
	Video  string   `json:"video"`
}

type RequirementRequest struct {
	Spec     model.RequirementSpec `json:"spec"`
	Budget   decimal.Decimal       `json:"budget"`
	Deadline *time.Time            `json:"deadline"`
}

func (r RequirementRequest) Input() requirement.Input {
	return requirement.Input{Spec: r.Spec, Budget: r.Budget, Deadline: r.Deadline}
}

type CreateAuctionRequest struct {
	InventoryID string          `json:"inventory_id" binding:"required"`
	BasePrice   decimal.Decimal `json:"base_price"`
	StartDate   time.Time       `json:"start_date" binding:"required"`
	EndDate     time.Time       `json:"end_date" binding:"required"`
}

func (r CreateAuctionRequest) Input() auction.CreateInput {
	return auction.CreateInput{
		InventoryID: r.InventoryID,
		BasePrice:   r.BasePrice,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

type UpdateAuctionRequest struct {
	BasePrice *decimal.Decimal `json:"base_price"`
	StartDate *time.Time       `json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
}

func (r UpdateAuctionRequest) Patch() auction.Patch {
	return auction.Patch{BasePrice: r.BasePrice, StartDate: r.StartDate, EndDate: r.EndDate}
}

type AuctionBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type RequirementBidRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	InventoryID string          `json:"inventory_id"`
	Note        string          `json:"note"`
}

func (r RequirementBidRequest) Offer() bidding.Offer {
	return bidding.Offer{Amount: r.Amount, InventoryID: r.InventoryID, Note: r.Note}
}

type BidStatusRequest struct {
	Status model.BidStatus `json:"status" binding:"required"`
}

type CreateDealRequest struct {
	BidID string `json:"bid_id" binding:"required"`
}

type DealStatusRequest struct {
	Status         model.DealStatus `json:"status" binding:"required"`
	PaymentMethod  string           `json:"payment_method"`
	TransactionID  string           `json:"transaction_id"`
	Courier        string           `json:"courier"`
	TrackingNumber string           `json:"tracking_number"`
	Reason         string           `json:"reason"`
	Resolution     string           `json:"resolution"`
}

func (r DealStatusRequest) Change() deal.Change {
	return deal.Change{
		Status: r.Status,
		Details: deal.Details{
			PaymentMethod:  r.PaymentMethod,
			TransactionID:  r.TransactionID,
			Courier:        r.Courier,
			TrackingNumber: r.TrackingNumber,
			Reason:         r.Reason,
			Resolution:     r.Resolution,
		},
	}
}

type InvoiceResponse struct {
	DealID  string `json:"deal_id"`
	PDFPath string `json:"pdf_path"`
	Size    int    `json:"size"`
}
