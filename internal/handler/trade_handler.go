package handler

import (
	"net/http"
	"strconv"
	"time"

	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// TradeInput defines the body for creating or updating a trade.
type TradeInput struct {
	Symbol     string     `json:"symbol" binding:"required,min=1,max=20"`
	Side       string     `json:"side" binding:"required,oneof=long short"`
	Quantity   float64    `json:"quantity" binding:"required,gt=0"`
	EntryPrice float64    `json:"entry_price" binding:"required,gt=0"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	OpenedAt   time.Time  `json:"opened_at" binding:"required"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Notes      string     `json:"notes" binding:"max=2000"`
}

// TradeResponse defines the structure for a journal entry.
type TradeResponse struct {
	ID         uint       `json:"id"`
	Symbol     string     `json:"symbol"`
	Side       string     `json:"side"`
	Quantity   float64    `json:"quantity"`
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	Pnl        *float64   `json:"pnl,omitempty"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

func newTradeResponse(t models.Trade) TradeResponse {
	return TradeResponse{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Side:       string(t.Side),
		Quantity:   t.Quantity,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		Pnl:        t.Pnl,
		OpenedAt:   t.OpenedAt,
		ClosedAt:   t.ClosedAt,
		Notes:      t.Notes,
	}
}

func applyTradeInput(trade *models.Trade, input TradeInput) {
	trade.Symbol = input.Symbol
	trade.Side = models.TradeSide(input.Side)
	trade.Quantity = input.Quantity
	trade.EntryPrice = input.EntryPrice
	trade.ExitPrice = input.ExitPrice
	trade.OpenedAt = input.OpenedAt
	trade.ClosedAt = input.ClosedAt
	trade.Notes = input.Notes
	trade.Pnl = trade.ComputePnl()
}

// endregion

// CreateTrade godoc
// @Summary      Record a trade
// @Description  Adds a journal entry. PnL is computed when an exit price is given.
// @Tags         trades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TradeInput true "Trade Info"
// @Success      201  {object}  TradeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /trades [post]
func CreateTrade(c *gin.Context) {
	userID := actingUserID(c)

	var input TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trade := models.Trade{UserID: userID}
	applyTradeInput(&trade, input)

	if err := database.DB.Create(&trade).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trade"})
		return
	}

	c.JSON(http.StatusCreated, newTradeResponse(trade))
}

// ListTrades godoc
// @Summary      List my trades
// @Description  Returns the authenticated user's trades, newest first, paginated.
// @Tags         trades
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[TradeResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /trades [get]
func ListTrades(c *gin.Context) {
	userID := actingUserID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := database.DB.Model(&models.Trade{}).
		Where("user_id = ?", userID).
		Order("opened_at desc")

	result, err := Paginate[models.Trade](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trades"})
		return
	}

	responses := make([]TradeResponse, 0, len(result.Data))
	for _, trade := range result.Data {
		responses = append(responses, newTradeResponse(trade))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetTrade godoc
// @Summary      Get a trade
// @Description  Returns one of the authenticated user's trades.
// @Tags         trades
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trade ID"
// @Success      200  {object}  TradeResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /trades/{id} [get]
func GetTrade(c *gin.Context) {
	userID := actingUserID(c)
	tradeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var trade models.Trade
	if err := database.DB.Where("id = ? AND user_id = ?", tradeID, userID).First(&trade).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		return
	}

	c.JSON(http.StatusOK, newTradeResponse(trade))
}

// UpdateTrade godoc
// @Summary      Update a trade
// @Description  Replaces a trade's fields and recomputes PnL.
// @Tags         trades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int        true "Trade ID"
// @Param        input body TradeInput true "New Trade Info"
// @Success      200  {object}  TradeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /trades/{id} [put]
func UpdateTrade(c *gin.Context) {
	userID := actingUserID(c)
	tradeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var trade models.Trade
	if err := database.DB.Where("id = ? AND user_id = ?", tradeID, userID).First(&trade).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		return
	}

	var input TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applyTradeInput(&trade, input)
	if err := database.DB.Save(&trade).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trade"})
		return
	}

	c.JSON(http.StatusOK, newTradeResponse(trade))
}

// DeleteTrade godoc
// @Summary      Delete a trade
// @Description  Removes one of the authenticated user's trades.
// @Tags         trades
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trade ID"
// @Success      200  {object}  map[string]string "{"message": "Trade deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /trades/{id} [delete]
func DeleteTrade(c *gin.Context) {
	userID := actingUserID(c)
	tradeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", tradeID, userID).Delete(&models.Trade{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trade"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trade deleted"})
}
