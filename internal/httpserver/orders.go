package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"srebrnasad/internal/domain"
	orderrepo "srebrnasad/internal/repository/order"
	ordersvc "srebrnasad/internal/service/order"
)

type orderLineRequest struct {
	AppleID    string `json:"appleId" binding:"required"`
	QuantityKg int    `json:"quantityKg" binding:"required,quantitystep"`
}

type pickupRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type deliveryRequest struct {
	Address string  `json:"address" binding:"required"`
	Lat     float64 `json:"lat" binding:"required"`
	Lon     float64 `json:"lon" binding:"required"`
}

type createOrderRequest struct {
	Lines         []orderLineRequest `json:"lines" binding:"required,min=1,dive"`
	Packaging     string             `json:"packaging" binding:"required,oneof=own box"`
	Pickup        *pickupRequest     `json:"pickup"`
	Delivery      *deliveryRequest   `json:"delivery"`
	CustomerName  string             `json:"customerName" binding:"required"`
	CustomerEmail string             `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone string             `json:"customerPhone" binding:"required"`
}

// createOrderStructValidation enforces the rules that span fields: an order
// is fulfilled by exactly one of pickup or delivery, and delivery implies
// box packaging.
func createOrderStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(createOrderRequest)
	if (req.Pickup == nil) == (req.Delivery == nil) {
		sl.ReportError(req.Pickup, "pickup", "Pickup", "fulfillment", "")
	}
	if req.Delivery != nil && req.Packaging != string(domain.PackagingBox) {
		sl.ReportError(req.Packaging, "packaging", "Packaging", "deliverybox", "")
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type quoteRequest struct {
	Lines     []orderLineRequest `json:"lines"`
	Packaging string             `json:"packaging" binding:"omitempty,oneof=own box"`
	Delivery  *struct {
		Valid bool `json:"valid"`
	} `json:"delivery"`
}

func createOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := ordersvc.CreateInput{
			Packaging:     req.Packaging,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
		}
		for _, l := range req.Lines {
			in.Lines = append(in.Lines, ordersvc.LineInput{AppleID: l.AppleID, QuantityKg: l.QuantityKg})
		}
		if req.Pickup != nil {
			in.Pickup = &ordersvc.PickupInput{Date: req.Pickup.Date, Time: req.Pickup.Time}
		}
		if req.Delivery != nil {
			in.Delivery = &ordersvc.DeliveryInput{Address: req.Delivery.Address, Lat: req.Delivery.Lat, Lon: req.Delivery.Lon}
		}

		order, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := orderrepo.ListFilter{
			Status: c.Query("status_filter"),
			Skip:   intQuery(c, "skip", 0),
			Limit:  intQuery(c, "limit", 50),
		}
		if filter.Status != "" && !domain.IsValidStatus(filter.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
			return
		}
		orders, total, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
	}
}

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func updateOrderStatusHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func quoteHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := ordersvc.QuoteInput{Packaging: req.Packaging}
		for _, l := range req.Lines {
			in.Lines = append(in.Lines, ordersvc.LineInput{AppleID: l.AppleID, QuantityKg: l.QuantityKg})
		}
		if req.Delivery != nil {
			in.Delivery = &ordersvc.QuoteDelivery{Valid: req.Delivery.Valid}
		}

		quote, err := svc.Quote(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
