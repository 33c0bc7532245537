package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"srebrnasad/internal/delivery"
)

type deliveryCheckRequest struct {
	SessionKey      string `json:"sessionKey" binding:"required"`
	Address         string `json:"address"`
	TotalQuantityKg int    `json:"totalQuantityKg" binding:"required,gt=0"`
}

type deliveryValidateRequest struct {
	TotalQuantityKg int     `json:"totalQuantityKg" binding:"required,gt=0"`
	Lat             float64 `json:"lat" binding:"required"`
	Lon             float64 `json:"lon" binding:"required"`
}

// deliveryCheckHandler runs the full eligibility chain for one cart. Checks
// for the same session key supersede each other: if a newer check started
// while this one was in flight, the stale result is discarded and the
// response says so.
func deliveryCheckHandler(checker deliveryChecker, sessions *delivery.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deliveryCheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session := sessions.Session(req.SessionKey)
		token := session.Begin()

		result := checker.Check(c.Request.Context(), req.Address, req.TotalQuantityKg)

		if !session.Apply(token, result) {
			c.JSON(http.StatusOK, gin.H{"applied": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"applied": true, "result": result})
	}
}

// deliveryValidateHandler is the authoritative server-side verdict used at
// order submission. It takes coordinates, not an address, and never reuses
// client-reported distance.
func deliveryValidateHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deliveryValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.ValidateDelivery(c.Request.Context(), req.TotalQuantityKg, req.Lat, req.Lon)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery validation failed"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
