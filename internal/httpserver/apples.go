package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"srebrnasad/internal/domain"
	"srebrnasad/internal/service/catalog"
)

type createAppleRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"priceCents" binding:"required,gt=0"`
	Available     *bool  `json:"available"`
	MaxQuantityKg int    `json:"maxQuantityKg" binding:"omitempty,gt=0"`
}

type updateAppleRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PriceCents    *int64  `json:"priceCents" binding:"omitempty,gt=0"`
	Available     *bool   `json:"available"`
	MaxQuantityKg *int    `json:"maxQuantityKg" binding:"omitempty,gt=0"`
}

func listApplesHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apples, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list varieties"})
			return
		}
		if c.Query("available") == "true" {
			filtered := apples[:0]
			for _, a := range apples {
				if a.Available {
					filtered = append(filtered, a)
				}
			}
			apples = filtered
		}
		c.JSON(http.StatusOK, gin.H{"apples": apples, "total": len(apples)})
	}
}

func getAppleHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apple, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "variety not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load variety"})
			return
		}
		c.JSON(http.StatusOK, apple)
	}
}

func createAppleHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAppleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		apple, err := svc.Create(c.Request.Context(), catalog.CreateInput{
			Name:          req.Name,
			Description:   req.Description,
			PriceCents:    req.PriceCents,
			Available:     req.Available,
			MaxQuantityKg: req.MaxQuantityKg,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, apple)
	}
}

func updateAppleHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateAppleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		apple, err := svc.Update(c.Request.Context(), c.Param("id"), catalog.UpdateInput{
			Name:          req.Name,
			Description:   req.Description,
			PriceCents:    req.PriceCents,
			Available:     req.Available,
			MaxQuantityKg: req.MaxQuantityKg,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "variety not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, apple)
	}
}

func deleteAppleHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "variety not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete variety"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
