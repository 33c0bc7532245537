package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactsvc "srebrnasad/internal/service/contact"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

func submitContactHandler(svc contactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		msg, err := svc.Submit(c.Request.Context(), contactsvc.SubmitInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

func listContactHandler(svc contactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
	}
}
