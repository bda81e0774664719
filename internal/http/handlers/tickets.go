package handlers

import (
	"fmt"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// GetETicket streams the booking's e-ticket as a PDF attachment.
func GetETicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(principal, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", pdf)
}
