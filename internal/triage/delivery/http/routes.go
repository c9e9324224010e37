package http

import (
	"github.com/gin-gonic/gin"

	"ticket-triage/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	tickets := rg.Group("/tickets")
	{
		tickets.POST("/process", mw.RateLimit(), h.ProcessTicket)
		tickets.POST("/process-batch", mw.RateLimit(), h.ProcessBatch)
	}
}
