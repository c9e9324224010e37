package http

import (
	"github.com/gin-gonic/gin"
)

// processTicketReq binds and validates the single-ticket request body.
func (h *handler) processTicketReq(c *gin.Context) (ticketReq, error) {
	var req ticketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processBatchReq binds and validates the batch request body.
func (h *handler) processBatchReq(c *gin.Context) (batchReq, error) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
