package http

import (
	"github.com/gin-gonic/gin"

	"ticket-triage/internal/triage"
	"ticket-triage/pkg/response"
)

// ProcessTicket triages a single support ticket.
// @Summary     Process a support ticket
// @Description Classifies the ticket, dispatches to the category solver, and returns the structured result
// @Tags        Tickets
// @Accept      json
// @Produce     json
// @Param       ticket body ticketReq true "Ticket to triage"
// @Success     200 {object} response.Resp "Solved result"
// @Failure     400 {object} response.Resp "Malformed request"
// @Failure     422 {object} response.Resp "Triage failed; data carries stage and kind"
// @Router      /api/v1/tickets/process [post]
func (h *handler) ProcessTicket(c *gin.Context) {
	req, err := h.processTicketReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := h.uc.ProcessTicket(c.Request.Context(), req.toModel())
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.OK(c, result)
}

// ProcessBatch triages a list of tickets sequentially.
// @Summary     Process a batch of support tickets
// @Description Processes each ticket independently; per-ticket failures are reported inline and never abort the batch
// @Tags        Tickets
// @Accept      json
// @Produce     json
// @Param       batch body batchReq true "Tickets to triage"
// @Success     200 {object} response.Resp "Per-ticket records"
// @Failure     400 {object} response.Resp "Malformed request"
// @Router      /api/v1/tickets/process-batch [post]
func (h *handler) ProcessBatch(c *gin.Context) {
	req, err := h.processBatchReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	records := h.uc.ProcessBatch(c.Request.Context(), req.toModel())
	response.OK(c, gin.H{"records": records})
}

// renderError maps a pipeline error to the HTTP response. Typed triage
// errors become 422 with the stage and kind; anything else is a 500.
func (h *handler) renderError(c *gin.Context, err error) {
	if te, ok := triage.AsError(err); ok {
		response.UnprocessableEntity(c, err, gin.H{
			"stage": string(te.Stage),
			"kind":  string(te.Kind),
		})
		return
	}

	h.l.Errorf(c.Request.Context(), "internal.triage.delivery.http: unexpected error: %v", err)
	response.InternalError(c, err)
}
