package http

import (
	"github.com/gin-gonic/gin"

	"ticket-triage/internal/triage"
	"ticket-triage/pkg/log"
)

// Handler is the public interface for the triage HTTP delivery layer.
type Handler interface {
	ProcessTicket(c *gin.Context)
	ProcessBatch(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc triage.UseCase
}

// New creates a new HTTP handler for the triage domain.
func New(l log.Logger, uc triage.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
