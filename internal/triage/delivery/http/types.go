package http

import (
	"errors"
	"strings"

	"ticket-triage/internal/model"
)

type ticketReq struct {
	TicketID string            `json:"ticket_id" binding:"required"`
	Subject  string            `json:"subject"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata"`
}

func (r ticketReq) validate() error {
	if strings.TrimSpace(r.Subject) == "" && strings.TrimSpace(r.Message) == "" {
		return errors.New("subject or message is required")
	}
	return nil
}

func (r ticketReq) toModel() model.Ticket {
	return model.Ticket{
		ID:       r.TicketID,
		Subject:  r.Subject,
		Message:  r.Message,
		Metadata: r.Metadata,
	}
}

type batchReq struct {
	Tickets []ticketReq `json:"tickets" binding:"required,min=1"`
}

func (r batchReq) validate() error {
	for _, t := range r.Tickets {
		if strings.TrimSpace(t.TicketID) == "" {
			return errors.New("every ticket requires a ticket_id")
		}
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r batchReq) toModel() []model.Ticket {
	tickets := make([]model.Ticket, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = t.toModel()
	}
	return tickets
}
