package router

import (
	"context"
	"encoding/json"
	"fmt"

	"ticket-triage/internal/model"
	"ticket-triage/internal/triage"
	"ticket-triage/pkg/llmprovider"
)

// Classify determines the category, urgency, and one-sentence summary
// for a ticket. The model response must validate against the routing
// slip shape; any violation is a classification error, never a silent
// default.
func (c *Classifier) Classify(ctx context.Context, t model.Ticket) (model.RoutingSlip, error) {
	c.l.Infof(ctx, "%s: analyzing ticket %s", LogPrefixClassify, t.ID)

	prompt := triage.RenderTicketContext(t.ID, t.Subject, t.Message, t.Metadata) + "\n" + PromptRouterUser

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: PromptRouterSystem,
		Messages: []llmprovider.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxOutputTokens,
	})
	if err != nil {
		return model.RoutingSlip{}, triage.NewError(triage.StageRouting, triage.UpstreamKind(err), err)
	}

	cleaned := triage.ExtractJSON(resp.Text)

	var slip model.RoutingSlip
	if err := json.Unmarshal([]byte(cleaned), &slip); err != nil {
		c.l.Errorf(ctx, "%s: undecodable model response for ticket %s: %q", LogPrefixClassify, t.ID, resp.Text)
		return model.RoutingSlip{}, triage.NewError(triage.StageRouting, triage.KindClassification,
			fmt.Errorf("failed to decode routing slip: %w", err))
	}

	if err := slip.Validate(); err != nil {
		c.l.Errorf(ctx, "%s: invalid routing slip for ticket %s: %v", LogPrefixClassify, t.ID, err)
		return model.RoutingSlip{}, triage.NewError(triage.StageRouting, triage.KindClassification,
			fmt.Errorf("invalid routing slip: %w", err))
	}

	c.l.Infof(ctx, "%s: ticket %s routed category=%s urgency=%s", LogPrefixClassify, t.ID, slip.Category, slip.Urgency)
	return slip, nil
}
