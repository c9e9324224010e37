package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Severity is shared by bug reports and security alerts.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Valid reports whether s is a member of the closed set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// SolverPayload is the category-specific structured output produced by a
// solver. Every variant carries the assigned team.
type SolverPayload interface {
	// PayloadCategory returns the category this payload shape belongs to.
	PayloadCategory() Category

	// Team returns the assigned team carried by the payload.
	Team() AssignedTeam

	// Validate checks required fields and closed-enum membership.
	Validate() error
}

// BugReport is the solver output for BUGS tickets.
type BugReport struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	ReproductionSteps []string     `json:"reproduction_steps"`
	Severity          Severity     `json:"severity"`
	AssignedTeam      AssignedTeam `json:"assigned_team"`
}

func (b BugReport) PayloadCategory() Category { return CategoryBugs }
func (b BugReport) Team() AssignedTeam        { return b.AssignedTeam }

func (b BugReport) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("bug report: title is empty")
	}
	if strings.TrimSpace(b.Description) == "" {
		return errors.New("bug report: description is empty")
	}
	if len(b.ReproductionSteps) == 0 {
		return errors.New("bug report: reproduction_steps is empty")
	}
	if !b.Severity.Valid() {
		return fmt.Errorf("bug report: severity %q is not in the closed severity set", b.Severity)
	}
	return validateTeam("bug report", b.AssignedTeam)
}

// DraftResponse is the solver output for QUERY tickets.
type DraftResponse struct {
	BodyText     string       `json:"body_text"`
	Resolved     bool         `json:"is_resolved"`
	AssignedTeam AssignedTeam `json:"assigned_team"`
}

func (d DraftResponse) PayloadCategory() Category { return CategoryQuery }
func (d DraftResponse) Team() AssignedTeam        { return d.AssignedTeam }

func (d DraftResponse) Validate() error {
	if strings.TrimSpace(d.BodyText) == "" {
		return errors.New("draft response: body_text is empty")
	}
	return validateTeam("draft response", d.AssignedTeam)
}

// FeatureRequestReport is the solver output for REQUEST tickets.
type FeatureRequestReport struct {
	FeatureSummary string       `json:"feature_summary"`
	UserGoal       string       `json:"user_goal"`
	BusinessImpact string       `json:"business_impact"`
	AssignedTeam   AssignedTeam `json:"assigned_team"`
}

func (f FeatureRequestReport) PayloadCategory() Category { return CategoryRequest }
func (f FeatureRequestReport) Team() AssignedTeam        { return f.AssignedTeam }

func (f FeatureRequestReport) Validate() error {
	if strings.TrimSpace(f.FeatureSummary) == "" {
		return errors.New("feature request: feature_summary is empty")
	}
	if strings.TrimSpace(f.UserGoal) == "" {
		return errors.New("feature request: user_goal is empty")
	}
	switch f.BusinessImpact {
	case "High", "Medium", "Low":
	default:
		return fmt.Errorf("feature request: business_impact %q must be High, Medium or Low", f.BusinessImpact)
	}
	return validateTeam("feature request", f.AssignedTeam)
}

// SecurityAlert is the solver output for SECURITY tickets.
type SecurityAlert struct {
	AlertSummary      string       `json:"alert_summary"`
	Severity          Severity     `json:"severity"`
	RecommendedAction string       `json:"recommended_action"`
	AssignedTeam      AssignedTeam `json:"assigned_team"`
}

func (s SecurityAlert) PayloadCategory() Category { return CategorySecurity }
func (s SecurityAlert) Team() AssignedTeam        { return s.AssignedTeam }

func (s SecurityAlert) Validate() error {
	if strings.TrimSpace(s.AlertSummary) == "" {
		return errors.New("security alert: alert_summary is empty")
	}
	if !s.Severity.Valid() {
		return fmt.Errorf("security alert: severity %q is not in the closed severity set", s.Severity)
	}
	if strings.TrimSpace(s.RecommendedAction) == "" {
		return errors.New("security alert: recommended_action is empty")
	}
	return validateTeam("security alert", s.AssignedTeam)
}

// CorrectnessReview is the solver output for CORRECTNESS tickets.
type CorrectnessReview struct {
	IdentifiedError     string       `json:"identified_error"`
	SuggestedCorrection string       `json:"suggested_correction"`
	AssignedTeam        AssignedTeam `json:"assigned_team"`
}

func (c CorrectnessReview) PayloadCategory() Category { return CategoryCorrectness }
func (c CorrectnessReview) Team() AssignedTeam        { return c.AssignedTeam }

func (c CorrectnessReview) Validate() error {
	if strings.TrimSpace(c.IdentifiedError) == "" {
		return errors.New("correctness review: identified_error is empty")
	}
	if strings.TrimSpace(c.SuggestedCorrection) == "" {
		return errors.New("correctness review: suggested_correction is empty")
	}
	return validateTeam("correctness review", c.AssignedTeam)
}

// GeneralTriage is the solver output for MISCELLANEOUS tickets.
type GeneralTriage struct {
	TriageSummary       string       `json:"triage_summary"`
	RecommendedNextStep string       `json:"recommended_next_step"`
	AssignedTeam        AssignedTeam `json:"assigned_team"`
}

func (g GeneralTriage) PayloadCategory() Category { return CategoryMiscellaneous }
func (g GeneralTriage) Team() AssignedTeam        { return g.AssignedTeam }

func (g GeneralTriage) Validate() error {
	if strings.TrimSpace(g.TriageSummary) == "" {
		return errors.New("general triage: triage_summary is empty")
	}
	if strings.TrimSpace(g.RecommendedNextStep) == "" {
		return errors.New("general triage: recommended_next_step is empty")
	}
	return validateTeam("general triage", g.AssignedTeam)
}

func validateTeam(kind string, team AssignedTeam) error {
	if !team.Valid() {
		return fmt.Errorf("%s: assigned_team %q is not in the closed team set", kind, team)
	}
	return nil
}

// SolverOutput is the tagged union emitted by the orchestrator: the
// category tag, the solver that produced the payload, and the payload
// itself. The tag always matches the payload's own category.
type SolverOutput struct {
	Category Category      `json:"category"`
	Solver   string        `json:"solver"`
	Payload  SolverPayload `json:"data"`
}

// Validate checks the tag/payload correspondence and the payload itself.
func (o SolverOutput) Validate() error {
	if o.Payload == nil {
		return errors.New("solver output: payload is nil")
	}
	if o.Payload.PayloadCategory() != o.Category {
		return fmt.Errorf("solver output: payload category %q does not match tag %q",
			o.Payload.PayloadCategory(), o.Category)
	}
	return o.Payload.Validate()
}

// UnmarshalJSON decodes the tagged union by switching on the category tag.
func (o *SolverOutput) UnmarshalJSON(data []byte) error {
	var shell struct {
		Category Category        `json:"category"`
		Solver   string          `json:"solver"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &shell); err != nil {
		return err
	}

	o.Category = shell.Category
	o.Solver = shell.Solver

	if len(shell.Data) == 0 {
		return errors.New("solver output: missing data field")
	}

	switch shell.Category {
	case CategoryBugs:
		var p BugReport
		if err := json.Unmarshal(shell.Data, &p); err != nil {
			return err
		}
		o.Payload = p
	case CategoryQuery:
		var p DraftResponse
		if err := json.Unmarshal(shell.Data, &p); err != nil {
			return err
		}
		o.Payload = p
	case CategoryRequest:
		var p FeatureRequestReport
		if err := json.Unmarshal(shell.Data, &p); err != nil {
			return err
		}
		o.Payload = p
	case CategorySecurity:
		var p SecurityAlert
		if err := json.Unmarshal(shell.Data, &p); err != nil {
			return err
		}
		o.Payload = p
	case CategoryCorrectness:
		var p CorrectnessReview
		if err := json.Unmarshal(shell.Data, &p); err != nil {
			return err
		}
		o.Payload = p
	case CategoryMiscellaneous:
		var p GeneralTriage
		if err := json.Unmarshal(shell.Data, &p); err != nil {
			return err
		}
		o.Payload = p
	default:
		return fmt.Errorf("solver output: unknown category tag %q", shell.Category)
	}

	return nil
}

// Result is the externally observable unit of output for a solved ticket.
type Result struct {
	TicketID    string       `json:"ticket_id"`
	RoutingSlip RoutingSlip  `json:"routing_slip"`
	Solver      SolverOutput `json:"solver_output"`
}

// Failure describes a terminal per-ticket error: the stage it happened
// in and the error kind.
type Failure struct {
	Stage string `json:"stage"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Record is the per-ticket entry emitted by the batch runner: either a
// routing slip plus solver output, or a failure. Never both.
type Record struct {
	Ticket         Ticket        `json:"original_ticket"`
	RoutingSlip    *RoutingSlip  `json:"router_output,omitempty"`
	Solver         *SolverOutput `json:"solver_output,omitempty"`
	Failure        *Failure      `json:"failure,omitempty"`
	ProcessingSecs float64       `json:"processing_time_seconds"`
}

// Solved reports whether the record carries a complete result.
func (r Record) Solved() bool {
	return r.Failure == nil && r.RoutingSlip != nil && r.Solver != nil
}
