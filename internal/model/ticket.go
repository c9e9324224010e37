package model

import (
	"errors"
	"fmt"
	"strings"
)

// Ticket is a customer support request. Tickets are immutable once
// received; the metadata bag is opaque to the pipeline and is only
// rendered into prompts.
type Ticket struct {
	ID       string            `json:"ticket_id"`
	Subject  string            `json:"subject"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks the minimal shape required to start triage.
func (t Ticket) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("ticket id is required")
	}
	if strings.TrimSpace(t.Subject) == "" && strings.TrimSpace(t.Message) == "" {
		return errors.New("ticket must carry a subject or a message")
	}
	return nil
}

// Category is the closed set of triage categories. Not extensible at runtime.
type Category string

const (
	CategoryBugs          Category = "BUGS"
	CategoryQuery         Category = "QUERY"
	CategoryRequest       Category = "REQUEST"
	CategorySecurity      Category = "SECURITY"
	CategoryCorrectness   Category = "CORRECTNESS"
	CategoryMiscellaneous Category = "MISCELLANEOUS"
)

// Categories returns every member of the closed category set.
func Categories() []Category {
	return []Category{
		CategoryBugs,
		CategoryQuery,
		CategoryRequest,
		CategorySecurity,
		CategoryCorrectness,
		CategoryMiscellaneous,
	}
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryBugs, CategoryQuery, CategoryRequest,
		CategorySecurity, CategoryCorrectness, CategoryMiscellaneous:
		return true
	}
	return false
}

// Urgency is the closed set of urgency ratings.
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Valid reports whether u is a member of the closed set.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// AssignedTeam is the closed set of internal teams a solver may pick.
// Closed at any given version; extending it is a code change.
type AssignedTeam string

const (
	TeamFrontend        AssignedTeam = "Frontend"
	TeamBackend         AssignedTeam = "Backend"
	TeamSecurity        AssignedTeam = "Security"
	TeamUIUX            AssignedTeam = "UI/UX"
	TeamCustomerSupport AssignedTeam = "Customer Support"
	TeamDocumentation   AssignedTeam = "Documentation"
	TeamGeneralTriage   AssignedTeam = "General Triage"
)

// AssignedTeams returns every member of the closed team set.
func AssignedTeams() []AssignedTeam {
	return []AssignedTeam{
		TeamFrontend,
		TeamBackend,
		TeamSecurity,
		TeamUIUX,
		TeamCustomerSupport,
		TeamDocumentation,
		TeamGeneralTriage,
	}
}

// Valid reports whether t is a member of the closed set.
func (t AssignedTeam) Valid() bool {
	switch t {
	case TeamFrontend, TeamBackend, TeamSecurity, TeamUIUX,
		TeamCustomerSupport, TeamDocumentation, TeamGeneralTriage:
		return true
	}
	return false
}

// RoutingSlip is the Router's classification output. Produced once per
// ticket and read-only afterward.
type RoutingSlip struct {
	Category Category `json:"category"`
	Urgency  Urgency  `json:"urgency"`
	Summary  string   `json:"summary"`
}

// Validate enforces the closed enums and a non-empty summary.
func (s RoutingSlip) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("category %q is not in the closed category set", s.Category)
	}
	if !s.Urgency.Valid() {
		return fmt.Errorf("urgency %q is not in the closed urgency set", s.Urgency)
	}
	if strings.TrimSpace(s.Summary) == "" {
		return errors.New("summary is empty")
	}
	return nil
}
