// Package eval computes batch metrics against optional ground-truth
// fields carried in ticket metadata. Assigned teams are model-determined
// output, so accuracy here is measured against held-out human labels,
// never against a verifiable function.
package eval

import (
	"fmt"
	"strings"

	"ticket-triage/internal/model"
)

// Metadata keys holding ground-truth labels. Tickets without them are
// skipped by the corresponding metric.
const (
	KeyGroundTruthCategory = "ground_truth_category"
	KeyGroundTruthUrgency  = "ground_truth_urgency"
	KeyGroundTruthTeam     = "ground_truth_team"
)

// Metrics summarizes a processed batch.
type Metrics struct {
	Overall OverallMetrics `json:"overall_performance"`
	Router  RouterMetrics  `json:"router_evaluation"`
	Solver  SolverMetrics  `json:"solver_evaluation"`
}

type OverallMetrics struct {
	TotalTickets          int     `json:"total_tickets_processed"`
	AverageProcessingSecs float64 `json:"average_processing_time_seconds"`
}

type RouterMetrics struct {
	RoutingAccuracy Accuracy `json:"routing_accuracy"`
	UrgencyAccuracy Accuracy `json:"urgency_accuracy"`
}

type SolverMetrics struct {
	SuccessRatePercent     float64  `json:"solver_success_rate_percent"`
	TeamAssignmentAccuracy Accuracy `json:"team_assignment_accuracy"`
}

// Accuracy is a correct/attempted pair with a derived percentage.
type Accuracy struct {
	Correct   int     `json:"correct"`
	Attempted int     `json:"attempted"`
	Percent   float64 `json:"percent"`
}

func (a Accuracy) String() string {
	return fmt.Sprintf("%.2f%% (%d/%d)", a.Percent, a.Correct, a.Attempted)
}

func newAccuracy(correct, attempted int) Accuracy {
	a := Accuracy{Correct: correct, Attempted: attempted}
	if attempted > 0 {
		a.Percent = float64(correct) / float64(attempted) * 100
	}
	return a
}

// CalculateMetrics computes routing, urgency, and team-assignment
// accuracy plus overall throughput figures for a batch of records.
func CalculateMetrics(records []model.Record) Metrics {
	total := len(records)
	if total == 0 {
		return Metrics{}
	}

	var totalSecs float64
	var routedCorrect, routedAttempts int
	var urgentCorrect, urgentAttempts int
	var teamCorrect, teamAttempts int
	var solved int

	for _, r := range records {
		totalSecs += r.ProcessingSecs

		if r.RoutingSlip != nil {
			if gt, ok := r.Ticket.Metadata[KeyGroundTruthCategory]; ok && gt != "" {
				routedAttempts++
				if strings.EqualFold(gt, string(r.RoutingSlip.Category)) {
					routedCorrect++
				}
			}
			if gt, ok := r.Ticket.Metadata[KeyGroundTruthUrgency]; ok && gt != "" {
				urgentAttempts++
				if strings.EqualFold(gt, string(r.RoutingSlip.Urgency)) {
					urgentCorrect++
				}
			}
		}

		if r.Solved() {
			solved++
			if gt, ok := r.Ticket.Metadata[KeyGroundTruthTeam]; ok && gt != "" {
				teamAttempts++
				if strings.EqualFold(gt, string(r.Solver.Payload.Team())) {
					teamCorrect++
				}
			}
		}
	}

	return Metrics{
		Overall: OverallMetrics{
			TotalTickets:          total,
			AverageProcessingSecs: totalSecs / float64(total),
		},
		Router: RouterMetrics{
			RoutingAccuracy: newAccuracy(routedCorrect, routedAttempts),
			UrgencyAccuracy: newAccuracy(urgentCorrect, urgentAttempts),
		},
		Solver: SolverMetrics{
			SuccessRatePercent:     float64(solved) / float64(total) * 100,
			TeamAssignmentAccuracy: newAccuracy(teamCorrect, teamAttempts),
		},
	}
}
