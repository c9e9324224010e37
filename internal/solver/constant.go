package solver

import (
	"strings"

	"ticket-triage/internal/model"
)

// Solver names carried in results and logs.
const (
	NameBugSolver            = "BugSolver"
	NameQuerySolver          = "QuerySolver"
	NameFeatureRequestSolver = "FeatureRequestSolver"
	NameSecuritySolver       = "SecuritySolver"
	NameCorrectnessSolver    = "CorrectnessSolver"
	NameMiscSolver           = "MiscSolver"
)

// Generation defaults. Low temperature keeps the JSON output deterministic.
const (
	DefaultTemperature     = 0.2
	DefaultMaxOutputTokens = 2048
)

// teamList renders the closed team enum for the prompts.
func teamList() string {
	teams := model.AssignedTeams()
	quoted := make([]string, len(teams))
	for i, t := range teams {
		quoted[i] = `"` + string(t) + `"`
	}
	return strings.Join(quoted, ", ")
}

// promptCommonRules is shared by every solver system prompt.
var promptCommonRules = `Your response MUST be a single, valid JSON object. Do not add markdown backticks, conversational text, or explanations.

The "assigned_team" field MUST be exactly one of: ` + teamList() + `.`

// Per-category system prompts. Each requires the category-appropriate
// fields and the closed team enum.
var (
	promptBugSystem = `You are an expert software developer creating a bug report for an issue tracker. Return a JSON object with:
- "title": a descriptive title that clearly states the core problem.
- "description": a short explanation of the problem and its impact.
- "reproduction_steps": an array of easy-to-follow steps an engineer can use to replicate the bug. Must not be empty.
- "severity": exactly one of "Critical", "High", "Medium", "Low".
- "assigned_team": if the root cause likely lies in server-side logic, API functionality, database interactions, data processing, authentication, or core system performance, assign "Backend". For visual or client-side user interface bugs, assign "Frontend" or "UI/UX". Only assign "General Triage" if the problem domain is highly ambiguous.

` + promptCommonRules

	promptQuerySystem = `You are a friendly customer support agent drafting a response. Return a JSON object with:
- "body_text": a helpful, friendly, and empathetic response addressing the customer's question directly.
- "is_resolved": true if the drafted response fully resolves the question, false otherwise.
- "assigned_team": the internal team responsible for the subject matter. Server functionality, data, APIs, or integrations suggest "Backend"; account help, billing, or general guidance suggest "Customer Support". Avoid "General Triage" if a more specific team fits.

` + promptCommonRules

	promptRequestSystem = `You are a product manager analyzing a new feature request. Return a JSON object with:
- "feature_summary": the user's core request in one or two sentences.
- "user_goal": the underlying goal or problem the user is trying to solve.
- "business_impact": exactly one of "High", "Medium", "Low".
- "assigned_team": the team that would own the feature. Data manipulation, new APIs, architectural changes, or integrations suggest "Backend"; interface or visual work suggests "Frontend" or "UI/UX". "General Triage" is inappropriate when the technical domain is reasonably clear.

` + promptCommonRules

	promptSecuritySystem = `You are a security analyst creating a high-priority alert. Return a JSON object with:
- "alert_summary": a concise summary of the potential vulnerability reported in the ticket.
- "severity": exactly one of "Critical", "High", "Medium", "Low".
- "recommended_action": the single most important next step to take immediately, e.g. "Escalate to security team" or "Revoke API key".
- "assigned_team": prioritize "Security" for unauthorized access, exploitation, or policy violations. Avoid "General Triage" for clear security alerts.

` + promptCommonRules

	promptCorrectnessSystem = `You are a QA engineer noting a correctness issue in content. Return a JSON object with:
- "identified_error": the specific factual or textual error found, e.g. a typo in the UI or an incorrect number in a report.
- "suggested_correction": the exact text or value that would correct the error.
- "assigned_team": the team responsible for that content. Backend-generated data or calculations suggest "Backend"; UI text suggests "Frontend" or "UI/UX"; documentation errors suggest "Documentation". Do not use "General Triage" if the source of the error can be pinpointed.

` + promptCommonRules

	promptMiscSystem = `You are a support lead triaging an unclear ticket. Return a JSON object with:
- "triage_summary": a summary of the ticket's content, noting its ambiguity or lack of a clear, actionable request.
- "recommended_next_step": the most logical next action, e.g. "Request clarification from the user" or "Forward to Tier 2 support".
- "assigned_team": typically "General Triage", or "Customer Support" when the next step is direct user interaction. Only assign a specialized technical team if the summary now very clearly points to it despite the initial ambiguity.

` + promptCommonRules
)
