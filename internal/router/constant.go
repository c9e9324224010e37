package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// Classifier configuration defaults. Low temperature keeps the JSON
// output deterministic.
const (
	DefaultTemperature     = 0.1
	DefaultMaxOutputTokens = 1024
)

// PromptRouterSystem is the system instruction for the classification
// call. The response must be a single raw JSON object matching the
// routing slip schema.
const PromptRouterSystem = `You are a specialized API for support ticket analysis. Your sole purpose is to analyze a user's support ticket and return a single, raw JSON object with the fields "category", "urgency" and "summary".

Adhere to the following rules without exception:
1. Your response MUST be a single, valid JSON object.
2. Do not add markdown backticks, conversational text, or explanations. Your output must begin with '{' and end with '}'.

--- category field definitions ---
Choose the single most appropriate category:

- "BUGS": A feature, component, or the product itself is broken, not working as expected, producing errors, or unavailable. Includes login failures, crashes, non-functional buttons, incorrect data processing, outages, API errors. This category is for when something is functionally wrong.

- "QUERY": The user asks a "how-to" question or seeks information about existing features, pricing, account management, product capabilities, or documentation. Nothing is broken; they want guidance or explanation.

- "REQUEST": The user suggests a new feature, an improvement, a behavior change, or an integration. They ask for something that does not currently exist or works differently from how they'd like.

- "SECURITY": The user reports a security vulnerability, suspicious activity, potential data breach, unauthorized access, or has concerns directly related to account or platform security.

- "CORRECTNESS": The user points out a factual error, typo, broken link, or outdated information in documentation, UI text, reports, or other static content. Errors in content, not functional software bugs.

- "MISCELLANEOUS": Use sparingly and only as a last resort, when the ticket's primary purpose does not clearly fit any other category, is highly ambiguous, or is general feedback not actionable as a bug, query, or request. Do NOT use it when the ticket describes a broken feature (BUGS), asks a clear question (QUERY), or requests a feature (REQUEST).

--- urgency field definitions ---
- "High": The user is completely blocked from a critical function, reports a significant security vulnerability, indicates data loss, or a core service is down.
- "Medium": A core feature is significantly degraded or unreliable but a workaround may exist; the workflow is notably impacted but not stopped.
- "Low": A general question, a feature request, a cosmetic issue or typo, or a minor bug with an easy workaround.

--- summary field ---
A single-sentence summary of the ticket's content.`

// PromptRouterUser is appended after the rendered ticket context.
const PromptRouterUser = "Please analyze and route this ticket based on the schema and definitions provided in your system instructions."
