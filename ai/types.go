package ai

// CompletionRequest carries everything the completion service needs to
// produce an answer.
type CompletionRequest struct {
	// Prompt is the raw employee query. May be empty for the explicit
	// fallback flow, which only returns support contacts.
	Prompt string

	// Context holds the reference documents the answer must be grounded in.
	// Empty for routing and fallback completions.
	Context []string

	// Confident indicates the retrieval stage considers the context
	// authoritative. When false the model is instructed not to invent
	// an answer.
	Confident bool

	// Routing, when set, asks for a hand-off notice naming the department
	// the request is forwarded to.
	Routing *RoutingHint
}

// RoutingHint names the department a query is being routed to.
type RoutingHint struct {
	Department string
}
