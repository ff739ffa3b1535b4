package assist

// Source labels for responses that do not originate from a single document.
const (
	// SourceUnspecified is the default source label.
	SourceUnspecified = "unspecified"
	// SourceNotFound labels default-fallback responses.
	SourceNotFound = "not found"
)

// Fixed answer texts for suggestion responses.
const (
	suggestTopicsAnswer      = "I could not find an exact answer, but one of these topics may be what you are looking for."
	suggestDepartmentsAnswer = "I could not determine the right department for this request. Perhaps it should be directed to one of these?"
)

// uncategorizedTopic stands in for documents stored without a category
// so a suggestible match is never lost to missing metadata.
const uncategorizedTopic = "uncategorized"

// catalogPreambleFormat introduces a confident catalog answer by naming
// the matched service.
const catalogPreambleFormat = "It looks like you are asking about '%s'. I found information on it in the IT service catalog."

// routedSourceFormat labels the source of a routed response.
const routedSourceFormat = "routed to '%s'"

// Response is the structured result of a query.
type Response struct {
	// Answer is the natural-language reply shown to the employee.
	Answer string

	// Source names where the answer came from: a document source file,
	// a routing label, "not found", or "unspecified".
	Source string

	// Confident indicates the answer (or routing decision) is authoritative.
	Confident bool

	// Suggestions lists alternative topics or departments, alphabetically
	// sorted and deduplicated. Empty unless the cascade could only find
	// uncertain matches.
	Suggestions []string

	// ShowFallbackButton tells the client to offer the "I did not get an
	// answer" escalation control.
	ShowFallbackButton bool
}

// newResponse returns a Response with the documented defaults applied.
func newResponse() *Response {
	return &Response{
		Source:      SourceUnspecified,
		Suggestions: []string{},
	}
}
