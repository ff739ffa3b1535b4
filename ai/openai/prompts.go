package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/helpdesk/ai"
)

const groundedPromptTemplate = `You are an internal support assistant for company employees.
Answer the employee's question using ONLY the reference material provided in the message.
Be concise and practical: list concrete steps where the material describes a procedure.
If the reference material does not contain the answer, say so plainly instead of guessing.
Answer in the language the question was asked in.`

const uncertainPromptTemplate = `You are an internal support assistant for company employees.
No reliable reference material was found for this question. Do NOT invent an answer.
Apologize briefly, explain that you could not find the topic in the knowledge base,
and advise the employee to contact the support service (helpdesk portal or extension 1000).
Answer in the language the question was asked in.`

const routingPromptTemplate = `You are an internal support assistant for company employees.
The employee's request has been classified and will be forwarded to the '%s' department.
Write a short notice telling the employee their request is being forwarded to that
department, and that a specialist will contact them. Do not attempt to answer the
request itself. Answer in the language the question was asked in.`

// systemPrompt selects the instruction block for the request shape.
func systemPrompt(req ai.CompletionRequest) string {
	if req.Routing != nil {
		return fmt.Sprintf(routingPromptTemplate, req.Routing.Department)
	}
	if req.Confident && len(req.Context) > 0 {
		return groundedPromptTemplate
	}
	return uncertainPromptTemplate
}

// userPrompt folds the query and any reference documents into one message.
func userPrompt(req ai.CompletionRequest) string {
	if len(req.Context) == 0 {
		return req.Prompt
	}

	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(req.Prompt)
	b.WriteString("\n\nReference material:\n")
	for i, doc := range req.Context {
		fmt.Fprintf(&b, "--- document %d ---\n%s\n", i+1, doc)
	}
	return b.String()
}
