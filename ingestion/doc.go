// Package ingestion loads support documents from source files into the
// document store. It extracts text from docx, pdf, txt and xlsx files,
// splits long documents into overlapping chunks, embeds each chunk and
// persists the result for retrieval.
package ingestion
