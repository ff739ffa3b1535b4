// Package search provides filtered semantic similarity search over the
// indexed document corpora.
//
// A Searcher embeds the query text and ranks documents by cosine
// similarity within the subset selected by a storage.Filter. Each of the
// cascade stages in the assist package uses a different filter to address
// its corpus: the IT-service catalog, the general knowledge base, or the
// routing examples.
package search
