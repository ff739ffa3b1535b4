// Package server exposes the assistant over HTTP: question answering,
// user-requested escalation, document upload and a health probe.
package server
