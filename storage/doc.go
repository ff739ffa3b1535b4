// Package storage defines the persistence abstractions for indexed
// document chunks.
//
// The DocumentRepository interface covers chunk lifecycle and filtered
// vector similarity search; Filter models the metadata predicates the
// cascade stages use to select a corpus (equality, inequality, and
// conjunction over source, category, doc_type, and department).
//
// The storage/badger sub-package provides the production BadgerDB
// implementation. Records are serialized with the MUS format; the
// serializers are generated from the core models (see cmd/musgen).
package storage
