// Package profilekit is a small domain-model library for user profiles:
// identity and contact fields, optional personal attributes, and optional
// preferences, with JSON serialization and a storage-agnostic Repository
// contract.
//
// The model performs no I/O and has no failure modes of its own. Persistence
// goes through the Repository interface; the memory, postgres, and redis
// subpackages provide concrete backends, and any other backend can be plugged
// in by implementing the same four operations and mapping its internal
// failures onto the error taxonomy in errors.go.
package profilekit
