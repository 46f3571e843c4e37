// Package resource defines the normalized resource model shared by classic and
// Afterburner movies.
//
// Every resource is an Entry with an id, a chunk tag and exactly one Storage
// variant. ClassicStorage addresses a chunk through the mmap table;
// AfterburnerStorage addresses a (usually compressed) segment through the ABMP
// table and may be inline in the initial-load segment. Keeping the variants
// separate means a classic entry cannot carry a compression index.
//
// A Container aggregates the entries of one movie with the inline-segment
// payloads and the KEY* ownership graph. It performs no I/O.
package resource
