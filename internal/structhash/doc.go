// Package structhash computes location-independent fingerprints and exact
// structural equality for document trees.
//
// A fingerprint is a SHA-256 digest with domain separation, folded over the
// node's variant discriminant, every scalar and attribute field except
// SourceInfo, and the fingerprints of all children in order. Equal content
// always hashes equal; unequal content may collide, so a fingerprint match
// is never trusted without confirmation by the Equal functions.
//
// Fingerprints are memoized per Hasher, and a Hasher lives for exactly one
// reconciliation call. The cache is keyed by a stable tree path supplied by
// the caller, never by pointer identity: an address-keyed cache would
// silently return a stale fingerprint if the allocation were ever reused
// within a call.
package structhash
