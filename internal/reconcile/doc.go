// Package reconcile aligns an original (hand-authored) document tree with an
// executed (post-code-execution) tree and merges them so that unchanged
// content keeps the original's source provenance while changed content is
// taken from the executed tree.
//
// The engine is split in two: Compute walks both trees read-only and
// produces a plan; Apply consumes both trees plus the plan and produces the
// merged tree. Reconcile composes them. The single correctness invariant:
// the merged tree, with all SourceInfo erased, is structurally equal to the
// executed tree, for every pair of finite trees.
//
// Alignment at every container level runs three phases in order:
//
//  1. Confirmed-hash match at any position. Content that merely moved keeps
//     its source mapping; a matched original child is never reused.
//  2. Positional shape match: same variant at the same index recurses into
//     the children.
//  3. Everything else takes the executed subtree.
//
// Phases 1 and 2 must not be collapsed: doing so silently drops the
// moved-content guarantee.
//
// Each call owns its fingerprint cache and plan; there is no state across
// calls, no I/O, and no internal concurrency. Independent reconciliations
// may run in parallel freely.
package reconcile
