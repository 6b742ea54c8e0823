// Package doctree defines the document tree that the reconciliation engine
// operates on.
//
// This package contains type definitions only. All other internal packages
// import doctree; doctree imports nothing internal. This keeps the tree the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Block and Inline are sealed interfaces; the variant set is closed.
//   - Every Block and Inline carries a SourceInfo handle. SourceInfo is
//     opaque: this module copies it, never constructs or inspects it.
//   - All JSON tags use snake_case; serialized nodes carry a "t" type tag.
package doctree
