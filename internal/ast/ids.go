package ast

// NodeIndex addresses a node inside an Arena. It is opaque outside this
// package: callers compare it, store it as a map key, and pass it back into
// Arena.Get — they never construct one directly.
type NodeIndex uint32

// NoNodeIndex is the reserved sentinel meaning "no node" (e.g. a function
// declaration with no return-type annotation).
const NoNodeIndex NodeIndex = 0

// IsValid reports whether idx addresses an allocated node.
func (idx NodeIndex) IsValid() bool { return idx != NoNodeIndex }

// FileID identifies one source file's root node.
type FileID uint32

const NoFileID FileID = 0
