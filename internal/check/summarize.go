package check

import "tschecker/internal/types"

// Summarize renders t the way a hover tooltip would: the same label a
// diagnostic message embeds, reusable by anything that wants a node's type
// without duplicating internal/types.Label's formatting rules (an editor
// integration, or tschk's own --explain-type surface once it exists).
func (c *Checker) Summarize(t types.TypeID) string {
	return types.Label(c.Types, t)
}
