package rlfmt

import (
	"github.com/dekarrin/rosed"

	"github.com/dekarrin/relang/internal/grammar"
)

// Grammar renders g's productions, one per line, wrapped to a terminal-
// friendly width so long alternative lists don't run off the edge of a
// narrow console.
func Grammar(g *grammar.RegularGrammar) string {
	return rosed.Edit(g.String()).
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		Wrap(80).
		String()
}
