package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mediastandard/internal/standard"
	"github.com/backmassage/mediastandard/internal/term"
)

// PrintBanner announces the loaded standard. In verbose mode the source of
// the definition and its comments follow.
func PrintBanner(w io.Writer, def *standard.Definition, source string, verbose bool) {
	fmt.Fprintln(w, term.Default.Render(
		fmt.Sprintf("Medienstandard Version %s, %s geladen ...", def.Version, def.Year)))
	if !verbose {
		return
	}
	fmt.Fprintln(w, term.Comment.Render("[Quelldatei: "+source+"]"))
	for _, c := range def.Comments {
		fmt.Fprintln(w)
		fmt.Fprintln(w, term.Comment.Render(c))
	}
}
