package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mediastandard/internal/extract"
	"github.com/backmassage/mediastandard/internal/term"
)

// PrintOK writes the line for a conforming filename.
func PrintOK(w io.Writer, name string) {
	fmt.Fprintf(w, "%s\t[OK]\n", name)
}

// PrintFail writes the line for a failing filename. The reason is shown in
// verbose mode only.
func PrintFail(w io.Writer, name, reason string, verbose bool) {
	if verbose {
		fmt.Fprintf(w, "%s\t[%s]: %s\n", name, term.Fail.Render("FAIL"), reason)
		return
	}
	fmt.Fprintf(w, "%s\t[%s]\n", name, term.Fail.Render("FAIL"))
}

// PrintInformation writes the information tree of a conforming filename,
// one labeled line per entry followed by its nested items.
func PrintInformation(w io.Writer, name string, info *extract.Information) {
	fmt.Fprintf(w, "Informationen zu %s: \n", name)
	for _, field := range info.Fields() {
		e, _ := info.Get(field)
		printLine(w, e.Label, e.Text)
		for _, item := range e.Contents {
			printLine(w, item.Label, item.Text)
		}
	}
}

func printLine(w io.Writer, label, text string) {
	fmt.Fprintf(w, "\t%s:\t%s\n", label, term.Default.Render(text))
}
