package cli

import (
	"bufio"
	"fmt"
	"io"
	"location-lookup/internal/render"
	"location-lookup/internal/services"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const prompt = "[n]ext [p]rev [q]uit: "

// Pager shows the session's results one page at a time and reads
// navigation commands from In until the user quits or In is exhausted.
type Pager struct {
	In      io.Reader
	Out     io.Writer
	Session *services.Session
}

func (p *Pager) Run() error {
	if err := p.show(); err != nil {
		return err
	}
	if p.Session.Page().TotalPages <= 1 {
		return nil
	}

	sc := bufio.NewScanner(p.In)
	for {
		fmt.Fprint(p.Out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(p.Out)
			return sc.Err()
		}

		input := strings.ToLower(strings.TrimSpace(sc.Text()))
		switch input {
		case "n", "next":
			if !p.Session.Next() {
				fmt.Fprintln(p.Out, "Already on the last page.")
				continue
			}
		case "p", "prev":
			if !p.Session.Prev() {
				fmt.Fprintln(p.Out, "Already on the first page.")
				continue
			}
		case "q", "quit":
			return nil
		case "":
			continue
		default:
			n, err := strconv.Atoi(input)
			if err != nil {
				fmt.Fprintf(p.Out, "Unknown command %q.\n", input)
				continue
			}
			if err := p.Session.Goto(n); err != nil {
				fmt.Fprintf(p.Out, "No page %d.\n", n)
				continue
			}
		}

		if err := p.show(); err != nil {
			return err
		}
	}
}

func (p *Pager) show() error {
	return render.Page(p.Out, p.Session.Mode(), p.Session.Page())
}

// StdioIsTerminal reports whether both stdin and stdout are terminals.
func StdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
