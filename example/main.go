package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/gayanhewa/galley"
)

const helpText = `# galley demo

Output scrolls below while the overlay sits in the bottom-right corner.

- ` + "`status <text>`" + ` - set the persistent status
- ` + "`flash <text>`" + ` - flash a message for two seconds
- ` + "`quiet`" + ` - remove the status
- ` + "`exit`" + ` - quit
`

func main() {
	stream := galley.New(galley.NewFileSink(os.Stdout))
	defer stream.Close()

	printHelp(stream)
	stream.SetStatus("idle")

	stop := make(chan struct{})
	defer close(stop)
	go produce(stream, stop)

	prompt, err := newPrompter("galley")
	if err != nil {
		log.Fatal(err)
	}
	defer prompt.Close()

	for {
		line, ok, err := prompt.Readline()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			return
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "status":
			stream.SetStatus(rest)
		case "flash":
			stream.Flash(rest)
		case "quiet":
			stream.SetStatus("")
		case "exit", "quit":
			return
		}
	}
}

func printHelp(stream *galley.OverlayStream) {
	columns, _ := stream.Size()
	r, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(columns-10),
		glamour.WithStylePath("auto"))
	if err != nil {
		return
	}
	if out, err := r.Render(helpText); err == nil {
		fmt.Fprint(stream, out)
	}
}

func produce(stream *galley.OverlayStream, stop <-chan struct{}) {
	ticker := time.NewTicker(700 * time.Millisecond)
	defer ticker.Stop()

	for i := 1; ; i++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Fprintf(stream, "producer: event %d\n", i)
		}
	}
}
