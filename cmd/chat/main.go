package main

import (
	"flag"
	"fmt"
	"os"

	"libris/internal/chat"
	"libris/internal/tui"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "base URL of the libris backend")
	flag.Parse()

	client := chat.NewClient(*serverURL)
	if err := tui.Run(client); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
