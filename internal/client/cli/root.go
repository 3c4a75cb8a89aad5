package cli

import (
	"bufio"
	"context"
	"os"
)

// Run starts the interactive loop on stdin and blocks until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("pdfchat client. Type 'help' for the command list.")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
