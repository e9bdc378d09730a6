package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// ConsoleTransport runs the approval workflow on stdin/stdout for local use.
// It speaks the same command grammar as the Telegram transport.
type ConsoleTransport struct {
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewConsoleTransport creates a console transport on stdin/stdout
func NewConsoleTransport(logger *zap.Logger) *ConsoleTransport {
	return &ConsoleTransport{
		in:     os.Stdin,
		out:    os.Stdout,
		logger: logger,
	}
}

// Send writes one message to the output
func (t *ConsoleTransport) Send(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(t.out, "\n%s\n", text)
	return err
}

// Listen reads commands line by line until EOF or cancellation
func (t *ConsoleTransport) Listen(ctx context.Context, handle func(ctx context.Context, text string)) error {
	fmt.Fprintln(t.out, "Type commands (/help for a list, Ctrl+D to quit):")

	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errCh
			}
			if line == "" {
				continue
			}
			handle(ctx, line)
			fmt.Fprint(t.out, "> ")
		}
	}
}
