package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ConsoleNotifier prints notifications as
// "[NOTIFY] To: {name} | {subject} - {message}".
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(_ context.Context, to Recipient, subject, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "[NOTIFY] To: %s | %s - %s\n", to.Name(), subject, message)
}
