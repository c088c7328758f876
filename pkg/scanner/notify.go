package scanner

import (
	"sync"

	"github.com/arthur-debert/regexmark/pkg/logging"
)

// Notifier shows a one-line message to the user. Key identifies the
// condition so repeated reports can be folded.
type Notifier interface {
	Notify(key, message string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(key, message string)

func (f NotifyFunc) Notify(key, message string) { f(key, message) }

// LogNotifier reports through the log only.
type LogNotifier struct{}

func (LogNotifier) Notify(key, message string) {
	logger := logging.GetLogger("scanner.notify")
	logger.Warn().Str("key", key).Msg(message)
}

// OnceNotifier forwards the first message per key and drops the rest for
// the lifetime of the notifier.
type OnceNotifier struct {
	next Notifier
	mu   sync.Mutex
	seen map[string]bool
}

// Once wraps next.
func Once(next Notifier) *OnceNotifier {
	return &OnceNotifier{next: next, seen: map[string]bool{}}
}

func (o *OnceNotifier) Notify(key, message string) {
	o.mu.Lock()
	first := !o.seen[key]
	o.seen[key] = true
	o.mu.Unlock()
	if first {
		o.next.Notify(key, message)
	}
}

// Reset forgets every key.
func (o *OnceNotifier) Reset() {
	o.mu.Lock()
	o.seen = map[string]bool{}
	o.mu.Unlock()
}
