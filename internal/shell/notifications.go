package shell

import (
	"context"
	"sync"

	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/logging"
)

const defaultQueueSize = 50

// Notifications queues user-facing messages until a client drains them.
// When full the oldest message is dropped.
type Notifications struct {
	mu    sync.Mutex
	items []client.Notification
	max   int
}

func NewNotifications(max int) *Notifications {
	if max <= 0 {
		max = defaultQueueSize
	}
	return &Notifications{max: max}
}

func (n *Notifications) Notify(ctx context.Context, note client.Notification) {
	logging.NewLogger(ctx).With("level", string(note.Level)).LogDebugf("notify", "%s", note.Message)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, note)
	if over := len(n.items) - n.max; over > 0 {
		n.items = append(n.items[:0:0], n.items[over:]...)
	}
}

// Drain returns the queued messages and empties the queue.
func (n *Notifications) Drain() []client.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	if out == nil {
		out = []client.Notification{}
	}
	return out
}

func (n *Notifications) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}
