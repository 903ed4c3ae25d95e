package chat

import (
	"context"

	"github.com/unifiedui/erp-client/internal/domain/models"
)

// Subscribe returns a channel that receives a snapshot after every state
// change until ctx is done. A slow subscriber only ever sees the latest
// snapshot; intermediate ones are dropped. The current state is delivered
// immediately.
func (c *Controller) Subscribe(ctx context.Context) <-chan models.Snapshot {
	ch := make(chan models.Snapshot, 1)

	c.mu.Lock()
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()
	c.subMu.Unlock()
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.subMu.Lock()
		delete(c.subs, id)
		close(ch)
		c.subMu.Unlock()
	}()

	return ch
}

// publishLocked pushes the current snapshot to every subscriber. Callers hold c.mu,
// which orders publications.
func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()

	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			// Replace the unread snapshot with the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
