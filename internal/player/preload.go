package player

import "sync"

// preloadCache holds the audio of at most one preloaded track.
type preloadCache struct {
	mu      sync.Mutex
	id      string
	data    []byte
	pending string
}

// claim reserves the slot for id. It returns false when id is already
// cached or being fetched.
func (c *preloadCache) claim(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if (c.id == id && c.data != nil) || c.pending == id {
		return false
	}
	c.pending = id
	return true
}

// store keeps data unless a newer claim superseded id.
func (c *preloadCache) store(id string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != id {
		return
	}
	c.pending = ""
	c.id, c.data = id, data
}

func (c *preloadCache) abandon(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == id {
		c.pending = ""
	}
}

// take returns and evicts the data for id.
func (c *preloadCache) take(id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.id != id || c.data == nil {
		return nil, false
	}
	data := c.data
	c.id, c.data = "", nil
	return data, true
}
