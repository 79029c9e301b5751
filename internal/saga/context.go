package saga

// Context accumulates the resource IDs produced by the successful steps of one
// run. Only the orchestrator writes to it; steps read from it.
type Context struct {
	ids   map[string]string
	order []string
}

func newContext() *Context {
	return &Context{ids: make(map[string]string)}
}

func (c *Context) record(key, id string) {
	if _, exists := c.ids[key]; !exists {
		c.order = append(c.order, key)
	}
	c.ids[key] = id
}

// ID returns the ID stored under key, or "" when no successful step produced it.
func (c *Context) ID(key string) string {
	return c.ids[key]
}

// IDs returns a copy of every recorded ID.
func (c *Context) IDs() map[string]string {
	out := make(map[string]string, len(c.ids))
	for k, v := range c.ids {
		out[k] = v
	}
	return out
}

// Keys returns the recorded keys in the order they were produced.
func (c *Context) Keys() []string {
	return append([]string(nil), c.order...)
}

func (c *Context) Len() int {
	return len(c.ids)
}
