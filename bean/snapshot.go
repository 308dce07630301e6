package bean

import (
	"strings"

	"github.com/google/uuid"
)

// Info describes one live context bean.
type Info struct {
	Handle uuid.UUID `json:"handle"`
	Type   string    `json:"type"`
	Scope  string    `json:"scope"`
	State  string    `json:"state"`
	Error  string    `json:"error,omitempty"`
}

// Snapshot lists the live context beans in construction order.
func (c *Container) Snapshot() []Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos := make([]Info, 0, len(c.order))
	for _, e := range c.order {
		info := Info{
			Handle: e.handle,
			Type:   typeName(e.typ),
			Scope:  e.scope.String(),
			State:  e.state.String(),
		}
		if e.err != nil {
			info.Error = e.err.Error()
		}
		infos = append(infos, info)
	}
	return infos
}

// Lookup returns the snapshot entry whose type name is name. A leading "*"
// may be omitted for pointer types.
func (c *Container) Lookup(name string) (Info, bool) {
	for _, info := range c.Snapshot() {
		if info.Type == name || strings.TrimPrefix(info.Type, "*") == name {
			return info, true
		}
	}
	return Info{}, false
}
