package bootstrap

import (
	"strings"
	"time"

	"github.com/kbukum/beankit/component"
)

// logSummary logs one line per component and a closing line with the
// startup duration.
func (a *App) logSummary(startup time.Duration) {
	for _, c := range a.Components.All() {
		fields := map[string]interface{}{"component": c.Name()}
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			if desc.Details != "" {
				fields["details"] = desc.Details
			}
		}
		a.Logger.Info("Component running", fields)
	}

	names := make([]string, 0, len(a.Components.All()))
	for _, c := range a.Components.All() {
		names = append(names, c.Name())
	}
	a.Logger.Info("Startup complete", map[string]interface{}{
		"name":       a.Name,
		"version":    a.Version,
		"components": strings.Join(names, ","),
		"startup":    startup.Round(time.Millisecond).String(),
	})
}
