package dashboard

import (
	"sync"

	"github.com/rileyhilliard/pidash/internal/chart"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// Layout is the dashboard's widget listener. It answers a tier change with
// the chart size for that tier. Rendered is a no-op since the view pulls
// scenes on every frame.
type Layout struct {
	mu  sync.Mutex
	reg *widget.Registry
}

// NewLayout returns an unbound Layout. Install it on the registry with
// Option, then bind it through Options.Layout.
func NewLayout() *Layout {
	return &Layout{}
}

// Option installs the layout as the listener of every widget a registry
// creates.
func (l *Layout) Option() widget.Option {
	return widget.WithListener(l)
}

// Bind points the layout at the registry whose widgets it sizes.
func (l *Layout) Bind(reg *widget.Registry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reg = reg
}

func (l *Layout) Rendered(string, chart.Scene) {}

func (l *Layout) LayoutChanged(id string, tier widget.SizeTier) {
	l.mu.Lock()
	reg := l.reg
	l.mu.Unlock()
	if reg == nil {
		return
	}
	if w, ok := reg.Instance(id); ok {
		w.SetViewport(widget.DefaultViewport(tier))
	}
}
