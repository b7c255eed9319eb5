package render

import (
	"time"

	"chartui/internal/chart"
)

// Lifecycle is the state machine around one renderer:
// idle -> rendering -> rendered -> (removing) -> idle.
type Lifecycle struct {
	ctx       *Context
	drawer    Drawer
	rendering bool
	rendered  bool
	removing  bool
}

func NewLifecycle(ctx *Context, d Drawer) *Lifecycle {
	return &Lifecycle{ctx: ctx, drawer: d}
}

func (l *Lifecycle) Drawer() Drawer { return l.drawer }
func (l *Lifecycle) Rendered() bool { return l.rendered }
func (l *Lifecycle) Rendering() bool { return l.rendering }
func (l *Lifecycle) Removing() bool { return l.removing }
func (l *Lifecycle) Context() *Context { return l.ctx }

// Validate checks the chart data. It never fails loudly: invalid data simply
// is not rendered.
func (l *Lifecycle) Validate() bool {
	if !chart.Validate(l.ctx.Data, l.ctx.Config.Options) {
		return false
	}
	if v, ok := l.drawer.(Validator); ok {
		return v.Valid(l.ctx.Data)
	}
	return true
}

// IsDataUpdatable reports whether UpdateData can patch in place.
func (l *Lifecycle) IsDataUpdatable() bool {
	_, ok := l.drawer.(DataUpdater)
	return ok
}

// IsDetachSupported reports whether the renderer survives detaching.
func (l *Lifecycle) IsDetachSupported() bool {
	if d, ok := l.drawer.(DetachAware); ok {
		return d.SupportsDetach()
	}
	return false
}

// AnimationDuration is zero unless animation is requested and configured.
func (l *Lifecycle) AnimationDuration(requestAnimation bool) time.Duration {
	if !requestAnimation {
		return 0
	}
	return l.ctx.Config.Options.AnimationDuration()
}

// Render draws the chart. It does nothing for invalid data or a detached
// host and reports whether drawing happened.
func (l *Lifecycle) Render(requestAnimation bool) (bool, error) {
	valid := l.Validate()
	if !valid || l.ctx.Host == nil || !l.ctx.Host.Attached() {
		l.ctx.Logger().Debug("render skipped", "valid", valid, "type", l.ctx.Config.Type)
		return false, nil
	}
	l.rendering = true
	err := l.drawer.Draw(l.AnimationDuration(requestAnimation))
	l.rendering = false
	if err != nil {
		return false, err
	}
	l.rendered = true
	if l.ctx.Events.Rendered != nil {
		l.ctx.Events.Rendered()
	}
	return true, nil
}

// UpdateData patches the rendered chart with new data, or renders it when
// nothing is rendered yet. ErrNotUpdatable tells the caller to fall back to
// remove and render.
func (l *Lifecycle) UpdateData(requestAnimation bool) error {
	if !l.rendered {
		_, err := l.Render(requestAnimation)
		return err
	}
	u, ok := l.drawer.(DataUpdater)
	if !ok {
		return ErrNotUpdatable
	}
	if !l.Validate() {
		l.Remove(false, nil)
		return nil
	}
	l.rendering = true
	err := u.UpdateData(l.AnimationDuration(requestAnimation))
	l.rendering = false
	return err
}

// Refresh redraws from stored data without animation.
func (l *Lifecycle) Refresh() error {
	if !l.rendered {
		return nil
	}
	return l.drawer.Redraw()
}

// Remove erases the chart. With an animation duration and a rendered chart the
// removal is animated and after runs when it settles. A remove that arrives
// while an animated removal is in flight is ignored.
func (l *Lifecycle) Remove(requestAnimation bool, after func(stopped bool)) {
	if l.removing {
		l.ctx.Logger().Debug("remove ignored, removal in flight")
		return
	}
	d := l.AnimationDuration(requestAnimation)
	if d <= 0 || !l.rendered {
		l.drawer.Erase(0, func(bool) {})
		l.rendered = false
		if after != nil {
			after(false)
		}
		return
	}
	l.removing = true
	l.drawer.Erase(d, func(stopped bool) {
		l.removing = false
		l.rendered = false
		if after != nil {
			after(stopped)
		}
	})
}
