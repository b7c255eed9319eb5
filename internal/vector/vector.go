// Package vector holds the renderers that compute their own geometry:
// fulfillment ring, sales funnel and speedo gauge.
package vector

import (
	"math"
	"time"

	"chartui/internal/anim"
	"chartui/internal/render"
	"chartui/internal/theme"
)

// base carries the animation bookkeeping shared by the vector renderers.
type base struct {
	ctx *render.Context
	// animationTriggered is set while an exit animation runs.
	animationTriggered bool
	handle             *anim.Handle
}

// animate runs step over d, superseding a running enter/update animation.
func (b *base) animate(d time.Duration, step func(p float64) error) error {
	b.handle.Stop()
	h, err := b.ctx.Runner.Start(anim.Animation{Duration: d, Step: step})
	b.handle = h
	return err
}

// erase runs the exit transition and then clear. A second exit while one is
// running is ignored; done runs exactly once for the accepted request.
func (b *base) erase(d time.Duration, step func(p float64) error, clear func(), done func(stopped bool)) {
	if d <= 0 {
		b.handle.Stop()
		clear()
		done(false)
		return
	}
	if b.animationTriggered {
		b.ctx.Logger().Debug("exit ignored, animation running")
		return
	}
	b.handle.Stop()
	b.animationTriggered = true
	h, err := b.ctx.Runner.Start(anim.Animation{
		Duration: d,
		Step:     step,
		Done: func(stopped bool) {
			b.animationTriggered = false
			clear()
			done(stopped)
		},
	})
	b.handle = h
	if err != nil {
		b.ctx.Logger().Error("exit animation", "err", err)
	}
}

func (b *base) scheme() string {
	return b.ctx.Config.Options.ColorScheme
}

// groupColor returns the explicit color of group i, or its auto color.
func (b *base) groupColor(i int, v theme.Variant) string {
	if b.ctx.Data != nil && i < len(b.ctx.Data.Groups) {
		g := b.ctx.Data.Groups[i]
		if len(g.Colors) > 0 && !b.ctx.Config.Options.AutoColorEnabled() {
			if v == theme.Fill {
				return theme.WithAlpha(g.Colors[0], 0.8)
			}
			return theme.WithAlpha(g.Colors[0], 1)
		}
		if g.CSSClass != "" {
			if c, ok := b.ctx.Theme.ClassColor(b.scheme(), g.CSSClass, v); ok {
				return c
			}
		}
	}
	return b.ctx.Theme.AutoColor(b.scheme(), i, v)
}

func (b *base) mutedColor(alpha float64) string {
	return theme.RGBA(b.ctx.Theme.Muted, alpha)
}

func (b *base) textColor() string {
	return theme.RGBA(b.ctx.Theme.Foreground, 1)
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}
