package main

import (
	"fmt"
	"io"

	"github.com/decker502/imagetrail/pkg/trail"
)

// Summary totals a replay.
type Summary struct {
	Frames      int
	Reveals     int
	Preemptions int
	FinalCursor int
	FinalZ      int
	Idle        bool
}

// printer reports every reveal as it happens.
type printer struct {
	w       io.Writer
	frame   *int
	summary *Summary
	idle    bool
}

func (p *printer) Revealed(ev trail.RevealEvent) {
	p.summary.Reveals++
	mark := ""
	if ev.Preempted {
		p.summary.Preemptions++
		mark = " preempted"
	}
	fmt.Fprintf(p.w, "frame %4d  slot %d  z %d  from (%.1f, %.1f) to (%.1f, %.1f)%s\n",
		*p.frame, ev.Slot, ev.Z, ev.Origin.X, ev.Origin.Y, ev.Dest.X, ev.Dest.Y, mark)
}

func (p *printer) ActivityChanged(active int, idle bool) {
	if idle != p.idle {
		state := "active"
		if idle {
			state = "idle"
		}
		fmt.Fprintf(p.w, "frame %4d  %s (%d animating)\n", *p.frame, state, active)
	}
	p.idle = idle
}

// Replay mounts a trail on a headless surface and drives it with the script.
func Replay(s *Script, opts trail.Options, w io.Writer) (Summary, error) {
	var (
		summary Summary
		frame   int
	)

	bounds := trail.Rect{X: s.Container.X, Y: s.Container.Y, W: s.Container.Width, H: s.Container.Height}
	surface := trail.NewSurface(bounds)
	scheduler := trail.NewFrameScheduler()

	sources := make([]string, s.Slots)
	for i := range sources {
		sources[i] = fmt.Sprintf("slot-%02d", i+1)
	}
	size := trail.Size{W: s.SlotWidth, H: s.SlotHeight}

	t, err := trail.Mount(s.Variant, trail.Env{
		Container: surface,
		Pool:      trail.NewPool(sources),
		Scheduler: scheduler,
		Measure:   func(int) (trail.Size, bool) { return size, true },
		Options:   opts,
		Observer:  &printer{w: w, frame: &frame, summary: &summary, idle: true},
	})
	if err != nil {
		return summary, err
	}
	defer t.Destroy()

	dt := 1.0 / 60.0
	pump := func(n int) {
		for i := 0; i < n; i++ {
			frame++
			scheduler.Pump(dt)
		}
	}

	for _, step := range s.Steps {
		if step.Resize != nil {
			bounds.W, bounds.H = step.Resize.Width, step.Resize.Height
			surface.SetBounds(bounds)
			surface.Dispatch(trail.Event{Kind: trail.EventResize})
		}

		x, y := bounds.X+step.X, bounds.Y+step.Y
		if step.Touch {
			surface.Dispatch(trail.Event{Kind: trail.EventTouchMove, Touches: []trail.Vec2{{X: x, Y: y}}})
		} else {
			surface.Dispatch(trail.Event{Kind: trail.EventMouseMove, X: x, Y: y})
		}
		pump(step.Frames)
	}
	pump(s.TailFrames)

	summary.Frames = frame
	if c, ok := t.(*trail.Controller); ok {
		summary.FinalCursor = c.Cursor()
		summary.FinalZ = c.ZIndex()
		summary.Idle = c.Idle()
	}
	return summary, nil
}
