package engine

import (
	"time"

	"github.com/PixPMusic/pushmap/internal/mapping"
	"github.com/PixPMusic/pushmap/internal/metrics"
)

// Scheduler divides a host sample clock down to the control rate.
type Scheduler struct {
	engine  *Engine
	counter float64
}

// Process advances the sample counter by one sample and runs a control
// cycle once more than sampleRate/UpdateRate samples have elapsed. It
// reports whether a cycle ran.
func (s *Scheduler) Process(sampleRate float64) bool {
	e := s.engine
	ran := false
	if s.counter > sampleRate/e.opts.UpdateRate {
		e.Cycle(s.counter / sampleRate)
		s.counter = 0
		ran = true
	}
	s.counter++
	return ran
}

// Process is called once per host sample. See Scheduler.Process.
func (e *Engine) Process(sampleRate float64) bool {
	return e.divider.Process(sampleRate)
}

// Cycle runs one control cycle covering dt seconds: queued input is applied
// in arrival order, lights are refreshed, then every active slot of the
// focused group moves its parameter toward the controller value.
func (e *Engine) Cycle(dt float64) {
	start := time.Now()
	defer func() { metrics.CycleSeconds.Observe(time.Since(start).Seconds()) }()

	if e.port != nil {
		e.port.Queue().Drain(e.HandleMessage)
		if err := e.feedback.Update(e.port.Send, e.lightState()); err != nil {
			e.logger.Debug("feedback send failed", "error", err)
		}
	}

	group := e.bank.Keys.FocusedGroup()
	e.stepGroup(group, dt)
}

func (e *Engine) stepGroup(group int, dt float64) {
	table := e.bank.Table(group)
	cache := e.bank.Cache(group)

	for id := 0; id < table.ActiveLength(); id++ {
		slot := table.Slot(id)
		h := slot.Handle()
		current, ok := e.reg.ScaledValue(h)
		if !ok {
			// unbound, missing or unbounded
			continue
		}
		sm := slot.Smoother()
		if !sm.Initialized() {
			sm.Seed(current)
			continue
		}
		raw, ok := cache.Get(slot.CC())
		if !ok {
			continue
		}
		v := sm.Step(raw/mapping.MaxValue, dt, e.opts.TimeConstant)
		e.reg.SetScaledValue(h, v)
		metrics.ParamWrites.Inc()
	}
}

func (e *Engine) lightState() LightState {
	key, _ := e.bank.Keys.Focus()
	return LightState{
		Groups:   e.bank.Keys.Groups(),
		FocusKey: key,
		Held:     e.bank.Keys.Held(),
		Shift:    e.shift,
		Playing:  e.playing,
	}
}
