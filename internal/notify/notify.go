package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/slok/cpm/internal/log"
)

// Severity is the kind of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDuration is the time a notification is visible before being dismissed automatically.
const DefaultDuration = 6 * time.Second

// State is the single notification slot.
type State struct {
	Visible  bool     `json:"visible"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier shows notifications to the user.
type Notifier interface {
	Show(message string, severity Severity)
}

var _ Notifier = &Relay{}

// Timer is a scheduled auto dismiss.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

// RelayConfig is the configuration of the relay.
type RelayConfig struct {
	// Duration before auto dismissing, defaults to DefaultDuration.
	Duration time.Duration
	// AfterFunc is used to schedule the auto dismiss, defaults to time.AfterFunc.
	AfterFunc AfterFunc
	// OnChange is called with the new state after every change.
	OnChange func(State)
	Logger   log.Logger
}

func (c *RelayConfig) defaults() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration can't be negative")
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}

	if c.AfterFunc == nil {
		c.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	if c.OnChange == nil {
		c.OnChange = func(State) {}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "notify.Relay"})

	return nil
}

// Relay holds at most one notification. A new notification always replaces the
// current one, there is no queue.
type Relay struct {
	state State
	// gen identifies the current notification, a timer only dismisses its own.
	gen   uint64
	timer Timer
	mu    sync.Mutex
	cfg   RelayConfig
}

// NewRelay returns a relay with nothing visible.
func NewRelay(cfg RelayConfig) (*Relay, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Relay{cfg: cfg}, nil
}

// Show replaces the current notification and schedules its auto dismiss.
func (r *Relay) Show(message string, severity Severity) {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.gen++
	gen := r.gen
	r.state = State{Visible: true, Message: message, Severity: severity}
	r.timer = r.cfg.AfterFunc(r.cfg.Duration, func() { r.expire(gen) })
	state := r.state
	r.mu.Unlock()

	r.cfg.Logger.Debugf("showing %s notification: %s", severity, message)
	r.cfg.OnChange(state)
}

func (r *Relay) ShowSuccess(message string) { r.Show(message, SeveritySuccess) }
func (r *Relay) ShowError(message string)   { r.Show(message, SeverityError) }
func (r *Relay) ShowWarning(message string) { r.Show(message, SeverityWarning) }
func (r *Relay) ShowInfo(message string)    { r.Show(message, SeverityInfo) }

// Dismiss hides the notification, the last message and severity are kept.
func (r *Relay) Dismiss() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	changed := r.state.Visible
	r.state.Visible = false
	state := r.state
	r.mu.Unlock()

	if changed {
		r.cfg.OnChange(state)
	}
}

// State returns the current notification state.
func (r *Relay) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *Relay) expire(gen uint64) {
	r.mu.Lock()
	// Superseded by a newer notification.
	if gen != r.gen || !r.state.Visible {
		r.mu.Unlock()
		return
	}
	r.state.Visible = false
	r.timer = nil
	state := r.state
	r.mu.Unlock()

	r.cfg.OnChange(state)
}
