package validator

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"sync/atomic"
)

// Statistics is a snapshot of the work a Validator has performed
type Statistics struct {
	// CommandsValidated is the number of draw, dispatch, trace rays, and copy commands validated
	CommandsValidated int
	// BindingChecks is the number of descriptor bindings whose contents were walked
	BindingChecks int
	// CachedSetSkips is the number of bound descriptor sets whose validation was skipped because
	// nothing they depend on changed since they were last validated
	CachedSetSkips int
	// SkippedCommands is the number of validated commands the diagnostic sink asked to suppress
	SkippedCommands int
}

func (s *Statistics) Clear() {
	s.CommandsValidated = 0
	s.BindingChecks = 0
	s.CachedSetSkips = 0
	s.SkippedCommands = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.CommandsValidated += other.CommandsValidated
	s.BindingChecks += other.BindingChecks
	s.CachedSetSkips += other.CachedSetSkips
	s.SkippedCommands += other.SkippedCommands
}

func (s *Statistics) PrintJSON(json *jwriter.ObjectState) {
	json.Name("CommandsValidated").Int(s.CommandsValidated)
	json.Name("BindingChecks").Int(s.BindingChecks)
	json.Name("CachedSetSkips").Int(s.CachedSetSkips)
	json.Name("SkippedCommands").Int(s.SkippedCommands)
}

// counters are updated concurrently by validation of different command buffers
type counters struct {
	commandsValidated atomic.Int64
	bindingChecks     atomic.Int64
	cachedSetSkips    atomic.Int64
	skippedCommands   atomic.Int64
}

func (c *counters) snapshot() Statistics {
	return Statistics{
		CommandsValidated: int(c.commandsValidated.Load()),
		BindingChecks:     int(c.bindingChecks.Load()),
		CachedSetSkips:    int(c.cachedSetSkips.Load()),
		SkippedCommands:   int(c.skippedCommands.Load()),
	}
}

func (c *counters) reset() {
	c.commandsValidated.Store(0)
	c.bindingChecks.Store(0)
	c.cachedSetSkips.Store(0)
	c.skippedCommands.Store(0)
}
