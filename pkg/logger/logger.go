// Package logger builds the structured loggers every stardb subsystem takes
// in its Config. It wraps go.uber.org/zap the way the rest of the module
// expects: a *zap.SugaredLogger tagged with the subsystem's service name,
// so Infow/Errorw calls throughout internal/ carry consistent structured
// fields without each package constructing its own zap.Logger.
package logger

import "go.uber.org/zap"

// New builds a production zap logger scoped to the given service name and
// returns its sugared form, matching the signature every stardb subsystem
// constructor expects for its Logger field.
//
// If the underlying zap.NewProduction() build fails (it only can on an
// unwritable default sink), New falls back to zap.NewNop() rather than
// panicking — logging failures must never prevent the engine from starting.
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// NewDevelopment builds a development zap logger (human-readable, stack
// traces on Warn+) scoped to the given service name. Intended for tests and
// local runs where Verbose is set.
func NewDevelopment(service string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// Nop returns a logger that discards everything, for tests that don't care
// about log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
