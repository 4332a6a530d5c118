package logger

import "github.com/user/vidmask/pkg/ports"

// Discard drops every message. It backs --quiet and tests.
var Discard ports.Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...interface{})        {}
func (discard) Info(string, ...interface{})         {}
func (discard) Warn(string, ...interface{})         {}
func (discard) Error(string, ...interface{})        {}
func (d discard) WithComponent(string) ports.Logger { return d }
