package ut

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// DebugInfo captures assertion context.
type DebugInfo struct {
	Expr string
	File string
	Line int
}

// AssertionError is the panic value raised by a failed debug assertion.
type AssertionError struct {
	DebugInfo
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s (%s:%d)", e.Expr, e.File, e.Line)
}

var debugChecks = atomic.NewBool(debugDefault)

var (
	lastMu        sync.Mutex
	lastAssertion DebugInfo
)

// DebugChecks reports whether contract checks are active.
func DebugChecks() bool {
	return debugChecks.Load()
}

// SetDebugChecks enables or disables contract checks and returns the previous setting.
func SetDebugChecks(on bool) bool {
	return debugChecks.Swap(on)
}

// Assert panics with an *AssertionError when debug checks are on and cond is false.
// The caller's file and line are recorded.
func Assert(cond bool, expr string) {
	if cond || !debugChecks.Load() {
		return
	}
	_, file, line, _ := runtime.Caller(1)
	DbgAssertionFailed(expr, file, line)
}

// Assertf is Assert with a formatted expression.
func Assertf(cond bool, format string, args ...any) {
	if cond || !debugChecks.Load() {
		return
	}
	_, file, line, _ := runtime.Caller(1)
	DbgAssertionFailed(fmt.Sprintf(format, args...), file, line)
}

// DbgAssertionFailed records a failed assertion and panics.
func DbgAssertionFailed(expr, file string, line int) {
	info := DebugInfo{Expr: expr, File: file, Line: line}
	lastMu.Lock()
	lastAssertion = info
	lastMu.Unlock()
	panic(&AssertionError{DebugInfo: info})
}

// LastAssertion returns the most recent assertion failure.
func LastAssertion() DebugInfo {
	lastMu.Lock()
	defer lastMu.Unlock()
	return lastAssertion
}

// DbgReset clears debug state.
func DbgReset() {
	lastMu.Lock()
	lastAssertion = DebugInfo{}
	lastMu.Unlock()
}
