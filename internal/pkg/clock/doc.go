// Package clock provides a tiny time abstraction.
//
// Code that needs "now" (for example the moment factory when no instant is
// given) should depend on the Clocker interface instead of calling time.Now()
// directly, so tests can freeze time with a FixedClocker.
package clock
