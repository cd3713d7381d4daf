// Package promise provides Future, a value that settles exactly once, and the
// combinators used to adapt and join asynchronous results.
//
// A Future is produced by Go (run a function on a goroutine), by a Deferred
// (settled explicitly by its owner), or by When (adapt any Thenable or plain
// value). WhenAll joins futures with fail-fast semantics and Resolve turns a
// rejection into a Result so callers can branch without an error path.
package promise
