// Package limiter provides the admission gate that bounds how many workspace
// tasks run at once. Submitted functions are admitted strictly in FIFO order
// by a single dispatcher goroutine holding a weighted semaphore.
package limiter
