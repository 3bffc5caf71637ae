// Package runtime is the cooperative scheduler of the node.
//
// Every task (request handling, timers, posted messages) runs on the single
// goroutine that owns a Loop, one at a time and to completion. State that is
// only touched from loop tasks therefore needs no locking.
package runtime
