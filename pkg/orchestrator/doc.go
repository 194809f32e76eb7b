// Package orchestrator sequences the lifecycle of a wiki install: create
// (runtime, bundles, dependency linking, document), update, run and
// selective teardown.
//
// Create is restartable. Progress is checkpointed after every phase and every
// linker step, so a rerun after a failure skips what already finished. The
// install document is written only once everything succeeded.
package orchestrator
