// Package feedback closes the learning loop: it turns interaction events
// into bandit outcomes, profile updates and an append-only interaction log.
//
// The Recorder processes events asynchronously through a worker pool so the
// serving path only pays for validation and a queue handoff. All storage
// writes go through per-key retried transactions; concurrent events for the
// same item or profile never lose updates.
//
// The Recalibrator is an out-of-band batch job that replays the interaction
// log and nudges item keyword weights toward their observed click-through
// rates.
package feedback
