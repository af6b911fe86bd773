// Package generator runs problem-family generators and batches their
// output.
//
// A Generator produces one problem instance from a seeded random source.
// Batch derives one child seed per instance from a single parent seed, so
// a batch is reproducible from (family, seed, count) alone and any single
// instance can be regenerated from its own recorded seed without rerunning
// the rest of the batch.
//
// Batch fans the work out over a bounded pool of workers and is
// all-or-nothing: the first generation error cancels the remaining work
// and the whole batch fails. Successful instances are returned in seed
// order regardless of worker scheduling.
package generator
