// Package batch scores cohorts of profiles.
//
// Processor splits a slice into fixed-size batches and runs a callback per
// batch, either sequentially or on a bounded pool of goroutines. ScoreCohort
// builds on it to score many profiles and summarise the results.
package batch
