// Package batch runs per-item work over a slice in fixed-size batches, either one
// batch at a time or with a bounded number of batches in flight, and reports
// progress after every batch.
//
// The list command uses it to enrich a page of entries with their detail records
// without opening one connection per row at once.
package batch
