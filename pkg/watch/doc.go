// Package watch keeps a compiled filter current and re-evaluates it when its
// inputs change.
//
// A FileWatcher observes the filter file and, for directory sources, the
// document directory. Bursts of file events are coalesced by a Debouncer.
// A Scheduler reruns the scan on a cron schedule. The Runner ties these
// together: filter edits trigger a recompile and rescan, document edits and
// scheduled ticks trigger a rescan, and a filter that fails to compile leaves
// the previous one in place.
package watch
