// Package trace records release events as a line-oriented trace.
//
// A Recorder subscribes to a lifetime runtime's arena and appends one
// "Drop: <label>" entry at the moment each guard is released. Scenario
// headers ("=== <title> ===") and informational notes are added by the
// runner. Entries can be streamed to a writer while recording, or encoded
// afterwards as text or as a YAML document grouped by scenario.
package trace
