// Package report defines the reporting sink that the spec engine drives while
// it walks a declared tree, together with the adapters layered on top of it.
//
// A Reporter receives five notifications keyed by a Description: Started,
// Finished, Failed, Ignored and AssumptionFailed. The engine never talks to a
// concrete output directly; it wraps whatever sink the caller supplies in
// Dedup so that a failure surfacing through several hook layers is reported
// once.
//
// Adapters provided here:
//
//   - Recorder keeps every event in memory (self-tests, summaries).
//   - JSONWriter streams events as NDJSON; ReadEvents parses them back.
//   - Console renders a colored, human-readable stream with lipgloss.
//   - Counting tallies a Summary while forwarding to another Reporter.
//   - Multi fans a single stream out to several reporters.
package report
