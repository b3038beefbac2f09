// Package report renders a finished session transcript.
//
// Every format implements Writer. The JSON form wraps the transcript with a
// Summary for scripts; the Markdown form adds an outcome chart.
package report
