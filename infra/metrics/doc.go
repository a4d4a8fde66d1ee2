// Package metrics aggregates collector activity into a private
// Prometheus registry. Nothing here opens a listener; the text
// exposition is rendered into caller-supplied buffers so an embedding
// host can scrape through its own channels.
package metrics
