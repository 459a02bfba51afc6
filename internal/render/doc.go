// Package render orchestrates a single diagram render: it validates and
// reads the source file, encodes it, fetches the rendered artifact through
// the transport, and persists the result next to the source. A render is
// fully synchronous; the only suspension points are the per-attempt network
// call and the backoff sleeps inside the transport.
package render
