// Package livestreamservice implements live broadcast sessions inside the
// social-impact context.
//
// The module owns stream start/end lifecycle, viewer-count telemetry, and
// popularity-ordered listing, and produces stream-ended events through an
// outbox-backed worker. Ingest and playback infrastructure stay external;
// the service only mints the stream key and endpoint references.
package livestreamservice
