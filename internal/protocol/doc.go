// Package protocol owns the PSYC wire renderer.
//
// Ownership boundary:
// - packet, modifier, list and table data model
// - sizing pass that pre-computes rendered lengths
// - bounded renderers writing into caller-owned buffers
//
// Renderers never allocate and never write past the length declared on
// their input. Callers build values with the New* constructors, which run
// the sizing pass, or fill the length fields themselves.
package protocol
