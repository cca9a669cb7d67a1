// Package fluid runs the lamp's tank: a handful of metaball-style blobs
// pushed around by a curl-style flow field.
//
//   - [Blob]: position, velocity, radius, paint color
//   - [Sim]: per-tick integration plus merge/split topology
//
// The tank wraps horizontally and clamps vertically, like a column of wax
// lit from below. Merges and splits both conserve total blob area, so the
// amount of wax only changes when the target population does. All
// randomness flows through the generator handed to [New]; seeded runs
// reproduce exactly.
package fluid
