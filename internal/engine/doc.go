// Package engine wires the whole lamp together. Every Tick it pulls at
// most one raw sample from its [Source], smooths it, meters the divergence
// energy, maps the result onto visual parameters and advances the fluid
// tank, in that exact order.
//
//   - [Engine]: the orchestrator; one Tick per rendered frame
//   - [Source]: anything that can say "here is how the room feels now"
//   - [Telemetry]: cheap status snapshot for HUDs and recorders
//
// The engine owns a single seeded generator threaded through the mapper
// and the tank, so runs replay exactly: same seed, same samples, same
// blobs. Renderers stay outside; they only read [Engine.Blobs] and the
// returned parameter snapshots.
package engine
