// Package statestore keeps the last published netsync.State per session in a
// provider-agnostic byte store, so a follower that joins late or restarts can
// resync without waiting for the next full frame.
//
// Components:
//   - Provider: byte store with TTL (Ristretto, BigCache, Redis).
//   - Codec: netsync.State <-> []byte (proto by default).
//   - SeqStore: sequence counter per session. Local by default; Redis when
//     master and followers run in different processes.
//
// Every record is framed with the sequence Publish obtained from the
// SeqStore. Latest returns a record only when its sequence is still the
// session's current one; corrupt, stale or undecodable records are deleted
// and reported as a miss.
//
// Keys:
//
//	state:<ns>:<session>
package statestore
