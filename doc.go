// Package netsync translates MIDI sync traffic into compact payloads for a
// network sync channel and back. A master encodes MTC quarter/full frames and
// MMC Stop/Play/Locate commands; a follower decodes received payloads and
// tracks transport state and position.
//
// Components:
//   - Event: closed set of sync events, each kind with a fixed body length.
//   - Encode/Decode: the payload codec (command-list header + body).
//   - Master/Follower: stateful endpoints built on the codec.
//   - StateStore: optional last-known state per session (see statestore).
//
// Payload:
//
//	byte0: flags(4) | len(4)
//	byte1: len low byte        only when the extended-length flag is set
//	body:  len bytes
//
// Flags select the kind together with the body length:
//
//	MTC quarter frame  0000  len 2  [type, value]
//	MTC full frame     0000  len 4  [hh, mm, ss, ff]
//	MMC stop           0010  len 0
//	MMC play           0011  len 0
//	MMC locate         0010  len 4  [hh, mm, ss, ff]
//
// Encode and Decode are pure. They allocate nothing and are safe for
// concurrent use.
package netsync
