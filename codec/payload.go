package codec

import "github.com/unkn0wn-root/netsync"

// Payload is the sync payload format as a Codec, for callers that plug
// events into generic byte pipelines.
type Payload struct{}

var _ Codec[netsync.Event] = Payload{}

func (Payload) Encode(e netsync.Event) ([]byte, error) { return netsync.Marshal(e) }
func (Payload) Decode(b []byte) (netsync.Event, error) { return netsync.Unmarshal(b) }
