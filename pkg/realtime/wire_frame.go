package realtime

import "encoding/json"

// inboundFrame is what a connection sends: an event name, its data, and an
// optional ackId the server must echo back on the outbound frame it
// produces in reply.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	AckID string          `json:"ackId,omitempty"`
}

// outboundFrame wraps an ack reply so the client can correlate it to the
// inboundFrame that requested it. Room broadcasts carry no AckID.
type outboundFrame struct {
	AckID string          `json:"ackId,omitempty"`
	Data  json.RawMessage `json:"data"`
}
