package handler

import (
	"encoding/json"
	"time"
)

// Envelope is the framing shared by both directions of an agent socket.
// Requests from the console and replies from the agent carry the same
// correlation ID.
type Envelope struct {
	ID      string          `json:"id,omitempty"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

const (
	EventHello    = "hello"
	EventTopology = "topology"
)

// Hello is the first message an agent sends after connecting.
type Hello struct {
	Cluster string `json:"cluster"`
	Version string `json:"version,omitempty"`
}

type AgentInfo struct {
	ID          string    `json:"id"`
	Cluster     string    `json:"cluster"`
	Version     string    `json:"version,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}

type AgentListResponse struct {
	Agents []AgentInfo `json:"agents"`
}

type TopologyResponse struct {
	Cluster  string          `json:"cluster"`
	Topology json.RawMessage `json:"topology"`
}
