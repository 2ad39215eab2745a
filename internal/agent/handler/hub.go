package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/gridpoint/console/internal/configs"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	requestTimeout = 30 * time.Second
	maxMessageSize = 1 << 20
)

var (
	ErrAgentNotConnected = errors.New("no agent connected for cluster")
	ErrRequestTimeout    = errors.New("agent did not reply in time")
)

// Bridge relays requests from authenticated console users to the
// live agents connected over WebSocket.
type Bridge interface {
	HandleSocket(w http.ResponseWriter, r *http.Request) error
	ListAgents() *AgentListResponse
	Topology(cluster string) (*TopologyResponse, error)
}

var (
	bridge Bridge
	once   sync.Once
)

type agentConn struct {
	info    AgentInfo
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (a *agentConn) write(msg *Envelope) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return a.conn.WriteJSON(msg)
}

type Hub struct {
	authToken string
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	agents  map[string]*agentConn
	pending map[string]chan *Envelope
}

func Init(config configs.Configs) {
	once.Do(func() {
		bridge = &Hub{
			authToken: config.AgentAuthToken,
			upgrader: websocket.Upgrader{
				ReadBufferSize:  4096,
				WriteBufferSize: 4096,
				CheckOrigin:     func(r *http.Request) bool { return true },
			},
			agents:  make(map[string]*agentConn),
			pending: make(map[string]chan *Envelope),
		}
	})
}

func InitBridge() Bridge {
	if bridge == nil {
		log.Panic().Msg("Agent bridge used before initialization")
	}
	return bridge
}

// HandleSocket authenticates and registers an incoming agent
// connection, then pumps its messages until the socket closes. One
// agent per cluster: a newer connection replaces the older one.
func (h *Hub) HandleSocket(w http.ResponseWriter, r *http.Request) error {
	if r.Header.Get("X-Agent-Token") != h.authToken {
		http.Error(w, "invalid agent token", http.StatusUnauthorized)
		return errors.New("invalid agent token")
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade agent connection: %w", err)
	}

	agent, err := h.register(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	go h.pingLoop(agent)
	h.readLoop(agent)
	return nil
}

func (h *Hub) register(conn *websocket.Conn) (*agentConn, error) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))

	var msg Envelope
	if err := conn.ReadJSON(&msg); err != nil {
		return nil, fmt.Errorf("failed to read agent hello: %w", err)
	}
	if msg.Event != EventHello {
		return nil, fmt.Errorf("expected %s, got %q", EventHello, msg.Event)
	}
	var hello Hello
	if err := json.Unmarshal(msg.Payload, &hello); err != nil {
		return nil, fmt.Errorf("malformed agent hello: %w", err)
	}
	if hello.Cluster == "" {
		return nil, errors.New("agent hello is missing the cluster name")
	}

	agent := &agentConn{
		info: AgentInfo{
			ID:          uuid.NewString(),
			Cluster:     hello.Cluster,
			Version:     hello.Version,
			ConnectedAt: time.Now().UTC(),
		},
		conn: conn,
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.mu.Lock()
	if old, ok := h.agents[hello.Cluster]; ok {
		_ = old.conn.Close()
	}
	h.agents[hello.Cluster] = agent
	h.mu.Unlock()

	log.Info().
		Str("cluster", hello.Cluster).
		Str("agent_id", agent.info.ID).
		Msg("Agent connected")
	return agent, nil
}

func (h *Hub) readLoop(agent *agentConn) {
	defer h.unregister(agent)
	for {
		var msg Envelope
		if err := agent.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).
					Str("cluster", agent.info.Cluster).
					Msg("Agent connection dropped")
			}
			return
		}
		_ = agent.conn.SetReadDeadline(time.Now().Add(pongWait))
		if msg.ID == "" {
			continue
		}
		h.mu.Lock()
		ch, ok := h.pending[msg.ID]
		delete(h.pending, msg.ID)
		h.mu.Unlock()
		if ok {
			ch <- &msg
		}
	}
}

func (h *Hub) pingLoop(agent *agentConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		agent.writeMu.Lock()
		_ = agent.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := agent.conn.WriteMessage(websocket.PingMessage, nil)
		agent.writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

func (h *Hub) unregister(agent *agentConn) {
	h.mu.Lock()
	if current, ok := h.agents[agent.info.Cluster]; ok && current == agent {
		delete(h.agents, agent.info.Cluster)
	}
	h.mu.Unlock()
	_ = agent.conn.Close()
	log.Info().
		Str("cluster", agent.info.Cluster).
		Str("agent_id", agent.info.ID).
		Msg("Agent disconnected")
}

func (h *Hub) ListAgents() *AgentListResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()
	response := &AgentListResponse{Agents: make([]AgentInfo, 0, len(h.agents))}
	for _, agent := range h.agents {
		response.Agents = append(response.Agents, agent.info)
	}
	return response
}

// Topology forwards a topology request to the cluster's agent and
// waits for the correlated reply.
func (h *Hub) Topology(cluster string) (*TopologyResponse, error) {
	reply, err := h.forward(cluster, &Envelope{Event: EventTopology})
	if err != nil {
		return nil, err
	}
	return &TopologyResponse{Cluster: cluster, Topology: reply.Payload}, nil
}

func (h *Hub) forward(cluster string, msg *Envelope) (*Envelope, error) {
	h.mu.RLock()
	agent, ok := h.agents[cluster]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotConnected, cluster)
	}

	msg.ID = uuid.NewString()
	ch := make(chan *Envelope, 1)
	h.mu.Lock()
	h.pending[msg.ID] = ch
	h.mu.Unlock()

	if err := agent.write(msg); err != nil {
		h.dropPending(msg.ID)
		return nil, fmt.Errorf("failed to forward %s to agent of %q: %w", msg.Event, cluster, err)
	}

	select {
	case reply := <-ch:
		if reply.Error != "" {
			return nil, fmt.Errorf("agent of %q failed: %s", cluster, reply.Error)
		}
		return reply, nil
	case <-time.After(requestTimeout):
		h.dropPending(msg.ID)
		return nil, fmt.Errorf("%w: %s", ErrRequestTimeout, cluster)
	}
}

func (h *Hub) dropPending(id string) {
	h.mu.Lock()
	delete(h.pending, id)
	h.mu.Unlock()
}
