package controller

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gridpoint/console/internal/agent/handler"
	"github.com/rs/zerolog/log"
)

type Agent interface {
	Socket(ctx *gin.Context)
	ListAgents(ctx *gin.Context)
	Topology(ctx *gin.Context)
}

var (
	agent Agent
	once  sync.Once
)

type AgentController struct {
	Bridge handler.Bridge
}

func NewController() Agent {
	if agent == nil {
		once.Do(func() {
			agent = &AgentController{
				Bridge: handler.InitBridge(),
			}
		})
	}
	return agent
}

// Socket upgrades an agent connection; the bridge writes the HTTP
// error response itself when the handshake fails.
func (c *AgentController) Socket(ctx *gin.Context) {
	if err := c.Bridge.HandleSocket(ctx.Writer, ctx.Request); err != nil {
		log.Error().Err(err).Msg("Error in agent handshake")
		ctx.Abort()
	}
}

func (c *AgentController) ListAgents(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.Bridge.ListAgents())
}

func (c *AgentController) Topology(ctx *gin.Context) {
	response, err := c.Bridge.Topology(ctx.Param("cluster"))
	if err != nil {
		_ = ctx.Error(err)
		switch {
		case errors.Is(err, handler.ErrAgentNotConnected):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, handler.ErrRequestTimeout):
			ctx.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, response)
}
