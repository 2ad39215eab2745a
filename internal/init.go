package internal

import (
	agentHandler "github.com/gridpoint/console/internal/agent/handler"
	authHandler "github.com/gridpoint/console/internal/auth/handler"
	"github.com/gridpoint/console/internal/configs"
	configurationHandler "github.com/gridpoint/console/internal/configuration/handler"
)

func InitAll(config configs.Configs) {
	authHandler.Init(config)
	agentHandler.Init(config)
	configurationHandler.Init(config)
}
