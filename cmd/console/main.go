package main

import (
	"strconv"

	console "github.com/gridpoint/console/internal"
	agentRouter "github.com/gridpoint/console/internal/agent/router"
	authRouter "github.com/gridpoint/console/internal/auth/router"
	"github.com/gridpoint/console/internal/configs"
	configurationRouter "github.com/gridpoint/console/internal/configuration/router"
	introspectRouter "github.com/gridpoint/console/internal/introspect/router"
	"github.com/gridpoint/console/internal/middleware"
	"github.com/gridpoint/console/pkg/httpframework"
	"github.com/gridpoint/console/pkg/infra"
	"github.com/gridpoint/console/pkg/logger"
	"github.com/gridpoint/console/pkg/metric"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Configs configs.Configs
}

func (cfg *AppConfig) GetStaticConfig() interface{} {
	return &cfg.Configs
}

var (
	appConfig AppConfig
)

func main() {
	configs.InitConfig(&appConfig)

	logger.Init(appConfig.Configs)

	infra.InitDBConnectors()

	metric.Init(appConfig.Configs)

	console.InitAll(appConfig.Configs)

	httpframework.Init(middleware.NewMiddleware().GetMiddleWares()...)

	authRouter.Init()
	configurationRouter.Init()
	introspectRouter.Init()
	agentRouter.Init()

	port := appConfig.Configs.AppPort
	if port == 0 {
		port = 8000
		log.Warn().Int("port", port).Msg("App port not set, defaulting to 8000")
	}
	if err := httpframework.Instance().Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start http server")
	}
}
