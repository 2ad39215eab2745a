package router

import (
	"github.com/gridpoint/console/internal/agent/controller"
	"github.com/gridpoint/console/pkg/httpframework"
)

// Init expects the http framework and the agent bridge to be
// initialized before calling it. The /agent socket authenticates with
// the agent token instead of a user session and is excluded from the
// auth middleware.
func Init() {
	api := httpframework.Instance().Group("/")
	{
		api.GET("/agent", controller.NewController().Socket)
		api.GET("/agents", controller.NewController().ListAgents)
		api.GET("/agents/:cluster/topology", controller.NewController().Topology)
	}
}
