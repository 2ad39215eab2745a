package router

import (
	"github.com/gridpoint/console/internal/introspect/controller"
	"github.com/gridpoint/console/pkg/httpframework"
)

// Init expects the http framework to be initialized before calling it.
func Init() {
	api := httpframework.Instance().Group("/introspect")
	{
		api.POST("/schemas", controller.NewController().ListSchemas)
		api.POST("/tables", controller.NewController().ListTables)
		api.POST("/metadata", controller.NewController().Propose)
	}
}
