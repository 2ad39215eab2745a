package router

import (
	"github.com/gridpoint/console/internal/configuration/controller"
	"github.com/gridpoint/console/pkg/httpframework"
)

// Init expects the http framework to be initialized before calling it.
func Init() {
	api := httpframework.Instance().Group("/configuration")
	{
		api.POST("/clusters", controller.NewController().SaveCluster)
		api.GET("/clusters", controller.NewController().ListClusters)
		api.GET("/clusters/:name", controller.NewController().GetCluster)
		api.DELETE("/clusters/:name", controller.NewController().DeleteCluster)

		api.POST("/caches", controller.NewController().SaveCache)
		api.GET("/clusters/:name/caches", controller.NewController().ListCaches)
		api.DELETE("/clusters/:name/caches/:cache", controller.NewController().DeleteCache)

		api.POST("/metadata", controller.NewController().SaveMetadata)
		api.GET("/metadata", controller.NewController().ListMetadata)
		api.DELETE("/metadata/:name", controller.NewController().DeleteMetadata)

		api.POST("/generate", controller.NewController().Generate)
		api.GET("/clusters/:name/download", controller.NewController().Download)
	}
}
