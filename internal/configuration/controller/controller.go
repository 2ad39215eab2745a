package controller

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gridpoint/console/internal/configuration/handler"
	"github.com/gridpoint/console/internal/generator"
	"github.com/gridpoint/console/pkg/api"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Configuration interface {
	SaveCluster(ctx *gin.Context)
	ListClusters(ctx *gin.Context)
	GetCluster(ctx *gin.Context)
	DeleteCluster(ctx *gin.Context)

	SaveCache(ctx *gin.Context)
	ListCaches(ctx *gin.Context)
	DeleteCache(ctx *gin.Context)

	SaveMetadata(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	DeleteMetadata(ctx *gin.Context)

	Generate(ctx *gin.Context)
	Download(ctx *gin.Context)
}

var (
	configuration Configuration
	once          sync.Once
)

type ConfigurationController struct {
	Manager handler.Manager
}

func NewController() Configuration {
	if configuration == nil {
		once.Do(func() {
			configuration = &ConfigurationController{
				Manager: handler.InitManager(),
			}
		})
	}
	return configuration
}

func (c *ConfigurationController) SaveCluster(ctx *gin.Context) {
	var request handler.ClusterRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.Manager.SaveCluster(userEmail(ctx), &request); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cluster saved successfully"})
}

func (c *ConfigurationController) ListClusters(ctx *gin.Context) {
	clusters, err := c.Manager.ListClusters(userEmail(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, clusters)
}

func (c *ConfigurationController) GetCluster(ctx *gin.Context) {
	cluster, err := c.Manager.GetCluster(userEmail(ctx), ctx.Param("name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cluster)
}

func (c *ConfigurationController) DeleteCluster(ctx *gin.Context) {
	if err := c.Manager.DeleteCluster(userEmail(ctx), ctx.Param("name")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cluster deleted successfully"})
}

func (c *ConfigurationController) SaveCache(ctx *gin.Context) {
	var request handler.CacheRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.Manager.SaveCache(userEmail(ctx), &request); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cache saved successfully"})
}

func (c *ConfigurationController) ListCaches(ctx *gin.Context) {
	caches, err := c.Manager.ListCaches(userEmail(ctx), ctx.Param("name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, caches)
}

func (c *ConfigurationController) DeleteCache(ctx *gin.Context) {
	if err := c.Manager.DeleteCache(userEmail(ctx), ctx.Param("name"), ctx.Param("cache")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cache deleted successfully"})
}

func (c *ConfigurationController) SaveMetadata(ctx *gin.Context) {
	var request handler.MetadataRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.Manager.SaveMetadata(userEmail(ctx), &request); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Metadata saved successfully"})
}

func (c *ConfigurationController) ListMetadata(ctx *gin.Context) {
	records, err := c.Manager.ListMetadata(userEmail(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

func (c *ConfigurationController) DeleteMetadata(ctx *gin.Context) {
	if err := c.Manager.DeleteMetadata(userEmail(ctx), ctx.Param("name")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Metadata deleted successfully"})
}

func (c *ConfigurationController) Generate(ctx *gin.Context) {
	var request handler.GenerateRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	response, err := c.Manager.Generate(userEmail(ctx), &request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *ConfigurationController) Download(ctx *gin.Context) {
	archive, fileName, err := c.Manager.Download(userEmail(ctx), ctx.Param("name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	ctx.Data(http.StatusOK, "application/zip", archive)
}

func userEmail(ctx *gin.Context) string {
	return ctx.GetString("email")
}

// respondError maps domain errors onto HTTP statuses: configuration
// mistakes surface as 400, missing documents as 404.
func respondError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	var unknownKind *generator.UnknownKindError
	var malformed *generator.MalformedFieldError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unknownKind), errors.As(err, &malformed):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
