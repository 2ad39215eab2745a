package controller

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gridpoint/console/internal/introspect/handler"
	"github.com/gridpoint/console/pkg/api"
	"github.com/rs/zerolog/log"
)

type Introspect interface {
	ListSchemas(ctx *gin.Context)
	ListTables(ctx *gin.Context)
	Propose(ctx *gin.Context)
}

var (
	introspect Introspect
	once       sync.Once
)

type IntrospectController struct {
	Introspector handler.Introspector
}

func NewController() Introspect {
	if introspect == nil {
		once.Do(func() {
			introspect = &IntrospectController{
				Introspector: handler.InitIntrospector(),
			}
		})
	}
	return introspect
}

func (c *IntrospectController) ListSchemas(ctx *gin.Context) {
	var request handler.SchemasRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	response, err := c.Introspector.ListSchemas(&request)
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *IntrospectController) ListTables(ctx *gin.Context) {
	var request handler.TablesRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	response, err := c.Introspector.ListTables(&request)
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *IntrospectController) Propose(ctx *gin.Context) {
	var request handler.ProposeRequest
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	response, err := c.Introspector.Propose(&request)
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, response)
}
