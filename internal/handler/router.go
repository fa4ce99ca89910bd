package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/service"
)

type RouterDeps struct {
	Inference *service.InferenceService
	Logger    *zap.Logger
	CORS      config.CORSConfig
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(RecoveryMiddleware(log))
	router.Use(CORSMiddleware(deps.CORS.AllowedOrigins, deps.CORS.AllowCredentials))

	healthHandler := NewHealthHandler(deps.Inference.State())
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	queryHandler := NewQueryHandler(deps.Inference)
	router.POST("/query_message", queryHandler.QueryMessage)
	router.POST("/classify", queryHandler.Classify)

	router.GET("/openapi.json", OpenAPIDoc)
	// /metrics는 서비스가 기록하는 레지스트리를 그대로 노출
	if m := deps.Inference.Metrics(); m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	return router
}
