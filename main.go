package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Kotlang/leadsGo/appconfig"
	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/interceptors"
	"github.com/Kotlang/leadsGo/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	config, err := appconfig.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Setup(config.LogLevel); err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	crmDb, err := db.Connect(ctx, config.MongoURI, config.MongoDatabase)
	if err != nil {
		logger.Fatal("Error connecting to mongo", zap.Error(err))
	}

	if err := crmDb.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Error creating indexes", zap.Error(err))
	}

	inject := NewInject(config, crmDb)
	router := buildRouter(config, inject)

	// the browser client sends the session cookie cross-origin
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	logger.Info("Starting server", zap.String("port", config.HTTPPort))
	if err := http.ListenAndServe(config.HTTPPort, corsWrapper.Handler(router)); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func buildRouter(config *appconfig.AppConfig, inject *Inject) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), interceptors.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessionAuth := interceptors.SessionAuth(inject.CrmDb.Users(), config.AccessSecret)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", inject.AuthService.Register)
		authRoutes.POST("/login", inject.AuthService.Login)
		authRoutes.POST("/logout", inject.AuthService.Logout)
		authRoutes.GET("/me", sessionAuth, inject.AuthService.Me)
	}

	leadRoutes := router.Group("/leads", sessionAuth)
	{
		leadRoutes.GET("", inject.LeadService.FetchLeads)
		leadRoutes.POST("", inject.LeadService.CreateLead)
		leadRoutes.GET("/export", inject.LeadService.ExportLeads)
		leadRoutes.GET("/:id", inject.LeadService.GetLeadById)
		leadRoutes.PUT("/:id", inject.LeadService.UpdateLead)
		leadRoutes.DELETE("/:id", inject.LeadService.DeleteLead)
	}

	return router
}
