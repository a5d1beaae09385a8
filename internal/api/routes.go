package api

import "github.com/gin-gonic/gin"

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.WorkerInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.router.GET("/zones", s.zoneHandler.ListZones)
	s.router.GET("/classes", s.zoneHandler.ListClasses)

	s.router.POST("/frames", s.occupancyHandler.ClassifyFrame)

	cameras := s.router.Group("/cameras")
	{
		cameras.GET("", s.occupancyHandler.ListCameras)
		cameras.GET("/:id/occupancy", s.occupancyHandler.GetOccupancy)
		cameras.GET("/:id/history", s.occupancyHandler.GetHistory)
	}

	system := s.router.Group("/system")
	{
		system.GET("/stats", s.systemHandler.GetStats)
	}
}
