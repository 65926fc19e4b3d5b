package server

import (
	"net/http"

	"prized-pic/internal/config"
	"prized-pic/internal/signing"
	"prized-pic/internal/voting"

	"github.com/gin-gonic/gin"
)

type Server struct {
	voting *voting.Service
	signer *signing.Signer
	cfg    config.Config
}

func New(svc *voting.Service, signer *signing.Signer, cfg config.Config) *Server {
	registerValidators()
	return &Server{
		voting: svc,
		signer: signer,
		cfg:    cfg,
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	if s.cfg.Production() {
		router.Use(releaseAssets())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.POST("/photos", s.handleCreatePhoto)
	router.GET("/photos/:photoID", s.handleGetPhoto)
	router.POST("/votes", s.handleToggleVote)
	router.GET("/contests", s.handleListContests)
	router.GET("/contests/:contestID", s.handleContestStatus)
	router.GET("/contests/:contestID/photos", s.handleContestPhotos)
	router.POST("/uploads/sign", s.handleSignUpload)
	router.GET("/identity", s.handleIdentity)

	router.GET("/", s.handleHome)
	router.GET("/browse", s.handleBrowse)
	router.GET("/browse/:contestID", s.handleBrowseContest)
	router.GET("/browse/:contestID/:photoID", s.handlePhotoView)
	router.GET("/submit", s.handleSubmitView)
	router.Static("/static", "static")

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})
	return router
}
