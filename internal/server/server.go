package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/s-min-sys/teamsplit/internal/config"
	"github.com/s-min-sys/teamsplit/internal/kvstore"
	"github.com/s-min-sys/teamsplit/internal/storage"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
)

type Server struct {
	routineMan routineman.RoutineMan
	cfg        *config.Config
	logger     l.Wrapper

	kv      kvstore.Storage
	storage storage.Storage
}

func NewServer(ctx context.Context, routineMan routineman.RoutineMan, cfg *config.Config, logger l.Wrapper) *Server {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if routineMan == nil {
		routineMan = routineman.NewRoutineMan(ctx, logger)
	}

	if cfg == nil || !cfg.Valid() {
		logger.Error("no valid config")

		return nil
	}

	kv, err := kvstore.New(&cfg.KVStore, cfg.Debug, logger)
	if err != nil {
		logger.WithFields(l.ErrorField(err), l.StringField("engine", cfg.KVStore.Engine)).Error("open kv store failed")

		return nil
	}

	s := &Server{
		routineMan: routineMan,
		cfg:        cfg,
		logger:     logger.WithFields(l.StringField(l.ClsKey, "Server")),
		kv:         kv,
		storage:    storage.NewStorage(kv, logger),
	}

	s.init()

	return s
}

func (s *Server) Wait() {
	s.routineMan.Wait()

	if closer, ok := s.kv.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.WithFields(l.ErrorField(err)).Error("close kv store failed")
		}
	}
}

func (s *Server) init() {
	s.routineMan.StartRoutine(s.httpRoutine, "httpRoutine")
}

func JSONMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	// group and player names may contain '/', sent escaped as %2F
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(JSONMiddleware())

	r.Any("/healthy", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.GET("/teams", s.handleTeams)

	r.GET("/groups", s.handleGroups)
	r.POST("/groups", s.handleGroupNew)
	r.DELETE("/groups/:group", s.handleGroupRemove)

	r.GET("/groups/:group/players", s.handlePlayers)
	r.POST("/groups/:group/players", s.handlePlayerNew)
	r.DELETE("/groups/:group/players/:name", s.handlePlayerRemove)

	return r
}

func (s *Server) httpRoutine(ctx context.Context, exiting func() bool) {
	logger := s.logger.WithFields(l.StringField(l.RoutineKey, "httpRoutine"))

	logger.Debug("enter")

	defer logger.Debug("leave")

	if s.cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := s.router()

	fnListen := func(listen string) {
		srv := &http.Server{
			Addr:        listen,
			ReadTimeout: time.Second,
			Handler:     r,
		}

		go func() {
			<-ctx.Done()

			_ = srv.Close()
		}()

		logger.WithFields(l.StringField("listen", listen)).Debug("start listen")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(l.ErrorField(err), l.StringField("listen", listen)).Error("listen failed")
		}
	}

	listens := strings.Split(s.cfg.Listen, " ")

	for idx := 0; idx < len(listens)-1; idx++ {
		go fnListen(listens[idx])
	}

	fnListen(listens[len(listens)-1])
}
