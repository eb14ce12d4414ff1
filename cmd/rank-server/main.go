// Command rank-server runs one node of the leaderboard service. The
// SERVICE_NODE environment variable picks the role: the master owns the
// admin surface, the reset scheduler, and the replication endpoint;
// replicas mirror the master's configuration over gRPC and serve the
// scoring routes only.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/momoplay/rank-server/api/proto"
	"github.com/momoplay/rank-server/internal/db"
	"github.com/momoplay/rank-server/internal/env"
	"github.com/momoplay/rank-server/internal/http/handler"
	mw "github.com/momoplay/rank-server/internal/http/middleware"
	rankredis "github.com/momoplay/rank-server/internal/redis"
	"github.com/momoplay/rank-server/internal/registry"
	"github.com/momoplay/rank-server/internal/repo"
	"github.com/momoplay/rank-server/internal/scheduler"
	"github.com/momoplay/rank-server/internal/service"
)

// Build metadata, stamped via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	syncRedis := flag.Bool("sync_redis", false, "rebuild the Redis index from MySQL at startup")
	v := flag.Bool("v", false, "print version and exit")
	flag.BoolVar(v, "version", false, "print version and exit")
	flag.Parse()

	if *v {
		fmt.Printf("rank-server %s (commit %s, built %s)\n", version, gitCommit, buildDate)
		os.Exit(0)
	}

	params, err := env.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := buildLogger(params.LogLevel)
	defer log.Sync()
	log = log.Named("main")
	log.Info("starting",
		zap.String("version", version),
		zap.Bool("master", params.MasterNode),
		zap.Bool("sync_redis", *syncRedis))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage backends.
	mysqlDB, err := db.Open(ctx, log, params.MasterDBURL, params.SlaveDBURL)
	if err != nil {
		log.Fatal("mysql connection failed", zap.Error(err))
	}
	defer mysqlDB.Close()

	rdb, err := rankredis.NewClient(ctx, log, params.RedisURL)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	// Core wiring: dual-store repository, registry, services.
	rankRepo := repo.New(log, db.NewRankStore(log, mysqlDB), rankredis.NewRankIndex(log, rdb))
	reg := registry.New()

	var sched *scheduler.Scheduler
	if params.MasterNode {
		sched = scheduler.New(log.Named("scheduler"))
	}

	configSvc := service.NewConfigService(log, rankRepo, reg, sched)
	if err := configSvc.Bootstrap(ctx, *syncRedis); err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() {
		if sched != nil {
			sched.Stop()
		}
	}()

	ranksvc := service.NewRankService(log, rankRepo)

	// HTTP router.
	if !params.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = zap.NewStdLog(log.Named("gin")).Writer()
	r := gin.New()
	{
		r.Use(gin.Recovery()) // Recovery first (outermost)
		r.Use(mw.RequestID())

		if params.IsDev { // CORS for local client work
			r.Use(cors.New(cors.Config{
				AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
				AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"X-Request-ID", "Content-Type", "Authorization", "appid", "signature"},
				ExposeHeaders:    []string{"X-Request-ID"},
				AllowCredentials: false,
				MaxAge:           12 * time.Hour,
			}))
		} else { // Behind a TLS-terminating proxy
			r.Use(secure.New(secure.Config{
				SSLProxyHeaders: map[string]string{"X-Forwarded-Proto": "https"},
			}))
		}

		r.Use(accessLog(log.Named("http")))

		r.Use(func(c *gin.Context) {
			// Score payloads are tiny; 1MB caps drip-fed bodies.
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20)
			c.Next()
		})
	}

	// Routes.
	{
		r.GET("/api/health", handler.Health)

		rankhndlr := handler.NewRankHandler(log, ranksvc)
		signed := r.Group("/api/rank", mw.Signature(log, reg))
		{
			signed.POST("/update_score", rankhndlr.UpdateScore)
			signed.POST("/get_user_rank", rankhndlr.GetUserRank)
			signed.POST("/get_user_score", rankhndlr.GetUserScore)
			signed.POST("/get_top_user_rank", rankhndlr.GetTopUserRank)
		}

		if params.MasterNode {
			confhndlr := handler.NewConfigHandler(log, configSvc)
			admin := r.Group("/api/rank", mw.AdminToken(params.AdminToken))
			{
				admin.POST("/add_rank_config", confhndlr.AddRankConfig)
				admin.DELETE("/delete_rank_config", confhndlr.DeleteRankConfig)
			}
		}
	}

	httpsrv := &http.Server{
		Addr:              ":" + params.Port,
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("running HTTP server", zap.String("addr", httpsrv.Addr))
		if err := httpsrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if params.MasterNode {
		// Replication endpoint replicas poll.
		lis, err := net.Listen("tcp", ":"+params.GRPCServerPort)
		if err != nil {
			log.Fatal("grpc listen failed", zap.Error(err))
		}
		grpcsrv := grpc.NewServer()
		pb.RegisterConfigReplicationServer(grpcsrv, service.NewReplicationServer(log, reg))

		g.Go(func() error {
			log.Info("running replication server", zap.String("addr", lis.Addr().String()))
			if err := grpcsrv.Serve(lis); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			grpcsrv.GracefulStop()
			return nil
		})
	} else {
		// Pull loop against the master's replication endpoint.
		conn, err := grpc.NewClient(params.GRPCServerURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Fatal("grpc dial failed", zap.Error(err))
		}
		defer conn.Close()

		replicator := service.NewReplicator(log, pb.NewConfigReplicationClient(conn), reg)
		g.Go(func() error {
			replicator.Run(ctx)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpsrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("server closed")
}

// accessLog records request/response details with zap after handling.
func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		var errs []error
		for _, ge := range c.Errors {
			if ge.Err != nil {
				errs = append(errs, ge.Err)
			}
		}
		joinedErr := errors.Join(errs...)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", mw.GetRequestID(c)),
			zap.Duration("latency", time.Since(start)),
		}
		if joinedErr != nil {
			fields = append(fields, zap.Error(joinedErr))
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

func buildLogger(level zapcore.Level) *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(level)
	return zap.Must(logConfig.Build())
}
