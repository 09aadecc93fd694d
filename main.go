package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"LMS-backend/internal/library/books"
	"LMS-backend/internal/library/lendings"
	"LMS-backend/internal/library/users"
	"LMS-backend/internal/platform/db"
	_ "LMS-backend/internal/platform/grpcjson"
	"LMS-backend/internal/platform/requestid"
	"LMS-backend/internal/reports"
	"LMS-backend/internal/rpc"
	"LMS-backend/internal/seed"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	seedCount := flag.Int("seed", 0, "insert N demo lendings and exit")
	seedValue := flag.Int64("seed-value", 1, "random seed used with -seed")
	flag.Parse()

	cfg, err := db.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if mode != "dev" && mode != "release" {
		log.Println("Usage: go run main.go [dev|release]")
		return
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	if *seedCount > 0 {
		data := seed.Generate(*seedValue, *seedCount, time.Now())
		if err := seed.Apply(context.Background(), conn, data); err != nil {
			log.Fatalf("[ERROR] seeding failed: %v", err)
		}
		log.Printf("[INFO] seeded %d books, %d users, %d lendings",
			len(data.Books), len(data.Users), len(data.Lendings))
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestid.New())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS is only needed while the frontend runs on its own port.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestid.Header},
			ExposeHeaders:    []string{"Content-Length", requestid.Header},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	reportSvc := reports.NewService(conn)

	api := r.Group("/api")
	books.RegisterRoutes(api, books.NewService(conn))
	users.RegisterRoutes(api, users.NewService(conn))
	lendings.RegisterRoutes(api, lendings.NewService(conn))
	reports.RegisterRoutes(api, reportSvc)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on http://0.0.0.0%s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(rpc.UnaryRecovery()))
	rpc.Register(grpcSrv, rpc.NewServer(reportSvc))

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("[INFO] gRPC listening on %s", cfg.GRPC.Addr)
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")

	grpcSrv.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
