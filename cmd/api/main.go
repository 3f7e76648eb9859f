// Package main wires the gallery API together and runs the HTTP server
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/config"
	"github.com/UnendingLoop/ImageGallery/internal/events"
	"github.com/UnendingLoop/ImageGallery/internal/imageproc"
	"github.com/UnendingLoop/ImageGallery/internal/kafka"
	"github.com/UnendingLoop/ImageGallery/internal/mwlogger"
	"github.com/UnendingLoop/ImageGallery/internal/repository"
	"github.com/UnendingLoop/ImageGallery/internal/service"
	"github.com/UnendingLoop/ImageGallery/internal/storage"
	"github.com/UnendingLoop/ImageGallery/internal/transport"
	"github.com/UnendingLoop/ImageGallery/internal/upload"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/ginext"
	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load envs: %s\nExiting app...", err)
	}

	zlog.InitConsole()
	if err := zlog.SetLevel("info"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// upload and processed areas must exist before the first request
	for _, dir := range []string{cfg.UploadDir, cfg.ProcessedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create directory %q: %v", dir, err)
		}
	}

	dbConn := repository.ConnectWithRetries(cfg.PostgresDSN, 5, 10*time.Second)
	repository.MigrateWithRetries(dbConn.Master, cfg.MigrationsPath, 10, 15*time.Second)

	repo := repository.NewPostgresImageRepo(dbConn)
	files := storage.NewFileStorage(cfg, 10*time.Second)
	processor := imageproc.NewProcessor()

	// events are optional: without a broker the publisher is a no-op
	var pub events.Publisher = events.NoopPublisher{}
	var producer *wbfkafka.Producer
	if cfg.KafkaBroker != "" {
		kafka.WaitReady(cfg.KafkaBroker)
		kafka.InitTopics(ctx, cfg.KafkaBroker, 10*time.Second, cfg.KafkaTopic)
		producer = wbfkafka.NewProducer([]string{cfg.KafkaBroker}, cfg.KafkaTopic)
		pub = producer
	}

	var svc ImageAPIService = service.NewImageService(repo, processor, files, pub, cfg.ProcessedDir)
	saver := upload.NewTempSaver(cfg.UploadDir)
	handlers := transport.NewImageHandler(svc, saver, cfg.MaxFileSize, cfg.ProcessedDir)

	engine := ginext.New(cfg.GinMode)

	engine.GET("/ping", handlers.SimplePinger)
	engine.POST("/images", handlers.Create)                     // upload + process + persist
	engine.GET("/images", handlers.GetAllImages)                // paginated listing with title filter
	engine.GET("/images/:id", handlers.GetImage)                // single record
	engine.GET("/static/:filename", handlers.ServeProcessed)    // processed files, immutable

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: mwlogger.NewMWLogger(engine),
	}

	go func() {
		log.Printf("Server running on http://localhost%s\n", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil {
			switch {
			case errors.Is(err, http.ErrServerClosed):
				log.Println("Server gracefully stopping...")
			default:
				log.Printf("Server stopped: %v", err)
				stop()
			}
		}
	}()

	<-ctx.Done()

	shutdown(srv, producer, dbConn)
	log.Println("Exiting app...")
}

func shutdown(srv *http.Server, producer *wbfkafka.Producer, dbConn *dbpg.DB) {
	log.Println("Interrupt received!!! Starting shutdown sequence...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Failed to stop HTTP-server correctly:", err)
	}
	log.Println("HTTP-server stopped.")

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Println("Failed to close Kafka-producer:", err)
		}
		log.Println("Kafka-producer connection closed.")
	}

	if err := dbConn.Master.Close(); err != nil {
		log.Println("Failed to close DB-conn correctly:", err)
		return
	}
	log.Println("DBconn closed")
}
