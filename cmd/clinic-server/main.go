package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinic-backend/internal/config"
	"clinic-backend/internal/database"
	"clinic-backend/internal/handlers"
	"clinic-backend/internal/messaging"
	"clinic-backend/internal/mysqlstore"
	"clinic-backend/internal/neostore"
	"clinic-backend/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	clinicStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StorageBackend, err)
	}

	mongoClient, err := database.OpenMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	chat := messaging.NewService(mongoClient, cfg.MongoDatabase)
	chat.EnsureIndexes(ctx)

	if err := clinicStore.Bootstrap(ctx); err != nil {
		log.Fatalf("Failed to bootstrap %s store: %v", cfg.StorageBackend, err)
	}

	r := gin.Default()
	r.Use(cors.Default())
	handlers.New(clinicStore, chat).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("clinic backend listening on port %s (storage: %s)", cfg.ListenPort, cfg.StorageBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if err := clinicStore.Close(shutdownCtx); err != nil {
		log.Printf("Store close: %v", err)
	}
	if err := chat.Close(shutdownCtx); err != nil {
		log.Printf("Messaging close: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.ClinicStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMySQL:
		db, err := database.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return mysqlstore.New(db), nil
	case config.BackendNeo4j:
		executor, err := database.NewNeo4jExecutor(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			return nil, err
		}
		if err := executor.Verify(ctx); err != nil {
			return nil, err
		}
		return neostore.New(executor), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
