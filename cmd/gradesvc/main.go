package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/pickem-services/configs"
	mongodb "github.com/avvvet/pickem-services/internal/db"
	"github.com/avvvet/pickem-services/internal/gradesvc/audit"
	"github.com/avvvet/pickem-services/internal/gradesvc/broker"
	"github.com/avvvet/pickem-services/internal/gradesvc/db"
	handlers "github.com/avvvet/pickem-services/internal/gradesvc/handlers"
	"github.com/avvvet/pickem-services/internal/gradesvc/service"
	"github.com/avvvet/pickem-services/internal/gradesvc/store"
	natscli "github.com/avvvet/pickem-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "grade"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection, pool owned here and closed on shutdown
	dbpool, err := db.Connect(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully")

	// mongo connection for the settlement audit trail
	mdb, cancelMongo, err := mongodb.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancelMongo()

	auditStore := audit.NewStore(mdb)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := auditStore.EnsureIndexes(ctx); err != nil {
			log.Warnf("unable to ensure audit indexes %v", err)
		}
		cancel()
	}

	gameStore := store.NewGameStore(dbpool)
	pickStore := store.NewPickStore(dbpool)
	recordStore := store.NewRecordStore(dbpool)

	settlementService := service.NewSettlementService(gameStore, pickStore, auditStore)
	statsService := service.NewStatsService(recordStore)

	// Connect to NATS
	n, err := natscli.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// settlement message broker: score feed in, game.settled out
	b := broker.NewBroker(n.Conn, settlementService)

	sub, err := b.SubscribeSettlement(broker.TopicSettlement)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(settlementService, statsService, b)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("GRADE_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
