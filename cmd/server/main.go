package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cx-tal-miterani/airline-engine/internal/cache"
	"github.com/cx-tal-miterani/airline-engine/internal/database"
	"github.com/cx-tal-miterani/airline-engine/internal/engine"
	"github.com/cx-tal-miterani/airline-engine/internal/handlers"
	"github.com/cx-tal-miterani/airline-engine/internal/models"
	"github.com/cx-tal-miterani/airline-engine/internal/router"
	"github.com/cx-tal-miterani/airline-engine/internal/service"
	"github.com/cx-tal-miterani/airline-engine/internal/websocket"
)

const DefaultPort = "8080"

func seedAirports() []models.Airport {
	return []models.Airport{
		{AirportCode: "HAN", AirportName: "Noi Bai (Ha Noi)"},
		{AirportCode: "SGN", AirportName: "Tan Son Nhat (TP. Ho Chi Minh)"},
		{AirportCode: "DAD", AirportName: "Da Nang"},
		{AirportCode: "CXR", AirportName: "Cam Ranh (Nha Trang)"},
		{AirportCode: "PQC", AirportName: "Phu Quoc"},
		{AirportCode: "HPH", AirportName: "Cat Bi (Hai Phong)"},
		{AirportCode: "HUI", AirportName: "Phu Bai (Hue)"},
		{AirportCode: "VII", AirportName: "Vinh"},
		{AirportCode: "DLI", AirportName: "Lien Khuong (Da Lat)"},
		{AirportCode: "VCA", AirportName: "Can Tho"},
	}
}

func seedPlanes() []models.Plane {
	return []models.Plane{
		{
			PlaneCode: "VN-A321",
			PlaneName: "Airbus A321",
			SeatClasses: []models.SeatClassConfig{
				{ClassName: "1", SeatCount: 16, PriceRatio: 1.05},
				{ClassName: "2", SeatCount: 168, PriceRatio: 1.00},
			},
		},
		{
			PlaneCode: "VN-B787",
			PlaneName: "Boeing 787-9",
			SeatClasses: []models.SeatClassConfig{
				{ClassName: "1", SeatCount: 28, PriceRatio: 1.05},
				{ClassName: "2", SeatCount: 211, PriceRatio: 1.00},
			},
		},
	}
}

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = DefaultPort
	}

	// Engine wiring. The in-memory stores are authoritative; the
	// archive and cache below are optional adapters.
	policy := engine.NewPolicyStore(models.DefaultParameters())
	airports := engine.NewAirportStore(seedAirports())
	planes := engine.NewPlaneStore(seedPlanes())
	flights := engine.NewFlightStore()
	ledger := engine.NewTicketLedger(flights, policy)
	revenue := engine.NewRevenueAggregator(flights, ledger)

	deps := service.Deps{
		Policy:    policy,
		Airports:  airports,
		Planes:    planes,
		Flights:   flights,
		Ledger:    ledger,
		Revenue:   revenue,
		Validator: engine.NewScheduleValidator(),
	}

	hub := websocket.NewHub()
	go hub.Run()
	deps.Hub = hub

	if url := os.Getenv("DATABASE_URL"); url != "" {
		pool, err := database.Connect(context.Background(), url)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		deps.Archive = database.NewRepository(pool)
		log.Println("Flight archive enabled")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := cache.NewRedisClient(addr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		deps.Cache = client
		log.Println("Report cache enabled")
	}

	svc := service.New(deps)
	h := handlers.NewHandler(svc)
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("API server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
