package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

var (
	serverURL   = flag.String("server", "http://localhost:8080", "API server base URL")
	wsURL       = flag.String("ws", "", "Occupancy WebSocket URL (default derived from -server)")
	email       = flag.String("email", "operario@example.com", "Operator email")
	password    = flag.String("password", "password123", "Operator password")
	siteID      = flag.String("sede", "", "Site ID for the occupancy watcher")
	moduleIDs   = flag.String("modulos", "", "Comma-separated module IDs to park into")
	rateID      = flag.String("tarifa", "", "Rate ID for vehicles created at the gate")
	typeID      = flag.String("tipo", "", "Vehicle type ID for vehicles created at the gate")
	vehicles    = flag.Int("vehiculos", 5, "Number of simulated vehicles")
	interval    = flag.Duration("intervalo", 3*time.Second, "Delay between gate events")
	interactive = flag.Bool("interactive", false, "Enable interactive mode")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config := &SimulatorConfig{
		ServerURL:     *serverURL,
		WebSocketURL:  *wsURL,
		Email:         *email,
		Password:      *password,
		SiteID:        *siteID,
		ModuleIDs:     splitList(*moduleIDs),
		RateID:        *rateID,
		VehicleTypeID: *typeID,
		VehicleCount:  *vehicles,
		Interval:      *interval,
	}

	sim := NewSimulator(config, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		sim.Stop()
		os.Exit(0)
	}()

	if err := sim.Login(); err != nil {
		logger.Fatal("Failed to log in", zap.Error(err))
	}

	if config.SiteID != "" {
		if err := sim.WatchOccupancy(); err != nil {
			logger.Warn("Occupancy watcher unavailable", zap.Error(err))
		}
	}

	if *interactive {
		runInteractiveMode(sim)
		return
	}

	if len(config.ModuleIDs) == 0 {
		logger.Fatal("No modules configured, pass -modulos")
	}

	fmt.Printf("Gate traffic simulator started\n")
	fmt.Printf("  Server:   %s\n", *serverURL)
	fmt.Printf("  Vehicles: %d\n", *vehicles)
	fmt.Printf("  Interval: %s\n", *interval)
	fmt.Println("\nPress Ctrl+C to stop")

	sim.Run()
}

func runInteractiveMode(sim *Simulator) {
	fmt.Println("\nGate Traffic Simulator - Interactive Mode")
	fmt.Println("=========================================")
	fmt.Println("Commands:")
	fmt.Println("  entrar <placa> <modulo>  - Enter a vehicle into a module")
	fmt.Println("  salir <placa>            - Exit a vehicle (cash payment)")
	fmt.Println("  cotizar <placa>          - Quote what an open session owes")
	fmt.Println("  activos                  - List active sessions at the site")
	fmt.Println("  quit                     - Exit simulator")
	fmt.Println("")

	sim.RunInteractive()
}
