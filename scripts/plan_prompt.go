package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/tripster-api/app/logger"
	"github.com/FACorreiaa/tripster-api/config"
	generativeAI "github.com/FACorreiaa/tripster-api/internal/api/generative_ai"
	"github.com/FACorreiaa/tripster-api/internal/api/travel"
	"github.com/FACorreiaa/tripster-api/internal/types"
)

var (
	start       = flag.String("from", "เชียงใหม่", "start location")
	destination = flag.String("to", "ปาย", "destination")
	days        = flag.Int("days", 3, "trip length in days")
	budget      = flag.String("budget", "5000", "budget in baht")
	travelWith  = flag.String("with", "", "travel companions")
	interests   = flag.String("interests", "", "comma separated interests")
	dryRun      = flag.Bool("dry-run", false, "print the prompt without calling the model")
)

// Renders the itinerary prompt and sends it to the configured Gemini backend.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}
	flag.Parse()

	req := types.PlanRequest{
		StartLocation: *start,
		Destination:   *destination,
		Days:          *days,
		Budget:        types.Budget(*budget),
		TravelWith:    *travelWith,
	}
	if *interests != "" {
		req.Interests = types.StringList(strings.Split(*interests, ","))
	}

	prompt := travel.PlanPrompt(req)
	fmt.Println("Prompt:", prompt)
	if *dryRun {
		return
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}
	logger := appLogger.New(cfg.Mode, os.Stderr)

	ctx := context.Background()
	generator, err := generativeAI.NewGenerator(ctx, generativeAI.Config{
		Model:       cfg.AI.Model,
		APIKey:      cfg.AI.APIKey,
		ProjectID:   cfg.AI.ProjectID,
		Location:    cfg.AI.Location,
		Credentials: cfg.AI.Credentials,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	plan, err := generator.Generate(ctx, prompt)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	fmt.Printf("Result text: %s\n", plan)
}
