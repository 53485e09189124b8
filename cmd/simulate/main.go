package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"paths-api/internal/domain"
	"paths-api/internal/simulation"
)

// Corre el motor de simulacion sin base de datos ni servidor. Lee una
// decision desde un archivo JSON y escribe ambos timelines por stdout.
func main() {
	var (
		path = flag.String("decision", "", "path to a decision JSON file")
		seed = flag.Int64("seed", 0, "optional seed for reproducible runs")
	)
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal(err)
	}

	var input struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		Category        string `json:"category"`
		ChosenPath      string `json:"chosen_path"`
		AlternativePath string `json:"alternative_path"`
		Timeframe       string `json:"timeframe"`
		Importance      int    `json:"importance"`
		Context         string `json:"context"`
	}
	if err := json.Unmarshal(data, &input); err != nil {
		log.Fatal(err)
	}

	category, ok := domain.ParseCategory(strings.ToLower(strings.TrimSpace(input.Category)))
	if !ok {
		log.Fatalf("unknown category %q", input.Category)
	}

	decision := domain.Decision{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        category,
		ChosenPath:      input.ChosenPath,
		AlternativePath: input.AlternativePath,
		Timeframe:       input.Timeframe,
		Importance:      input.Importance,
		Context:         input.Context,
		CreatedAt:       time.Now().UTC(),
	}

	src := simulation.NewTimeSource()
	if *seed != 0 {
		src = simulation.NewSeededSource(*seed)
	}
	generator := simulation.NewGenerator(src)
	scorer := simulation.NewScorer(src)

	profile := domain.TraitProfile{}
	weights := simulation.WeightsFor(decision.Category)

	original := generator.GenerateTimeline(decision, false, weights, profile)
	alternate := generator.GenerateTimeline(decision, true, weights, profile)
	insights := simulation.ComposeInsights(decision, original, alternate, profile)
	confidence := scorer.ScoreConfidence(decision, profile)

	traits := simulation.InferTraits(decision)
	fmt.Printf("Decision: %s (%s)\n", decision.Title, decision.Category)
	fmt.Printf("Inferred traits: risk=%.2f planning=%.2f emotional=%.2f logical=%.2f\n\n",
		traits.RiskTolerance, traits.PlanningHorizon, traits.EmotionalWeight, traits.LogicalWeight)

	printTimeline("Chosen path", original)
	printTimeline("Alternative path", alternate)

	fmt.Println("Insights:")
	for _, insight := range insights {
		fmt.Printf("  - %s\n", insight)
	}
	fmt.Printf("\nConfidence: %.2f\n", confidence)
}

func printTimeline(label string, events []domain.LifeEvent) {
	fmt.Printf("%s:\n", label)
	for _, e := range events {
		fmt.Printf("  [%s] %s (%s, p=%.2f)\n", e.Timeline, e.Title, e.Impact, e.Probability)
		fmt.Printf("      %s\n", e.Description)
	}
	fmt.Println()
}
