// Seeder loads a catalog of apps into an appscout database, embedding each
// item's description on the way in. With no -src file it seeds a small
// built-in demo catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/ai/openai"
	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage/badger"
)

// seedItem is the JSON shape of one catalog entry.
type seedItem struct {
	Name        string             `json:"name"`
	OneLiner    string             `json:"one_liner"`
	Description string             `json:"description"`
	Categories  []string           `json:"categories"`
	UseCases    []string           `json:"use_cases"`
	Rating      float64            `json:"rating"`
	Keywords    map[string]float64 `json:"keywords"`
}

var demoCatalog = []seedItem{
	{
		Name:        "BudgetBuddy",
		OneLiner:    "Track spending and stick to a budget",
		Description: "BudgetBuddy tracks your daily spending, groups expenses into categories and warns you before you blow your monthly budget.",
		Categories:  []string{"Finance"},
		UseCases:    []string{"budget tracking", "expense logging"},
		Rating:      4.6,
		Keywords:    map[string]float64{"budget": 0.9, "track": 0.8, "expense": 0.7, "money": 0.6},
	},
	{
		Name:        "TrailBlazer",
		OneLiner:    "Offline maps for hiking trails",
		Description: "TrailBlazer bundles topographic maps, trail reviews and GPS tracking that works with no cell coverage.",
		Categories:  []string{"Travel", "Health & Fitness"},
		UseCases:    []string{"hiking", "trip planning"},
		Rating:      4.4,
		Keywords:    map[string]float64{"hiking": 0.9, "maps": 0.8, "trail": 0.8, "offline": 0.6},
	},
	{
		Name:        "PlateWise",
		OneLiner:    "Meal planning around your groceries",
		Description: "PlateWise plans a week of meals from what's already in your kitchen and builds the shopping list for the rest.",
		Categories:  []string{"Food & Drink"},
		UseCases:    []string{"meal planning", "grocery lists"},
		Rating:      4.2,
		Keywords:    map[string]float64{"meal": 0.9, "recipe": 0.7, "grocery": 0.7, "cooking": 0.6},
	},
	{
		Name:        "DeepBreath",
		OneLiner:    "Short guided breathing sessions",
		Description: "DeepBreath offers two-minute breathing exercises for stressful moments, with gentle reminders spread through the day.",
		Categories:  []string{"Health & Fitness"},
		UseCases:    []string{"stress relief", "mindfulness"},
		Rating:      4.7,
		Keywords:    map[string]float64{"breathing": 0.9, "stress": 0.8, "calm": 0.7, "meditation": 0.6},
	},
	{
		Name:        "LingoLoop",
		OneLiner:    "Five-minute language lessons",
		Description: "LingoLoop teaches vocabulary with spaced repetition and tiny daily lessons you can finish on the bus.",
		Categories:  []string{"Education"},
		UseCases:    []string{"language learning"},
		Rating:      4.5,
		Keywords:    map[string]float64{"language": 0.9, "learn": 0.8, "vocabulary": 0.7, "flashcards": 0.6},
	},
	{
		Name:        "ShelfLife",
		OneLiner:    "Know what's in your pantry",
		Description: "ShelfLife scans barcodes, tracks expiry dates and nags you to eat things before they go off.",
		Categories:  []string{"Food & Drink", "Productivity"},
		UseCases:    []string{"pantry tracking", "waste reduction"},
		Rating:      3.9,
		Keywords:    map[string]float64{"pantry": 0.9, "food": 0.7, "expiry": 0.7, "barcode": 0.5},
	},
	{
		Name:        "NightOwl",
		OneLiner:    "Sleep cycle tracking without a wearable",
		Description: "NightOwl listens for movement and breathing to chart your sleep stages, then wakes you at the lightest point of your cycle.",
		Categories:  []string{"Health & Fitness"},
		UseCases:    []string{"sleep tracking"},
		Rating:      4.1,
		Keywords:    map[string]float64{"sleep": 0.9, "alarm": 0.7, "cycle": 0.6, "rest": 0.5},
	},
	{
		Name:        "SplitTab",
		OneLiner:    "Split bills without the awkwardness",
		Description: "SplitTab tracks shared expenses for trips and households and settles everyone up with a single payment each.",
		Categories:  []string{"Finance", "Social"},
		UseCases:    []string{"bill splitting", "shared expenses"},
		Rating:      4.3,
		Keywords:    map[string]float64{"split": 0.9, "bills": 0.8, "friends": 0.6, "money": 0.6},
	},
}

var (
	dbPath   = flag.String("db", "", "path to BadgerDB database directory")
	seedFile = flag.String("src", "", "JSON file of catalog items")
	host     = flag.String("host", "http://localhost:11434/v1", "AI service host URL")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	if *dbPath == "" {
		slog.Error("-db is required")
		os.Exit(1)
	}

	seeds := demoCatalog
	if *seedFile != "" {
		data, err := os.ReadFile(*seedFile)
		if err != nil {
			slog.Error("failed to read seed file", "path", *seedFile, "error", err)
			os.Exit(1)
		}
		seeds = nil
		if err := json.Unmarshal(data, &seeds); err != nil {
			slog.Error("failed to parse seed file", "path", *seedFile, "error", err)
			os.Exit(1)
		}
	}

	stores, err := badger.OpenStores(*dbPath, false)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	embedder, err := openai.NewEmbedder(ai.NewConfig(ai.WithHost(*host)))
	if err != nil {
		slog.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	loaded := 0
	for _, seed := range seeds {
		item := &core.Item{
			Id:          core.IDFromContent(seed.Name),
			Name:        seed.Name,
			OneLiner:    seed.OneLiner,
			Description: seed.Description,
			Categories:  seed.Categories,
			UseCases:    seed.UseCases,
			Rating:      seed.Rating,
			Keywords:    seed.Keywords,
		}

		vector, err := embedder.EmbedText(ctx, embeddingText(seed))
		if err != nil {
			slog.Error("embedding failed, storing without vector",
				"item", seed.Name, "error", err)
		} else {
			item.Vector = vector
		}

		if err := stores.Catalog.AddItems(ctx, item); err != nil {
			slog.Error("failed to store item", "item", seed.Name, "error", err)
			os.Exit(1)
		}
		loaded++
	}

	slog.Info("catalog seeded", "items", loaded)
}

// embeddingText builds the text embedded for an item: name, one-liner,
// description and use cases, matching what queries are compared against.
func embeddingText(seed seedItem) string {
	parts := []string{seed.Name, seed.OneLiner, seed.Description}
	parts = append(parts, seed.UseCases...)
	return strings.Join(parts, ". ")
}
