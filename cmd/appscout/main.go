// Copyright 2025 Appscout Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/appscout/appscout"
	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/feedback"
	"github.com/appscout/appscout/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "appscout",
		Usage: "Personalized app recommendation engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "recommend",
				Usage:     "Recommend apps for a query",
				Action:    recommendCommand,
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "AI service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.Uint64Flag{
						Name:  "profile",
						Usage: "Profile ID for personalization",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Lifestyle tag (repeatable)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of recommendations",
						Value: appscout.DefaultLimit,
					},
				},
			},
			{
				Name:   "feedback",
				Usage:  "Record interaction feedback for a previous recommendation",
				Action: feedbackCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "profile",
						Usage:    "Profile ID the feedback belongs to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Query text the results were shown for",
					},
					&cli.StringFlag{
						Name:     "shown",
						Usage:    "Comma-separated item IDs that were shown, in rank order",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "clicked",
						Usage: "Comma-separated item IDs that were clicked",
					},
					&cli.StringFlag{
						Name:  "liked",
						Usage: "Comma-separated item IDs that were liked",
					},
					&cli.StringFlag{
						Name:  "rejected",
						Usage: "Comma-separated item IDs that were rejected",
					},
					&cli.IntFlag{
						Name:  "rating",
						Usage: "Explicit session rating 1-5",
					},
				},
			},
			{
				Name:   "recalibrate",
				Usage:  "Recompute item keyword weights from interaction history",
				Action: recalibrateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "window",
						Usage: "How far back to replay interactions",
						Value: 30 * 24 * time.Hour,
					},
					&cli.Float64Flag{
						Name:  "learning-rate",
						Usage: "How far weights move toward observed rates",
						Value: feedback.DefaultLearningRate,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func recommendCommand(c *cli.Context) error {
	queryText := strings.Join(c.Args().Slice(), " ")

	engine, err := appscout.Open(c.String("db"),
		appscout.WithAIConfig(ai.NewConfig(ai.WithHost(c.String("host")))))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	response, err := engine.Recommend(context.Background(), appscout.Request{
		QueryText:     queryText,
		ProfileId:     core.ID(c.Uint64("profile")),
		LifestyleTags: c.StringSlice("tag"),
		Limit:         c.Int("limit"),
	})
	if err != nil {
		return err
	}

	if response.Degraded {
		fmt.Fprintln(os.Stderr, "note: results are degraded (a pipeline stage fell back)")
	}
	for _, result := range response.Results {
		fmt.Printf("%2d. %s (%.2f) [%s]\n", result.Rank, result.Item.Name, result.Score, result.Strategy)
		if result.Item.OneLiner != "" {
			fmt.Printf("    %s\n", result.Item.OneLiner)
		}
		if result.Explanation != "" {
			fmt.Printf("    %s\n", result.Explanation)
		}
		fmt.Printf("    id=%d\n", result.Item.Id)
	}
	return nil
}

func feedbackCommand(c *cli.Context) error {
	shownIds, err := parseIdList(c.String("shown"))
	if err != nil {
		return fmt.Errorf("invalid --shown: %w", err)
	}
	clicked, err := parseIdList(c.String("clicked"))
	if err != nil {
		return fmt.Errorf("invalid --clicked: %w", err)
	}
	liked, err := parseIdList(c.String("liked"))
	if err != nil {
		return fmt.Errorf("invalid --liked: %w", err)
	}
	rejected, err := parseIdList(c.String("rejected"))
	if err != nil {
		return fmt.Errorf("invalid --rejected: %w", err)
	}

	shown := make([]core.ShownItem, 0, len(shownIds))
	for i, id := range shownIds {
		shown = append(shown, core.ShownItem{ItemId: id, Rank: i + 1})
	}

	stores, err := badger.OpenStores(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	recorder, err := feedback.NewRecorder(stores.Catalog, stores.Profiles, stores.Bandit, stores.Interactions)
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}
	defer recorder.Release()

	event := &core.InteractionEvent{
		EventId:   uuid.NewString(),
		ProfileId: core.ID(c.Uint64("profile")),
		QueryText: c.String("query"),
		Shown:     shown,
		Clicked:   clicked,
		Liked:     liked,
		Rejected:  rejected,
		Rating:    c.Int("rating"),
	}
	if err := recorder.Record(event); err != nil {
		return err
	}
	recorder.Wait()

	fmt.Printf("recorded event %s (%d impressions)\n", event.EventId, len(shown))
	return nil
}

func recalibrateCommand(c *cli.Context) error {
	stores, err := badger.OpenStores(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	recalibrator, err := feedback.NewRecalibrator(stores.Catalog, stores.Interactions,
		feedback.WithLearningRate(c.Float64("learning-rate")))
	if err != nil {
		return err
	}

	since := time.Now().Add(-c.Duration("window"))
	updated, err := recalibrator.Recalibrate(context.Background(), since)
	if err != nil {
		return fmt.Errorf("recalibration failed: %w", err)
	}

	fmt.Printf("recalibrated %d keyword weights\n", updated)
	return nil
}

// parseIdList parses a comma-separated list of item IDs.
func parseIdList(value string) ([]core.ID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]core.ID, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, core.ID(id))
	}
	return ids, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
