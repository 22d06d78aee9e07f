package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/ingestion"
	"github.com/poiesic/helpmatch/matching"
	"github.com/poiesic/helpmatch/storage/csvfile"
	"github.com/urfave/cli/v2"
)

// errRequestIDRequired is returned when match is called without an argument.
var errRequestIDRequired = errors.New("request id is required")

func (env *runtimeEnv) matchCommand(c *cli.Context) error {
	requestID := c.Args().First()
	if requestID == "" {
		return errRequestIDRequired
	}

	topK := env.cfg.Matching.TopK
	if c.IsSet("top-k") {
		topK = c.Int("top-k")
	}

	db, err := env.openDatabase(env.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var engine *matching.Engine
	if c.Bool("csv") {
		var store *csvfile.Store
		store, err = csvfile.Open(env.cfg.Data.Volunteers, env.cfg.Data.Requests)
		if err != nil {
			return err
		}
		defer store.Close()
		// The database still provides the embedding cache.
		engine, err = matching.NewEngine(store, store, db.Embedder(), env.cfg.MatchingOptions()...)
	} else {
		engine, err = db.NewMatchingEngine(env.cfg.MatchingOptions()...)
	}
	if err != nil {
		return fmt.Errorf("failed to create matching engine: %w", err)
	}
	defer engine.Release()

	var outcome *matching.Outcome
	if c.Bool("explain") {
		outcome, err = engine.MatchWithMonitor(c.Context, requestID, topK, newExplainMonitor(slog.Default()))
	} else {
		outcome, err = engine.Match(c.Context, requestID, topK)
	}
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}
	printOutcome(env, outcome)
	return nil
}

func printOutcome(env *runtimeEnv, outcome *matching.Outcome) {
	if len(outcome.Results) == 0 {
		fmt.Fprintf(env.stdout, "%s: %s\n", outcome.RequestID, outcome.Message())
		return
	}

	fmt.Fprintf(env.stdout, "Top %d volunteers for %s:\n", len(outcome.Results), outcome.RequestID)
	for i, r := range outcome.Results {
		fmt.Fprintf(env.stdout, "%2d. %-10s %-24s score=%.4f (text %.2f, skill %.2f, language %.0f, location %.2f, rating %.1f)\n",
			i+1, r.Volunteer.ID, r.Volunteer.Name, r.Score,
			r.TextSimilarity, r.SkillAffinity, r.LanguageMatch, r.LocationScore, r.Volunteer.Rating)
	}
}

func (env *runtimeEnv) importCommand(c *cli.Context) error {
	volPath, reqPath := env.tablePaths(c)

	volunteers, err := csvfile.LoadVolunteers(volPath)
	if err != nil {
		return err
	}
	requests, err := csvfile.LoadRequests(reqPath)
	if err != nil {
		return err
	}

	db, err := env.openDatabase(env.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(env.ingestionOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	// Release waits for the cache warm-up.
	defer pipeline.Release()

	if len(volunteers) > 0 {
		if _, err := pipeline.IngestVolunteers(c.Context, volunteers...); err != nil {
			return fmt.Errorf("failed to import volunteers: %w", err)
		}
	}
	if len(requests) > 0 {
		if _, err := pipeline.IngestRequests(c.Context, requests...); err != nil {
			return fmt.Errorf("failed to import requests: %w", err)
		}
	}

	fmt.Fprintf(env.stdout, "Imported %d volunteers from %s and %d requests from %s\n",
		len(volunteers), volPath, len(requests), reqPath)
	return nil
}

func (env *runtimeEnv) exportCommand(c *cli.Context) error {
	volPath, reqPath := env.tablePaths(c)

	db, err := env.openDatabase(env.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	volunteers, err := db.VolunteerRepository().ListVolunteers(c.Context)
	if err != nil {
		return err
	}
	requests, err := db.RequestRepository().ListRequests(c.Context)
	if err != nil {
		return err
	}

	if err := csvfile.SaveVolunteers(volPath, volunteers); err != nil {
		return err
	}
	if err := csvfile.SaveRequests(reqPath, requests); err != nil {
		return err
	}

	fmt.Fprintf(env.stdout, "Exported %d volunteers to %s and %d requests to %s\n",
		len(volunteers), volPath, len(requests), reqPath)
	return nil
}

func (env *runtimeEnv) addVolunteerCommand(c *cli.Context) error {
	db, err := env.openDatabase(env.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(env.ingestionOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	added, err := pipeline.IngestVolunteers(c.Context, volunteerFromFlags(c))
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, added[0].ID)
	return nil
}

func (env *runtimeEnv) addRequestCommand(c *cli.Context) error {
	db, err := env.openDatabase(env.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(env.ingestionOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	added, err := pipeline.IngestRequests(c.Context, requestFromFlags(c))
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, added[0].ID)
	return nil
}

func (env *runtimeEnv) reembedCommand(c *cli.Context) error {
	reCfg := env.cfg.ReembedderConfig()
	if c.IsSet("batch-size") {
		reCfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("report-interval") {
		reCfg.ReportInterval = c.Int("report-interval")
	}
	if reCfg.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reCfg.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	db, err := env.openDatabase(env.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(reCfg, env.stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.stderr, "Database: %s\n", env.cfg.Database.Path)
	fmt.Fprintf(env.stderr, "Embedding host: %s\n", env.cfg.Embedding.Host)
	fmt.Fprintf(env.stderr, "Embedding model: %s\n", env.cfg.Embedding.Model)
	fmt.Fprintln(env.stderr)

	if _, err := reembedder.Run(c.Context); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func (env *runtimeEnv) tablePaths(c *cli.Context) (string, string) {
	volPath := env.cfg.Data.Volunteers
	if c.IsSet("volunteers") {
		volPath = c.String("volunteers")
	}
	reqPath := env.cfg.Data.Requests
	if c.IsSet("requests") {
		reqPath = c.String("requests")
	}
	return volPath, reqPath
}

func (env *runtimeEnv) ingestionOptions() []ingestion.Option {
	opts := []ingestion.Option{ingestion.WithBatchSize(env.cfg.Ingestion.BatchSize)}
	if env.cfg.Ingestion.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(env.cfg.Ingestion.PoolSize))
	}
	return opts
}

func volunteerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "Volunteer ID (allocated when empty)"},
		&cli.StringFlag{Name: "name", Usage: "Volunteer name", Required: true},
		&cli.StringFlag{Name: "contact", Usage: "Contact information"},
		&cli.StringFlag{Name: "location", Usage: "Home location"},
		&cli.StringFlag{Name: "skills", Usage: "Free-text skills"},
		&cli.StringFlag{Name: "languages", Usage: "Languages spoken, e.g. English,Spanish"},
		&cli.StringFlag{Name: "service-areas", Usage: "Preferred service areas"},
		&cli.Float64Flag{Name: "rating", Usage: "Rating from 0 to 5"},
		&cli.StringFlag{Name: "status", Usage: "Active or Inactive", Value: core.StatusActive},
		&cli.StringFlag{Name: "transportation", Usage: "Yes or No"},
		&cli.StringFlag{Name: "willingness", Usage: "Willingness to travel: High, Moderate or Low"},
	}
}

func volunteerFromFlags(c *cli.Context) *core.Volunteer {
	return &core.Volunteer{
		ID:                    c.String("id"),
		Name:                  c.String("name"),
		ContactInformation:    c.String("contact"),
		Location:              c.String("location"),
		Skills:                c.String("skills"),
		LanguagesSpoken:       c.String("languages"),
		PreferredServiceAreas: c.String("service-areas"),
		Rating:                c.Float64("rating"),
		Status:                c.String("status"),
		Transportation:        c.String("transportation"),
		WillingnessToTravel:   c.String("willingness"),
	}
}

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "Request ID (allocated when empty)"},
		&cli.StringFlag{Name: "category", Usage: "Request category", Required: true},
		&cli.StringFlag{Name: "location", Usage: "Where help is needed"},
		&cli.StringFlag{Name: "type", Usage: "Remote or InPerson", Value: core.RequestTypeRemote},
		&cli.StringFlag{Name: "priority", Usage: "Priority level"},
		&cli.StringFlag{Name: "lead-needed", Usage: "Whether a lead volunteer is needed"},
		&cli.StringFlag{Name: "for", Usage: "Self or Others"},
		&cli.StringFlag{Name: "calamity", Usage: "Whether the request relates to a calamity"},
		&cli.StringFlag{Name: "subject", Usage: "Short subject"},
		&cli.StringFlag{Name: "description", Usage: "Longer description"},
		&cli.StringFlag{Name: "language", Usage: "Preferred language"},
		&cli.StringFlag{Name: "requestor", Usage: "Requestor ID"},
		&cli.StringFlag{Name: "status", Usage: "Request status"},
		&cli.Float64Flag{Name: "duration", Usage: "Expected duration"},
		&cli.StringFlag{Name: "assigned", Usage: "Assigned volunteer ID"},
		&cli.StringFlag{Name: "external-id", Usage: "Upstream system request ID"},
	}
}

func requestFromFlags(c *cli.Context) *core.HelpRequest {
	return &core.HelpRequest{
		ID:                  c.String("id"),
		Category:            c.String("category"),
		Location:            c.String("location"),
		RequestType:         c.String("type"),
		PriorityLevel:       c.String("priority"),
		LeadVolunteerNeeded: c.String("lead-needed"),
		ForSelfOrOthers:     c.String("for"),
		IsCalamity:          c.String("calamity"),
		Subject:             c.String("subject"),
		Description:         c.String("description"),
		LanguagePreferred:   c.String("language"),
		RequestorID:         c.String("requestor"),
		Status:              c.String("status"),
		Duration:            c.Float64("duration"),
		AssignedVolunteer:   c.String("assigned"),
		ExternalID:          c.String("external-id"),
	}
}
