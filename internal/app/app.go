// Package app wires the application together: database, repositories, the
// plan engine and the AI collaborators. The CLI, the HTTP API and the
// Telegram bot all drive the same App.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"ayurdiet/internal/advisor"
	"ayurdiet/internal/auth"
	"ayurdiet/internal/catalog"
	"ayurdiet/internal/clipper"
	"ayurdiet/internal/config"
	"ayurdiet/internal/database"
	"ayurdiet/internal/foodsource"
	"ayurdiet/internal/llm"
	"ayurdiet/internal/metrics"
	"ayurdiet/internal/planner"
	"ayurdiet/internal/profile"
	"ayurdiet/internal/shopping"
)

// App holds the application's long-lived dependencies.
type App struct {
	cfg *config.Config
	db  *database.DB

	FoodRepo     *catalog.Repository
	PlanRepo     *planner.PlanRepository
	GroceryRepo  *shopping.Repository
	MetricsStore *metrics.Store
	Users        *auth.Service

	Advisor    *advisor.Advisor
	Clipper    *clipper.Clipper
	FoodSource foodsource.Client

	textGen llm.TextGenerator
	closers []llm.Closer
}

// New creates and wires an App from configuration. The caller owns the
// returned App and must Close it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &App{
		cfg:          cfg,
		db:           db,
		FoodRepo:     catalog.NewRepository(db.SQL),
		PlanRepo:     planner.NewPlanRepository(db.SQL),
		GroceryRepo:  shopping.NewRepository(db.SQL),
		MetricsStore: metrics.NewStore(db.SQL),
		Users:        auth.NewService(auth.NewSQLiteUserRepository(db.SQL)),
	}

	textGen, err := a.buildTextGenerator(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.textGen = textGen
	a.Advisor = advisor.NewAdvisor(textGen)
	a.Clipper = clipper.NewClipper(textGen)
	a.FoodSource = foodsource.NewClient(cfg)

	return a, nil
}

// buildTextGenerator picks the configured LLM provider and wraps it in the
// file cache so repeated prompts don't burn tokens.
func (a *App) buildTextGenerator(ctx context.Context) (llm.TextGenerator, error) {
	var base llm.TextGenerator

	switch {
	case a.cfg.GeminiAPIKey != "":
		gen, err := llm.NewGeminiClient(ctx, a.cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		base = gen
	case a.cfg.GroqAPIKey != "":
		base = llm.NewGroqClient(a.cfg)
	default:
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if c, ok := base.(llm.Closer); ok {
		a.closers = append(a.closers, c)
	}

	cached, err := llm.NewCachedTextGenerator(base, a.cfg.AdviceCachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM cache: %w", err)
	}
	return cached, nil
}

// Close releases the App's resources.
func (a *App) Close() {
	if cached, ok := a.textGen.(*llm.CachedTextGenerator); ok {
		if err := cached.SaveCache(); err != nil {
			log.Printf("Warning: failed to save LLM cache: %v", err)
		}
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Printf("Warning: failed to close LLM client: %v", err)
		}
	}
	if err := a.db.Close(); err != nil {
		log.Printf("Warning: failed to close database: %v", err)
	}
}

// DatabasePath exposes the configured database location for health checks.
func (a *App) DatabasePath() string {
	return a.cfg.DatabasePath
}

// SeedCatalog imports foods from a CSV file into the catalog. Returns the
// number of foods imported.
func (a *App) SeedCatalog(ctx context.Context, csvPath string) (int, error) {
	foods, err := catalog.ImportCSVFile(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to import catalog CSV: %w", err)
	}
	if err := a.FoodRepo.SaveAll(ctx, foods); err != nil {
		return 0, fmt.Errorf("failed to save imported foods: %w", err)
	}
	return len(foods), nil
}

// ClipFood extracts a food entry from a web page and stores it in the
// catalog.
func (a *App) ClipFood(ctx context.Context, url string) (*catalog.FoodItem, error) {
	food, err := a.Clipper.ClipURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := foodsource.Enrich(ctx, a.FoodSource, food); err != nil {
		log.Printf("Warning: macro enrichment failed for %s: %v", food.Name, err)
	}
	if err := a.FoodRepo.Save(ctx, *food); err != nil {
		return nil, fmt.Errorf("failed to save clipped food: %w", err)
	}
	return food, nil
}

// GeneratePlan builds a plan for the profile from the stored catalog,
// persists it together with its grocery list, and records a plan metric.
func (a *App) GeneratePlan(ctx context.Context, userID string, p profile.Profile, planType string, explicitCalories int) (*planner.Plan, *shopping.GroceryList, error) {
	started := time.Now()

	foods, err := a.FoodRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load food catalog: %w", err)
	}

	plan := planner.GeneratePlan(p, foods, planType, explicitCalories)

	if _, err := a.PlanRepo.Save(ctx, userID, plan); err != nil {
		return nil, nil, fmt.Errorf("failed to save plan: %w", err)
	}

	list := shopping.FromPlan(userID, plan)
	if _, err := a.GroceryRepo.Save(ctx, list); err != nil {
		log.Printf("Warning: failed to save grocery list for plan %s: %v", plan.ID, err)
	}

	itemCount := 0
	for _, meal := range plan.Meals {
		itemCount += len(meal.Items)
	}
	if err := a.MetricsStore.RecordPlan(metrics.PlanMetric{
		Dosha:          plan.Dosha,
		Season:         string(plan.Season),
		PlanType:       plan.PlanType,
		TargetCalories: plan.TargetCalories,
		TotalCalories:  plan.TotalCalories,
		ItemCount:      itemCount,
		LatencyMS:      time.Since(started).Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record plan metrics: %v", err)
	}

	return plan, list, nil
}

// Advise answers a dietary question grounded in the user's latest plan when
// one exists.
func (a *App) Advise(ctx context.Context, userID, question string, p profile.Profile) (string, error) {
	var plan *planner.Plan
	stored, err := a.PlanRepo.Latest(ctx, userID)
	if err != nil {
		log.Printf("Warning: failed to load latest plan for advice context: %v", err)
	} else if stored != nil {
		plan = &stored.Plan
	}

	started := time.Now()
	resp, err := a.Advisor.Advise(ctx, question, p, plan)
	if err != nil {
		return "", err
	}
	if err := a.MetricsStore.RecordUsage("advisor", resp.Usage, time.Since(started)); err != nil {
		log.Printf("Warning: failed to record advisor metrics: %v", err)
	}
	return resp.Content, nil
}

// ExplainPlan asks the model for a narrative summary of a plan.
func (a *App) ExplainPlan(ctx context.Context, plan *planner.Plan) (string, error) {
	started := time.Now()
	resp, err := a.Advisor.ExplainPlan(ctx, plan)
	if err != nil {
		return "", err
	}
	if err := a.MetricsStore.RecordUsage("advisor", resp.Usage, time.Since(started)); err != nil {
		log.Printf("Warning: failed to record advisor metrics: %v", err)
	}
	return resp.Content, nil
}
