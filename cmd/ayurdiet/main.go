package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ayurdiet/internal/app"
	"ayurdiet/internal/config"
	"ayurdiet/internal/profile"
	"ayurdiet/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		if len(os.Args) < 3 {
			log.Fatal("Usage: ayurdiet seed <foods.csv>")
		}
		count, err := application.SeedCatalog(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Imported %d foods into the catalog.\n", count)

	case "clip":
		if len(os.Args) < 3 {
			log.Fatal("Usage: ayurdiet clip <url>")
		}
		food, err := application.ClipFood(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Clipping failed: %v", err)
		}
		fmt.Printf("Saved food %q (%s, %.0f kcal/100g).\n", food.Name, food.Category, food.Per100g.Calories)

	case "plan":
		runPlanCommand(ctx, application, os.Args[2:])

	case "advice":
		if len(os.Args) < 3 {
			log.Fatal("Usage: ayurdiet advice \"<question>\" [profile flags]")
		}
		question := os.Args[2]
		p := parseProfileFlags("advice", os.Args[3:], nil)
		answer, err := application.Advise(ctx, "cli", question, p)
		if err != nil {
			log.Fatalf("Advice failed: %v", err)
		}
		fmt.Println(answer)

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := application.MetricsStore.Cleanup(*days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Old metric records removed.")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlanCommand(ctx context.Context, application *app.App, args []string) {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	planType := planCmd.String("type", "daily", "Plan type (daily gives four meals, anything else three)")
	calories := planCmd.Int("calories", 0, "Explicit calorie target, 0 computes from the profile")
	explain := planCmd.Bool("explain", false, "Ask the model for a narrative summary of the plan")
	archiveDir := planCmd.String("archive", "", "Directory to export the plan JSON into")

	p := parseProfileFlags("plan", args, planCmd)

	plan, list, err := application.GeneratePlan(ctx, "cli", p, *planType, *calories)
	if err != nil {
		log.Fatalf("Plan generation failed: %v", err)
	}

	fmt.Printf("=== DIET PLAN (%s, %s season) ===\n", plan.Dosha, plan.Season)
	fmt.Printf("Target: %d kcal | Packed: %d kcal\n", plan.TargetCalories, plan.TotalCalories)
	fmt.Printf("Macros: %d%% protein / %d%% carbs / %d%% fat\n\n",
		plan.Macros.ProteinPct, plan.Macros.CarbsPct, plan.Macros.FatPct)

	for _, meal := range plan.Meals {
		fmt.Printf("%-10s (%d / %d kcal)\n", meal.Type, meal.TotalCalories, meal.TargetCalories)
		for _, item := range meal.Items {
			fmt.Printf("  - %s: %.0f g (%d kcal, %.1f g protein)\n",
				item.FoodName, item.Grams, item.Macros.Calories, item.Macros.Protein)
		}
	}

	fmt.Println("\n=== GROCERY LIST ===")
	for _, item := range list.Items {
		fmt.Printf("- %s\n", item)
	}

	if *archiveDir != "" {
		archive, err := storage.NewPlanArchive(*archiveDir)
		if err != nil {
			log.Fatalf("Failed to open plan archive: %v", err)
		}
		path, err := archive.Save(plan)
		if err != nil {
			log.Fatalf("Failed to archive plan: %v", err)
		}
		fmt.Printf("\nPlan exported to %s\n", path)
	}

	if *explain {
		summary, err := application.ExplainPlan(ctx, plan)
		if err != nil {
			log.Printf("Warning: failed to generate plan summary: %v", err)
			return
		}
		fmt.Printf("\n=== SUMMARY ===\n%s\n", summary)
	}
}

// parseProfileFlags reads the shared profile flags. When fs is nil a fresh
// flag set is created so the advice command can reuse the same flags.
func parseProfileFlags(name string, args []string, fs *flag.FlagSet) profile.Profile {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ExitOnError)
	}

	dosha := fs.String("dosha", "", "Constitution: Vata, Pitta, Kapha or dual like Vata-Pitta")
	age := fs.Int("age", 0, "Age in years")
	sex := fs.String("sex", "", "Biological sex: male or female")
	height := fs.Float64("height", 0, "Height in cm")
	weight := fs.Float64("weight", 0, "Weight in kg")
	activity := fs.String("activity", "", "Activity level: sedentary, light, moderate, active, very_active")
	goals := fs.String("goals", "", "Comma-separated goals, e.g. weight_loss")
	dislikes := fs.String("dislikes", "", "Comma-separated disliked foods")
	allergies := fs.String("allergies", "", "Comma-separated food allergies")
	conditions := fs.String("conditions", "", "Comma-separated medical conditions, e.g. diabetes")

	fs.Parse(args)

	return profile.Profile{
		Dosha:      *dosha,
		Age:        *age,
		Sex:        *sex,
		HeightCM:   *height,
		WeightKG:   *weight,
		Activity:   profile.ActivityLevel(*activity),
		Goals:      splitList(*goals),
		Dislikes:   splitList(*dislikes),
		Allergies:  splitList(*allergies),
		Conditions: splitList(*conditions),
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: ayurdiet <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  seed <foods.csv>       Import foods into the catalog")
	fmt.Println("  clip <url>             Extract and save a food from a web page")
	fmt.Println("  plan [flags]           Generate a diet plan (see 'plan -h')")
	fmt.Println("  advice \"<question>\"    Ask the dietary advisor")
	fmt.Println("  metrics-cleanup        Remove old metric records")
}
