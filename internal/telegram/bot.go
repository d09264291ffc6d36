// Package telegram exposes the plan engine over a Telegram webhook bot.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ayurdiet/internal/app"
	"ayurdiet/internal/config"
	"ayurdiet/internal/metrics"
	"ayurdiet/internal/planner"
	"ayurdiet/internal/profile"
	"ayurdiet/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the application core.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config

	// Per-chat dietary profiles, built up through /dosha and /goal commands.
	mu       sync.Mutex
	profiles map[int64]*profile.Profile
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, a *app.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook for %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:      api,
		app:      a,
		cfg:      cfg,
		profiles: make(map[int64]*profile.Profile),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/help"):
		b.sendMarkdown(msg.Chat.ID, helpText)
	case strings.HasPrefix(text, "/dosha"):
		b.handleDoshaCommand(msg)
	case strings.HasPrefix(text, "/goal"):
		b.handleGoalCommand(msg)
	case strings.HasPrefix(text, "/plan"):
		b.handlePlanRequest(msg)
	case text == "/metrics":
		b.handleMetricsCommand(msg.Chat.ID)
	case strings.HasPrefix(text, "http://"), strings.HasPrefix(text, "https://"):
		b.handleClipperRequest(msg)
	default:
		b.handleAdviceRequest(msg)
	}
}

const helpText = `🌿 *Ayurdiet Bot*

• /dosha <Vata|Pitta|Kapha> — set your constitution
• /goal <weight_loss|weight_gain|muscle_gain> — set a goal
• /plan [daily] [calories] — generate a diet plan
• /metrics — usage and health report
• Send a URL to import a food into the catalog
• Anything else is answered as a diet question`

// userProfile returns the chat's profile, creating an empty one on first use.
func (b *Bot) userProfile(chatID int64) *profile.Profile {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[chatID]
	if !ok {
		p = &profile.Profile{}
		b.profiles[chatID] = p
	}
	return p
}

func (b *Bot) handleDoshaCommand(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/dosha"))
	if arg == "" {
		b.sendMarkdown(msg.Chat.ID, "Usage: `/dosha Pitta` (or Vata, Kapha, Vata-Pitta...)")
		return
	}

	b.mu.Lock()
	p, ok := b.profiles[msg.Chat.ID]
	if !ok {
		p = &profile.Profile{}
		b.profiles[msg.Chat.ID] = p
	}
	p.Dosha = arg
	b.mu.Unlock()

	b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("✅ Constitution set to *%s*.", arg))
}

func (b *Bot) handleGoalCommand(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/goal"))
	if arg == "" {
		b.sendMarkdown(msg.Chat.ID, "Usage: `/goal weight_loss` (or weight_gain, muscle_gain)")
		return
	}

	b.mu.Lock()
	p, ok := b.profiles[msg.Chat.ID]
	if !ok {
		p = &profile.Profile{}
		b.profiles[msg.Chat.ID] = p
	}
	p.Goals = append(p.Goals, arg)
	b.mu.Unlock()

	b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("✅ Goal *%s* added.", arg))
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.api.Send(markdownMessage(msg.Chat.ID, "✂️ *Importing food...* \n(Fetching page and extracting nutrition data)"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	food, err := b.app.ClipFood(ctx, msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error clipping food: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error importing food:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Food Saved!*\n\n*Name:* %s\n*Category:* %s\n*Calories:* %.0f kcal/100g",
			food.Name, food.Category, food.Per100g.Calories)
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.api.Send(markdownMessage(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Scoring the catalog and packing your meals)"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	planType, calories := parsePlanArgs(msg.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	userID := fmt.Sprintf("tg:%d", msg.From.ID)
	p := b.userProfile(msg.Chat.ID)

	plan, list, err := b.app.GeneratePlan(ctx, userID, *p, planType, calories)
	if err != nil {
		log.Printf("Error generating plan: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", safeErr))
		edit.ParseMode = "Markdown"
		b.api.Send(edit)
		return
	}

	planText, groceryText := formatPlanMarkdownParts(plan, list)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, planText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)

	b.sendMarkdown(msg.Chat.ID, groceryText)
}

// parsePlanArgs reads optional plan type and calorie override from a /plan
// command, e.g. "/plan daily 2200".
func parsePlanArgs(text string) (string, int) {
	planType := planner.PlanTypeDaily
	calories := 0

	for _, field := range strings.Fields(text)[1:] {
		if n, err := strconv.Atoi(field); err == nil && n > 0 {
			calories = n
			continue
		}
		planType = field
	}
	return planType, calories
}

func (b *Bot) handleAdviceRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.api.Send(markdownMessage(msg.Chat.ID, "💬 *Thinking...*"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	userID := fmt.Sprintf("tg:%d", msg.From.ID)
	p := b.userProfile(msg.Chat.ID)

	answer, err := b.app.Advise(ctx, userID, msg.Text, *p)
	if err != nil {
		log.Printf("Error generating advice: %v", err)
		answer = "❌ Sorry, I couldn't answer that right now."
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, answer)
	b.api.Send(edit)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.app.MetricsStore.DailyUsageSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth(b.app.DatabasePath())

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d calls)\n", d.Day, d.PromptTokens+d.CompletionTokens, d.Calls))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", health.DBSize))

	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	if _, err := b.api.Send(markdownMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func markdownMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return msg
}

func formatPlanMarkdownParts(plan *planner.Plan, list *shopping.GroceryList) (string, string) {
	var pb strings.Builder
	fmt.Fprintf(&pb, "🌿 *Diet Plan* — %s, %s season\n", plan.Dosha, plan.Season)
	fmt.Fprintf(&pb, "🎯 Target: %d kcal | Packed: %d kcal\n\n", plan.TargetCalories, plan.TotalCalories)

	for _, meal := range plan.Meals {
		fmt.Fprintf(&pb, "*%s* (%d kcal)\n", capitalize(string(meal.Type)), meal.TotalCalories)
		for _, item := range meal.Items {
			fmt.Fprintf(&pb, "• %s — %.0f g (%d kcal)\n", item.FoodName, item.Grams, item.Macros.Calories)
		}
		pb.WriteString("\n")
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Grocery List*\n\n")
	for _, item := range list.Items {
		fmt.Fprintf(&sb, "• %s\n", item)
	}

	return pb.String(), sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
