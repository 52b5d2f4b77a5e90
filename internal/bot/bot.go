package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/database"
	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/internal/quiz"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// reviewSession tracks a user's ongoing review run
type reviewSession struct {
	Queue      []models.LearningRecord
	CurrentIdx int
	StartedAt  time.Time
}

// Bot is the Telegram companion for the learning scheduler
type Bot struct {
	api            *tgbotapi.BotAPI
	service        *learning.Service
	userRepo       *database.UserRepository
	algorithmRepo  *database.AlgorithmRepository
	methodRepo     *database.MethodRepository
	badgeRepo      *database.BadgeRepository
	logRepo        *database.ReviewLogRepository
	drills         *quiz.Builder
	config         *BotConfig
	adminUserIDs   map[int64]bool
	reviewSessions map[int64]*reviewSession
}

// New creates a new bot instance from the environment
func New(service *learning.Service) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	b := &Bot{
		api:            api,
		service:        service,
		userRepo:       database.NewUserRepository(),
		algorithmRepo:  database.NewAlgorithmRepository(),
		methodRepo:     database.NewMethodRepository(),
		badgeRepo:      database.NewBadgeRepository(),
		logRepo:        database.NewReviewLogRepository(),
		drills:         quiz.NewBuilder(),
		config:         DefaultConfig(),
		adminUserIDs:   make(map[int64]bool),
		reviewSessions: make(map[int64]*reviewSession),
	}

	if adminIDs := os.Getenv("ADMIN_USER_IDS"); adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			b.adminUserIDs[id] = true
		}
	}

	return b, nil
}

// Start begins polling Telegram for updates until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
			} else if update.Message != nil {
				b.handleMessage(update.Message)
			}
		}
	}
}

// Stop shuts down the update polling
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

// SendDueReminder implements scheduler.Notifier: it pings a user about
// pending reviews
func (b *Bot) SendDueReminder(userID int64, count int) error {
	text := fmt.Sprintf("⏰ You have %d algorithm(s) due for review. Send /review to start.", count)
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	return err
}

// send delivers a plain text message, logging delivery failures
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to %d: %v", chatID, err)
	}
}

// sendWithKeyboard delivers a message with an inline keyboard
func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to %d: %v", chatID, err)
	}
}
