package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/excel"
	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

const helpText = `Speedcube learning companion.

/methods - list solving methods
/algorithms <method> - list algorithms of a method
/learn <algorithm id> - add an algorithm to your learning set
/due - show what's due today
/review - review due algorithms (pass/fail)
/quiz - multiple-choice drill over due algorithms
/stats - your mastery summary
/recommend - what to practice next
/badges - milestones you've earned
/history - your recent reviews
/notify <hour|off> - daily reminder hour (0-23) or off`

// handleMessage registers the sender and dispatches commands
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	user := &models.User{
		ID:        message.From.ID,
		Username:  message.From.UserName,
		FirstName: message.From.FirstName,
		LastName:  message.From.LastName,
		IsAdmin:   b.adminUserIDs[message.From.ID],
	}
	if err := b.userRepo.CreateOrUpdate(user); err != nil {
		log.Printf("Error registering user %d: %v", user.ID, err)
	}

	if !message.IsCommand() {
		return
	}

	switch message.Command() {
	case "start", "help":
		b.send(message.Chat.ID, helpText)
	case "methods":
		b.handleMethods(message)
	case "algorithms":
		b.handleAlgorithms(message)
	case "learn":
		b.handleLearn(message)
	case "due":
		b.handleDue(message)
	case "review":
		b.handleReview(message)
	case "quiz":
		b.handleQuiz(message)
	case "stats":
		b.handleStats(message)
	case "recommend":
		b.handleRecommend(message)
	case "badges":
		b.handleBadges(message)
	case "history":
		b.handleHistory(message)
	case "notify":
		b.handleNotify(message)
	case "import":
		b.handleImport(message)
	default:
		b.send(message.Chat.ID, "Unknown command. Send /help for the list.")
	}
}

func (b *Bot) handleMethods(message *tgbotapi.Message) {
	methods, err := b.methodRepo.GetAll()
	if err != nil {
		log.Printf("Error listing methods: %v", err)
		b.send(message.Chat.ID, "Could not load methods, try again later.")
		return
	}
	if len(methods) == 0 {
		b.send(message.Chat.ID, "No methods in the catalog yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Solving methods:\n")
	for _, m := range methods {
		fmt.Fprintf(&sb, "• %s — %s\n", m.Name, m.Description)
	}
	b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleAlgorithms(message *tgbotapi.Message) {
	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		b.send(message.Chat.ID, "Usage: /algorithms <method name>")
		return
	}

	method, err := b.methodRepo.GetByName(name)
	if errors.Is(err, learning.ErrNotFound) {
		b.send(message.Chat.ID, fmt.Sprintf("Unknown method %q. Send /methods for the list.", name))
		return
	}
	if err != nil {
		log.Printf("Error looking up method %q: %v", name, err)
		b.send(message.Chat.ID, "Could not load the method, try again later.")
		return
	}

	algorithms, err := b.algorithmRepo.GetByMethod(method.ID)
	if err != nil {
		log.Printf("Error listing algorithms for method %d: %v", method.ID, err)
		b.send(message.Chat.ID, "Could not load algorithms, try again later.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s algorithms:\n", method.Name)
	for _, a := range algorithms {
		fmt.Fprintf(&sb, "#%d %s (difficulty %d)\n  %s\n", a.ID, a.Name, a.Difficulty, a.Notation)
	}
	sb.WriteString("\nSend /learn <id> to start learning one.")
	b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleLearn(message *tgbotapi.Message) {
	arg := strings.TrimSpace(message.CommandArguments())
	algorithmID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		b.send(message.Chat.ID, "Usage: /learn <algorithm id>")
		return
	}

	alg, err := b.algorithmRepo.GetAlgorithm(algorithmID)
	if errors.Is(err, learning.ErrNotFound) {
		b.send(message.Chat.ID, "No such algorithm in the catalog.")
		return
	}
	if err != nil {
		log.Printf("Error looking up algorithm %d: %v", algorithmID, err)
		b.send(message.Chat.ID, "Could not load the algorithm, try again later.")
		return
	}

	_, err = b.service.Enroll(message.From.ID, algorithmID)
	if errors.Is(err, learning.ErrAlreadyEnrolled) {
		b.send(message.Chat.ID, fmt.Sprintf("%s is already in your learning set.", alg.Name))
		return
	}
	if err != nil {
		log.Printf("Error enrolling user %d in algorithm %d: %v", message.From.ID, algorithmID, err)
		b.send(message.Chat.ID, "Could not enroll, try again later.")
		return
	}

	b.send(message.Chat.ID, fmt.Sprintf("Added %s to your learning set. It is due for review now — send /review.", alg.Name))
}

func (b *Bot) handleDue(message *tgbotapi.Message) {
	due, err := b.service.DueToday(message.From.ID)
	if err != nil {
		log.Printf("Error getting due list for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load your due list, try again later.")
		return
	}
	if len(due) == 0 {
		b.send(message.Chat.ID, "✅ Nothing due today. Come back tomorrow!")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔥 %d algorithm(s) due today:\n", len(due))
	for _, r := range due {
		name := fmt.Sprintf("algorithm #%d", r.AlgorithmID)
		if alg, err := b.algorithmRepo.GetAlgorithm(r.AlgorithmID); err == nil {
			name = alg.Name
		}
		fmt.Fprintf(&sb, "• %s (level %d)\n", name, r.CurrentLevel)
	}
	sb.WriteString("\nSend /review to start.")
	b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleReview(message *tgbotapi.Message) {
	due, err := b.service.DueToday(message.From.ID)
	if err != nil {
		log.Printf("Error getting due list for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load your due list, try again later.")
		return
	}
	if len(due) == 0 {
		b.send(message.Chat.ID, "✅ Nothing due today. Come back tomorrow!")
		return
	}
	if len(due) > b.config.ReviewBatchSize {
		due = due[:b.config.ReviewBatchSize]
	}

	b.reviewSessions[message.From.ID] = &reviewSession{
		Queue:     due,
		StartedAt: time.Now(),
	}
	b.sendReviewPrompt(message.Chat.ID, message.From.ID)
}

// sendReviewPrompt shows the current item of the user's session, or wraps up
// when the queue is done
func (b *Bot) sendReviewPrompt(chatID, userID int64) {
	session, ok := b.reviewSessions[userID]
	if !ok {
		return
	}
	if session.CurrentIdx >= len(session.Queue) {
		delete(b.reviewSessions, userID)
		stats, err := b.service.Stats(userID)
		if err != nil {
			b.send(chatID, "Session done! 🎉")
			return
		}
		b.send(chatID, fmt.Sprintf("Session done! 🎉 Mastered %d of %d (%d%%).",
			stats.Mastered, stats.Total, stats.MasteryPercentage))
		return
	}

	record := session.Queue[session.CurrentIdx]
	name := fmt.Sprintf("algorithm #%d", record.AlgorithmID)
	if alg, err := b.algorithmRepo.GetAlgorithm(record.AlgorithmID); err == nil {
		name = alg.Name
	}

	text := fmt.Sprintf("[%d/%d] Execute %s from memory.",
		session.CurrentIdx+1, len(session.Queue), name)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👀 Show notation", fmt.Sprintf("reveal:%d", record.AlgorithmID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Got it", fmt.Sprintf("pass:%d", record.AlgorithmID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Failed", fmt.Sprintf("fail:%d", record.AlgorithmID)),
		),
	)
	b.sendWithKeyboard(chatID, text, keyboard)
}

func (b *Bot) handleQuiz(message *tgbotapi.Message) {
	due, err := b.service.DueToday(message.From.ID)
	if err != nil {
		log.Printf("Error getting due list for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load your due list, try again later.")
		return
	}
	if len(due) == 0 {
		b.send(message.Chat.ID, "✅ Nothing due today. Come back tomorrow!")
		return
	}
	if len(due) > b.config.ReviewBatchSize {
		due = due[:b.config.ReviewBatchSize]
	}

	drills, err := b.drills.BuildDrills(due, b.config.DrillOptionCount)
	if err != nil {
		log.Printf("Error building drills for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not build the quiz, try again later.")
		return
	}

	for _, d := range drills {
		var rows [][]tgbotapi.InlineKeyboardButton
		for i, opt := range d.Options {
			label := opt
			if len(label) > 40 {
				label = label[:37] + "..."
			}
			data := fmt.Sprintf("answer:%d:%d:%d", d.Algorithm.ID, i, d.CorrectIndex)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, data)))
		}
		text := fmt.Sprintf("Which notation is %s?", d.Algorithm.Name)
		b.sendWithKeyboard(message.Chat.ID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
	}
}

func (b *Bot) handleStats(message *tgbotapi.Message) {
	stats, err := b.service.Stats(message.From.ID)
	if err != nil {
		log.Printf("Error getting stats for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load your stats, try again later.")
		return
	}

	text := fmt.Sprintf(
		"📊 Your progress:\nTotal: %d\nMastered: %d\nLearning: %d\nTo learn: %d\nMastery: %d%%",
		stats.Total, stats.Mastered, stats.Learning, stats.ToLearn, stats.MasteryPercentage)
	b.send(message.Chat.ID, text)
}

func (b *Bot) handleRecommend(message *tgbotapi.Message) {
	recs, err := b.service.Recommendations(message.From.ID)
	if err != nil {
		log.Printf("Error getting recommendations for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load recommendations, try again later.")
		return
	}
	if len(recs) == 0 {
		b.send(message.Chat.ID, "Nothing to recommend right now — you're all caught up.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🎯 Practice suggestions:\n")
	total := 0
	for _, r := range recs {
		name := r.AlgorithmName
		if name == "" {
			name = fmt.Sprintf("algorithm #%d", r.AlgorithmID)
		}
		fmt.Fprintf(&sb, "• %s — due for review (~%d min)\n", name, r.EstimatedTime)
		total += r.EstimatedTime
	}
	fmt.Fprintf(&sb, "\nEstimated total: %d min.", total)
	b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleBadges(message *tgbotapi.Message) {
	badges, err := b.badgeRepo.GetEarnedBadges(message.From.ID)
	if err != nil {
		log.Printf("Error getting badges for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load your badges, try again later.")
		return
	}
	if len(badges) == 0 {
		b.send(message.Chat.ID, "No badges yet. Review algorithms to earn them!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏅 Your badges:\n")
	for _, badge := range badges {
		fmt.Fprintf(&sb, "• %s — %s\n", badge.Name, badge.Description)
	}
	b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleHistory(message *tgbotapi.Message) {
	logs, err := b.logRepo.GetByUser(message.From.ID, 10)
	if err != nil {
		log.Printf("Error getting history for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not load your history, try again later.")
		return
	}
	if len(logs) == 0 {
		b.send(message.Chat.ID, "No reviews yet. Send /review to get started.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Recent reviews:\n")
	for _, entry := range logs {
		name := fmt.Sprintf("algorithm #%d", entry.AlgorithmID)
		if alg, err := b.algorithmRepo.GetAlgorithm(entry.AlgorithmID); err == nil {
			name = alg.Name
		}
		outcome := "✅"
		if !entry.Success {
			outcome = "❌"
		}
		fmt.Fprintf(&sb, "%s %s %s (level %d → %d)\n",
			entry.ReviewedAt.Format("2006-01-02"), outcome, name,
			entry.LevelBefore, entry.LevelAfter)
	}
	b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleNotify(message *tgbotapi.Message) {
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "off" {
		if err := b.userRepo.UpdateNotificationSettings(message.From.ID, false, 0); err != nil {
			log.Printf("Error disabling notifications for user %d: %v", message.From.ID, err)
			b.send(message.Chat.ID, "Could not update your settings, try again later.")
			return
		}
		b.send(message.Chat.ID, "Daily reminders disabled.")
		return
	}

	hour, err := strconv.Atoi(arg)
	if err != nil || hour < 0 || hour > 23 {
		b.send(message.Chat.ID, "Usage: /notify <hour 0-23> or /notify off")
		return
	}

	if err := b.userRepo.UpdateNotificationSettings(message.From.ID, true, hour); err != nil {
		log.Printf("Error updating notifications for user %d: %v", message.From.ID, err)
		b.send(message.Chat.ID, "Could not update your settings, try again later.")
		return
	}
	b.send(message.Chat.ID, fmt.Sprintf("Daily reminder set for %02d:00 UTC.", hour))
}

func (b *Bot) handleImport(message *tgbotapi.Message) {
	if !b.adminUserIDs[message.From.ID] {
		b.send(message.Chat.ID, "This command is for admins only.")
		return
	}

	path := strings.TrimSpace(message.CommandArguments())
	if path == "" {
		b.send(message.Chat.ID, "Usage: /import <path to xlsx or csv on the server>")
		return
	}

	config := excel.DefaultImportConfig()
	config.FilePath = path
	result, err := excel.ImportAlgorithms(config)
	if err != nil {
		log.Printf("Error importing algorithms from %s: %v", path, err)
		b.send(message.Chat.ID, fmt.Sprintf("Import failed: %v", err))
		return
	}

	text := fmt.Sprintf("Import finished: %d processed, %d created, %d updated, %d skipped, %d methods created.",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped, result.MethodsCreated)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n%d row(s) had errors, first: %s", len(result.Errors), result.Errors[0])
	}
	b.send(message.Chat.ID, text)
}

// handleCallback grades review answers and reveals notations
func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// Acknowledge so the client stops showing a spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Error acknowledging callback: %v", err)
	}

	parts := strings.Split(query.Data, ":")
	if len(parts) < 2 {
		return
	}
	algorithmID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID

	switch parts[0] {
	case "reveal":
		alg, err := b.algorithmRepo.GetAlgorithm(algorithmID)
		if err != nil {
			b.send(chatID, "Could not load the notation.")
			return
		}
		b.send(chatID, fmt.Sprintf("%s:\n%s", alg.Name, alg.Notation))

	case "pass", "fail":
		b.gradeAndAdvance(chatID, userID, algorithmID, parts[0] == "pass")

	case "answer":
		if len(parts) != 4 {
			return
		}
		chosen, err1 := strconv.Atoi(parts[2])
		correct, err2 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil {
			return
		}
		success := chosen == correct
		if success {
			b.send(chatID, "✅ Correct!")
		} else if alg, err := b.algorithmRepo.GetAlgorithm(algorithmID); err == nil {
			b.send(chatID, fmt.Sprintf("❌ Not quite. %s is:\n%s", alg.Name, alg.Notation))
		} else {
			b.send(chatID, "❌ Not quite.")
		}
		record, err := b.service.GradeReview(userID, algorithmID, success)
		if err != nil {
			log.Printf("Error grading quiz answer for user %d: %v", userID, err)
		}
		if record != nil {
			b.awardMilestones(chatID, userID, record)
		}
	}
}

// awardMilestones grants any badges the graded record just unlocked and
// announces new ones. Award is idempotent so re-checking is harmless.
func (b *Bot) awardMilestones(chatID, userID int64, record *models.LearningRecord) {
	var earned []string
	if record.ReviewCount == 1 {
		earned = append(earned, models.BadgeFirstReview)
	}
	if record.Status == models.StatusMastered {
		earned = append(earned, models.BadgeFirstMastery)
	}
	if record.StreakDays >= 7 {
		earned = append(earned, models.BadgeWeekStreak)
	}

	for _, name := range earned {
		badge, err := b.badgeRepo.GetByName(name)
		if err != nil {
			log.Printf("Error looking up badge %q: %v", name, err)
			continue
		}
		already, err := b.badgeRepo.GetEarnedBadges(userID)
		if err == nil && hasBadge(already, badge.ID) {
			continue
		}
		if err := b.badgeRepo.Award(userID, badge.ID); err != nil {
			log.Printf("Error awarding badge %q to user %d: %v", name, userID, err)
			continue
		}
		b.send(chatID, fmt.Sprintf("🏅 Badge earned: %s — %s", badge.Name, badge.Description))
	}
}

func hasBadge(badges []models.Badge, id int64) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// gradeAndAdvance records a pass/fail outcome and moves the session forward
func (b *Bot) gradeAndAdvance(chatID, userID, algorithmID int64, success bool) {
	record, err := b.service.GradeReview(userID, algorithmID, success)
	if errors.Is(err, learning.ErrNotFound) {
		b.send(chatID, "That algorithm is not in your learning set anymore.")
		return
	}
	if err != nil && record == nil {
		log.Printf("Error grading review for user %d: %v", userID, err)
		b.send(chatID, "Could not record your answer, try again.")
		return
	}

	if record.Status == models.StatusMastered {
		b.send(chatID, "🏆 Mastered! This algorithm leaves the review cycle.")
	} else {
		b.send(chatID, fmt.Sprintf("Recorded. Level %d, next review %s.",
			record.CurrentLevel, record.NextReviewDate.Format("2006-01-02")))
	}
	b.awardMilestones(chatID, userID, record)

	if session, ok := b.reviewSessions[userID]; ok {
		if time.Since(session.StartedAt) > b.config.SessionTimeout {
			delete(b.reviewSessions, userID)
			return
		}
		session.CurrentIdx++
		b.sendReviewPrompt(chatID, userID)
	}
}
