package analytics

import (
	"time"

	"interview-chat/internal/storage"
)

// DailyStats содержит статистику за день
type DailyStats struct {
	Date                string               `json:"date"`
	TotalTurns          int                  `json:"total_turns"`
	UniqueUsers         int                  `json:"unique_users"`
	UniqueConversations int                  `json:"unique_conversations"`
	PromptTokens        int                  `json:"prompt_tokens"`
	CompletionTokens    int                  `json:"completion_tokens"`
	TotalTokens         int                  `json:"total_tokens"`
	UserStats           map[string]UserStats `json:"user_stats"`
}

// UserStats содержит статистику по пользователю
type UserStats struct {
	UserID        string `json:"user_id"`
	Turns         int    `json:"turns"`
	Conversations int    `json:"conversations"`
	TotalTokens   int    `json:"total_tokens"`
}

// AnalyzeDailyLogs анализирует записанные ходы за указанную дату
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	// Нормализуем дату до начала дня
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		UserStats: make(map[string]UserStats),
	}

	uniqueUsers := make(map[string]bool)
	uniqueConversations := make(map[string]bool)
	userConversations := make(map[string]map[string]bool)

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		if event.UserMessage == "" {
			continue
		}

		stats.TotalTurns++
		stats.PromptTokens += event.PromptTokens
		stats.CompletionTokens += event.CompletionTokens
		stats.TotalTokens += event.TotalTokens

		uniqueUsers[event.UserID] = true
		convKey := event.UserID + "/" + event.ConversationID
		uniqueConversations[convKey] = true

		userStat, exists := stats.UserStats[event.UserID]
		if !exists {
			userStat = UserStats{UserID: event.UserID}
			userConversations[event.UserID] = make(map[string]bool)
		}
		userStat.Turns++
		userStat.TotalTokens += event.TotalTokens
		userConversations[event.UserID][event.ConversationID] = true
		userStat.Conversations = len(userConversations[event.UserID])
		stats.UserStats[event.UserID] = userStat
	}

	stats.UniqueUsers = len(uniqueUsers)
	stats.UniqueConversations = len(uniqueConversations)
	return stats
}
