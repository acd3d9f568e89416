package analytics

import (
	"testing"
	"time"

	"interview-chat/internal/storage"
)

func TestAnalyzeDailyLogs(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []storage.Event{
		{Timestamp: day.Add(10 * time.Hour), UserID: "u1", ConversationID: "c1", UserMessage: "q1", TotalTokens: 10, PromptTokens: 7, CompletionTokens: 3},
		{Timestamp: day.Add(11 * time.Hour), UserID: "u1", ConversationID: "c1", UserMessage: "q2", TotalTokens: 20, PromptTokens: 15, CompletionTokens: 5},
		{Timestamp: day.Add(12 * time.Hour), UserID: "u1", ConversationID: "c2", UserMessage: "q3", TotalTokens: 5},
		{Timestamp: day.Add(13 * time.Hour), UserID: "u2", ConversationID: "c1", UserMessage: "q4"},
		// Outside the day
		{Timestamp: day.Add(25 * time.Hour), UserID: "u3", ConversationID: "c1", UserMessage: "next day"},
		{Timestamp: day.Add(-time.Hour), UserID: "u4", ConversationID: "c1", UserMessage: "prev day"},
		// System record without a user message is skipped
		{Timestamp: day.Add(14 * time.Hour), UserID: "u5", ConversationID: "c1"},
	}

	stats := AnalyzeDailyLogs(events, day.Add(15*time.Hour))

	if stats.Date != "2025-03-01" {
		t.Fatalf("unexpected date: %s", stats.Date)
	}
	if stats.TotalTurns != 4 {
		t.Fatalf("expected 4 turns, got %d", stats.TotalTurns)
	}
	if stats.UniqueUsers != 2 {
		t.Fatalf("expected 2 unique users, got %d", stats.UniqueUsers)
	}
	// u1/c1 and u2/c1 are distinct conversations.
	if stats.UniqueConversations != 3 {
		t.Fatalf("expected 3 unique conversations, got %d", stats.UniqueConversations)
	}
	if stats.TotalTokens != 35 || stats.PromptTokens != 22 || stats.CompletionTokens != 8 {
		t.Fatalf("token totals wrong: %+v", stats)
	}

	u1 := stats.UserStats["u1"]
	if u1.Turns != 3 || u1.Conversations != 2 || u1.TotalTokens != 35 {
		t.Fatalf("u1 stats wrong: %+v", u1)
	}
	u2 := stats.UserStats["u2"]
	if u2.Turns != 1 || u2.Conversations != 1 {
		t.Fatalf("u2 stats wrong: %+v", u2)
	}
}

func TestAnalyzeDailyLogsEmpty(t *testing.T) {
	stats := AnalyzeDailyLogs(nil, time.Now())
	if stats.TotalTurns != 0 || stats.UniqueUsers != 0 || len(stats.UserStats) != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}
