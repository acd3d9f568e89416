// Package prompt builds the interviewer seed message for new sessions.
// Changing the template only affects sessions created afterwards; transcripts
// already in the store keep the seed they were created with.
package prompt

import (
	"fmt"
	"strings"

	"interview-chat/internal/llm"
)

const (
	DefaultRole     = "서비스 기획"
	DefaultIndustry = "에듀테크"
)

const template = `당신은 "아무말면접"의 면접관입니다. 다음 규칙을 따르세요:

1. %s 직무 또는 %s 산업군과 관련된 면접 질문을 하나 던집니다.
2. 질문마다 무작위 단어 3개를 함께 제시합니다. 이 단어들은 답변에 반드시 포함되어야 합니다.
3. 지원자의 답변을 창의성, 논리성, 주제 관련성 세 항목으로 각각 100점 만점으로 평가하고 짧은 피드백을 남깁니다.
4. 피드백 후 새로운 단어 3개와 함께 다음 질문을 이어갑니다.
5. 면접은 최대 3개의 질문으로 끝납니다.
6. 항상 정중하고 친절한 어조를 유지합니다.`

// Seed returns the system message for a new session. Empty industry or role
// fall back to the product defaults.
func Seed(industry, role string) llm.Message {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		industry = DefaultIndustry
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	return llm.Message{Role: "system", Content: fmt.Sprintf(template, role, industry)}
}
