package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"pawhaven/internal/entities"
	"pawhaven/internal/repository"
)

const assistantPrompt = "You are a helpful assistant for a pet adoption marketplace. " +
	"Answer questions about pet care, adoption, and the services offered. Keep answers short."

// ChatService relays user messages to an OpenAI-compatible chat completions
// endpoint. Persistence of the exchange is fire-and-forget; the relay offers
// no ordering or delivery guarantees.
type ChatService struct {
	Repo   *repository.ChatRepository
	client *http.Client
}

func NewChatService(repo *repository.ChatRepository) *ChatService {
	return &ChatService{
		Repo:   repo,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

func (s *ChatService) Ask(userID int, message string) (string, error) {
	apiURL := os.Getenv("AI_API_URL")
	apiKey := os.Getenv("AI_API_KEY")
	model := os.Getenv("AI_MODEL")
	if apiURL == "" || apiKey == "" {
		return "", fmt.Errorf("AI provider not configured")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: assistantPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling AI provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading AI provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI provider returned status %d: %s", resp.StatusCode, body)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("error parsing AI provider response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI provider returned no choices")
	}
	reply := completion.Choices[0].Message.Content

	go func(uid int, question, answer string) {
		if err := s.Repo.SaveMessage(uid, "user", question); err != nil {
			log.Printf("WARNING (async): failed to persist chat question: %v", err)
		}
		if err := s.Repo.SaveMessage(uid, "assistant", answer); err != nil {
			log.Printf("WARNING (async): failed to persist chat answer: %v", err)
		}
	}(userID, message, reply)

	return reply, nil
}

func (s *ChatService) History(userID, limit int) ([]entities.ChatMessageResponse, error) {
	return s.Repo.ListRecentMessages(userID, limit)
}
