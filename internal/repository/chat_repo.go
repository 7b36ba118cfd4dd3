package repository

import (
	"database/sql"
	"fmt"

	"pawhaven/internal/entities"
)

type ChatRepository struct {
	DB *sql.DB
}

func NewChatRepository(database *sql.DB) *ChatRepository {
	return &ChatRepository{DB: database}
}

func (r *ChatRepository) SaveMessage(userID int, role, content string) error {
	_, err := r.DB.Exec(
		`INSERT INTO chat_messages (user_id, role, content, created_at) VALUES ($1, $2, $3, NOW())`,
		userID, role, content)
	return err
}

func (r *ChatRepository) ListRecentMessages(userID, limit int) ([]entities.ChatMessageResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(`
		SELECT role, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []entities.ChatMessageResponse
	for rows.Next() {
		var m entities.ChatMessageResponse
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating chat rows: %w", err)
	}
	// reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
