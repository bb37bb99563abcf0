package service

import (
	"database/sql"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/models"

	"github.com/google/uuid"
)

// MessageService is the authoritative store for chat messages. Both the
// realtime path and the HTTP history endpoints write through it, so history
// reads reflect exactly what was broadcast.
type MessageService struct {
	db *sql.DB
}

func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

// Append persists a message for a group and returns the stored record.
func (s *MessageService) Append(groupID string, senderID uuid.UUID, content string) (*models.Message, error) {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:        uuid.New(),
		GroupID:   gid,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	_, err = s.db.Exec(`
		INSERT INTO messages (id, group_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, msg.ID, msg.GroupID, msg.SenderID, msg.Content, msg.CreatedAt)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// ListByGroup returns a group's messages in ascending creation order with
// sender names populated.
func (s *MessageService) ListByGroup(groupID string) ([]models.MessageResponse, error) {
	rows, err := s.db.Query(`
		SELECT m.id, m.group_id, m.sender_id, m.content, m.created_at, u.name
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.group_id = $1
		ORDER BY m.created_at ASC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.MessageResponse{}
	for rows.Next() {
		var msg models.MessageResponse
		if err := rows.Scan(&msg.ID, &msg.GroupID, &msg.SenderID, &msg.Content, &msg.CreatedAt, &msg.SenderName); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
