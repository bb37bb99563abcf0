package service

import (
	"database/sql"

	"github.com/google/uuid"
)

// GroupService answers membership questions for the realtime layer.
type GroupService struct {
	db *sql.DB
}

func NewGroupService(db *sql.DB) *GroupService {
	return &GroupService{db: db}
}

// IsMember reports whether the user belongs to the group.
func (s *GroupService) IsMember(groupID string, userID uuid.UUID) (bool, error) {
	var isMember bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)
	`, groupID, userID).Scan(&isMember)
	if err != nil {
		return false, err
	}
	return isMember, nil
}

// Exists reports whether the group id resolves to a group.
func (s *GroupService) Exists(groupID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)
	`, groupID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
