package service

import (
	"database/sql"

	"github.com/khushi-1907/virtual-study-group/internal/models"

	"github.com/google/uuid"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(id uuid.UUID) (*models.UserResponse, error) {
	var user models.UserResponse
	err := s.db.QueryRow(`
		SELECT id, name, email, role, created_at FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
