package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type GroupHandler struct {
	db *sql.DB
}

func NewGroupHandler(db *sql.DB) *GroupHandler {
	return &GroupHandler{db: db}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.GroupCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groupID := uuid.New()
	now := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}
	defer tx.Rollback()

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	_, err = tx.Exec(`
		INSERT INTO groups (id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, groupID, req.Name, description, userID.(uuid.UUID), now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	// The creator joins their own group immediately.
	_, err = tx.Exec(`
		INSERT INTO group_members (id, group_id, user_id, joined_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), groupID, userID.(uuid.UUID), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, models.GroupResponse{
		ID:          groupID,
		Name:        req.Name,
		Description: description,
		CreatedBy:   userID.(uuid.UUID),
		MemberCount: 1,
		MemberIDs:   []string{userID.(uuid.UUID).String()},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	rows, err := h.db.Query(`
		SELECT g.id, g.name, g.description, g.created_by, u.name,
		       g.created_at, g.updated_at,
		       COALESCE(array_agg(gm.user_id) FILTER (WHERE gm.user_id IS NOT NULL), '{}')
		FROM groups g
		JOIN users u ON u.id = g.created_by
		LEFT JOIN group_members gm ON gm.group_id = g.id
		GROUP BY g.id, u.name
		ORDER BY g.created_at DESC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	defer rows.Close()

	groups := make([]models.GroupResponse, 0)
	for rows.Next() {
		var g models.GroupResponse
		var memberIDs pq.StringArray
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatorName,
			&g.CreatedAt, &g.UpdatedAt, &memberIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan group"})
			return
		}
		g.MemberIDs = memberIDs
		g.MemberCount = len(memberIDs)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	var groupExists bool
	err = h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)", groupID).Scan(&groupExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !groupExists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	// Joining twice is a no-op, not an error.
	_, err = h.db.Exec(`
		INSERT INTO group_members (id, group_id, user_id, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, uuid.New(), groupID, userID.(uuid.UUID), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	var g models.GroupResponse
	var memberIDs pq.StringArray
	err = h.db.QueryRow(`
		SELECT g.id, g.name, g.description, g.created_by, u.name,
		       g.created_at, g.updated_at,
		       COALESCE(array_agg(gm.user_id) FILTER (WHERE gm.user_id IS NOT NULL), '{}')
		FROM groups g
		JOIN users u ON u.id = g.created_by
		LEFT JOIN group_members gm ON gm.group_id = g.id
		WHERE g.id = $1
		GROUP BY g.id, u.name
	`, groupID).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatorName,
		&g.CreatedAt, &g.UpdatedAt, &memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	g.MemberIDs = memberIDs
	g.MemberCount = len(memberIDs)

	c.JSON(http.StatusOK, g)
}
