package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/config"
	"github.com/khushi-1907/virtual-study-group/internal/models"
	"github.com/khushi-1907/virtual-study-group/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileHandler struct {
	db     *sql.DB
	groups *service.GroupService
}

func NewFileHandler(db *sql.DB, groups *service.GroupService) *FileHandler {
	return &FileHandler{db: db, groups: groups}
}

// forbiddenFilename rejects names that would escape the upload directory
// or shadow repository control files.
func forbiddenFilename(name string) bool {
	if name == "" {
		return true
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	lower := strings.ToLower(name)
	switch lower {
	case ".gitignore", ".env", "node_modules":
		return true
	}
	return strings.Contains(lower, "node_modules")
}

func (h *FileHandler) UploadFile(c *gin.Context) {
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

	member, err := h.groups.IsMember(groupID.String(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this group"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	name := filepath.Base(fileHeader.Filename)
	if forbiddenFilename(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}

	cfg := config.GetConfig()
	maxSize := int64(cfg.Upload.MaxSizeMB) << 20
	if fileHeader.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
	dst := filepath.Join(cfg.Upload.Dir, storedName)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	fileURL := cfg.Upload.PublicPath + "/" + storedName

	fileID := uuid.New()
	uploadedAt := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO files (id, group_id, uploaded_by, file_name, file_url, file_size, file_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, fileID, groupID, userID.(uuid.UUID), name, fileURL, fileHeader.Size, fileType, uploadedAt)
	if err != nil {
		os.Remove(dst)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file metadata"})
		return
	}

	c.JSON(http.StatusCreated, models.FileResponse{
		ID:         fileID,
		GroupID:    groupID,
		UploadedBy: userID.(uuid.UUID),
		FileName:   name,
		FileURL:    fileURL,
		FileSize:   fileHeader.Size,
		FileType:   fileType,
		UploadedAt: uploadedAt,
	})
}

func (h *FileHandler) ListGroupFiles(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	rows, err := h.db.Query(`
		SELECT f.id, f.group_id, f.uploaded_by, u.name,
		       f.file_name, f.file_url, f.file_size, f.file_type, f.uploaded_at
		FROM files f
		JOIN users u ON u.id = f.uploaded_by
		WHERE f.group_id = $1
		ORDER BY f.uploaded_at DESC
	`, groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}
	defer rows.Close()

	files := make([]models.FileResponse, 0)
	for rows.Next() {
		var f models.FileResponse
		if err := rows.Scan(&f.ID, &f.GroupID, &f.UploadedBy, &f.UploaderName,
			&f.FileName, &f.FileURL, &f.FileSize, &f.FileType, &f.UploadedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan file"})
			return
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}
