package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler writes point-in-time snapshots of the whole ledger to the
// backup directory and serves them back.
type BackupHandler struct {
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:        db,
		BackupDir: backupDir,
	}
}

// backupData is the content written to a backup file. Transactions include
// those of deleted accounts, since history is retained for audit.
type backupData struct {
	Created      time.Time            `json:"created"`
	Accounts     []models.Account     `json:"accounts"`
	Transactions []models.Transaction `json:"transactions"`
}

// CreateBackup dumps all accounts and the full transaction log to a file.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	var accounts []models.Account
	if err := h.DB.Order("id ASC").Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "query accounts failed")
		return
	}
	var transactions []models.Transaction
	if err := h.DB.Order("id ASC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "query transactions failed")
		return
	}

	data := backupData{
		Created:      time.Now(),
		Accounts:     accounts,
		Transactions: transactions,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "serialize backup failed")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, "create backup dir failed")
		return
	}

	fileName := fmt.Sprintf("ledger-%s-%s.json", time.Now().Format("20060102"), uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, "write backup file failed")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, "save backup record failed")
		return
	}

	util.Created(c, util.Response{"backup": backup})
}

// ListBackups returns all recorded backups, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var backups []models.Backup
	if err := h.DB.Order("id DESC").Find(&backups).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "query backups failed")
		return
	}
	util.Success(c, util.Response{"backups": backups})
}

// DownloadBackup streams one backup file by id.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "invalid backup id")
		return
	}

	var backup models.Backup
	if err := h.DB.First(&backup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "query backup failed")
		}
		return
	}

	if _, err := os.Stat(backup.FilePath); err != nil {
		util.Error(c, http.StatusNotFound, "backup file missing")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName))
	c.File(backup.FilePath)
}
