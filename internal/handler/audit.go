package handler

import (
	"net/http"
	"strconv"

	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists recorded mutating API calls.
type AuditHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewAuditHandler(db *gorm.DB, pageSize int) *AuditHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &AuditHandler{DB: db, PageSize: pageSize}
}

// ListAudit returns audit entries, newest first, paged.
func (h *AuditHandler) ListAudit(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}

	var total int64
	if err := h.DB.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "query audit logs failed")
		return
	}

	var logs []models.AuditLog
	if err := h.DB.Order("id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "query audit logs failed")
		return
	}

	util.Success(c, util.Response{
		"logs":  logs,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
