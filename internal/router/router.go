package router

import (
	"io"
	"net/http"
	"os"

	"github.com/nhz04/BANKING/internal/config"
	"github.com/nhz04/BANKING/internal/handler"
	"github.com/nhz04/BANKING/internal/ledger"
	"github.com/nhz04/BANKING/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the /api/v1 routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// mirror the request log to the configured log file
	if cfg.Log.File != "" {
		if f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			gin.DefaultWriter = io.MultiWriter(os.Stdout, f)
		}
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	service := ledger.NewService(db)
	query := ledger.NewQuery(service.Accounts(), service.Log())
	agg := ledger.NewAggregator(service.Accounts(), service.Log())

	accountHandler := handler.NewAccountHandler(service, query, cfg.App.PageSize)
	statsHandler := handler.NewStatsHandler(agg)
	exportHandler := handler.NewExportHandler(query)
	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	auditHandler := handler.NewAuditHandler(db, cfg.App.PageSize)

	api := r.Group("/api/v1")
	api.Use(middleware.AuditMiddleware(db))
	{
		api.GET("/accounts", accountHandler.ListAccounts)
		api.POST("/accounts", accountHandler.CreateAccount)
		api.GET("/accounts/:accountNo", accountHandler.GetAccount)
		api.DELETE("/accounts/:accountNo", accountHandler.DeleteAccount)
		api.POST("/accounts/:accountNo/deposit", accountHandler.Deposit)
		api.POST("/accounts/:accountNo/withdraw", accountHandler.Withdraw)
		api.GET("/accounts/:accountNo/transactions", accountHandler.GetTransactions)
		api.GET("/accounts/:accountNo/transactions/export", exportHandler.ExportTransactions)

		api.GET("/stats", statsHandler.GetStats)

		api.POST("/backups", backupHandler.CreateBackup)
		api.GET("/backups", backupHandler.ListBackups)
		api.GET("/backups/:id/download", backupHandler.DownloadBackup)

		api.GET("/audit", auditHandler.ListAudit)
	}

	return r
}
