package handler

import (
	"github.com/nhz04/BANKING/internal/ledger"
	"github.com/nhz04/BANKING/internal/util"

	"github.com/gin-gonic/gin"
)

// StatsHandler exposes the fleet-wide aggregation.
type StatsHandler struct {
	Agg *ledger.Aggregator
}

func NewStatsHandler(agg *ledger.Aggregator) *StatsHandler {
	return &StatsHandler{Agg: agg}
}

// GetStats returns a best-effort snapshot of totals across all accounts.
// skipped_accounts reports how many histories were unreadable, so a partial
// result is visible to the caller instead of silently wrong.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.Agg.Snapshot(c.Request.Context())
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"stats": stats})
}
