package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/service/commands"
)

// ReportLister reads back stored day reports.
type ReportLister interface {
	RecentDayReports(ctx context.Context, limit int) ([]models.DayReport, error)
}

// GameHandler exposes the game over JSON.
type GameHandler struct {
	dispatcher commands.Dispatcher
	reports    ReportLister
	logger     *zap.Logger
}

// NewGameHandler constructs the handler. reports may be nil when no report
// store is configured.
func NewGameHandler(dispatcher commands.Dispatcher, reports ReportLister, logger *zap.Logger) *GameHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameHandler{dispatcher: dispatcher, reports: reports, logger: logger}
}

// Status returns the farm snapshot.
func (h *GameHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Status())
}

// Command runs one text command, as typed in the console or in WhatsApp.
func (h *GameHandler) Command(c *gin.Context) {
	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_payload", Message: "body must be {\"text\": \"<command>\"}"})
		return
	}

	reply, err := h.dispatcher.HandleCommand(c.Request.Context(), models.ParseCommand(req.Text), "api:"+c.ClientIP())
	if err != nil {
		f := commands.FailureText(err)
		if f.Status >= http.StatusInternalServerError {
			h.logger.Error("command failed", zap.String("text", req.Text), zap.Error(err))
		}
		c.JSON(f.Status, models.ErrorResponse{Error: f.Code, Message: f.Message})
		return
	}

	st := h.dispatcher.Status()
	c.JSON(http.StatusOK, models.CommandReply{Reply: reply, Day: st.Day, ActionsLeft: st.ActionsLeft})
}

// AdvanceDay ends the current day.
func (h *GameHandler) AdvanceDay(c *gin.Context) {
	result, reply := h.dispatcher.AdvanceDay(c.Request.Context())

	deaths := make([]models.DeathRecord, 0, len(result.Deaths))
	for _, d := range result.Deaths {
		deaths = append(deaths, models.DeathRecord{Kind: string(d.Kind), Cause: d.Cause.String(), Age: d.Age})
	}
	c.JSON(http.StatusOK, gin.H{
		"day":    result.Day,
		"deaths": deaths,
		"reply":  reply,
	})
}

// Reports lists recent day reports from the report store.
func (h *GameHandler) Reports(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "reports_disabled", Message: "no report store is configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_limit", Message: "limit must be between 1 and 100"})
		return
	}

	reports, err := h.reports.RecentDayReports(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing day reports", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upstream", Message: "unable to read reports"})
		return
	}
	if reports == nil {
		reports = []models.DayReport{}
	}
	c.JSON(http.StatusOK, reports)
}
