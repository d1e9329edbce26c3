package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ylos-analyzer/internal/analysis"
	"ylos-analyzer/internal/monitor"
	"ylos-analyzer/internal/report"
	"ylos-analyzer/pkg/db"
	"ylos-analyzer/pkg/i18n"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var startedAt = time.Now()

// defaultCSVExample is the tab-separated template served when no external
// template file is configured. It mirrors the broker's export format.
const defaultCSVExample = "Ativo\tAbertura\tFechamento\tTempo Operação\tQtd Compra\tQtd Venda\tLado\tPreço Compra\tPreço Venda\tPreço de Mercado\tMédio\tRes. Intervalo\tRes. Intervalo (%)\tRes. Operação\tRes. Operação (%)\tTET\tTotal\n" +
	"WINFUT\t02/06/2025 09:15\t02/06/2025 09:47\t32min\t2\t2\t C\t127.350,00\t127.580,00\t127.580,00\tNão\t230,00\t0,18\t92,00\t0,07\t32min\t92,00\n" +
	"WDOFUT\t02/06/2025 10:02\t02/06/2025 10:31\t29min\t1\t1\t V\t5.312,50\t5.298,00\t5.298,00\tSim\t14,50\t0,27\t145,00\t0,27\t29min\t145,00\n"

type analyzeForm struct {
	AccountType     int     `form:"account_type" binding:"required"`
	CurrentBalance  float64 `form:"current_balance"`
	TimezoneOffset  string  `form:"timezone_offset"`
	CheckNews       bool    `form:"check_news"`
	WithdrawalsMade int     `form:"withdrawals_made"`
}

func (s *Server) analyzeReport(c *gin.Context) {
	var form analyzeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form fields: " + err.Error()})
		return
	}

	accountType, err := analysis.AccountTypeFromCode(form.AccountType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_type must be 1 (Master Funded) or 2 (Instant Funding)"})
		return
	}

	offset := form.TimezoneOffset
	if offset == "" {
		offset = "-03"
	}
	if form.CheckNews {
		if _, err := analysis.ResolveOffset(offset); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             err.Error(),
				"supported_offsets": analysis.SupportedOffsets(),
			})
			return
		}
	}

	fileHeader, err := c.FormFile("csv_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv_file is required"})
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".csv" && ext != ".txt" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be a .csv export"})
		return
	}
	if maxBytes := int64(s.Cfg.MaxFileSizeMB) << 20; fileHeader.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	trades, err := report.Parse(file)
	if err != nil {
		log.Printf("[API] "+i18n.M().ReportParseFailed, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse trade report: " + err.Error()})
		return
	}

	req := analysis.Request{
		AccountType:     accountType,
		CurrentBalance:  form.CurrentBalance,
		TimezoneOffset:  offset,
		CheckNews:       form.CheckNews,
		WithdrawalsMade: form.WithdrawalsMade,
	}

	timer := monitor.NewTimer(s.Metrics.AnalysisLatency)
	verdict, err := s.Analyzer.Analyze(c.Request.Context(), req, trades)
	timer.Stop()
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyReport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "trade report contains no trades"})
			return
		}
		log.Printf("[API] "+i18n.M().AnalysisFailed, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	s.Metrics.RecordAnalysis(verdict.Approved)
	s.recordRun(c, accountType, form.CheckNews, verdict)

	c.JSON(http.StatusOK, verdict)
}

// recordRun persists the audit row. Failures are logged, never surfaced; the
// verdict already belongs to the caller at this point.
func (s *Server) recordRun(c *gin.Context, accountType analysis.AccountType, newsChecked bool, verdict *analysis.Verdict) {
	if s.DB == nil {
		return
	}

	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		log.Printf("[AUDIT] "+i18n.M().AuditWriteFailed, err)
		return
	}

	critical := 0
	for _, v := range verdict.Violations {
		if v.Severity == analysis.SeverityCritical {
			critical++
		}
	}

	run := db.AnalysisRun{
		ID:             uuid.NewString(),
		UserID:         CurrentUserID(c),
		AccountType:    string(accountType),
		Approved:       verdict.Approved,
		TotalTrades:    verdict.TotalTrades,
		DaysTraded:     verdict.DaysTraded,
		WinningDays:    verdict.WinningDays,
		TotalProfit:    verdict.TotalProfit,
		ViolationCount: len(verdict.Violations),
		CriticalCount:  critical,
		NewsChecked:    newsChecked,
		VerdictJSON:    string(verdictJSON),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.DB.InsertAnalysisRun(c.Request.Context(), run); err != nil {
		log.Printf("[AUDIT] "+i18n.M().AuditWriteFailed, err)
	}
}

func (s *Server) getRules(c *gin.Context) {
	accountType, err := analysis.ParseAccountType(c.Param("account_type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account type, use master_funded or instant_funding"})
		return
	}

	profile, err := analysis.ProfileFor(s.Analyzer.Profiles(), accountType)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	m := i18n.M()
	c.JSON(http.StatusOK, gin.H{
		"account_type": accountType,
		"profile":      profile,
		"descriptions": gin.H{
			"min_days_traded":         m.RuleDescMinDays,
			"min_winning_days":        m.RuleDescWinDays,
			"min_winning_day_profit":  m.RuleDescWinDayProfit,
			"consistency_cap_pct":     m.RuleDescConsistency,
			"max_averaging_per_trade": m.RuleDescMaxAveraging,
			"allow_news_trading":      m.RuleDescNewsTrading,
			"allow_overnight":         m.RuleDescOvernight,
		},
	})
}

func (s *Server) getCSVExample(c *gin.Context) {
	example := s.Cfg.CSVExampleTemplate
	if example == "" {
		example = defaultCSVExample
	}
	c.Header("Content-Disposition", `attachment; filename="trade_report_example.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(example))
}

func (s *Server) getSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"version":           s.Meta.Version,
		"language":          s.Meta.Language,
		"calendar_enabled":  s.Meta.CalendarEnabled,
		"uptime_seconds":    int64(time.Since(startedAt).Seconds()),
		"supported_offsets": analysis.SupportedOffsets(),
	})
}

func (s *Server) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Metrics.GetSnapshot())
}

func (s *Server) listAnalyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := s.DB.ListAnalysisRuns(c.Request.Context(), CurrentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list analyses"})
		return
	}
	if runs == nil {
		runs = []db.AnalysisRun{}
	}
	c.JSON(http.StatusOK, gin.H{"analyses": runs, "count": len(runs)})
}

func (s *Server) getAnalysis(c *gin.Context) {
	run, err := s.DB.GetAnalysisRun(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis"})
		return
	}

	var verdict json.RawMessage
	if run.VerdictJSON != "" {
		verdict = json.RawMessage(run.VerdictJSON)
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "verdict": verdict})
}
