package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"fjacquet/asset-tracker/internal/exporter"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/report"
	"fjacquet/asset-tracker/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// valuationQuery reads the currency and groupBy query parameters, falling
// back to the configured defaults.
func (s *Server) valuationQuery(ctx *gin.Context) (models.Currency, valuation.GroupBy, error) {
	cfg := s.c.GetConfig()
	currency := cfg.ReportingCurrency()
	if q := ctx.Query("currency"); q != "" {
		c, err := models.ParseCurrency(q)
		if err != nil {
			return "", "", badRequest(err)
		}
		currency = c
	}
	groupBy := cfg.GroupBy()
	if q := ctx.Query("groupBy"); q != "" {
		g, err := valuation.ParseGroupBy(q)
		if err != nil {
			return "", "", badRequest(err)
		}
		groupBy = g
	}
	return currency, groupBy, nil
}

// GET /api/summary?currency=EUR&groupBy=owner&month=2024-03
func (s *Server) summary(ctx *gin.Context) {
	currency, groupBy, err := s.valuationQuery(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ds, ok := s.load(ctx)
	if !ok {
		return
	}

	var (
		agg   valuation.Aggregate
		month string
	)
	if q := ctx.Query("month"); q != "" {
		m, perr := models.ParseMonth(q)
		if perr != nil {
			s.fail(ctx, badRequest(perr))
			return
		}
		month = m.String()
		agg, err = s.c.GetEngine().AsOf(ds, currency, groupBy, m)
	} else {
		agg, err = s.c.GetEngine().Current(ds, currency, groupBy)
	}
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report.NewSummaryView(ds, agg, month))
}

// GET /api/history?currency=EUR&range=2024&fillGaps=true
func (s *Server) history(ctx *gin.Context) {
	currency, groupBy, err := s.valuationQuery(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	rng := s.c.GetConfig().Range()
	if q := ctx.Query("range"); q != "" {
		if rng, err = valuation.ParseRange(q); err != nil {
			s.fail(ctx, badRequest(err))
			return
		}
	}
	fill, _ := strconv.ParseBool(ctx.DefaultQuery("fillGaps", "false"))

	ds, ok := s.load(ctx)
	if !ok {
		return
	}
	series, err := s.c.GetEngine().Build(ds, valuation.SeriesOptions{Currency: currency, GroupBy: groupBy, FillGaps: fill})
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report.NewHistoryView(series.Filter(rng), rng.String()))
}

// GET /api/records?accountId=...&categoryId=...&ownerId=...
func (s *Server) listRecords(ctx *gin.Context) {
	ds, ok := s.load(ctx)
	if !ok {
		return
	}
	filter := ledger.RecordFilter{
		AccountID:  ctx.Query("accountId"),
		CategoryID: ctx.Query("categoryId"),
		OwnerID:    ctx.Query("ownerId"),
	}
	ctx.JSON(http.StatusOK, s.c.NewLedger(ds).Records(filter))
}

type recordRequest struct {
	Date          models.Date     `json:"date"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	KeepTimestamp bool            `json:"keepTimestamp"`
}

func (req recordRequest) record(id string) models.Record {
	return models.Record{ID: id, Date: req.Date, AccountID: req.AccountID, Amount: req.Amount, Note: req.Note}
}

// POST /api/records
func (s *Server) createRecord(ctx *gin.Context) {
	var req recordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.fail(ctx, badRequest(err))
		return
	}
	var created models.Record
	if s.mutate(ctx, func(l *ledger.Ledger) error {
		var err error
		created, err = l.AddRecord(req.record(""))
		return err
	}) {
		ctx.JSON(http.StatusCreated, created)
	}
}

// PUT /api/records/:id
func (s *Server) updateRecord(ctx *gin.Context) {
	var req recordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.fail(ctx, badRequest(err))
		return
	}
	var updated models.Record
	if s.mutate(ctx, func(l *ledger.Ledger) error {
		var err error
		updated, err = l.UpdateRecord(req.record(ctx.Param("id")), req.KeepTimestamp)
		return err
	}) {
		ctx.JSON(http.StatusOK, updated)
	}
}

// DELETE /api/records/:id
func (s *Server) deleteRecord(ctx *gin.Context) {
	if s.mutate(ctx, func(l *ledger.Ledger) error {
		return l.DeleteRecord(ctx.Param("id"))
	}) {
		ctx.Status(http.StatusNoContent)
	}
}

func (s *Server) listAccounts(ctx *gin.Context) {
	if ds, ok := s.load(ctx); ok {
		ctx.JSON(http.StatusOK, ds.Accounts)
	}
}

func (s *Server) listCategories(ctx *gin.Context) {
	if ds, ok := s.load(ctx); ok {
		ctx.JSON(http.StatusOK, ds.Categories)
	}
}

func (s *Server) listOwners(ctx *gin.Context) {
	if ds, ok := s.load(ctx); ok {
		ctx.JSON(http.StatusOK, ds.Owners)
	}
}

// GET /api/export?format=csv|json
func (s *Server) export(ctx *gin.Context) {
	format := ctx.DefaultQuery("format", exporter.FormatJSON)
	contentType := "application/json"
	switch format {
	case exporter.FormatJSON:
	case exporter.FormatCSV:
		contentType = "text/csv; charset=utf-8"
	default:
		s.fail(ctx, badRequest(fmt.Errorf("unsupported export format: %s", format)))
		return
	}

	ds, ok := s.load(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.c.GetExporter().Write(&buf, ds, format); err != nil {
		s.fail(ctx, err)
		return
	}
	name := exporter.DefaultFileName(format, s.c.Now())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
