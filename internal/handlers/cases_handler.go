package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusops/caseledger/internal/engine"
	"github.com/campusops/caseledger/internal/ledger"
	"github.com/campusops/caseledger/internal/metrics"
	"github.com/campusops/caseledger/internal/notify"
	"github.com/campusops/caseledger/internal/validation"
)

// HandlerConfig groups dependencies for the case routes.
type HandlerConfig struct {
	Engine   *engine.Engine
	Notifier notify.Notifier
}

// RegisterCaseRoutes registers the case tracker's API routes.
func RegisterCaseRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}

	r.GET("/cases", func(c *gin.Context) {
		view, err := cfg.Engine.LoadMergedView(c.Request.Context())
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cases": view, "count": len(view)})
	})

	r.GET("/statuses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"statuses": ledger.StatusVocabulary})
	})

	r.POST("/cases", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ReportCaseRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		caseID := uuid.NewString()
		rec := ledger.Case{
			CaseID:      caseID,
			ReportedAt:  cfg.Engine.Stamp(),
			Location:    req.Location,
			Equipment:   req.Equipment,
			Description: req.Description,
			MediaLinks:  req.MediaLinks,
		}
		if err := cfg.Engine.AppendCase(ctx, rec); err != nil {
			writeEngineError(c, err)
			return
		}

		send(ctx, notifier, fmt.Sprintf("new case %s: %s at %s", caseID, req.Equipment, req.Location))

		c.Header("Location", "/cases/"+caseID)
		c.JSON(http.StatusCreated, gin.H{"case_id": caseID})
	})

	r.POST("/cases/:id/status", PassphraseRequired(cfg.Engine), func(c *gin.Context) {
		ctx := c.Request.Context()
		caseID := strings.TrimSpace(c.Param("id"))

		var req validation.UpdateStatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if err := cfg.Engine.Upsert(ctx, caseID, req.Status, req.Note); err != nil {
			writeEngineError(c, err)
			return
		}

		send(ctx, notifier, fmt.Sprintf("case %s set to %s", caseID, req.Status))

		c.JSON(http.StatusOK, gin.H{"case_id": caseID, "status": req.Status})
	})
}

// send delivers a notification best-effort: failures are logged and
// counted, never propagated to the request that triggered them.
func send(ctx context.Context, n notify.Notifier, msg string) {
	if err := n.Notify(ctx, msg); err != nil {
		log.Printf("[notify] delivery failed: %v", err)
		metrics.Notifications.WithLabelValues("error").Inc()
		return
	}
	metrics.Notifications.WithLabelValues("ok").Inc()
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses.
func writeEngineError(c *gin.Context, err error) {
	var ce *engine.ConnectError
	var se *engine.SchemaError
	var we *engine.WriteError
	switch {
	case errors.As(err, &ce):
		c.JSON(http.StatusBadGateway, gin.H{"error": "store_unreachable", "detail": ce.Error()})
	case errors.As(err, &se):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schema_mismatch", "detail": se.Error()})
	case errors.As(err, &we):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "write_failed",
			"detail": we.Error(),
			"hint":   "re-issuing the same update is safe; it completes the partially written row",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "detail": err.Error()})
	}
}
