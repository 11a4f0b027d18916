// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/respond"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 2 * time.Second

// HealthCheck is one named dependency probe for the /ready endpoint.
type HealthCheck struct {
	// Name identifies the dependency in the response (e.g. "postgres", "redis").
	Name string

	// Check pings the dependency.
	Check func(ctx context.Context) error
}

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
//
// The memory and file backends have nothing to ping, so Checks may be empty.
type HealthDependencies struct {
	Checks []HealthCheck
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready (Readiness probe). Checks run concurrently.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := handler.dependencies.Checks
	results := make([]checkResult, len(checks))

	var group errgroup.Group
	for index, check := range checks {
		group.Go(func() error {
			ctx, cancel := context.WithTimeout(request.Context(), checkTimeout)
			defer cancel()

			result := checkResult{Name: check.Name, IsOK: true}
			if err := check.Check(ctx); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
					slog.String("dependency", check.Name),
					slog.Any("error", err),
				)
			}
			results[index] = result
			return nil
		})
	}
	_ = group.Wait()

	responseStatus, httpStatus := "ready", http.StatusOK
	for _, result := range results {
		if !result.IsOK {
			responseStatus, httpStatus = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	}})
}
