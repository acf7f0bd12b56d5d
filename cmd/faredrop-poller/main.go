// Package main is the AWS Lambda entry point that runs scheduled polling.
// An EventBridge rule invokes it; the event detail selects the task.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/app"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/config"
	"github.com/venkatadeepikapotu/faredrop-tracker/pkg/logger"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

const defaultConfigPath = "/var/task/config.yaml"

// Version is set at build time via ldflags.
var Version = "dev"

// Tasks selectable through the event detail.
const (
	taskPoll = "poll"
	taskReap = "reap"
)

type poller interface {
	RunPoll(ctx context.Context) (*domain.PollSummary, error)
	RunSnapshotReap(ctx context.Context) (int64, error)
}

type taskDetail struct {
	Task string `json:"task"`
}

// response is returned to the invoker and shows up in the Lambda console.
type response struct {
	Task    string              `json:"task"`
	Summary *domain.PollSummary `json:"summary,omitempty"`
	Reaped  *int64              `json:"reaped,omitempty"`
}

type handler struct {
	engine poller
	log    *slog.Logger
}

func (h *handler) handle(ctx context.Context, ev events.CloudWatchEvent) (*response, error) {
	task := taskPoll
	if len(ev.Detail) > 0 {
		var d taskDetail
		if err := json.Unmarshal(ev.Detail, &d); err != nil {
			return nil, fmt.Errorf("decoding event detail: %w", err)
		}
		if d.Task != "" {
			task = d.Task
		}
	}

	switch task {
	case taskPoll:
		summary, err := h.engine.RunPoll(ctx)
		if err != nil {
			h.log.Error("polling failed", "event_id", ev.ID, "error", err)
			return nil, err
		}
		return &response{Task: task, Summary: summary}, nil
	case taskReap:
		n, err := h.engine.RunSnapshotReap(ctx)
		if err != nil {
			return nil, err
		}
		return &response{Task: task, Reaped: &n}, nil
	default:
		return nil, fmt.Errorf("unknown task %q", task)
	}
}

func main() {
	path := os.Getenv("FAREDROP_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("loading config", "path", path, "error", err)
		os.Exit(1)
	}
	log := logger.Service(logger.New(cfg.Logging.Level, logger.FormatJSON), "faredrop-poller", Version)

	a, err := app.New(context.Background(), cfg, log, Version)
	if err != nil {
		log.Error("initializing", "error", err)
		os.Exit(1)
	}

	h := &handler{engine: a.Engine, log: log}
	lambda.Start(h.handle)
}
