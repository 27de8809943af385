// Package pipeline orchestrates one analysis run: document extraction,
// prompt assembly, the retrying endpoint exchange, contract validation, and
// the usage side effect on success.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/common"
	"github.com/tenderlens/tenderlens/internal/contract"
	"github.com/tenderlens/tenderlens/internal/extract"
	"github.com/tenderlens/tenderlens/internal/usage"
)

type Pipeline struct {
	cfg       common.GenerationConfig
	extractor extract.TextExtractor
	transport Transport
	registry  *contract.Registry
	usage     usage.Recorder
	logger    *slog.Logger
}

// New wires a pipeline. The usage recorder may be nil when the caller owns
// the counter entirely.
func New(
	cfg common.GenerationConfig,
	extractor extract.TextExtractor,
	transport Transport,
	registry *contract.Registry,
	recorder usage.Recorder,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		transport: transport,
		registry:  registry,
		usage:     recorder,
		logger:    logger,
	}
}

// Run executes one analysis request to completion. Every failure is terminal
// for the run and carries one failure kind; the usage counter is incremented
// exactly once, and only after the report validates.
func (p *Pipeline) Run(ctx context.Context, req Request) (contract.Report, error) {
	run := newRunTracker(p.logger)
	start := time.Now()
	ctx = common.WithRequestID(ctx, run.id)
	ctx = common.WithUserID(ctx, req.UserID)
	run.logger.Info("pipeline.run.start",
		"kind", string(req.Kind),
		"user_id", req.UserID,
	)

	missing, docs := req.requiredDocuments()
	if len(missing) > 0 {
		return contract.Report{}, run.fail(common.Errorf(common.KindMissingInput,
			"%s analysis requires a %s", string(req.Kind), strings.Join(missing, " and a ")))
	}

	if err := run.advance(constants.RunExtracting); err != nil {
		return contract.Report{}, run.fail(err)
	}
	texts := make([]string, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		g.Go(func() error {
			text, err := p.extractor.Extract(gctx, doc)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return contract.Report{}, run.fail(asRunFailure(ctx, err))
	}
	requirementsText := texts[0]
	responseText := ""
	if len(texts) > 1 {
		responseText = texts[1]
	}

	if err := run.advance(constants.RunRequesting); err != nil {
		return contract.Report{}, run.fail(err)
	}
	reportKind := req.Kind.ReportKind()
	envelope := NewRequestEnvelope(
		BuildUserQuery(req.Kind, requirementsText, responseText),
		BuildInstruction(req.Kind),
		p.registry.SchemaFor(reportKind),
	)
	raw, err := p.transport.Send(ctx, p.cfg.Endpoint, envelope)
	if err != nil {
		return contract.Report{}, run.fail(asRunFailure(ctx, err))
	}

	if err := run.advance(constants.RunValidating); err != nil {
		return contract.Report{}, run.fail(err)
	}
	payload, err := DecodePayload(raw)
	if err != nil {
		return contract.Report{}, run.fail(err)
	}
	report, err := p.registry.Validate(reportKind, payload)
	if err != nil {
		return contract.Report{}, run.fail(err)
	}

	if ctx.Err() != nil {
		return contract.Report{}, run.fail(asRunFailure(ctx, ctx.Err()))
	}
	if err := run.advance(constants.RunDone); err != nil {
		return contract.Report{}, run.fail(err)
	}
	if p.usage != nil {
		if err := p.usage.Increment(ctx, req.UserID); err != nil {
			run.logger.Warn("pipeline.run.usage_increment_failed", "user_id", req.UserID, "error", err)
		}
	}

	run.logger.Info("pipeline.run.ok",
		"kind", string(reportKind),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// asRunFailure maps context cancellation onto the CANCELLED kind and leaves
// already-classified failures untouched.
func asRunFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		if common.IsKind(err, common.KindCancelled) {
			return err
		}
		return common.NewAppError(common.KindCancelled, "analysis run cancelled", err)
	}
	return err
}
