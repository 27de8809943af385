// Command tenderlens is a development harness: it runs the analysis pipeline
// on one or two local files and prints the validated report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/common"
	"github.com/tenderlens/tenderlens/internal/contract"
	"github.com/tenderlens/tenderlens/internal/extract"
	"github.com/tenderlens/tenderlens/internal/metrics"
	"github.com/tenderlens/tenderlens/internal/pipeline"
	"github.com/tenderlens/tenderlens/internal/transport"
	"github.com/tenderlens/tenderlens/internal/usage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	kindFlag := flag.String("kind", "audit", "analysis kind: audit (requirements + response) or extract (requirements only)")
	flag.Parse()

	kind := constants.FullAudit
	if strings.HasPrefix(strings.ToLower(*kindFlag), "extract") {
		kind = constants.ExtractionOnly
	}

	args := flag.Args()
	want := 2
	if kind == constants.ExtractionOnly {
		want = 1
	}
	if len(args) < want {
		logger.Error("usage: tenderlens [-kind audit|extract] <requirements-file> [response-file]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	const userID = "dev"
	req := pipeline.Request{Kind: kind, UserID: userID}
	reqDoc, err := loadDocument(args[0])
	if err != nil {
		logger.Error("load requirements document", "path", args[0], "error", err)
		os.Exit(1)
	}
	req.Requirements = &reqDoc
	if kind == constants.FullAudit {
		respDoc, err := loadDocument(args[1])
		if err != nil {
			logger.Error("load response document", "path", args[1], "error", err)
			os.Exit(1)
		}
		req.Response = &respDoc
	}

	registry, err := contract.NewRegistry(logger)
	if err != nil {
		logger.Error("build contract registry", "error", err)
		os.Exit(1)
	}

	genCfg := cfg.Generation
	genCfg.Endpoint = withAPIKey(genCfg.Endpoint, genCfg.APIKey)

	recorder := usage.NewMemRecorder()
	quota := usage.NewQuota(cfg.Usage)
	if !quota.Allowed(usage.RoleUser, recorder.Count(userID)) {
		logger.Error("free-tier limit reached", "user_id", userID, "max_free_uses", cfg.Usage.MaxFreeUses)
		os.Exit(1)
	}

	p := pipeline.New(
		genCfg,
		extract.NewExtractor(cfg.Extract, logger),
		transport.NewClient(genCfg, logger),
		registry,
		recorder,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := p.Run(ctx, req)
	if err != nil {
		logger.Error("analysis failed", "kind", string(common.KindOf(err)), "error", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
	if report.Kind == constants.ReportCompliance {
		fmt.Printf("compliance: %.1f%%\n", metrics.CompliancePercentage(report.Compliance))
	}
}

func loadDocument(path string) (extract.Document, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return extract.Document{}, fmt.Errorf("unsupported file extension: %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Document{}, err
	}
	return extract.Document{
		Name:   filepath.Base(path),
		Format: constants.MapExtToFormat(ext),
		Data:   data,
	}, nil
}

func withAPIKey(endpoint, key string) string {
	if key == "" || strings.Contains(endpoint, "key=") {
		return endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "key=" + url.QueryEscape(key)
}
