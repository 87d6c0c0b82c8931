package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flowstudio/flowswarm/agent"
	"github.com/flowstudio/flowswarm/brand"
	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/core"
	"github.com/flowstudio/flowswarm/logging"
	"github.com/google/uuid"
)

// Options configure a Generator.
type Options struct {
	// Store persists agent task history. Nil disables persistence.
	Store core.MemoryStore
	// Logger receives pipeline telemetry. Defaults to NoOp.
	Logger logging.Logger
	// OutputDir receives the JSON artifacts of every phase. Empty disables
	// artifact writing.
	OutputDir string
	// ThemeCount is the number of theme variations to request.
	ThemeCount int
	// SkipTrendResearch drops the trend analysis phase.
	SkipTrendResearch bool
}

// Quality carries the curator's scores for the generated output.
type Quality struct {
	Tokens float64 `json:"tokens"`
	Themes float64 `json:"themes"`
}

// Summary is the outcome of one pipeline run.
type Summary struct {
	RunID     string         `json:"run_id"`
	Brand     string         `json:"brand"`
	Steps     map[string]any `json:"steps"`
	Quality   Quality        `json:"quality"`
	Duration  time.Duration  `json:"duration"`
	OutputDir string         `json:"output_dir,omitempty"`
}

// Generator runs the design system pipeline with a fixed trio of specialist
// agents.
type Generator struct {
	opts    Options
	logger  *logging.FlowLogger
	analyst *agent.Agent
	stylist *agent.Agent
	curator *agent.Agent
}

// NewGenerator wires the pipeline's agents over the given completion client.
func NewGenerator(client *completion.Client, optFns ...func(o *Options)) (*Generator, error) {
	opts := Options{
		Logger:     logging.NoOpLogger{},
		ThemeCount: 20,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	agentOpts := func(o *agent.Options) {
		o.Store = opts.Store
		o.Logger = opts.Logger
	}
	analyst, err := agent.New(agent.TypeAnalyst, client, agentOpts)
	if err != nil {
		return nil, err
	}
	stylist, err := agent.New(agent.TypeStylist, client, agentOpts)
	if err != nil {
		return nil, err
	}
	curator, err := agent.New(agent.TypeCurator, client, agentOpts)
	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:    opts,
		logger:  logging.NewFlowLogger(opts.Logger).WithComponent("workflow"),
		analyst: analyst,
		stylist: stylist,
		curator: curator,
	}, nil
}

// GenerateDesignSystem runs the full pipeline: research, token generation,
// theme variations and quality evaluation. The first failing phase aborts
// the run.
func (g *Generator) GenerateDesignSystem(ctx context.Context, cfg brand.Config) (*Summary, error) {
	start := time.Now()
	summary := &Summary{
		RunID:     uuid.NewString(),
		Brand:     cfg.Name(),
		Steps:     make(map[string]any),
		OutputDir: g.opts.OutputDir,
	}
	g.logger.Info("Generating design system", "brand", cfg.Name(), "sector", cfg.Sector(), "run_id", summary.RunID)

	if !g.opts.SkipTrendResearch {
		trends, err := g.think(ctx, g.analyst, trendResearchPrompt,
			map[string]any{"mode": "trend-analysis"}, 0.7)
		if err != nil {
			return nil, fmt.Errorf("workflow: trend research: %w", err)
		}
		summary.Steps["trend_analysis"] = trends
		if err := g.writeArtifact("trend-analysis.json", trends); err != nil {
			return nil, err
		}
	}

	brandAnalysis, err := g.think(ctx, g.analyst, brandAnalysisPrompt,
		map[string]any{"brand_config": cfg, "mode": "brand-analysis"}, 0.6)
	if err != nil {
		return nil, fmt.Errorf("workflow: brand analysis: %w", err)
	}
	summary.Steps["brand_analysis"] = brandAnalysis
	if err := g.writeArtifact("brand-analysis.json", brandAnalysis); err != nil {
		return nil, err
	}

	tokens, err := g.think(ctx, g.stylist, tokenGenerationPrompt(cfg), map[string]any{
		"brand_config":   cfg,
		"trend_analysis": summary.Steps["trend_analysis"],
		"brand_analysis": brandAnalysis,
		"mode":           "token-generation",
	}, 0.8)
	if err != nil {
		return nil, fmt.Errorf("workflow: token generation: %w", err)
	}
	summary.Steps["design_tokens"] = tokens
	if err := g.writeArtifact("design-tokens.json", tokens); err != nil {
		return nil, err
	}

	themes, err := g.GenerateThemes(ctx, tokens, g.opts.ThemeCount)
	if err != nil {
		return nil, fmt.Errorf("workflow: theme generation: %w", err)
	}
	summary.Steps["themes"] = themes
	if err := g.writeArtifact("themes.json", themes); err != nil {
		return nil, err
	}

	tokenEval, err := g.think(ctx, g.curator, tokenEvaluationPrompt, map[string]any{
		"design_tokens": tokens,
		"brand_config":  cfg,
		"mode":          "token-evaluation",
	}, 0.3)
	if err != nil {
		return nil, fmt.Errorf("workflow: token evaluation: %w", err)
	}
	summary.Steps["token_evaluation"] = tokenEval
	summary.Quality.Tokens = overallScore(tokenEval)
	if err := g.writeArtifact("token-evaluation.json", tokenEval); err != nil {
		return nil, err
	}

	themeEval, err := g.think(ctx, g.curator, themeEvaluationPrompt, map[string]any{
		"themes":        themes,
		"design_tokens": tokens,
		"brand_config":  cfg,
		"mode":          "theme-evaluation",
	}, 0.3)
	if err != nil {
		return nil, fmt.Errorf("workflow: theme evaluation: %w", err)
	}
	summary.Steps["theme_evaluation"] = themeEval
	summary.Quality.Themes = overallScore(themeEval)
	if err := g.writeArtifact("theme-evaluation.json", themeEval); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	g.logger.Info("Design system generated", "brand", cfg.Name(), "duration", summary.Duration,
		"token_quality", summary.Quality.Tokens, "theme_quality", summary.Quality.Themes)
	return summary, nil
}

// GenerateTokens runs only the token generation phase.
func (g *Generator) GenerateTokens(ctx context.Context, cfg brand.Config) (any, error) {
	tokens, err := g.think(ctx, g.stylist, tokenGenerationPrompt(cfg), map[string]any{
		"brand_config": cfg,
		"mode":         "token-generation",
	}, 0.8)
	if err != nil {
		return nil, fmt.Errorf("workflow: token generation: %w", err)
	}
	if err := g.writeArtifact("design-tokens.json", tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// GenerateThemes derives count theme variations from existing tokens.
func (g *Generator) GenerateThemes(ctx context.Context, tokens any, count int) (any, error) {
	themes, err := g.think(ctx, g.stylist, themeVariationsPrompt(count), map[string]any{
		"design_tokens": tokens,
		"mode":          "theme-generation",
	}, 0.9)
	if err != nil {
		return nil, fmt.Errorf("workflow: theme generation: %w", err)
	}
	return themes, nil
}

func (g *Generator) think(ctx context.Context, a *agent.Agent, prompt string, taskCtx map[string]any, temperature float64) (any, error) {
	res, err := a.Think(ctx, prompt, taskCtx, func(o *agent.ThinkOptions) {
		o.Structured = true
		o.Temperature = temperature
	})
	if err != nil {
		return nil, err
	}
	return res.Response, nil
}

func (g *Generator) writeArtifact(name string, v any) error {
	if g.opts.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("workflow: create output dir: %w", err)
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("workflow: encode %s: %w", name, err)
	}
	path := filepath.Join(g.opts.OutputDir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("workflow: write %s: %w", name, err)
	}
	g.logger.Debug("Wrote artifact", "path", path)
	return nil
}

// overallScore digs the curator's overall score out of an opaque evaluation
// payload; absent or malformed scores report zero.
func overallScore(evaluation any) float64 {
	m, ok := evaluation.(map[string]any)
	if !ok {
		return 0
	}
	score, _ := m["overallScore"].(float64)
	return score
}
