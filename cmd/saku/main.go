package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/harunnryd/saku/pkg/configutil"
	"github.com/harunnryd/saku/pkg/llm"
	"github.com/harunnryd/saku/pkg/logging"
	"github.com/harunnryd/saku/pkg/metrics"
	"github.com/harunnryd/saku/pkg/providers/mock"
	"github.com/harunnryd/saku/pkg/providers/openai"
	"github.com/harunnryd/saku/pkg/redact"
	"github.com/harunnryd/saku/pkg/resilience"
	"github.com/harunnryd/saku/pkg/runner"
	"github.com/harunnryd/saku/pkg/saku"
	"github.com/harunnryd/saku/pkg/toolkit"
	"github.com/harunnryd/saku/pkg/tools"
)

type openAISettings struct {
	APIKey            string `mapstructure:"api_key"`
	Model             string `mapstructure:"model"`
	BaseURL           string `mapstructure:"base_url"`
	TimeoutMS         int    `mapstructure:"timeout_ms"`
	UseCircuitBreaker *bool  `mapstructure:"use_circuit_breaker"`
	CircuitThreshold  int    `mapstructure:"circuit_threshold"`
	CircuitCooldownMs int    `mapstructure:"circuit_cooldown_ms"`
	RetryMaxAttempts  int    `mapstructure:"retry_max_attempts"`
	RetryBaseDelayMs  int    `mapstructure:"retry_base_delay_ms"`
}

type mockLLMSettings struct {
	ResponseText string `mapstructure:"response_text"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	question := flag.String("q", "", "single question to ask; omit for interactive mode")
	flag.Parse()

	cfg, err := saku.LoadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	redact.SetEnabled(strings.EqualFold(cfg.Environment, "production"))

	obs, closeObs, err := buildObserver(cfg)
	if err != nil {
		fatal(err)
	}
	defer closeObs()

	providers := saku.NewProviderRegistry()
	registerProviders(providers)

	adapter, err := providers.BuildLLM(cfg.LLM.Provider, cfg)
	if err != nil {
		fatal(err)
	}
	if breaker, ok := adapter.(*llm.CircuitBreakerAdapter); ok {
		breaker.SetObserver(obs)
	}

	registry := tools.NewRegistry()
	if err := toolkit.Register(registry, toolkit.Options{
		LookupBaseURL: cfg.Lookup.BaseURL,
		LookupTimeout: time.Duration(cfg.Lookup.TimeoutMS) * time.Millisecond,
	}); err != nil {
		fatal(err)
	}

	dispatcher := saku.NewToolDispatcherWithOptions(registry, saku.ToolDispatcherOptions{
		Concurrency:  cfg.Tools.Concurrency,
		Timeout:      time.Duration(cfg.Tools.TimeoutMS) * time.Millisecond,
		Retries:      cfg.Tools.Retries,
		RetryBackoff: time.Duration(cfg.Tools.RetryBackoffMS) * time.Millisecond,
	})
	orch := saku.NewOrchestratorWithOptions(adapter, registry, dispatcher, saku.OrchestratorOptions{
		MaxToolRounds: cfg.Chat.MaxToolRounds,
	})
	orch.SetObserver(obs)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner.PrintBanner()
	slog.Info("saku_ready",
		"provider", cfg.LLM.Provider,
		"tools", registry.Len(),
		"max_tool_rounds", cfg.Chat.MaxToolRounds,
	)

	if q := strings.TrimSpace(*question); q != "" {
		answer, err := orch.Ask(ctx, q)
		if err != nil {
			fatal(err)
		}
		fmt.Println(answer)
		return
	}

	session := &runner.Session{In: os.Stdin, Out: os.Stdout, Ask: orch.Ask}
	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		fatal(err)
	}
}

func buildObserver(cfg saku.Config) (metrics.Observer, func(), error) {
	path := strings.TrimSpace(cfg.Observability.MetricsPath)
	if path == "" {
		return metrics.NoopObserver{}, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open metrics file: %w", err)
	}
	return metrics.NewJSONLObserver(f), func() { _ = f.Close() }, nil
}

func registerProviders(reg *saku.ProviderRegistry) {
	reg.RegisterLLM("openai", func(cfg saku.Config) (llm.ChatAdapter, error) {
		if err := validateSettings("llm.settings", cfg.LLM.Settings, configutil.Schema{
			Required: []string{"api_key", "model"},
			Optional: []string{"base_url", "timeout_ms", "use_circuit_breaker", "circuit_threshold", "circuit_cooldown_ms", "retry_max_attempts", "retry_base_delay_ms"},
		}); err != nil {
			return nil, err
		}
		var settings openAISettings
		if err := configutil.DecodeSettings(cfg.LLM.Settings, &settings); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(settings.APIKey, "llm.settings.api_key"); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(settings.Model, "llm.settings.model"); err != nil {
			return nil, err
		}
		adapter := openai.NewAdapter(settings.APIKey, settings.Model)
		if settings.BaseURL != "" {
			adapter.BaseURL = settings.BaseURL
		}
		if settings.TimeoutMS > 0 {
			adapter.Client.Timeout = time.Duration(settings.TimeoutMS) * time.Millisecond
		}
		var built llm.ChatAdapter = adapter
		if settings.RetryMaxAttempts > 1 {
			baseDelay := 100 * time.Millisecond
			if settings.RetryBaseDelayMs > 0 {
				baseDelay = time.Duration(settings.RetryBaseDelayMs) * time.Millisecond
			}
			built = llm.NewRetryAdapter(built, llm.RetryConfig{
				MaxAttempts: settings.RetryMaxAttempts,
				BaseDelay:   baseDelay,
			})
		}
		if configutil.BoolValue(settings.UseCircuitBreaker, true) {
			threshold := settings.CircuitThreshold
			if threshold == 0 {
				threshold = 3
			}
			cooldown := settings.CircuitCooldownMs
			if cooldown == 0 {
				cooldown = 30000
			}
			cb := resilience.NewCircuitBreaker(threshold, time.Duration(cooldown)*time.Millisecond)
			built = llm.NewCircuitBreakerAdapter(built, cb)
		}
		return built, nil
	})

	reg.RegisterLLM("mock", func(cfg saku.Config) (llm.ChatAdapter, error) {
		if err := validateSettings("llm.settings", cfg.LLM.Settings, configutil.Schema{
			Optional: []string{"response_text"},
		}); err != nil {
			return nil, err
		}
		var settings mockLLMSettings
		if err := configutil.DecodeSettings(cfg.LLM.Settings, &settings); err != nil {
			return nil, err
		}
		mockCfg := mock.LLMConfig{}
		if settings.ResponseText != "" {
			mockCfg.Responses = []llm.Response{{Text: settings.ResponseText}}
		}
		return mock.NewLLMAdapter(mockCfg), nil
	})
}

func validateSettings(path string, input map[string]any, schema configutil.Schema) error {
	if err := configutil.ValidateSettings(input, schema); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "saku:", err)
	os.Exit(1)
}
