package app

import (
	"context"

	"github.com/skillsenselab/callsight/analysis"
	"github.com/skillsenselab/callsight/api"
	"github.com/skillsenselab/callsight/bootstrap"
	"github.com/skillsenselab/callsight/calls"
	"github.com/skillsenselab/callsight/di"
	"github.com/skillsenselab/callsight/llm"
	"github.com/skillsenselab/callsight/llm/openai"
	"github.com/skillsenselab/callsight/observability"
	"github.com/skillsenselab/callsight/sentiment"
	"github.com/skillsenselab/callsight/sentiment/bertstars"
	"github.com/skillsenselab/callsight/stt"
	"github.com/skillsenselab/callsight/stt/elevenlabs"
	"github.com/skillsenselab/callsight/stt/wav2vec"
	"github.com/skillsenselab/callsight/util"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Providers groups the four service backends behind the two pipelines.
type Providers struct {
	CloudSTT  stt.Provider
	LocalSTT  stt.Provider
	Generator llm.Provider
	Sentiment sentiment.Provider
}

// BuildProviders constructs the backends from typed configuration.
func BuildProviders(cfg *Config) Providers {
	return Providers{
		CloudSTT:  elevenlabs.NewProvider(cfg.ElevenLabs),
		LocalSTT:  wav2vec.NewProvider(cfg.Wav2Vec),
		Generator: openai.NewProvider(cfg.OpenAI),
		Sentiment: bertstars.NewProvider(cfg.Sentiment),
	}
}

// Wire builds the providers and pipelines from the application's config,
// registers them in the DI container, and resolves the HTTP API handler's
// dependencies back out of it. Metrics may be nil.
func Wire(a *bootstrap.App[*Config], metrics *observability.Metrics) (*api.Handler, error) {
	providers := BuildProviders(a.Cfg)
	a.Logger.Info("providers configured", map[string]any{
		"elevenlabs_key": util.MaskSecret(a.Cfg.ElevenLabs.APIKey, 4),
		"openai_key":     util.MaskSecret(a.Cfg.OpenAI.APIKey, 4),
	})

	regs := map[string]any{
		di.Pkg.CloudSTT:      providers.CloudSTT,
		di.Pkg.LocalSTT:      providers.LocalSTT,
		di.Pkg.Generator:     providers.Generator,
		di.Pkg.Sentiment:     providers.Sentiment,
		di.Pkg.LocalAnalyzer: calls.NewLocalAnalyzer(providers.LocalSTT, providers.Sentiment, a.Logger),
		di.Pkg.CloudAnalyzer: analysis.NewAnalyzer(providers.CloudSTT, providers.Generator, a.Cfg.AnalyzerOptions(), a.Logger),
	}
	if metrics != nil {
		regs[di.Pkg.Metrics] = metrics
	}
	for key, instance := range regs {
		if err := a.Container.RegisterSingleton(key, instance); err != nil {
			return nil, err
		}
	}

	// The handler takes its dependencies from the container rather than
	// from the locals above, so everything it sees went through the same
	// registration path as the rest of the process.
	local, err := di.Resolve[*calls.LocalAnalyzer](a.Container, di.Pkg.LocalAnalyzer)
	if err != nil {
		return nil, err
	}
	analyzer, err := di.Resolve[*analysis.Analyzer](a.Container, di.Pkg.CloudAnalyzer)
	if err != nil {
		return nil, err
	}
	m, _ := di.TryResolve[*observability.Metrics](a.Container, di.Pkg.Metrics)

	handler := api.NewHandler(api.Deps{
		Analyzer:  analyzer,
		Local:     local,
		CloudSTT:  providers.CloudSTT,
		Generator: providers.Generator,
		LocalSTT:  providers.LocalSTT,
		Sentiment: providers.Sentiment,
		Metrics:   m,
	}, a.Logger)
	return handler, nil
}

// Observability bundles the OTLP exporters started for the process.
type Observability struct {
	Metrics *observability.Metrics

	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// InitObservability starts the OTLP trace and metric exporters when
// tracing is enabled and creates the service's metric instruments. With
// tracing disabled it returns an empty bundle; spans and instruments
// become no-ops.
func InitObservability(ctx context.Context, cfg *Config) (*Observability, error) {
	if !cfg.Tracing.Enabled {
		return &Observability{}, nil
	}

	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       true,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		return nil, err
	}

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       true,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	metrics, err := observability.NewMetrics(observability.Meter(ServiceName))
	if err != nil {
		_ = mp.Shutdown(ctx)
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return &Observability{Metrics: metrics, tracer: tp, meter: mp}, nil
}

// Shutdown flushes and stops the exporters.
func (o *Observability) Shutdown(ctx context.Context) {
	if o.meter != nil {
		_ = o.meter.Shutdown(ctx)
	}
	if o.tracer != nil {
		_ = o.tracer.Shutdown(ctx)
	}
}
