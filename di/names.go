package di

// PkgNames defines the container keys for the service's shared components.
// Projects embed this struct in their own DI name sets.
type PkgNames struct {
	// Core infrastructure
	Config     string
	Logger     string
	HTTPServer string
	Metrics    string

	// Service backends
	CloudSTT  string
	LocalSTT  string
	Generator string
	Sentiment string

	// Pipelines
	LocalAnalyzer string
	CloudAnalyzer string
}

// Pkg contains the canonical container keys.
var Pkg = PkgNames{
	Config:     "config",
	Logger:     "logger",
	HTTPServer: "http_server",
	Metrics:    "observability.metrics",

	CloudSTT:  "stt.elevenlabs",
	LocalSTT:  "stt.wav2vec",
	Generator: "llm.openai",
	Sentiment: "sentiment.bertstars",

	LocalAnalyzer: "calls.analyzer",
	CloudAnalyzer: "analysis.analyzer",
}
