package config

const (
	defaultConfigPath = "~/.config/lectern/config.toml"
	projectConfigName = "lectern.toml"

	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://chat.openrouter.ai"
	defaultLLMTitle          = "Lectern"
	defaultLLMTimeoutSeconds = 60

	defaultWordLimit     = 70
	defaultQuestionCount = 5
	defaultDifficulty    = "medium"
	defaultTemperature   = 0.7

	defaultTranscriptLanguage       = "en"
	defaultTranscriptTimeoutSeconds = 30
	defaultTranscriptUserAgent      = "lectern/1.0"
	defaultRateLimitBackoffSeconds  = 2

	defaultThreshold     = 5.0
	defaultMaxConcurrent = 2

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	envAPIKey        = "OPENROUTER_API_KEY"
	envSummaryAPIKey = "OPENROUTER_API_KEY_SUMMARY"
	envSummaryModel  = "MODEL_SUMMARY"
	envQuizAPIKey    = "OPENROUTER_API_KEY_QUIZ"
	envQuizModel     = "MODEL_QUIZ"
	envTranscriptURL = "LECTERN_TRANSCRIPT_URL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Summary: Summary{
			WordLimit: defaultWordLimit,
		},
		Quiz: Quiz{
			QuestionCount: defaultQuestionCount,
			Difficulty:    defaultDifficulty,
			Temperature:   defaultTemperature,
		},
		Transcript: Transcript{
			Language:                defaultTranscriptLanguage,
			UserAgent:               defaultTranscriptUserAgent,
			TimeoutSeconds:          defaultTranscriptTimeoutSeconds,
			RateLimitBackoffSeconds: defaultRateLimitBackoffSeconds,
		},
		Classifier: Classifier{
			Threshold: defaultThreshold,
		},
		Pipeline: Pipeline{
			MaxConcurrent: defaultMaxConcurrent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
