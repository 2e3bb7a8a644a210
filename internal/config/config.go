package config

// LLM contains shared LLM connection settings used by every generation stage.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Summary configures the summarization stage. Empty connection fields fall
// back to [llm].
type Summary struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	WordLimit      int    `toml:"word_limit"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Quiz configures the quiz synthesis stage. Empty connection fields fall back
// to [llm].
type Quiz struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	QuestionCount  int     `toml:"question_count"`
	Difficulty     string  `toml:"difficulty"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Transcript configures the transcript relay.
type Transcript struct {
	BaseURL                 string `toml:"base_url"`
	Language                string `toml:"language"`
	UserAgent               string `toml:"user_agent"`
	TimeoutSeconds          int    `toml:"timeout_seconds"`
	RateLimitRetries        int    `toml:"rate_limit_retries"`
	RateLimitBackoffSeconds int    `toml:"rate_limit_backoff_seconds"`
}

// Classifier configures the educational gate.
type Classifier struct {
	Threshold   float64 `toml:"threshold"`
	LexiconPath string  `toml:"lexicon_path"`
}

// Pipeline configures end-to-end runs.
type Pipeline struct {
	MaxConcurrent int `toml:"max_concurrent"`
}

// Logging selects the log format and minimum level.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the full lectern configuration. Each field maps to one TOML
// table of the same name.
type Config struct {
	LLM        LLM        `toml:"llm"`
	Summary    Summary    `toml:"summary"`
	Quiz       Quiz       `toml:"quiz"`
	Transcript Transcript `toml:"transcript"`
	Classifier Classifier `toml:"classifier"`
	Pipeline   Pipeline   `toml:"pipeline"`
	Logging    Logging    `toml:"logging"`
}
