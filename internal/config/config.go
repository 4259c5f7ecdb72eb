package config

import "os"

type Config struct {
	DatasetBackend string // "json" or "sqlite"
	DatasetPath    string
	DBPath         string

	VisionBackend string // "ollama" or "claude"
	LLMBackend    string // "ollama" or "claude"
	OllamaHost    string
	OllamaVision  string
	OllamaModel   string
	ClaudeAPIKey  string
	ClaudeModel   string

	WitToken string

	// TargetLanguage, when set, makes the chat loop translate every answer
	// before display (e.g. "Traditional Chinese"). Empty disables translation.
	TargetLanguage string

	ConfirmOnline  bool
	DedupQuestions bool

	WikipediaHost string

	LogLevel  string
	LogFormat string
	LogFile   string
}

func Load() *Config {
	return &Config{
		DatasetBackend: getEnv("DATASET_BACKEND", "json"),
		DatasetPath:    getEnv("DATASET_PATH", "fruit_dataset.json"),
		DBPath:         getEnv("DB_PATH", "fruitchat.db"),
		VisionBackend:  getEnv("VISION_BACKEND", "ollama"),
		LLMBackend:     getEnv("LLM_BACKEND", "ollama"),
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaVision:   getEnv("OLLAMA_VISION_MODEL", "llava"),
		OllamaModel:    getEnv("OLLAMA_MODEL", "llama3"),
		ClaudeAPIKey:   getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:    getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		WitToken:       getEnv("WIT_ACCESS_TOKEN", ""),
		TargetLanguage: getEnv("TARGET_LANGUAGE", ""),
		ConfirmOnline:  getEnv("CONFIRM_ONLINE", "1") == "1",
		DedupQuestions: getEnv("DEDUPE_QUESTIONS", "1") == "1",
		WikipediaHost:  getEnv("WIKIPEDIA_HOST", "https://en.wikipedia.org"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		LogFile:        getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
