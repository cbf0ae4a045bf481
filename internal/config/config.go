package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Ai       AIConfig
	Answerer AnswererConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	IndexTopic         string
	GuestTTL           time.Duration
}

type DatabaseConfig struct {
	Connection   string
	MaxOpenConns int
}

type StorageConfig struct {
	SupabaseURL string
	ServiceKey  string
	Bucket      string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "jina" or "ollama"
	GeminiAPIKey      string
	JinaAPIKey        string
	OllamaBaseURL     string
	OllamaModel       string
	MaxAttempts       int
	RetryBaseDelay    time.Duration
	RetryMaxDelay     time.Duration
}

type AnswererConfig struct {
	Provider       string // "groq" or "ollama"
	Model          string
	GroqAPIKey     string
	MaxTokens      int
	RequestTimeout time.Duration
	MaxRetries     int
}

type RagConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	RetrieverK     int
	BaseCollection string
	CacheCapacity  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			IndexTopic:         getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_DOCUMENT"),
			GuestTTL:           getEnvAsDuration("GUEST_TTL", 2*time.Hour),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			// Kept small on purpose: the pool bounds how many concurrent
			// ingestions/asks can touch the metadata store at once.
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		},
		Storage: StorageConfig{
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			ServiceKey:  getEnv("SUPABASE_SERVICE_ROLE", ""),
			Bucket:      getEnv("PDF_BUCKET", "pdfs"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			MaxAttempts:       getEnvAsInt("EMBEDDING_MAX_ATTEMPTS", 3),
			RetryBaseDelay:    getEnvAsDuration("EMBEDDING_RETRY_BASE_DELAY", 500*time.Millisecond),
			RetryMaxDelay:     getEnvAsDuration("EMBEDDING_RETRY_MAX_DELAY", 4*time.Second),
		},
		Answerer: AnswererConfig{
			Provider:       getEnv("LLM_PROVIDER", "groq"),
			Model:          getEnv("LLM_MODEL", "llama3-8b-8192"),
			GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 1024),
			RequestTimeout: getEnvAsDuration("LLM_REQUEST_TIMEOUT", 60*time.Second),
			MaxRetries:     getEnvAsInt("LLM_MAX_RETRIES", 2),
		},
		Rag: RagConfig{
			ChunkSize:      getEnvAsInt("RAG_CHUNK_SIZE", 700),
			ChunkOverlap:   getEnvAsInt("RAG_CHUNK_OVERLAP", 100),
			RetrieverK:     getEnvAsInt("RAG_RETRIEVER_K", 6),
			BaseCollection: getEnv("VECTOR_COLLECTION", "doc_assistant_embeddings"),
			CacheCapacity:  getEnvAsInt("PIPELINE_CACHE_CAPACITY", 256),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
