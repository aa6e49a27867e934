package core

import "time"

type ProviderConfig interface {
	GetProvider() string
	GetOllamaBaseURL() string
	GetOpenAIBaseURL() string
	GetOpenAIAPIKey() string
	GetRequestTimeout() time.Duration
}
