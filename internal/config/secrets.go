package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Secrets holds third-party API authorization loaded once at process start.
// The document has the shape {"web": {"openai_api_key": ..., "google_credentials": {...}}}.
// A missing or malformed secret file is a fatal startup condition.
type Secrets struct {
	LLMAPIKey         string          `json:"openai_api_key"`
	GoogleCredentials json.RawMessage `json:"google_credentials"`
}

type secretsDoc struct {
	Web *Secrets `json:"web"`
}

// LoadSecrets reads the credential document at path. The OPENAI_API_KEY
// environment variable, when set, overrides the key in the file.
func LoadSecrets(path string) (*Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	var doc secretsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse secret file %s: %w", path, err)
	}
	if doc.Web == nil {
		return nil, fmt.Errorf("secret file %s has no \"web\" section", path)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		doc.Web.LLMAPIKey = key
	}
	if doc.Web.LLMAPIKey == "" {
		return nil, fmt.Errorf("secret file %s has no openai_api_key", path)
	}
	return doc.Web, nil
}
