// Package config resolves settings from a flat JSON document and credentials
// from a separate secret file.
package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Config reads config.json fresh on every accessor call. If the file changes
// between calls the new value is observed immediately; the cost of re-parsing
// is accepted in exchange for live-reload semantics.
type Config struct {
	path string
}

// New returns a Config backed by the JSON document at path. The document is
// read once to surface malformed config at startup.
func New(path string) (*Config, error) {
	c := &Config{path: path}
	if _, err := c.read(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", c.path, err)
	}
	return doc, nil
}

// Get decodes the value under key into v. Absent keys return false without
// touching v; only unreadable or malformed documents return an error.
func (c *Config) Get(key string, v interface{}) (bool, error) {
	doc, err := c.read()
	if err != nil {
		return false, err
	}
	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("config key %q: %w", key, err)
	}
	return true, nil
}

func (c *Config) stringValue(key string) string {
	var s string
	c.Get(key, &s)
	return s
}

func (c *Config) boolValue(key string) bool {
	var b bool
	c.Get(key, &b)
	return b
}

func (c *Config) intValue(key string) int {
	var n int
	c.Get(key, &n)
	return n
}

// Verbose reports whether diagnostic logging is enabled.
func (c *Config) Verbose() bool { return c.boolValue("verbose") }

// Headless reports whether interactive prompts should be suppressed.
func (c *Config) Headless() bool { return c.boolValue("headless") }

// Model returns the configured text-generation model alias.
func (c *Config) Model() string { return c.stringValue("llm") }

// ImagePromptModel returns the model alias used for image-prompt generation,
// falling back to the main model when unset.
func (c *Config) ImagePromptModel() string {
	if m := c.stringValue("image_prompt_llm"); m != "" {
		return m
	}
	return c.Model()
}

// ImageModel returns the image-generation model name.
func (c *Config) ImageModel() string { return c.stringValue("image_model") }

// Threads returns the configured worker count.
func (c *Config) Threads() int { return c.intValue("threads") }

// IsForKids reports whether uploads are declared made-for-kids.
func (c *Config) IsForKids() bool { return c.boolValue("is_for_kids") }

// ScraperTimeout returns the scraper timeout in seconds, defaulting to 300.
func (c *Config) ScraperTimeout() int {
	var n int
	ok, _ := c.Get("scraper_timeout", &n)
	if !ok || n == 0 {
		return 300
	}
	return n
}

// Font returns the configured subtitle font.
func (c *Config) Font() string { return c.stringValue("font") }

// Subreddit returns the subreddit used for topic research, empty when the
// enrichment is disabled.
func (c *Config) Subreddit() string { return c.stringValue("subreddit") }

// SongsDir returns the directory holding background songs.
func (c *Config) SongsDir() string { return c.stringValue("songs_dir") }

// OutreachSubject returns the outreach email subject line.
func (c *Config) OutreachSubject() string { return c.stringValue("outreach_message_subject") }

// OutreachBodyFile returns the path of the outreach email body template.
func (c *Config) OutreachBodyFile() string { return c.stringValue("outreach_message_body_file") }

// EmailCredentials holds SMTP settings for the outreach workflow.
type EmailCredentials struct {
	Host     string `json:"smtp_server"`
	Port     int    `json:"smtp_port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Email returns the configured outreach email credentials.
func (c *Config) Email() (EmailCredentials, bool, error) {
	var creds EmailCredentials
	ok, err := c.Get("email", &creds)
	return creds, ok, err
}
