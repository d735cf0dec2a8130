// Package prompts holds the generation prompt templates, with optional
// overrides from a YAML file.
package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// ImagePromptCount is the fixed number of image prompts requested per video.
const ImagePromptCount = 3

// Set is the full collection of prompt templates used by one pipeline run.
// Templates use text/template syntax; see the Render* methods for the fields
// each one receives.
type Set struct {
	Topic        string `yaml:"topic"`
	Script       string `yaml:"script"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	ImagePrompts string `yaml:"image_prompts"`
}

// Defaults returns the built-in templates.
func Defaults() Set {
	return Set{
		Topic: "Generate a specific video idea about the following topic: {{.Niche}}." +
			"{{if .Trends}}\nFor inspiration, these are currently trending:\n{{range .Trends}}- {{.}}\n{{end}}{{end}}" +
			"Respond with the idea only, in one sentence.",
		Script: "Generate a short 4-sentence script for a video. The script must relate to this subject: {{.Topic}}. " +
			"Use the language: {{.Language}}. Avoid unnecessary introductions and focus on the subject.",
		Title:       "Create a concise, engaging YouTube title under 100 characters for: {{.Topic}}. Respond with the title only.",
		Description: "Write a YouTube description for this script: {{.Script}}. Respond with the description only.",
		ImagePrompts: fmt.Sprintf(
			"Generate %d detailed image prompts for AI image generation based on this script: {{.Script}}. "+
				"Respond ONLY with a JSON array of %d strings. No markdown. No explanation.",
			ImagePromptCount, ImagePromptCount),
	}
}

// Load reads template overrides from a YAML file layered over the defaults.
// Empty or missing keys keep their default value. An empty path returns the
// defaults unchanged.
func Load(path string) (Set, error) {
	set := Defaults()
	if path == "" {
		return set, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read prompts file: %w", err)
	}
	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Set{}, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	if override.Topic != "" {
		set.Topic = override.Topic
	}
	if override.Script != "" {
		set.Script = override.Script
	}
	if override.Title != "" {
		set.Title = override.Title
	}
	if override.Description != "" {
		set.Description = override.Description
	}
	if override.ImagePrompts != "" {
		set.ImagePrompts = override.ImagePrompts
	}
	return set, nil
}

// RenderTopic fills the topic template with the niche and optional trending
// titles.
func (s Set) RenderTopic(niche string, trends []string) (string, error) {
	return render("topic", s.Topic, struct {
		Niche  string
		Trends []string
	}{niche, trends})
}

// RenderScript fills the script template.
func (s Set) RenderScript(topic, language string) (string, error) {
	return render("script", s.Script, struct {
		Topic    string
		Language string
	}{topic, language})
}

// RenderTitle fills the title template.
func (s Set) RenderTitle(topic string) (string, error) {
	return render("title", s.Title, struct{ Topic string }{topic})
}

// RenderDescription fills the description template.
func (s Set) RenderDescription(script string) (string, error) {
	return render("description", s.Description, struct{ Script string }{script})
}

// RenderImagePrompts fills the image-prompts template.
func (s Set) RenderImagePrompts(script string) (string, error) {
	return render("image_prompts", s.ImagePrompts, struct{ Script string }{script})
}

func render(name, tmpl string, data interface{}) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}
