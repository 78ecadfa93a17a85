package message

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/samzong/git-autocommit/internal/committype"
	"github.com/samzong/git-autocommit/internal/config"
)

const truncatedMarker = "...(content is too long, truncated)"

const defaultSystemTemplate = `You are a git commit message generator. Generate concise conventional commit messages.

Use these conventional commit types:
{{.TypeDescriptions}}

Format: type(scope): description

Rules:
- Keep the subject line under {{.MaxSubjectLength}} characters.
- Use the imperative mood in the subject ("add", not "added" or "adds").
- If a body is truly needed, separate it with a blank line and wrap it at {{.BodyWrapWidth}} characters.
- Do not add a body or footer unless the change cannot be summarized in the subject.
- Do not wrap the message in code fences, quotes or any other markup.
- Only return the commit message, nothing else.`

// The status and diff are embedded verbatim. Fence-like sequences inside the diff
// are left alone; the backend parses fenced blocks on its own.
const defaultUserTemplate = "Git status:\n```\n{{.Status}}\n```\n\n" +
	"Git diff --staged:\n```\n{{.Diff}}\n```\n\n" +
	"Generate a conventional commit message:"

// Prompt is the instruction pair for one generation request.
type Prompt struct {
	System string
	User   string
}

// PromptOptions shapes the instructions. Zero values fall back to the defaults.
type PromptOptions struct {
	MaxSubjectLength int
	BodyWrapWidth    int
	AllowedTypes     []string
	// MaxDiffBytes truncates the diff when positive; zero keeps it verbatim.
	MaxDiffBytes int
	// TemplateFile points to a YAML file overriding the built-in templates.
	TemplateFile string
}

// PromptTemplate is the on-disk format of a custom template file.
type PromptTemplate struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	System      string `yaml:"system"`
	User        string `yaml:"user"`
}

// TemplateData is what both templates are rendered with.
type TemplateData struct {
	AllowedTypes     string
	TypeDescriptions string
	MaxSubjectLength int
	BodyWrapWidth    int
	Status           string
	Diff             string
}

// OptionsFromConfig converts the prompt section of the configuration.
func OptionsFromConfig(cfg config.PromptConfig) PromptOptions {
	return PromptOptions{
		MaxSubjectLength: cfg.MaxSubjectLength,
		BodyWrapWidth:    cfg.BodyWrapWidth,
		AllowedTypes:     cfg.AllowedTypes,
		MaxDiffBytes:     cfg.MaxDiffBytes,
		TemplateFile:     cfg.TemplateFile,
	}
}

func (o PromptOptions) withDefaults() PromptOptions {
	if o.MaxSubjectLength <= 0 {
		o.MaxSubjectLength = config.DefaultMaxSubjectLength
	}
	if o.BodyWrapWidth <= 0 {
		o.BodyWrapWidth = config.DefaultBodyWrapWidth
	}
	if len(o.AllowedTypes) == 0 {
		o.AllowedTypes = committype.Defaults()
	}
	return o
}

// BuildPrompt renders a fresh Prompt for status and diff.
func BuildPrompt(opts PromptOptions, status, diff string) (Prompt, error) {
	opts = opts.withDefaults()

	systemTmpl, userTmpl := defaultSystemTemplate, defaultUserTemplate
	if opts.TemplateFile != "" {
		custom, err := LoadTemplate(opts.TemplateFile)
		if err != nil {
			return Prompt{}, err
		}
		if strings.TrimSpace(custom.System) != "" {
			systemTmpl = custom.System
		}
		if strings.TrimSpace(custom.User) != "" {
			userTmpl = custom.User
		}
	}

	if opts.MaxDiffBytes > 0 && len(diff) > opts.MaxDiffBytes {
		diff = truncateToValidUTF8(diff, opts.MaxDiffBytes) + truncatedMarker
	}

	data := TemplateData{
		AllowedTypes:     strings.Join(opts.AllowedTypes, ", "),
		TypeDescriptions: committype.Describe(opts.AllowedTypes),
		MaxSubjectLength: opts.MaxSubjectLength,
		BodyWrapWidth:    opts.BodyWrapWidth,
		Status:           status,
		Diff:             diff,
	}

	system, err := RenderTemplate("system", systemTmpl, data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := RenderTemplate("user", userTmpl, data)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: system, User: user}, nil
}

// LoadTemplate reads a custom template file.
func LoadTemplate(path string) (PromptTemplate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return PromptTemplate{}, fmt.Errorf("unable to read template file %s: %w", path, err)
	}

	var tpl PromptTemplate
	if err := yaml.Unmarshal(content, &tpl); err != nil {
		return PromptTemplate{}, fmt.Errorf("invalid template file %s: %w", path, err)
	}
	if strings.TrimSpace(tpl.System) == "" && strings.TrimSpace(tpl.User) == "" {
		return PromptTemplate{}, fmt.Errorf("template file %s defines neither system nor user", path)
	}
	return tpl, nil
}

func RenderTemplate(name, templateContent string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("template parsing error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template rendering error: %w", err)
	}
	return buf.String(), nil
}

func truncateToValidUTF8(input string, maxBytes int) string {
	if len(input) <= maxBytes {
		return input
	}

	// Only back off to the start of the rune cut by maxBytes; invalid bytes
	// earlier in the input are kept as they are.
	end := maxBytes
	for end > 0 && !utf8.RuneStart(input[end]) {
		end--
	}
	return input[:end]
}
