package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/generate_words.txt
var generateWordsPrompt string

var generateWordsTmpl = template.Must(template.New("generate_words").Parse(generateWordsPrompt))

const (
	DefaultModel = "gemini-2.5-flash"
	DefaultCount = 30
	maxWordLen   = 10
	minWordLen   = 3
)

type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewEngine(ctx context.Context, apiKey, modelName string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	return &Engine{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// GenerateWords asks the model for count words that fit theme.
func (e *Engine) GenerateWords(ctx context.Context, theme string, count int) ([]string, error) {
	prompt, err := renderPrompt(theme, count)
	if err != nil {
		return nil, err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from Gemini")
	}
	return parseWords(string(text))
}

func renderPrompt(theme string, count int) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = "forest animals"
	}
	if count <= 0 {
		count = DefaultCount
	}

	var buf bytes.Buffer
	data := struct {
		Theme string
		Count int
	}{
		Theme: theme,
		Count: count,
	}
	if err := generateWordsTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseWords extracts the word list from a model reply. Words that break
// the prompt's rules are dropped rather than failing the whole list.
func parseWords(reply string) ([]string, error) {
	cleanYAML := strings.TrimSpace(reply)
	cleanYAML = strings.TrimPrefix(cleanYAML, "```yaml")
	cleanYAML = strings.TrimPrefix(cleanYAML, "```")
	cleanYAML = strings.TrimSuffix(cleanYAML, "```")

	var respData struct {
		Words []string `yaml:"words"`
	}
	if err := yaml.Unmarshal([]byte(cleanYAML), &respData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %v\nOutput was: %s", err, cleanYAML)
	}

	var out []string
	seen := make(map[string]bool)
	for _, w := range respData.Words {
		w = strings.ToLower(strings.TrimSpace(w))
		if !isPlainWord(w) || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable words in Gemini output: %s", cleanYAML)
	}
	return out, nil
}

func isPlainWord(w string) bool {
	if len(w) < minWordLen || len(w) > maxWordLen {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ThemeSource is a word source backed by the engine.
type ThemeSource struct {
	Engine *Engine
	Theme  string
	Count  int
}

func (s ThemeSource) LoadWords(ctx context.Context) ([]string, error) {
	return s.Engine.GenerateWords(ctx, s.Theme, s.Count)
}
