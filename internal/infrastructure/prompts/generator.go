package prompts

import (
	"fmt"
	"strings"

	lcprompts "github.com/tmc/langchaingo/prompts"
)

// InstructionData is everything the visible agent prompt may contain.
// Credentials are deliberately not part of it.
type InstructionData struct {
	URL          string
	Instructions string
}

type InstructionComposer struct {
	tmpl lcprompts.PromptTemplate
}

func NewInstructionComposer(template string) *InstructionComposer {
	if template == "" {
		template = AgentInstructionTemplate
	}
	return &InstructionComposer{
		tmpl: lcprompts.NewPromptTemplate(template, []string{"url", "instructions"}),
	}
}

func (c *InstructionComposer) Compose(data InstructionData) (string, error) {
	text, err := c.tmpl.Format(map[string]any{
		"url":          data.URL,
		"instructions": strings.TrimSpace(data.Instructions),
	})
	if err != nil {
		return "", fmt.Errorf("render agent instruction: %w", err)
	}
	return strings.TrimSpace(text), nil
}
