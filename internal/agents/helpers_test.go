package agents

import (
	"context"

	"github.com/mikey/inbox-cleanup-agent/internal/utils"
	"go.uber.org/zap"
)

// fakeLLM is a canned LLM client. Tests for the rule tiers use a failing
// fakeLLM to prove no model call is made.
type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestText() *utils.TextProcessor {
	return utils.NewTextProcessor(zap.NewNop(), 0)
}
