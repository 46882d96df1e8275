package bot

import (
	"context"
	"strings"

	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/providers"
)

const stepWikiInput flow.StepID = "wiki.input"

const wikiPromptText = "📚 Qidiruv so‘zini kiriting (masalan, O‘zbekiston):"

func (a *App) registerWikiFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepWikiInput,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: wikiPromptText}
		},
		Handle: a.handleWikiInput,
	})
}

func (a *App) handleWikiInput(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	info, err := a.wiki.Summary(ctx, strings.TrimSpace(ev.Text))
	if err != nil {
		return flow.Terminal(providers.UserText(err)), nil
	}
	return flow.Terminal(info), nil
}
