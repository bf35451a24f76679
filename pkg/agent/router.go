// Package agent contains the turn router and the two sub-agents it
// dispatches to: a deterministic time agent and a tool-calling general
// agent.
package agent

import (
	"context"

	"github.com/hourglass-ai/hourglass/pkg/intent"
	"github.com/hourglass-ai/hourglass/pkg/logger"
	"github.com/hourglass-ai/hourglass/pkg/providers"
	"github.com/hourglass-ai/hourglass/pkg/session"
)

const routerApology = "Sorry, I cannot provide an answer."

// Router turns one user input into one assistant reply: classify the
// intent, ask back when it is unclear, otherwise dispatch to the time
// agent or the general agent.
type Router struct {
	classifier *intent.Classifier
	timeAgent  *TimeAgent
	general    *GeneralAgent
	sessions   *session.Manager
}

func NewRouter(classifier *intent.Classifier, timeAgent *TimeAgent, general *GeneralAgent, sessions *session.Manager) *Router {
	return &Router{
		classifier: classifier,
		timeAgent:  timeAgent,
		general:    general,
		sessions:   sessions,
	}
}

// HandleTurn processes one user turn for a session and returns the
// finished reply. It never returns an error; every failure degrades to
// a user-facing string.
func (r *Router) HandleTurn(ctx context.Context, sessionKey, input string) string {
	result, question := r.classifier.Process(ctx, input)
	logger.DebugCF("router", "Intent classified", map[string]any{
		"session": sessionKey,
		"intent":  string(result),
	})

	// A clarifying question goes straight back to the user. The turn is
	// not recorded: the user's next message restarts classification
	// from scratch.
	if question != "" {
		return question
	}

	if result == intent.TimeRelated {
		reply, _ := r.timeAgent.Run(ctx, []providers.Message{{Role: "user", Content: input}})
		if reply == "" {
			reply = routerApology
		}
		return reply
	}

	history := r.sessions.GetHistory(sessionKey)
	reply, updated := r.general.Run(ctx, history, input)
	if reply == "" {
		reply = routerApology
	}

	r.sessions.GetOrCreate(sessionKey)
	r.sessions.SetHistory(sessionKey, updated)
	if err := r.sessions.Save(sessionKey); err != nil {
		logger.WarnCF("router", "Session save failed", map[string]any{
			"session": sessionKey,
			"error":   err.Error(),
		})
	}

	return reply
}
