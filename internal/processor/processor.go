// Package processor runs the command pipeline: prompt, generate, recover,
// validate, normalize, dispatch.
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/maorhav/concierge/internal/intent"
	"github.com/maorhav/concierge/internal/signature"
	"github.com/maorhav/concierge/internal/timeutil"
)

// Generator is the generation backend producing raw action JSON.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	IsConfigured() bool
}

// Processor converts one natural-language command into dispatched actions.
// It holds no per-request state; each call computes a fresh temporal anchor.
type Processor struct {
	generator  Generator
	dispatcher *Dispatcher
	now        func() time.Time
}

// Config wires the processor's collaborators.
type Config struct {
	Generator  Generator
	Calendar   Calendar
	Tasks      Tasks
	Email      EmailSender
	CalendarID string
	Now        func() time.Time // defaults to time.Now
}

// New creates a new command processor
func New(cfg Config) *Processor {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		generator: cfg.Generator,
		dispatcher: &Dispatcher{
			Calendar:   cfg.Calendar,
			Tasks:      cfg.Tasks,
			Email:      cfg.Email,
			CalendarID: cfg.CalendarID,
		},
		now: now,
	}
}

// Result is the outcome of processing one command.
type Result struct {
	Outcomes []Outcome
	Degraded bool // the actions came from the keyword fallback, not the model
}

// Process runs the full pipeline for one command. Failures before dispatch
// are absorbed by the keyword fallback so the caller always receives at
// least one structurally valid action; failures at or after dispatch are
// reported per action and never halt the remaining actions.
func (p *Processor) Process(ctx context.Context, identity intent.Identity, text string) Result {
	anchor := timeutil.AnchorAt(p.now())

	actions, degraded := p.extract(ctx, identity, text, anchor)

	outcomes := make([]Outcome, 0, len(actions))
	for _, action := range actions {
		outcomes = append(outcomes, p.dispatcher.Dispatch(ctx, action, anchor))
	}

	return Result{Outcomes: outcomes, Degraded: degraded}
}

// extract runs the model pipeline and normalizes its output, degrading to
// the keyword fallback on any failure up through validation.
func (p *Processor) extract(ctx context.Context, identity intent.Identity, text string, anchor timeutil.Anchor) ([]intent.Action, bool) {
	if p.generator == nil || !p.generator.IsConfigured() {
		fmt.Println("Generation backend not configured, using keyword fallback")
		return []intent.Action{intent.Fallback(text)}, true
	}

	raw, err := p.generator.Generate(ctx, intent.SystemPrompt, intent.BuildPrompt(text, identity.DisplayName(), anchor))
	if err != nil {
		fmt.Printf("Generation failed, using keyword fallback: %v\n", err)
		return []intent.Action{intent.Fallback(text)}, true
	}

	env, err := intent.Recover(raw)
	if err != nil {
		fmt.Printf("Response recovery failed, using keyword fallback: %v\n", err)
		return []intent.Action{intent.Fallback(text)}, true
	}

	actions, err := intent.Validate(env)
	if err != nil {
		fmt.Printf("Validation failed, using keyword fallback: %v\n", err)
		return []intent.Action{intent.Fallback(text)}, true
	}

	normalized := make([]intent.Action, len(actions))
	for i, action := range actions {
		normalized[i] = p.normalize(action, identity, anchor)
	}
	return normalized, false
}

// normalize resolves date fields against the request anchor and enforces
// the authenticated user's signature on email bodies. Every action in a
// multi-action envelope resolves against the same anchor.
func (p *Processor) normalize(action intent.Action, identity intent.Identity, anchor timeutil.Anchor) intent.Action {
	switch a := action.(type) {
	case intent.CalendarAction:
		if a.Date != "" {
			if resolved, ok := timeutil.ResolveDate(a.Date, anchor); ok {
				a.Date = resolved
			} else {
				// Unparseable dates are dropped, never defaulted to today.
				a.Date = ""
			}
		}
		return a
	case intent.TaskAction:
		if a.DueDate != "" {
			if _, relative := timeutil.ResolveRelativeDay(a.DueDate, anchor); !relative {
				if resolved, ok := timeutil.ResolveDate(a.DueDate, anchor); ok {
					a.DueDate = resolved
				} else {
					a.DueDate = ""
				}
			}
		}
		return a
	case intent.EmailAction:
		if a.Body != "" {
			a.Body = signature.Enforce(a.Body, identity.DisplayName())
		}
		return a
	default:
		return action
	}
}
