// Package compat evaluates pairwise compatibility heuristics over a build
// selection. Rules are pure functions of the selection; the engine runs
// them in declaration order and skips any rule whose slots are empty.
package compat

import "github.com/stiyes/fpvforge/internal/domain/model"

// Rule is one compatibility heuristic.
type Rule struct {
	ID            string
	RequiredSlots []model.Slot
	Evaluate      func(model.Selection) []string
}

// Finding is a warning tagged with the rule that produced it.
type Finding struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Engine dispatches an ordered rule list.
type Engine struct {
	rules []Rule
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the rule list.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = append([]Rule(nil), rules...)
	}
}

// NewEngine creates an engine with DefaultRules unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns a copy of the configured rules.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Findings runs every applicable rule and returns its warnings in rule
// order. The result is never nil.
func (e *Engine) Findings(sel model.Selection) []Finding {
	out := make([]Finding, 0)
	for _, r := range e.rules {
		if r.Evaluate == nil || !sel.Has(r.RequiredSlots...) {
			continue
		}
		for _, msg := range r.Evaluate(sel) {
			out = append(out, Finding{Rule: r.ID, Message: msg})
		}
	}
	return out
}

// Evaluate returns only the warning messages.
func (e *Engine) Evaluate(sel model.Selection) []string {
	findings := e.Findings(sel)
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

var defaultEngine = NewEngine()

// Evaluate runs the default rule set against sel.
func Evaluate(sel model.Selection) []string {
	return defaultEngine.Evaluate(sel)
}
