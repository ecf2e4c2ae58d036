package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ayadlabs/propchat/internal/telemetry"
	"github.com/ayadlabs/propchat/internal/tools"
	"github.com/ayadlabs/propchat/models"
	"github.com/ayadlabs/propchat/provider"
	"github.com/ayadlabs/propchat/session"
)

const turnApology = "I'm still thinking about that one. Please try again in a moment."

const (
	intentProperty = "property"
	intentGeneral  = "general"
)

// Orchestrator runs the per-turn protocol: resolve the session, extract
// preferences, classify intent, let the LLM pick a tool, and hand the tool's
// text back to the transport untouched.
type Orchestrator struct {
	llm      provider.Provider
	router   *tools.Router
	sessions session.Store
	tel      *telemetry.Telemetry
	logger   *log.Logger
	timeout  time.Duration
}

func New(llm provider.Provider, router *tools.Router, sessions session.Store, tel *telemetry.Telemetry, timeout time.Duration, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{llm: llm, router: router, sessions: sessions, tel: tel, logger: logger, timeout: timeout}
}

// Respond handles one inbound message and always returns presentable text.
// Session state is persisted only when the turn completes, so a failed turn
// never leaves half-applied preference merges behind.
func (o *Orchestrator) Respond(ctx context.Context, sessionID, message string) string {
	started := time.Now()
	defer func() {
		if o.tel != nil {
			o.tel.TurnDuration.Observe(time.Since(started).Seconds())
		}
	}()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	state, err := o.sessions.Ensure(ctx, sessionID)
	if err != nil {
		o.logger.Printf("[ORCH] session %s: %v", sessionID, err)
		return o.failTurn()
	}

	state.MergePreferences(o.extractPreferences(ctx, message, state.Preferences))

	intent := o.classifyIntent(ctx, message)
	if o.tel != nil {
		o.tel.Turns.WithLabelValues(intent).Inc()
	}

	prompt := message
	if intent == intentProperty && len(state.Preferences) > 0 {
		prompt = fmt.Sprintf("Current preferences: %s\n\nUser message: %s", renderPreferences(state.Preferences), message)
	}

	reply, err := o.selectAndRun(ctx, state, prompt)
	if err != nil {
		o.logger.Printf("[ORCH] session %s turn failed: %v", sessionID, err)
		return o.failTurn()
	}

	state.AppendTurn("user", message)
	state.AppendTurn("assistant", reply)
	state.TurnCount++
	if err := o.sessions.Save(ctx, state); err != nil {
		o.logger.Printf("[ORCH] session %s save: %v", sessionID, err)
	}

	return reply
}

// Reset drops the session so the next turn under the same identifier starts
// fresh.
func (o *Orchestrator) Reset(ctx context.Context, sessionID string) error {
	return o.sessions.Reset(ctx, sessionID)
}

// extractPreferences asks the LLM for structured preferences. Any failure,
// including unparseable output, means "no new preferences".
func (o *Orchestrator) extractPreferences(ctx context.Context, message string, current map[string]string) map[string]string {
	prompt := fmt.Sprintf(preferencePromptFormat, renderPreferences(current), message)
	out, err := o.llm.Complete(ctx, "", prompt)
	if err != nil {
		o.logger.Printf("[ORCH] preference extraction: %v", err)
		return nil
	}

	var prefs map[string]string
	if err := json.Unmarshal([]byte(stripCodeFence(out)), &prefs); err != nil {
		o.logger.Printf("[ORCH] preference extraction: bad JSON: %v", err)
		return nil
	}
	return prefs
}

// classifyIntent sorts a message into property vs general. Failure or an
// unrecognized answer defaults to property.
func (o *Orchestrator) classifyIntent(ctx context.Context, message string) string {
	out, err := o.llm.Complete(ctx, "", fmt.Sprintf(intentPromptFormat, message))
	if err != nil {
		o.logger.Printf("[ORCH] intent classification: %v", err)
		return intentProperty
	}
	if strings.ToLower(strings.TrimSpace(out)) == intentGeneral {
		return intentGeneral
	}
	return intentProperty
}

type toolCall struct {
	Tool      string `json:"tool"`
	Arguments struct {
		Query        string `json:"query"`
		PropertyName string `json:"property_name"`
		AssetKind    string `json:"asset_kind"`
		Answer       string `json:"answer"`
	} `json:"arguments"`
}

// selectAndRun asks the LLM to pick one tool for the prompt and dispatches
// it. The LLM's output is parsed into a closed set of calls; anything else
// falls back to property search, which is the safest useful default.
func (o *Orchestrator) selectAndRun(ctx context.Context, state *session.State, prompt string) (string, error) {
	out, err := o.llm.Complete(ctx, systemPrompt, withHistory(state, prompt))
	if err != nil {
		return "", fmt.Errorf("tool selection: %w", err)
	}

	var call toolCall
	if err := json.Unmarshal([]byte(stripCodeFence(out)), &call); err != nil {
		o.logger.Printf("[ORCH] unparseable tool selection, defaulting to %s", tools.ToolPropertySearch)
		return o.router.SearchProperties(ctx, prompt), nil
	}

	switch call.Tool {
	case tools.ToolPropertySearch:
		query := call.Arguments.Query
		if query == "" {
			query = prompt
		}
		return o.router.SearchProperties(ctx, query), nil
	case tools.ToolFAQSearch:
		query := call.Arguments.Query
		if query == "" {
			query = prompt
		}
		return o.router.SearchFAQs(ctx, query), nil
	case tools.ToolFindAsset:
		kind, ok := parseAssetKind(call.Arguments.AssetKind)
		if !ok {
			o.logger.Printf("[ORCH] unknown asset kind %q, defaulting to %s", call.Arguments.AssetKind, models.AssetImage)
			kind = models.AssetImage
		}
		name := call.Arguments.PropertyName
		if resolved, ok := o.router.ResolveName(ctx, name); ok {
			name = resolved
		}
		return o.router.FindAsset(ctx, name, kind), nil
	case "none":
		if call.Arguments.Answer != "" {
			return call.Arguments.Answer, nil
		}
		return o.router.SearchProperties(ctx, prompt), nil
	default:
		o.logger.Printf("[ORCH] unknown tool %q, defaulting to %s", call.Tool, tools.ToolPropertySearch)
		return o.router.SearchProperties(ctx, prompt), nil
	}
}

func (o *Orchestrator) failTurn() string {
	if o.tel != nil {
		o.tel.TurnFailures.Inc()
	}
	return turnApology
}

func parseAssetKind(s string) (models.AssetKind, bool) {
	switch models.AssetKind(strings.TrimSpace(strings.ToLower(s))) {
	case models.AssetImage:
		return models.AssetImage, true
	case models.AssetBrochure:
		return models.AssetBrochure, true
	case models.AssetFloorPlan:
		return models.AssetFloorPlan, true
	}
	return "", false
}

// withHistory prepends recent conversation turns so tool selection sees the
// dialogue so far.
func withHistory(state *session.State, prompt string) string {
	if len(state.History) == 0 {
		return prompt
	}
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	history := state.History
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	b.WriteString("\n")
	b.WriteString(prompt)
	return b.String()
}

func renderPreferences(prefs map[string]string) string {
	if len(prefs) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%q: %q", k, prefs[k]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// stripCodeFence unwraps a ```json ... ``` block if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 && !strings.HasPrefix(s, "{") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
