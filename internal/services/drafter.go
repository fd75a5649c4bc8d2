package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/envutil"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// MessageDrafter produces a short outreach message for an alert, for staff
// to review before sending. Drafting is best-effort: providers are tried in
// order, and if every call fails a deterministic template is used instead.
type MessageDrafter interface {
	Draft(ctx context.Context, alert *types.Alert, memberName string) (string, error)
}

// DraftProvider is one OpenAI-compatible chat backend in the fallback chain.
type DraftProvider struct {
	Name    string
	BaseURL string
	Model   string
	APIKey  string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type messageDrafter struct {
	httpClient *http.Client
	log        *logger.Logger
	providers  []DraftProvider
}

// NewMessageDrafter builds a drafter over the given provider chain. With no
// explicit providers the chain is read from the environment: the primary
// OPENAI_* backend, then an optional OPENAI_FALLBACK_* backend.
func NewMessageDrafter(baseLog *logger.Logger, providers ...DraftProvider) MessageDrafter {
	if len(providers) == 0 {
		providers = providersFromEnv()
	}
	return &messageDrafter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        baseLog.With("service", "MessageDrafter"),
		providers:  providers,
	}
}

func providersFromEnv() []DraftProvider {
	var out []DraftProvider
	if key := envutil.String("OPENAI_API_KEY", ""); key != "" {
		out = append(out, DraftProvider{
			Name:    "openai",
			BaseURL: envutil.String("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   envutil.String("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			APIKey:  key,
		})
	}
	if key := envutil.String("OPENAI_FALLBACK_API_KEY", ""); key != "" {
		out = append(out, DraftProvider{
			Name:    "openai-fallback",
			BaseURL: envutil.String("OPENAI_FALLBACK_BASE_URL", "https://api.openai.com/v1"),
			Model:   envutil.String("OPENAI_FALLBACK_CHAT_MODEL", "gpt-4o-mini"),
			APIKey:  key,
		})
	}
	return out
}

func (d *messageDrafter) Draft(ctx context.Context, alert *types.Alert, memberName string) (string, error) {
	for _, p := range d.providers {
		if p.APIKey == "" {
			continue
		}
		draft, err := d.chat(ctx, p, alert, memberName)
		if err != nil {
			d.log.Warn("draft provider failed, trying next",
				"provider", p.Name, "alert_id", alert.ID, "error", err)
			continue
		}
		return draft, nil
	}
	return templateDraft(alert, memberName), nil
}

func (d *messageDrafter) chat(ctx context.Context, p DraftProvider, alert *types.Alert, memberName string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a warm, short (under 60 words) check-in message from a church pastoral team to %s. Context: %s. %s Do not mention scores, alerts or analytics.",
		memberName, alert.Title, alert.Description)

	body, err := json.Marshal(chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You draft pastoral care messages. Plain, warm, personal. No subject lines."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(p.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return parsed.Choices[0].Message.Content, nil
}

// templateDraft is the deterministic fallback, keyed by alert type.
func templateDraft(alert *types.Alert, memberName string) string {
	switch alert.Type {
	case alerting.AlertChurnRisk, alerting.AlertAttendanceAnomaly:
		return fmt.Sprintf("Hi %s, we've missed seeing you recently and wanted to check in. Is there anything we can pray with you about or help with? You are always welcome here.", memberName)
	case alerting.AlertLifecycleConcern:
		return fmt.Sprintf("Hi %s, just reaching out to say you've been on our hearts. We'd love to catch up whenever suits you.", memberName)
	case alerting.AlertMessagingDisengaged:
		return fmt.Sprintf("Hi %s, we want to make sure we're reaching you the way you prefer. Let us know if another contact method works better for you.", memberName)
	default:
		return fmt.Sprintf("Hi %s, the team at church was thinking of you and wanted to reach out. We hope you're doing well.", memberName)
	}
}
