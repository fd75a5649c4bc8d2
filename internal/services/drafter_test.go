package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

func TestTemplateDraft(t *testing.T) {
	cases := []struct {
		alertType alerting.AlertType
		fragment  string
	}{
		{alerting.AlertChurnRisk, "missed seeing you"},
		{alerting.AlertAttendanceAnomaly, "missed seeing you"},
		{alerting.AlertLifecycleConcern, "on our hearts"},
		{alerting.AlertMessagingDisengaged, "contact method"},
		{alerting.AlertClusterHealth, "thinking of you"},
	}
	for _, tc := range cases {
		draft := templateDraft(&types.Alert{Type: tc.alertType}, "Ama")
		if !strings.Contains(draft, "Ama") {
			t.Fatalf("%s: draft missing member name: %q", tc.alertType, draft)
		}
		if !strings.Contains(draft, tc.fragment) {
			t.Fatalf("%s: draft = %q, want fragment %q", tc.alertType, draft, tc.fragment)
		}
	}
}

func draftLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestDraft_FallsThroughProviderChain(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi Ama, thinking of you this week."}}]}`))
	}))
	defer working.Close()

	drafter := NewMessageDrafter(draftLogger(t),
		DraftProvider{Name: "primary", BaseURL: broken.URL, Model: "m", APIKey: "k1"},
		DraftProvider{Name: "secondary", BaseURL: working.URL, Model: "m", APIKey: "k2"},
	)

	draft, err := drafter.Draft(context.Background(), &types.Alert{Type: alerting.AlertChurnRisk}, "Ama")
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if draft != "Hi Ama, thinking of you this week." {
		t.Fatalf("draft = %q, want the second provider's completion", draft)
	}
}

func TestDraft_AllProvidersFailUsesTemplate(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer broken.Close()

	drafter := NewMessageDrafter(draftLogger(t),
		DraftProvider{Name: "primary", BaseURL: broken.URL, Model: "m", APIKey: "k1"},
		DraftProvider{Name: "secondary", BaseURL: broken.URL, Model: "m", APIKey: "k2"},
	)

	draft, err := drafter.Draft(context.Background(), &types.Alert{Type: alerting.AlertChurnRisk}, "Ama")
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if !strings.Contains(draft, "missed seeing you") {
		t.Fatalf("draft = %q, want the churn template", draft)
	}
}
