package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"paths-api/internal/domain"
	"paths-api/internal/media"
)

type mockMediaRepo struct {
	records   []domain.GeneratedMedia
	createErr error
}

func (m *mockMediaRepo) Create(_ context.Context, record domain.GeneratedMedia) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockMediaRepo) ListBySimulation(_ context.Context, simulationID string) ([]domain.GeneratedMedia, error) {
	var out []domain.GeneratedMedia
	for _, r := range m.records {
		if r.SimulationID == simulationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func testMediaService(t *testing.T, tier domain.SubscriptionTier, client media.Client) (*MediaService, *mockMediaRepo, func()) {
	t.Helper()
	profiles := newMockProfileRepo()
	profiles.tier = tier

	sims := newMockSimRepo()
	sims.sims["sim-1"] = domain.Simulation{ID: "sim-1", UserID: "user-1"}

	simSvc := testSimService(newMockDecisionRepo(), profiles, sims, nil, nil)
	mediaRepo := &mockMediaRepo{}
	svc := NewMediaService(zap.NewNop(), client, mediaRepo, nil, simSvc, profiles)
	return svc, mediaRepo, simSvc.Close
}

func TestGenerateMediaTierGate(t *testing.T) {
	client := &media.MockClient{}
	svc, _, done := testMediaService(t, domain.TierFree, client)
	defer done()

	_, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
	})
	if !errors.Is(err, ErrMediaNotAllowed) {
		t.Errorf("free tier error = %v, want ErrMediaNotAllowed", err)
	}
	if client.Requests != 0 {
		t.Error("backend called for a gated request")
	}
}

func TestGenerateMediaOwnership(t *testing.T) {
	client := &media.MockClient{}
	svc, _, done := testMediaService(t, domain.TierPremium, client)
	defer done()

	_, err := svc.Generate(context.Background(), "user-2", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
	})
	if !errors.Is(err, ErrSimulationNotFound) {
		t.Errorf("foreign simulation error = %v, want ErrSimulationNotFound", err)
	}
}

func TestGenerateMediaImagePromptEnhancement(t *testing.T) {
	client := &media.MockClient{
		Asset: media.Asset{
			URL:   "https://cdn.example.com/a.png",
			Type:  domain.MediaImage,
			Style: "artistic",
		},
	}
	svc, repo, done := testMediaService(t, domain.TierPremium, client)
	defer done()

	record, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
		Style:        "artistic",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(client.LastReq.Prompt, "a new life in the mountains, ") {
		t.Errorf("prompt = %q", client.LastReq.Prompt)
	}
	if !strings.Contains(client.LastReq.Prompt, "painterly") {
		t.Errorf("artistic modifier missing from %q", client.LastReq.Prompt)
	}
	if !strings.HasSuffix(client.LastReq.Prompt, "masterpiece, best quality, highly detailed") {
		t.Errorf("image suffix missing from %q", client.LastReq.Prompt)
	}

	if record.MediaURL != "https://cdn.example.com/a.png" {
		t.Errorf("media url = %q", record.MediaURL)
	}
	if len(repo.records) != 1 {
		t.Errorf("stored %d records, want 1", len(repo.records))
	}
}

func TestGenerateMediaUnknownStyleDefaults(t *testing.T) {
	client := &media.MockClient{Asset: media.Asset{URL: "https://cdn.example.com/a.png", Type: domain.MediaImage}}
	svc, _, done := testMediaService(t, domain.TierPremium, client)
	defer done()

	if _, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
		Style:        "not-a-style",
	}); err != nil {
		t.Fatal(err)
	}
	if client.LastReq.Style != "realistic" {
		t.Errorf("style = %q, want default realistic", client.LastReq.Style)
	}
	if !strings.Contains(client.LastReq.Prompt, "photorealistic") {
		t.Errorf("realistic modifier missing from %q", client.LastReq.Prompt)
	}
}

func TestGenerateMediaVideoDurationClamp(t *testing.T) {
	client := &media.MockClient{Asset: media.Asset{URL: "https://cdn.example.com/a.mp4", Type: domain.MediaVideo}}
	svc, _, done := testMediaService(t, domain.TierPremium, client)
	defer done()

	cases := []struct {
		in   int
		want int
	}{
		{0, 5},
		{7, 7},
		{99, 10},
	}
	for _, tc := range cases {
		if _, err := svc.Generate(context.Background(), "user-1", MediaInput{
			SimulationID: "sim-1",
			Prompt:       "a new life in the mountains",
			Type:         domain.MediaVideo,
			Duration:     tc.in,
		}); err != nil {
			t.Fatal(err)
		}
		if client.LastReq.Duration != tc.want {
			t.Errorf("duration in=%d: got %d, want %d", tc.in, client.LastReq.Duration, tc.want)
		}
		if client.LastReq.Style != "cinematic" {
			t.Errorf("video style = %q, want default cinematic", client.LastReq.Style)
		}
	}
}

func TestGenerateMediaBackendFailureFallsBack(t *testing.T) {
	client := &media.MockClient{Err: errors.New("backend down")}
	svc, repo, done := testMediaService(t, domain.TierPremium, client)
	defer done()

	record, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
	})
	if err != nil {
		t.Fatalf("expected placeholder, got error: %v", err)
	}
	if !strings.Contains(record.MediaURL, "picsum.photos") {
		t.Errorf("placeholder url = %q", record.MediaURL)
	}
	if record.Metadata["model"] != "fallback" {
		t.Errorf("metadata = %+v", record.Metadata)
	}
	if len(repo.records) != 1 {
		t.Error("placeholder not stored")
	}

	video, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaVideo,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(video.MediaURL, ".mp4") {
		t.Errorf("video placeholder url = %q", video.MediaURL)
	}
}

func TestListBySimulationOwnership(t *testing.T) {
	client := &media.MockClient{Asset: media.Asset{URL: "https://cdn.example.com/a.png", Type: domain.MediaImage}}
	svc, _, done := testMediaService(t, domain.TierPremium, client)
	defer done()

	if _, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
	}); err != nil {
		t.Fatal(err)
	}

	items, err := svc.ListBySimulation(context.Background(), "user-1", "sim-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("%d items, want 1", len(items))
	}

	if _, err := svc.ListBySimulation(context.Background(), "user-2", "sim-1"); !errors.Is(err, ErrSimulationNotFound) {
		t.Errorf("foreign list error = %v, want ErrSimulationNotFound", err)
	}
}

func TestGenerateMediaRecordsAnalytics(t *testing.T) {
	profiles := newMockProfileRepo()
	profiles.tier = domain.TierPremium
	sims := newMockSimRepo()
	sims.sims["sim-1"] = domain.Simulation{ID: "sim-1", UserID: "user-1"}
	analytics := &mockAnalyticsRepo{}

	simSvc := testSimService(newMockDecisionRepo(), profiles, sims, nil, nil)
	defer simSvc.Close()

	client := &media.MockClient{Asset: media.Asset{URL: "https://cdn.example.com/a.png", Type: domain.MediaImage}}
	svc := NewMediaService(zap.NewNop(), client, &mockMediaRepo{}, analytics, simSvc, profiles)

	if _, err := svc.Generate(context.Background(), "user-1", MediaInput{
		SimulationID: "sim-1",
		Prompt:       "a new life in the mountains",
		Type:         domain.MediaImage,
	}); err != nil {
		t.Fatal(err)
	}

	analytics.mu.Lock()
	defer analytics.mu.Unlock()
	if len(analytics.events) != 1 || analytics.events[0].EventType != "media_generated" {
		t.Errorf("analytics events = %+v", analytics.events)
	}
}

func TestEventPrompt(t *testing.T) {
	e := domain.LifeEvent{
		Title:       "Promotion and Growth",
		Description: "Advanced to senior position",
		Category:    domain.CategoryCareer,
		Impact:      domain.ImpactPositive,
	}
	got := EventPrompt(e)
	want := "Promotion and Growth: Advanced to senior position (positive outlook, career)"
	if got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}
