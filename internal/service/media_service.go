package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paths-api/internal/domain"
	"paths-api/internal/media"
	"paths-api/internal/repository"
)

var ErrMediaNotAllowed = errors.New("media generation requires a premium subscription")

var imageStyleModifiers = map[string]string{
	"realistic":  "photorealistic, high quality, detailed, 8k resolution",
	"artistic":   "artistic, painterly, creative, expressive, vibrant colors",
	"cinematic":  "cinematic lighting, dramatic, film still, professional photography",
	"vintage":    "vintage style, retro, nostalgic, film grain, muted colors",
	"futuristic": "futuristic, sci-fi, high-tech, neon lights, cyberpunk",
	"minimalist": "minimalist, clean, simple, elegant, modern design",
}

var videoStyleModifiers = map[string]string{
	"cinematic":   "cinematic shot, smooth camera movement, professional cinematography",
	"documentary": "documentary style, natural lighting, realistic movement",
	"artistic":    "artistic video, creative transitions, expressive movement",
	"timelapse":   "time-lapse style, accelerated motion, dynamic changes",
	"slowmotion":  "slow motion, fluid movement, dramatic effect",
}

// MediaInput es la solicitud de generacion para un evento de simulacion.
type MediaInput struct {
	SimulationID string
	EventID      string
	Prompt       string
	Type         domain.MediaType
	Style        string
	Duration     int
}

// MediaService orquesta la generacion de media: valida tier y propiedad,
// enriquece el prompt, llama al backend y persiste la referencia.
type MediaService struct {
	logger    *zap.Logger
	client    media.Client
	mediaRepo repository.MediaRepository
	analytics repository.AnalyticsRepository
	simSvc    *SimulationService
	profiles  repository.ProfileRepository
}

func NewMediaService(
	logger *zap.Logger,
	client media.Client,
	mediaRepo repository.MediaRepository,
	analytics repository.AnalyticsRepository,
	simSvc *SimulationService,
	profiles repository.ProfileRepository,
) *MediaService {
	return &MediaService{
		logger:    logger,
		client:    client,
		mediaRepo: mediaRepo,
		analytics: analytics,
		simSvc:    simSvc,
		profiles:  profiles,
	}
}

// Generate produce un asset para un evento de la simulacion del usuario.
// Si el backend falla se devuelve un placeholder en vez de error: un asset
// degradado es mejor que romper la experiencia premium.
func (s *MediaService) Generate(ctx context.Context, userID string, input MediaInput) (domain.GeneratedMedia, error) {
	tier, err := s.profiles.GetTier(ctx, userID)
	if err != nil {
		return domain.GeneratedMedia{}, fmt.Errorf("get tier: %w", err)
	}
	if !tier.CanGenerateMedia() {
		return domain.GeneratedMedia{}, ErrMediaNotAllowed
	}

	if _, err := s.simSvc.GetSimulation(ctx, userID, input.SimulationID); err != nil {
		return domain.GeneratedMedia{}, err
	}

	req := s.buildRequest(input)
	asset, err := s.client.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("media backend failed, using placeholder",
			zap.Error(err),
			zap.String("simulation_id", input.SimulationID),
		)
		asset = placeholderAsset(req)
	}

	record := domain.GeneratedMedia{
		ID:           uuid.NewString(),
		SimulationID: input.SimulationID,
		EventID:      input.EventID,
		UserID:       userID,
		MediaType:    asset.Type,
		MediaURL:     asset.URL,
		Prompt:       asset.Prompt,
		Style:        asset.Style,
		Metadata:     asset.Metadata,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.mediaRepo.Create(ctx, record); err != nil {
		s.logger.Warn("media record store failed", zap.Error(err), zap.String("media_id", record.ID))
	}
	s.recordAnalytics(ctx, record)

	return record, nil
}

func (s *MediaService) recordAnalytics(ctx context.Context, record domain.GeneratedMedia) {
	if s.analytics == nil {
		return
	}
	event := domain.AnalyticsEvent{
		ID:           uuid.NewString(),
		UserID:       record.UserID,
		SimulationID: record.SimulationID,
		EventType:    "media_generated",
		EventData: map[string]any{
			"media_id":   record.ID,
			"media_type": string(record.MediaType),
			"style":      record.Style,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.analytics.Record(ctx, event); err != nil {
		s.logger.Warn("analytics record failed", zap.Error(err), zap.String("media_id", record.ID))
	}
}

// ListBySimulation devuelve los assets generados para una simulacion del usuario.
func (s *MediaService) ListBySimulation(ctx context.Context, userID, simulationID string) ([]domain.GeneratedMedia, error) {
	if _, err := s.simSvc.GetSimulation(ctx, userID, simulationID); err != nil {
		return nil, err
	}
	return s.mediaRepo.ListBySimulation(ctx, simulationID)
}

// EventPrompt arma un prompt de generacion a partir de un evento de vida.
func EventPrompt(e domain.LifeEvent) string {
	return fmt.Sprintf("%s: %s (%s outlook, %s)", e.Title, e.Description, e.Impact, e.Category)
}

func (s *MediaService) buildRequest(input MediaInput) media.Request {
	req := media.Request{
		Prompt: input.Prompt,
		Type:   input.Type,
		Style:  input.Style,
	}

	if input.Type == domain.MediaVideo {
		duration := input.Duration
		if duration <= 0 {
			duration = 5
		}
		if duration > 10 {
			duration = 10
		}
		req.Duration = duration

		style, ok := videoStyleModifiers[input.Style]
		if !ok {
			req.Style = "cinematic"
			style = videoStyleModifiers["cinematic"]
		}
		req.Prompt = fmt.Sprintf("%s, %s, high quality video, smooth motion, detailed", input.Prompt, style)
		return req
	}

	style, ok := imageStyleModifiers[input.Style]
	if !ok {
		req.Style = "realistic"
		style = imageStyleModifiers["realistic"]
	}
	req.Prompt = fmt.Sprintf("%s, %s, masterpiece, best quality, highly detailed", input.Prompt, style)
	return req
}

func placeholderAsset(req media.Request) media.Asset {
	if req.Type == domain.MediaVideo {
		return media.Asset{
			URL:    "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4",
			Type:   domain.MediaVideo,
			Prompt: req.Prompt,
			Style:  req.Style,
			Metadata: map[string]any{
				"model": "fallback",
				"type":  "slideshow",
			},
		}
	}
	return media.Asset{
		URL:    fmt.Sprintf("https://picsum.photos/1024/1024?random=%d", time.Now().UnixNano()),
		Type:   domain.MediaImage,
		Prompt: req.Prompt,
		Style:  req.Style,
		Metadata: map[string]any{
			"model": "fallback",
			"type":  "placeholder",
		},
	}
}
