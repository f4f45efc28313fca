package usecase

import (
	"context"
	"errors"
	"fmt"

	"content-ops/domain/dto"
	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
	"content-ops/infrastructure/utils"
)

// StatusBroadcaster pushes per-platform state changes to live UI subscribers.
type StatusBroadcaster interface {
	BroadcastStatus(userID, videoID string, platform model.Platform, status model.PublishStatus)
}

// OutcomeEmitter fans terminal outcomes out to the messaging backends. Emission
// is best effort and never affects the publish result.
type OutcomeEmitter interface {
	Emit(ctx context.Context, evt model.PublishOutcomeEvent)
}

type IPublishUsecase interface {
	Publish(ctx context.Context, videoID, userID string, platforms []string) (map[model.Platform]model.PublishResult, error)
	Status(ctx context.Context, videoID string) (*dto.PublishStatusResponse, error)
	History(ctx context.Context, videoID string) ([]*model.Publication, error)
	Capabilities() []dto.PlatformCapability
}

type publishUsecase struct {
	videoRepo       repository.IVideo
	publicationRepo repository.IPublication
	resolver        repository.IMediaResolver
	credentials     repository.ICredentialSource
	clients         map[model.Platform]repository.IPlatformClient
	broadcaster     StatusBroadcaster
	emitter         OutcomeEmitter
}

func NewPublishUsecase(
	videoRepo repository.IVideo,
	publicationRepo repository.IPublication,
	resolver repository.IMediaResolver,
	credentials repository.ICredentialSource,
	clients []repository.IPlatformClient,
	broadcaster StatusBroadcaster,
	emitter OutcomeEmitter,
) IPublishUsecase {
	byPlatform := make(map[model.Platform]repository.IPlatformClient, len(clients))
	for _, c := range clients {
		byPlatform[c.Platform()] = c
	}
	return &publishUsecase{
		videoRepo:       videoRepo,
		publicationRepo: publicationRepo,
		resolver:        resolver,
		credentials:     credentials,
		clients:         byPlatform,
		broadcaster:     broadcaster,
		emitter:         emitter,
	}
}

// Publish runs one attempt against each requested platform, sequentially and
// independently. Partial success is a valid terminal outcome; the caller gets
// one result per requested platform, nothing is retried automatically, and a
// re-publish of an already published platform overwrites the previous remote id.
func (u *publishUsecase) Publish(ctx context.Context, videoID, userID string, platforms []string) (map[model.Platform]model.PublishResult, error) {
	if videoID == "" {
		return nil, errors.New("videoID required")
	}
	if len(platforms) == 0 {
		return nil, errors.New("platforms required")
	}

	// Validate the whole set before any state is touched.
	requested := make([]model.Platform, 0, len(platforms))
	seen := make(map[model.Platform]struct{}, len(platforms))
	for _, raw := range platforms {
		p, err := model.ParsePlatform(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		requested = append(requested, p)
	}

	video, err := u.videoRepo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	upload := repository.PublishUpload{
		ThumbnailURL: video.ThumbnailRef,
		Title:        video.Title,
		Description:  video.Description,
		Tags:         video.Tags,
	}

	// The media URL is resolved once per batch, lazily, so a batch where every
	// platform fails its credential precondition performs no network calls.
	var mediaURL string
	var mediaErr error
	resolveMedia := func() (string, error) {
		if mediaURL != "" || mediaErr != nil {
			return mediaURL, mediaErr
		}
		mediaURL, mediaErr = u.resolver.Resolve(ctx, video.MediaRef)
		return mediaURL, mediaErr
	}

	results := make(map[model.Platform]model.PublishResult, len(requested))
	for _, platform := range requested {
		u.setStatus(ctx, userID, videoID, platform, model.PublishStatus{
			State:     model.PublishStatePending,
			UpdatedAt: utils.GetCurrentTime(),
		})

		result := u.attempt(ctx, platform, upload, resolveMedia)
		results[platform] = result

		status := result.Status(utils.GetCurrentTime())
		u.setStatus(ctx, userID, videoID, platform, status)
		u.record(ctx, videoID, platform, status)
		u.emit(ctx, videoID, platform, status)
	}
	return results, nil
}

// attempt runs a single platform publish, converting every failure mode,
// panics included, into a failed result.
func (u *publishUsecase) attempt(ctx context.Context, platform model.Platform, upload repository.PublishUpload, resolveMedia func() (string, error)) (result model.PublishResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"platform": platform,
				"panic":    r,
			}).Error("platform client panicked")
			result = model.PublishResult{
				ErrorKind:    model.ErrKindTransientNetwork,
				ErrorMessage: fmt.Sprintf("platform client panicked: %v", r),
			}
		}
	}()

	client, ok := u.clients[platform]
	if !ok {
		return model.ResultFromError(model.NewPublishError(model.ErrKindTransientNetwork, "no client registered for %s", platform))
	}

	creds, configured := u.credentials.GetCredentials(platform)
	if !configured {
		return model.ResultFromError(model.NewPublishError(model.ErrKindAuth, "%s is not configured", platform))
	}
	if missing := creds.MissingFields(platform); len(missing) > 0 {
		return model.ResultFromError(model.NewPublishError(model.ErrKindAuth, "%s credentials incomplete", platform))
	}

	url, err := resolveMedia()
	if err != nil {
		return model.ResultFromError(err)
	}
	upload.MediaURL = url

	res, err := client.Publish(ctx, upload, creds)
	if err != nil {
		return model.ResultFromError(err)
	}
	if res == nil || !res.Success || res.RemoteID == "" {
		return model.ResultFromError(model.NewPublishError(model.ErrKindTransientNetwork, "%s returned no remote id", platform))
	}
	return *res
}

func (u *publishUsecase) setStatus(ctx context.Context, userID, videoID string, platform model.Platform, status model.PublishStatus) {
	if err := u.videoRepo.UpdatePlatformStatus(ctx, videoID, platform, status); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":    err,
			"video_id": videoID,
			"platform": platform,
		}).Error("Error while persisting platform status")
	}
	if u.broadcaster != nil {
		u.broadcaster.BroadcastStatus(userID, videoID, platform, status)
	}
}

func (u *publishUsecase) record(ctx context.Context, videoID string, platform model.Platform, status model.PublishStatus) {
	if u.publicationRepo == nil {
		return
	}
	pub := &model.Publication{
		VideoID:   videoID,
		Platform:  platform,
		Status:    string(status.State),
		CreatedAt: status.UpdatedAt,
	}
	if status.RemoteID != "" {
		pub.RemoteID = &status.RemoteID
	}
	if status.RemoteURL != "" {
		pub.PostURL = &status.RemoteURL
	}
	if status.ErrorMessage != "" {
		pub.ErrorMessage = &status.ErrorMessage
	}
	if err := u.publicationRepo.RecordAttempt(ctx, pub); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while recording publish attempt")
	}
}

func (u *publishUsecase) emit(ctx context.Context, videoID string, platform model.Platform, status model.PublishStatus) {
	if u.emitter == nil {
		return
	}
	u.emitter.Emit(ctx, model.PublishOutcomeEvent{
		VideoID:      videoID,
		Platform:     platform,
		State:        string(status.State),
		RemoteID:     status.RemoteID,
		RemoteURL:    status.RemoteURL,
		ErrorKind:    string(status.ErrorKind),
		ErrorMessage: status.ErrorMessage,
		OccurredAt:   status.UpdatedAt,
	})
}

func (u *publishUsecase) Status(ctx context.Context, videoID string) (*dto.PublishStatusResponse, error) {
	video, err := u.videoRepo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	statuses := make(map[model.Platform]model.PublishStatus, len(model.AllPlatforms))
	for _, p := range model.AllPlatforms {
		statuses[p] = video.StatusFor(p)
	}
	return &dto.PublishStatusResponse{VideoID: video.ID, Platforms: statuses}, nil
}

func (u *publishUsecase) History(ctx context.Context, videoID string) ([]*model.Publication, error) {
	if u.publicationRepo == nil {
		return nil, nil
	}
	return u.publicationRepo.History(ctx, videoID)
}

// Capabilities reports which platforms have a configured credential bundle so
// the UI can grey out the rest.
func (u *publishUsecase) Capabilities() []dto.PlatformCapability {
	caps := make([]dto.PlatformCapability, 0, len(model.AllPlatforms))
	for _, p := range model.AllPlatforms {
		configured := false
		if creds, ok := u.credentials.GetCredentials(p); ok {
			configured = len(creds.MissingFields(p)) == 0
		}
		caps = append(caps, dto.PlatformCapability{Platform: p, Configured: configured})
	}
	return caps
}
