package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/usecase"
)

// Mock implementations

type MockVideoRepo struct {
	mock.Mock
}

func (m *MockVideoRepo) GetVideo(ctx context.Context, id string) (*model.VideoRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoRecord), args.Error(1)
}

func (m *MockVideoRepo) CreateVideo(ctx context.Context, video *model.VideoRecord) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepo) ListVideos(ctx context.Context, limit, offset int64) ([]*model.VideoRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoRecord), args.Error(1)
}

func (m *MockVideoRepo) DeleteVideo(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepo) UpdatePlatformStatus(ctx context.Context, id string, platform model.Platform, status model.PublishStatus) error {
	args := m.Called(ctx, id, platform, status)
	return args.Error(0)
}

type MockPublicationRepo struct {
	mock.Mock
}

func (m *MockPublicationRepo) RecordAttempt(ctx context.Context, pub *model.Publication) error {
	args := m.Called(ctx, pub)
	return args.Error(0)
}

func (m *MockPublicationRepo) History(ctx context.Context, videoID string) ([]*model.Publication, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Publication), args.Error(1)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, mediaRef string) (string, error) {
	args := m.Called(ctx, mediaRef)
	return args.String(0), args.Error(1)
}

type MockCredentialSource struct {
	mock.Mock
}

func (m *MockCredentialSource) GetCredentials(platform model.Platform) (model.PlatformCredentials, bool) {
	args := m.Called(platform)
	return args.Get(0).(model.PlatformCredentials), args.Bool(1)
}

type MockPlatformClient struct {
	mock.Mock
	platform model.Platform
}

func (m *MockPlatformClient) Platform() model.Platform { return m.platform }

func (m *MockPlatformClient) Publish(ctx context.Context, upload repository.PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error) {
	args := m.Called(ctx, upload, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishResult), args.Error(1)
}

func youtubeCreds() model.PlatformCredentials {
	return model.PlatformCredentials{ClientID: "id", ClientSecret: "secret", AccessToken: "at", RefreshToken: "rt"}
}

func tiktokCreds() model.PlatformCredentials {
	return model.PlatformCredentials{AccessToken: "tt", AdvertiserID: "adv"}
}

func testVideo() *model.VideoRecord {
	return &model.VideoRecord{
		ID:       "vid-1",
		Title:    "Open house recap",
		MediaRef: "videos/final_1.mp4",
	}
}

func newFixture() (*MockVideoRepo, *MockPublicationRepo, *MockResolver, *MockCredentialSource) {
	videoRepo := new(MockVideoRepo)
	pubRepo := new(MockPublicationRepo)
	resolver := new(MockResolver)
	creds := new(MockCredentialSource)
	return videoRepo, pubRepo, resolver, creds
}

// Partial success: YouTube publishes, TikTok rejects the media, and both
// outcomes are terminal and persisted independently.
func TestPublishUsecase_PartialSuccess(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(testVideo(), nil).Once()
	videoRepo.On("UpdatePlatformStatus", mock.Anything, "vid-1", mock.Anything, mock.Anything).Return(nil)
	pubRepo.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
	resolver.On("Resolve", mock.Anything, "videos/final_1.mp4").
		Return("https://res.cloudinary.com/demo/video/upload/videos/final_1.mp4", nil).Once()

	credSource.On("GetCredentials", model.PlatformYouTube).Return(youtubeCreds(), true)
	credSource.On("GetCredentials", model.PlatformTikTok).Return(tiktokCreds(), true)

	yt := &MockPlatformClient{platform: model.PlatformYouTube}
	yt.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.PublishResult{Success: true, RemoteID: "yt123", RemoteURL: "https://www.youtube.com/watch?v=yt123"}, nil).Once()

	tt := &MockPlatformClient{platform: model.PlatformTikTok}
	tt.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, model.NewPublishError(model.ErrKindMediaRejected, "unsupported aspect ratio")).Once()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource,
		[]repository.IPlatformClient{yt, tt}, nil, nil)

	results, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"youtube", "tiktok"})

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[model.PlatformYouTube].Success)
	assert.Equal(t, "yt123", results[model.PlatformYouTube].RemoteID)

	assert.False(t, results[model.PlatformTikTok].Success)
	assert.Equal(t, model.ErrKindMediaRejected, results[model.PlatformTikTok].ErrorKind)
	assert.Equal(t, "unsupported aspect ratio", results[model.PlatformTikTok].ErrorMessage)

	// Pending then terminal status per platform.
	videoRepo.AssertNumberOfCalls(t, "UpdatePlatformStatus", 4)
	pubRepo.AssertNumberOfCalls(t, "RecordAttempt", 2)
	yt.AssertExpectations(t)
	tt.AssertExpectations(t)
}

// Result keys equal the requested platform set exactly.
func TestPublishUsecase_ResultKeysMatchRequest(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(testVideo(), nil).Once()
	videoRepo.On("UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pubRepo.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return("https://cdn/video.mp4", nil)

	credSource.On("GetCredentials", model.PlatformInstagram).Return(model.PlatformCredentials{AccessToken: "t", AccountID: "a"}, true)

	ig := &MockPlatformClient{platform: model.PlatformInstagram}
	ig.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.PublishResult{Success: true, RemoteID: "m1"}, nil).Once()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource,
		[]repository.IPlatformClient{ig}, nil, nil)

	results, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"instagram"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	_, ok := results[model.PlatformInstagram]
	assert.True(t, ok)
}

// Missing credentials fail the platform as auth_error with zero network calls:
// the client is never invoked and the media is never resolved.
func TestPublishUsecase_MissingCredentialsSkipsClientAndResolver(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(testVideo(), nil).Once()
	videoRepo.On("UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pubRepo.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)

	credSource.On("GetCredentials", model.PlatformYouTube).Return(model.PlatformCredentials{}, false)

	yt := &MockPlatformClient{platform: model.PlatformYouTube}

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource,
		[]repository.IPlatformClient{yt}, nil, nil)

	results, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"youtube"})

	require.NoError(t, err)
	res := results[model.PlatformYouTube]
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrKindAuth, res.ErrorKind)

	yt.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

// An empty platform set is a precondition failure: no store writes at all.
func TestPublishUsecase_EmptyPlatformSetWritesNothing(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource, nil, nil, nil)

	_, err := u.Publish(context.Background(), "vid-1", "user-1", nil)

	require.Error(t, err)
	videoRepo.AssertNotCalled(t, "GetVideo", mock.Anything, mock.Anything)
	videoRepo.AssertNotCalled(t, "UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pubRepo.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
}

// An unknown platform name rejects the whole batch before any state changes.
func TestPublishUsecase_UnknownPlatformWritesNothing(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource, nil, nil, nil)

	_, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"youtube", "myspace"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "myspace")
	videoRepo.AssertNotCalled(t, "GetVideo", mock.Anything, mock.Anything)
	videoRepo.AssertNotCalled(t, "UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// An unknown video aborts before any platform work.
func TestPublishUsecase_VideoNotFound(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-404").Return(nil, repository.ErrVideoNotFound).Once()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource, nil, nil, nil)

	_, err := u.Publish(context.Background(), "vid-404", "user-1", []string{"youtube"})

	require.ErrorIs(t, err, repository.ErrVideoNotFound)
	videoRepo.AssertNotCalled(t, "UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Re-publishing an already published platform is a fresh attempt whose result
// overwrites the stored remote id.
func TestPublishUsecase_RepublishOverwritesRemoteID(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	video := testVideo()
	video.Platforms = map[model.Platform]model.PublishStatus{
		model.PlatformYouTube: {State: model.PublishStatePublished, RemoteID: "yt-old"},
	}

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(video, nil).Once()
	videoRepo.On("UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pubRepo.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return("https://cdn/video.mp4", nil)

	credSource.On("GetCredentials", model.PlatformYouTube).Return(youtubeCreds(), true)

	yt := &MockPlatformClient{platform: model.PlatformYouTube}
	yt.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.PublishResult{Success: true, RemoteID: "yt-new"}, nil).Once()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource,
		[]repository.IPlatformClient{yt}, nil, nil)

	results, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"youtube"})

	require.NoError(t, err)
	assert.Equal(t, "yt-new", results[model.PlatformYouTube].RemoteID)

	terminal := videoRepo.Calls[len(videoRepo.Calls)-1]
	status := terminal.Arguments.Get(3).(model.PublishStatus)
	assert.Equal(t, model.PublishStatePublished, status.State)
	assert.Equal(t, "yt-new", status.RemoteID)
}

// Unresolvable media fails the platform as media_unavailable and the client is
// never called.
func TestPublishUsecase_MediaUnavailable(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(testVideo(), nil).Once()
	videoRepo.On("UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pubRepo.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
	resolver.On("Resolve", mock.Anything, "videos/final_1.mp4").
		Return("", model.NewPublishError(model.ErrKindMediaUnavailable, "media returned HTTP 404")).Once()

	credSource.On("GetCredentials", model.PlatformReihTV).Return(model.PlatformCredentials{APIKey: "k"}, true)

	rtv := &MockPlatformClient{platform: model.PlatformReihTV}

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource,
		[]repository.IPlatformClient{rtv}, nil, nil)

	results, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"reimaginehome_tv"})

	require.NoError(t, err)
	res := results[model.PlatformReihTV]
	assert.Equal(t, model.ErrKindMediaUnavailable, res.ErrorKind)
	rtv.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

// A panicking client is contained to its own platform.
func TestPublishUsecase_ClientPanicBecomesFailedStatus(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(testVideo(), nil).Once()
	videoRepo.On("UpdatePlatformStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pubRepo.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return("https://cdn/video.mp4", nil)

	credSource.On("GetCredentials", model.PlatformYouTube).Return(youtubeCreds(), true)
	credSource.On("GetCredentials", model.PlatformReihTV).Return(model.PlatformCredentials{APIKey: "k"}, true)

	panicking := &panickingClient{platform: model.PlatformYouTube}

	rtv := &MockPlatformClient{platform: model.PlatformReihTV}
	rtv.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.PublishResult{Success: true, RemoteID: "rtv-1"}, nil).Once()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource,
		[]repository.IPlatformClient{panicking, rtv}, nil, nil)

	results, err := u.Publish(context.Background(), "vid-1", "user-1", []string{"youtube", "reimaginehome_tv"})

	require.NoError(t, err)
	assert.False(t, results[model.PlatformYouTube].Success)
	assert.NotEmpty(t, results[model.PlatformYouTube].ErrorMessage)
	assert.True(t, results[model.PlatformReihTV].Success)
}

type panickingClient struct {
	platform model.Platform
}

func (p *panickingClient) Platform() model.Platform { return p.platform }

func (p *panickingClient) Publish(ctx context.Context, upload repository.PublishUpload, creds model.PlatformCredentials) (*model.PublishResult, error) {
	panic("client blew up")
}

func TestPublishUsecase_StatusDefaultsToNotPublished(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	videoRepo.On("GetVideo", mock.Anything, "vid-1").Return(testVideo(), nil).Once()

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource, nil, nil, nil)

	res, err := u.Status(context.Background(), "vid-1")

	require.NoError(t, err)
	require.Len(t, res.Platforms, len(model.AllPlatforms))
	for _, p := range model.AllPlatforms {
		assert.Equal(t, model.PublishStateNotPublished, res.Platforms[p].State)
	}
}

func TestPublishUsecase_Capabilities(t *testing.T) {
	videoRepo, pubRepo, resolver, credSource := newFixture()

	credSource.On("GetCredentials", model.PlatformYouTube).Return(youtubeCreds(), true)
	credSource.On("GetCredentials", model.PlatformInstagram).Return(model.PlatformCredentials{}, false)
	credSource.On("GetCredentials", model.PlatformTikTok).Return(model.PlatformCredentials{AccessToken: "only"}, true)
	credSource.On("GetCredentials", model.PlatformReihTV).Return(model.PlatformCredentials{APIKey: "k"}, true)

	u := usecase.NewPublishUsecase(videoRepo, pubRepo, resolver, credSource, nil, nil, nil)

	caps := u.Capabilities()
	byPlatform := make(map[model.Platform]bool, len(caps))
	for _, c := range caps {
		byPlatform[c.Platform] = c.Configured
	}

	assert.True(t, byPlatform[model.PlatformYouTube])
	assert.False(t, byPlatform[model.PlatformInstagram])
	assert.False(t, byPlatform[model.PlatformTikTok], "incomplete bundle is not configured")
	assert.True(t, byPlatform[model.PlatformReihTV])
}
