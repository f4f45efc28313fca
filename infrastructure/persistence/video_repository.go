package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// VideoRepository persists the video library in MongoDB. Per-platform publish
// state is embedded in the video document, so a status write is one atomic
// single-document update.
type VideoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(client *mongo.Client, dbName string) repository.IVideo {
	return &VideoRepository{collection: client.Database(dbName).Collection("videos")}
}

// EnsureVideoIndexes creates the library indexes; safe to call at startup.
func EnsureVideoIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	coll := client.Database(dbName).Collection("videos")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "script_id", Value: 1}}},
	})
	return err
}

func (r *VideoRepository) GetVideo(ctx context.Context, id string) (*model.VideoRecord, error) {
	var video model.VideoRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) CreateVideo(ctx context.Context, video *model.VideoRecord) error {
	now := time.Now().UTC()
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now
	if video.Platforms == nil {
		video.Platforms = map[model.Platform]model.PublishStatus{}
	}
	// Every platform starts out not_published so the UI can render the full row.
	for _, p := range model.AllPlatforms {
		if _, ok := video.Platforms[p]; !ok {
			video.Platforms[p] = model.PublishStatus{State: model.PublishStateNotPublished, UpdatedAt: now}
		}
	}
	_, err := r.collection.InsertOne(ctx, video)
	return err
}

func (r *VideoRepository) ListVideos(ctx context.Context, limit, offset int64) ([]*model.VideoRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var videos []*model.VideoRecord
	for cursor.Next(ctx) {
		var video model.VideoRecord
		if err := cursor.Decode(&video); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding video record")
			continue
		}
		videos = append(videos, &video)
	}
	return videos, cursor.Err()
}

func (r *VideoRepository) DeleteVideo(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) UpdatePlatformStatus(ctx context.Context, id string, platform model.Platform, status model.PublishStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	field := fmt.Sprintf("platforms.%s", platform)
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrVideoNotFound
	}
	return nil
}
