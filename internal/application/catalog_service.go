package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
	"github.com/playtrove/gamestore/pkg/helpers"
)

// Tag kinds used in cache keys and catalog events.
const (
	KindGenres    = "genres"
	KindPlatforms = "platforms"
)

// CatalogEvent is published after a successful association write so other
// processes (see cmd/catalog_worker) can drop stale cache entries.
type CatalogEvent struct {
	ID     string    `json:"id"`
	GameID int64     `json:"game_id"`
	Kind   string    `json:"kind"`
	TagIDs []int64   `json:"tag_ids"`
	At     time.Time `json:"at"`
}

// CacheKey builds the redis key for a game's tag listing of one kind.
func CacheKey(kind string, gameID int64) string {
	return fmt.Sprintf("game:%s:%d", kind, gameID)
}

// EventPublisher sends catalog events to interested consumers. Satisfied by
// helpers.RabbitPublisher; nil disables publishing.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// CatalogService owns game rows and their genre/platform associations.
// The cache and the publisher are optional; both degrade to no-ops when nil.
type CatalogService struct {
	Games     repository.GameRepository
	Genres    repository.AssociationRepository
	Platforms repository.AssociationRepository
	Cache     *helpers.TagCache
	Pub       EventPublisher
	Logger    *logrus.Logger
}

func NewCatalogService(games repository.GameRepository, genres, platforms repository.AssociationRepository, cache *helpers.TagCache, pub EventPublisher, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Games:     games,
		Genres:    genres,
		Platforms: platforms,
		Cache:     cache,
		Pub:       pub,
		Logger:    logger,
	}
}

// dedupeIDs collapses repeated ids while keeping first-seen order. The
// desired set is conceptually a mathematical set; repeats are not an error.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SetGenres reconciles the stored genre set for a game to equal tagIDs.
func (s *CatalogService) SetGenres(ctx context.Context, gameID int64, tagIDs []int64) error {
	return s.setTags(ctx, s.Genres, KindGenres, gameID, tagIDs)
}

// SetPlatforms reconciles the stored platform set for a game to equal tagIDs.
func (s *CatalogService) SetPlatforms(ctx context.Context, gameID int64, tagIDs []int64) error {
	return s.setTags(ctx, s.Platforms, KindPlatforms, gameID, tagIDs)
}

func (s *CatalogService) setTags(ctx context.Context, repo repository.AssociationRepository, kind string, gameID int64, tagIDs []int64) error {
	ids := dedupeIDs(tagIDs)
	if err := repo.Reconcile(ctx, gameID, ids); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"game_id": gameID, "kind": kind}).Error("reconcile failed")
		}
		return fmt.Errorf("reconcile %s: %w", kind, err)
	}
	s.invalidate(ctx, kind, gameID)
	s.publish(ctx, kind, gameID, ids)
	return nil
}

func (s *CatalogService) AddGenre(ctx context.Context, gameID, tagID int64) error {
	return s.addTag(ctx, s.Genres, KindGenres, gameID, tagID)
}

func (s *CatalogService) AddPlatform(ctx context.Context, gameID, tagID int64) error {
	return s.addTag(ctx, s.Platforms, KindPlatforms, gameID, tagID)
}

func (s *CatalogService) addTag(ctx context.Context, repo repository.AssociationRepository, kind string, gameID, tagID int64) error {
	if err := repo.AddEdge(ctx, gameID, tagID); err != nil {
		// Duplicate edges bubble up unchanged; the caller decides whether
		// already-present counts as success.
		return err
	}
	s.invalidate(ctx, kind, gameID)
	s.publish(ctx, kind, gameID, []int64{tagID})
	return nil
}

func (s *CatalogService) RemoveGenre(ctx context.Context, gameID, tagID int64) (bool, error) {
	return s.removeTag(ctx, s.Genres, KindGenres, gameID, tagID)
}

func (s *CatalogService) RemovePlatform(ctx context.Context, gameID, tagID int64) (bool, error) {
	return s.removeTag(ctx, s.Platforms, KindPlatforms, gameID, tagID)
}

func (s *CatalogService) removeTag(ctx context.Context, repo repository.AssociationRepository, kind string, gameID, tagID int64) (bool, error) {
	removed, err := repo.RemoveEdge(ctx, gameID, tagID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidate(ctx, kind, gameID)
		s.publish(ctx, kind, gameID, []int64{tagID})
	}
	return removed, nil
}

// GenresOf lists a game's genres through the read-through cache.
func (s *CatalogService) GenresOf(ctx context.Context, gameID int64) ([]entity.Tag, error) {
	return s.tagsOf(ctx, s.Genres, KindGenres, gameID)
}

// PlatformsOf lists a game's platforms through the read-through cache.
func (s *CatalogService) PlatformsOf(ctx context.Context, gameID int64) ([]entity.Tag, error) {
	return s.tagsOf(ctx, s.Platforms, KindPlatforms, gameID)
}

func (s *CatalogService) tagsOf(ctx context.Context, repo repository.AssociationRepository, kind string, gameID int64) ([]entity.Tag, error) {
	key := CacheKey(kind, gameID)
	var cached []entity.Tag
	if hit, err := s.Cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	tags, err := repo.ListTags(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, key, tags); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache set failed")
	}
	return tags, nil
}

func (s *CatalogService) GamesWithGenre(ctx context.Context, tagID int64) ([]int64, int64, error) {
	ids, err := s.Genres.ListEntityIDs(ctx, tagID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Genres.CountEntities(ctx, tagID)
	if err != nil {
		return nil, 0, err
	}
	return ids, count, nil
}

func (s *CatalogService) CreateGame(ctx context.Context, title, description string) (*entity.Game, error) {
	g := &entity.Game{Title: title, Description: description}
	if err := s.Games.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *CatalogService) GetGame(ctx context.Context, id int64) (*entity.Game, error) {
	return s.Games.GetByID(ctx, id)
}

func (s *CatalogService) ListGames(ctx context.Context) ([]entity.Game, error) {
	return s.Games.List(ctx)
}

func (s *CatalogService) invalidate(ctx context.Context, kind string, gameID int64) {
	key := CacheKey(kind, gameID)
	if err := s.Cache.Drop(ctx, key); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache invalidation failed")
	}
}

func (s *CatalogService) publish(ctx context.Context, kind string, gameID int64, tagIDs []int64) {
	if s.Pub == nil {
		return
	}
	ev := CatalogEvent{
		ID:     uuid.NewString(),
		GameID: gameID,
		Kind:   kind,
		TagIDs: tagIDs,
		At:     time.Now().UTC(),
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"game_id": gameID, "kind": kind}).Warn("publish catalog event failed")
	}
}
