package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
)

// fakeAssociations is an in-memory AssociationRepository with the same
// atomicity contract as the real one: a failing Reconcile leaves the stored
// set untouched.
type fakeAssociations struct {
	edges         map[int64]map[int64]struct{}
	reconcileErr  error
	lastReconcile []int64
}

func newFakeAssociations() *fakeAssociations {
	return &fakeAssociations{edges: map[int64]map[int64]struct{}{}}
}

func (f *fakeAssociations) Reconcile(_ context.Context, entityID int64, tagIDs []int64) error {
	f.lastReconcile = append([]int64(nil), tagIDs...)
	if f.reconcileErr != nil {
		return f.reconcileErr
	}
	set := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		set[id] = struct{}{}
	}
	f.edges[entityID] = set
	return nil
}

func (f *fakeAssociations) AddEdge(_ context.Context, entityID, tagID int64) error {
	set, ok := f.edges[entityID]
	if !ok {
		set = map[int64]struct{}{}
		f.edges[entityID] = set
	}
	if _, dup := set[tagID]; dup {
		return repository.ErrDuplicateEdge
	}
	set[tagID] = struct{}{}
	return nil
}

func (f *fakeAssociations) RemoveEdge(_ context.Context, entityID, tagID int64) (bool, error) {
	set, ok := f.edges[entityID]
	if !ok {
		return false, nil
	}
	if _, present := set[tagID]; !present {
		return false, nil
	}
	delete(set, tagID)
	return true, nil
}

func (f *fakeAssociations) HasEdge(_ context.Context, entityID, tagID int64) (bool, error) {
	_, ok := f.edges[entityID][tagID]
	return ok, nil
}

func (f *fakeAssociations) ListTags(_ context.Context, entityID int64) ([]entity.Tag, error) {
	ids := make([]int64, 0, len(f.edges[entityID]))
	for id := range f.edges[entityID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	tags := make([]entity.Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, entity.Tag{ID: id, Name: fmt.Sprintf("tag-%d", id)})
	}
	return tags, nil
}

func (f *fakeAssociations) ListEntityIDs(_ context.Context, tagID int64) ([]int64, error) {
	var out []int64
	for entityID, set := range f.edges {
		if _, ok := set[tagID]; ok {
			out = append(out, entityID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeAssociations) CountEntities(ctx context.Context, tagID int64) (int64, error) {
	ids, err := f.ListEntityIDs(ctx, tagID)
	return int64(len(ids)), err
}

type fakeGames struct {
	nextID int64
	byID   map[int64]entity.Game
}

func newFakeGames() *fakeGames {
	return &fakeGames{nextID: 1, byID: map[int64]entity.Game{}}
}

func (f *fakeGames) Create(_ context.Context, g *entity.Game) error {
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	f.nextID++
	f.byID[g.ID] = *g
	return nil
}

func (f *fakeGames) GetByID(_ context.Context, id int64) (*entity.Game, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (f *fakeGames) List(_ context.Context) ([]entity.Game, error) {
	out := make([]entity.Game, 0, len(f.byID))
	for id := int64(1); id < f.nextID; id++ {
		if g, ok := f.byID[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func tagIDs(tags []entity.Tag) []int64 {
	out := make([]int64, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}

// fakePublisher records every published catalog event.
type fakePublisher struct {
	events []CatalogEvent
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	ev, ok := body.(CatalogEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T", body)
	}
	f.events = append(f.events, ev)
	return nil
}

func newCatalogFixture() (*CatalogService, *fakeAssociations) {
	genres := newFakeAssociations()
	platforms := newFakeAssociations()
	return NewCatalogService(newFakeGames(), genres, platforms, nil, nil, nil), genres
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []int64{2, 1, 3}, dedupeIDs([]int64{2, 1, 2, 3, 1}))
	assert.Empty(t, dedupeIDs(nil))
	assert.Equal(t, []int64{5}, dedupeIDs([]int64{5, 5, 5}))
}

func TestSetGenresDeduplicatesDesiredSet(t *testing.T) {
	svc, genres := newCatalogFixture()

	err := svc.SetGenres(context.Background(), 7, []int64{2, 1, 2, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, genres.lastReconcile)

	tags, err := svc.GenresOf(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, tagIDs(tags))
}

func TestSetGenresIdempotent(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetGenres(ctx, 7, []int64{1, 2}))
	first, err := svc.GenresOf(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, svc.SetGenres(ctx, 7, []int64{1, 2}))
	second, err := svc.GenresOf(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSetGenresClearsOnEmptySet(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetGenres(ctx, 7, []int64{1, 2}))
	require.NoError(t, svc.SetGenres(ctx, 7, nil))

	tags, err := svc.GenresOf(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestSetGenresFailureLeavesStateUnchanged(t *testing.T) {
	svc, genres := newCatalogFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetGenres(ctx, 7, []int64{1, 2}))

	genres.reconcileErr = errors.New("foreign key violation")
	err := svc.SetGenres(ctx, 7, []int64{1, 99})
	require.Error(t, err)

	genres.reconcileErr = nil
	tags, err := svc.GenresOf(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, tagIDs(tags))
}

func TestAddGenreDuplicateSurfaces(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	require.NoError(t, svc.AddGenre(ctx, 7, 1))
	err := svc.AddGenre(ctx, 7, 1)
	assert.ErrorIs(t, err, repository.ErrDuplicateEdge)

	tags, err := svc.GenresOf(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, tagIDs(tags))
}

func TestRemoveGenreAbsentEdge(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	removed, err := svc.RemoveGenre(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, svc.AddGenre(ctx, 7, 1))
	removed, err = svc.RemoveGenre(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestCatalogEventsNameChangedTags(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewCatalogService(newFakeGames(), newFakeAssociations(), newFakeAssociations(), nil, pub, nil)
	ctx := context.Background()

	require.NoError(t, svc.SetGenres(ctx, 7, []int64{1, 2, 2}))
	require.NoError(t, svc.AddGenre(ctx, 7, 3))
	removed, err := svc.RemoveGenre(ctx, 7, 3)
	require.NoError(t, err)
	require.True(t, removed)

	require.Len(t, pub.events, 3)
	assert.Equal(t, []int64{1, 2}, pub.events[0].TagIDs)
	assert.Equal(t, []int64{3}, pub.events[1].TagIDs)
	// Removal carries the removed tag id so consumers can tell which edge
	// changed, same as an add.
	assert.Equal(t, []int64{3}, pub.events[2].TagIDs)
	for _, ev := range pub.events {
		assert.Equal(t, KindGenres, ev.Kind)
		assert.Equal(t, int64(7), ev.GameID)
		assert.NotEmpty(t, ev.ID)
	}
}

func TestRemoveGenreAbsentEdgePublishesNothing(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewCatalogService(newFakeGames(), newFakeAssociations(), newFakeAssociations(), nil, pub, nil)

	removed, err := svc.RemoveGenre(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, pub.events)
}

func TestGamesWithGenre(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetGenres(ctx, 7, []int64{1}))
	require.NoError(t, svc.SetGenres(ctx, 8, []int64{1, 2}))
	require.NoError(t, svc.SetGenres(ctx, 9, []int64{2}))

	ids, count, err := svc.GamesWithGenre(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, ids)
	assert.Equal(t, int64(2), count)
}

func TestCreateAndGetGame(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	g, err := svc.CreateGame(ctx, "Starfall Vanguard", "co-op shooter")
	require.NoError(t, err)
	require.NotZero(t, g.ID)

	got, err := svc.GetGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Starfall Vanguard", got.Title)

	_, err = svc.GetGame(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
