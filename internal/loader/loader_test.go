package loader_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/holocron/internal/loader"
	"github.com/rshade/holocron/internal/swapi"
	"github.com/rshade/holocron/internal/swapi/swapitest"
)

func newLoader(t *testing.T, srv *swapitest.Server, opts ...loader.Option) *loader.Loader {
	t.Helper()
	client := swapi.NewClient(
		swapi.WithBaseURL(srv.BaseURL()),
		swapi.WithHTTPClient(swapi.NewHTTPClient(swapi.HTTPOptions{Timeout: 5 * time.Second})),
	)
	return loader.New(client, opts...)
}

func filmTitles(films []swapi.Film) []string {
	titles := make([]string, 0, len(films))
	for _, f := range films {
		titles = append(titles, f.Title)
	}
	return titles
}

func TestLoad_ResolvesCharacterAndRelations(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	state, err := newLoader(t, srv).Load(context.Background(), "1")
	require.NoError(t, err)

	require.True(t, state.HasCharacter())
	assert.Equal(t, "1", state.ID)
	assert.Equal(t, "Luke Skywalker", state.Character.Name)
	assert.Equal(t, swapi.ImageURL("1"), state.ImageURL)
	assert.Len(t, state.CycleID, 26)
	assert.False(t, state.Loading)
	assert.False(t, state.Failed())
	assert.Empty(t, state.Error)

	assert.Equal(t, []string{
		"A New Hope",
		"The Empire Strikes Back",
		"Return of the Jedi",
		"Revenge of the Sith",
	}, filmTitles(state.Films))
	require.Len(t, state.Starships, 2)
	assert.Equal(t, "X-wing", state.Starships[0].Name)
	assert.Equal(t, "Imperial shuttle", state.Starships[1].Name)
	require.Len(t, state.Vehicles, 2)
	assert.Equal(t, "Snowspeeder", state.Vehicles[0].Name)
	assert.Equal(t, "Imperial Speeder Bike", state.Vehicles[1].Name)

	assert.Equal(t, 8, state.Total)
	assert.Equal(t, 8, state.Fetched)
}

func TestLoad_KeepsReferenceOrder(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	// The first film answers last.
	srv.Delay("films", "1", 100*time.Millisecond)
	srv.Delay("films", "2", 50*time.Millisecond)

	state, err := newLoader(t, srv, loader.WithMaxConcurrency(4)).Load(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"A New Hope",
		"The Empire Strikes Back",
		"Return of the Jedi",
		"Revenge of the Sith",
	}, filmTitles(state.Films))
}

func TestLoad_OneFetchPerReference(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	state, err := newLoader(t, srv).Load(context.Background(), "2")
	require.NoError(t, err)

	assert.Len(t, state.Films, 6)
	assert.Equal(t, 1, srv.Requests("people"))
	assert.Equal(t, 6, srv.Requests("films"))
	assert.Equal(t, 0, srv.Requests("starships"))
	assert.Equal(t, 0, srv.Requests("vehicles"))
	assert.NotNil(t, state.Starships)
	assert.NotNil(t, state.Vehicles)
}

func TestLoad_NoRelations(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	state, err := newLoader(t, srv).Load(context.Background(), "99")
	require.NoError(t, err)

	assert.Equal(t, "Nobody", state.Character.Name)
	assert.Equal(t, 1, srv.TotalRequests())
	assert.NotNil(t, state.Films)
	assert.NotNil(t, state.Starships)
	assert.NotNil(t, state.Vehicles)
	assert.Empty(t, state.Films)
	assert.Empty(t, state.Starships)
	assert.Empty(t, state.Vehicles)
	assert.Equal(t, 0, state.Total)
}

func TestLoad_PrimaryFailure(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()
	srv.FailWith("people", "1", http.StatusInternalServerError)

	state, err := newLoader(t, srv).Load(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, swapi.ErrFetchFailed)

	require.NotNil(t, state)
	assert.False(t, state.Loading)
	assert.False(t, state.HasCharacter())
	assert.True(t, state.Failed())
	assert.NotEmpty(t, state.Error)
	assert.Equal(t, 0, srv.Requests("films"))
	assert.Equal(t, 0, srv.Requests("starships"))
	assert.Equal(t, 0, srv.Requests("vehicles"))
	assert.NotNil(t, state.Films)
}

func TestLoad_UnknownCharacter(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	state, err := newLoader(t, srv).Load(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, swapi.IsNotFound(err))
	assert.False(t, state.Loading)
}

func TestLoad_RelatedFailureAbortsCycle(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()
	srv.FailWith("films", "2", http.StatusInternalServerError)

	state, err := newLoader(t, srv).Load(context.Background(), "1")
	require.Error(t, err)

	var statusErr *swapi.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	// The primary record survives; later sequences are never requested.
	assert.True(t, state.HasCharacter())
	assert.Empty(t, state.Films)
	assert.Equal(t, 0, srv.Requests("starships"))
	assert.Equal(t, 0, srv.Requests("vehicles"))
	assert.False(t, state.Loading)
}

func TestLoad_LaterSequenceFailureKeepsEarlierOnes(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()
	srv.FailWith("vehicles", "30", http.StatusOK)

	state, err := newLoader(t, srv).Load(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, swapi.ErrDecode)

	assert.Len(t, state.Films, 4)
	assert.Len(t, state.Starships, 2)
	assert.Empty(t, state.Vehicles)
}

func TestLoad_EmptyID(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	_, err := newLoader(t, srv).Load(context.Background(), "")
	require.ErrorIs(t, err, swapi.ErrInvalidID)
	assert.Equal(t, 0, srv.TotalRequests())
}

func TestLoad_Cancelled(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := newLoader(t, srv).Load(ctx, "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, state.Loading)
}

func TestLoad_Progress(t *testing.T) {
	srv := swapitest.NewServer()
	defer srv.Close()

	var (
		mu        sync.Mutex
		snapshots []loader.ProgressSnapshot
	)
	l := newLoader(t, srv, loader.WithProgress(func(p loader.ProgressSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, p)
	}))

	_, err := l.Load(context.Background(), "1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	// One report once the character is known, then one per related record.
	require.Len(t, snapshots, 9)
	assert.Equal(t, 0, snapshots[0].Fetched)
	maxFetched := 0
	for _, s := range snapshots {
		assert.Equal(t, 8, s.Total)
		maxFetched = max(maxFetched, s.Fetched)
	}
	assert.Equal(t, 8, maxFetched)
}

func TestNew_Defaults(t *testing.T) {
	l := loader.New(nil)
	assert.Positive(t, l.MaxConcurrency())

	l = loader.New(nil, loader.WithMaxConcurrency(0))
	assert.Positive(t, l.MaxConcurrency())

	l = loader.New(nil, loader.WithMaxConcurrency(3))
	assert.Equal(t, 3, l.MaxConcurrency())
}

func TestProgress(t *testing.T) {
	p := loader.NewProgress(4)
	assert.False(t, p.IsComplete())

	p.Add(2)
	snap := p.Snapshot()
	assert.Equal(t, 2, snap.Fetched)
	assert.InDelta(t, 50.0, snap.PercentComplete, 0.001)

	p.Add(2)
	assert.True(t, p.IsComplete())

	p.SetTotal(0)
	assert.InDelta(t, 0.0, p.Snapshot().PercentComplete, 0.001)
}
