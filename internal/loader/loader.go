package loader

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/holocron/internal/logging"
	"github.com/rshade/holocron/internal/swapi"
)

// Fetcher resolves SWAPI records. *swapi.Client satisfies it.
type Fetcher interface {
	GetCharacter(ctx context.Context, id string) (*swapi.Character, error)
	GetFilm(ctx context.Context, url string) (*swapi.Film, error)
	GetStarship(ctx context.Context, url string) (*swapi.Starship, error)
	GetVehicle(ctx context.Context, url string) (*swapi.Vehicle, error)
}

// Loader runs fetch cycles against a Fetcher.
type Loader struct {
	fetcher        Fetcher
	maxConcurrency int
	logger         zerolog.Logger
	onProgress     ProgressFunc
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxConcurrency caps the number of in-flight fetches per sequence.
// Values below one fall back to runtime.NumCPU().
func WithMaxConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxConcurrency = n
		}
	}
}

// WithLogger sets the logger used for cycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logging.ComponentLogger(logger, "loader")
	}
}

// WithProgress registers a callback invoked after every resolved record.
func WithProgress(fn ProgressFunc) Option {
	return func(l *Loader) {
		l.onProgress = fn
	}
}

// New creates a Loader.
func New(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher:        fetcher,
		maxConcurrency: runtime.NumCPU(),
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// MaxConcurrency returns the per-sequence fan-out limit.
func (l *Loader) MaxConcurrency() int {
	return l.maxConcurrency
}

// Load runs one fetch cycle for id.
//
// The returned state is never nil. On failure it holds whatever was resolved before
// the failing fetch, Loading is false, and Err carries the same error that is returned.
func (l *Loader) Load(ctx context.Context, id string) (*ViewState, error) {
	return l.LoadWithProgress(ctx, id, l.onProgress)
}

// LoadWithProgress is Load with a per-cycle progress callback overriding WithProgress.
func (l *Loader) LoadWithProgress(ctx context.Context, id string, onProgress ProgressFunc) (*ViewState, error) {
	state := NewViewState(id)
	state.CycleID = logging.NewID()
	state.Loading = true
	defer func() { state.Loading = false }()

	log := l.logger.With().
		Str("cycle_id", state.CycleID).
		Str("character_id", id).
		Logger()
	start := time.Now()
	log.Debug().Msg("fetch cycle started")

	err := l.run(ctx, state, onProgress)
	duration := time.Since(start)
	if err != nil {
		state.fail(err)
		evt := log.Error()
		if errors.Is(err, context.Canceled) {
			evt = log.Debug()
		}
		evt.Err(err).
			Int("films", len(state.Films)).
			Int("starships", len(state.Starships)).
			Int("vehicles", len(state.Vehicles)).
			Dur("duration_ms", duration).
			Msg("fetch cycle failed")
		return state, err
	}

	log.Info().
		Str("name", state.Character.Name).
		Int("films", len(state.Films)).
		Int("starships", len(state.Starships)).
		Int("vehicles", len(state.Vehicles)).
		Dur("duration_ms", duration).
		Msg("fetch cycle complete")
	return state, nil
}

func (l *Loader) run(ctx context.Context, state *ViewState, onProgress ProgressFunc) error {
	if state.ID == "" {
		return fmt.Errorf("%w: empty identifier", swapi.ErrInvalidID)
	}

	progress := NewProgress(0)
	character, err := l.fetcher.GetCharacter(ctx, state.ID)
	if err != nil {
		return err
	}
	state.Character = character
	state.ImageURL = swapi.ImageURL(state.ID)

	films := character.FilmURLs()
	starships := character.StarshipURLs()
	vehicles := character.VehicleURLs()

	progress.SetTotal(character.RelatedCount())
	state.Total = character.RelatedCount()
	report := func() {
		if onProgress != nil {
			onProgress(progress.Snapshot())
		}
	}
	report()

	if state.Films, err = fetchAll(ctx, l.maxConcurrency, films, l.fetcher.GetFilm, progress, report); err != nil {
		return err
	}
	if state.Starships, err = fetchAll(ctx, l.maxConcurrency, starships, l.fetcher.GetStarship, progress, report); err != nil {
		return err
	}
	if state.Vehicles, err = fetchAll(ctx, l.maxConcurrency, vehicles, l.fetcher.GetVehicle, progress, report); err != nil {
		return err
	}
	state.Fetched = progress.Snapshot().Fetched
	return nil
}

// fetchAll resolves urls concurrently and returns the records in url order.
// On failure the partial results are discarded and an empty, non-nil slice is returned.
func fetchAll[T any](
	ctx context.Context,
	limit int,
	urls []string,
	fetch func(context.Context, string) (*T, error),
	progress *Progress,
	report func(),
) ([]T, error) {
	results := make([]T, len(urls))
	if len(urls) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			record, err := fetch(gctx, u)
			if err != nil {
				return err
			}
			results[i] = *record
			progress.Add(1)
			report()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return []T{}, err
	}
	return results, nil
}
