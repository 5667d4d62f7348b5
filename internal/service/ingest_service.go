package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokebuilder/internal/domain"
	"pokebuilder/internal/pokeapi"
	"pokebuilder/internal/repository"
)

// IngestReport resume una carga por rango de ids.
type IngestReport struct {
	Imported int64
	Skipped  int64
	Failed   int64
}

// IngestService copia datos de PokéAPI al almacenamiento local.
type IngestService struct {
	source      pokeapi.Client
	types       repository.TypeRepository
	pokemon     repository.PokemonRepository
	items       repository.ItemRepository
	cache       RecommendationCache
	logger      *zap.Logger
	concurrency int
}

func NewIngestService(
	source pokeapi.Client,
	types repository.TypeRepository,
	pokemon repository.PokemonRepository,
	items repository.ItemRepository,
	cache RecommendationCache,
	logger *zap.Logger,
	concurrency int,
) *IngestService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &IngestService{
		source:      source,
		types:       types,
		pokemon:     pokemon,
		items:       items,
		cache:       cache,
		logger:      logger,
		concurrency: concurrency,
	}
}

// IngestTypes carga los 18 tipos. Cualquier fallo aborta: una tabla parcial no sirve.
func (s *IngestService) IngestTypes(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, t := range domain.AllTypes() {
		g.Go(func() error {
			rel, err := s.source.GetType(gCtx, t.String())
			if err != nil {
				return fmt.Errorf("fetch type %s: %w", t, err)
			}
			if err := s.types.Upsert(gCtx, rel); err != nil {
				return fmt.Errorf("store type %s: %w", t, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("types ingested", zap.Int("count", domain.TypeCount))
	return nil
}

// IngestPokemon carga el rango [from, to] de la Pokédex. Los ids inexistentes se
// saltan y los errores de un id no detienen el resto.
func (s *IngestService) IngestPokemon(ctx context.Context, from, to int) (IngestReport, error) {
	return s.ingestRange(ctx, "pokemon", from, to, func(ctx context.Context, id int) error {
		p, err := s.source.GetPokemon(ctx, id)
		if err != nil {
			return err
		}
		return s.pokemon.Upsert(ctx, p)
	})
}

// IngestItems carga el rango [from, to] de objetos.
func (s *IngestService) IngestItems(ctx context.Context, from, to int) (IngestReport, error) {
	return s.ingestRange(ctx, "item", from, to, func(ctx context.Context, id int) error {
		item, err := s.source.GetItem(ctx, id)
		if err != nil {
			return err
		}
		return s.items.Upsert(ctx, item)
	})
}

// BanPokemon marca los ids como prohibidos para las recomendaciones.
func (s *IngestService) BanPokemon(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.pokemon.SetBanned(ctx, ids, true)
	if err != nil {
		return 0, fmt.Errorf("ban pokemon: %w", err)
	}
	s.logger.Info("pokemon banned", zap.Int64("updated", n), zap.Int("requested", len(ids)))
	s.invalidateRecommendations(ctx)
	return n, nil
}

func (s *IngestService) ingestRange(ctx context.Context, kind string, from, to int, load func(context.Context, int) error) (IngestReport, error) {
	if from <= 0 || to < from {
		return IngestReport{}, fmt.Errorf("invalid %s range %d-%d", kind, from, to)
	}

	var imported, skipped, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for id := from; id <= to; id++ {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			err := load(gCtx, id)
			switch {
			case err == nil:
				imported.Add(1)
			case errors.Is(err, pokeapi.ErrNotFound):
				skipped.Add(1)
				s.logger.Warn(kind+" not found upstream", zap.Int("id", id))
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				failed.Add(1)
				s.logger.Warn(kind+" ingest failed", zap.Int("id", id), zap.Error(err))
			}
			return nil
		})
	}
	err := g.Wait()

	report := IngestReport{Imported: imported.Load(), Skipped: skipped.Load(), Failed: failed.Load()}
	s.logger.Info(kind+" ingest finished",
		zap.Int64("imported", report.Imported),
		zap.Int64("skipped", report.Skipped),
		zap.Int64("failed", report.Failed),
	)
	if report.Imported > 0 {
		s.invalidateRecommendations(ctx)
	}
	return report, err
}

// invalidateRecommendations descarta las recomendaciones cacheadas tras cambiar los datos.
// Un fallo solo se registra: la carga ya quedó hecha.
func (s *IngestService) invalidateRecommendations(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("recommendation cache invalidation failed", zap.Error(err))
	}
}
