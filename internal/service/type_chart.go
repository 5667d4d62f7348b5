package service

import (
	"context"
	"errors"
	"fmt"

	"pokebuilder/internal/domain"
)

var (
	// ErrNilTypeChart se devuelve al construir el motor sin tabla de tipos.
	ErrNilTypeChart = errors.New("type chart is nil")
	// ErrIncompleteTypeChart indica que faltan tipos en el dataset cargado.
	ErrIncompleteTypeChart = errors.New("type chart is incomplete")
)

// TypeChart es la tabla de efectividades. Inmutable tras la construcción y segura
// para lectura concurrente.
type TypeChart struct {
	relations [domain.TypeCount + 1]domain.TypeRelations
	loaded    domain.TypeSet
}

// TypeRelationsSource es la fuente externa del dataset de tipos.
type TypeRelationsSource interface {
	ListAll(ctx context.Context) ([]domain.TypeRelations, error)
}

// NewTypeChart valida que el dataset cubra los 18 tipos. Una tabla parcial es un error.
func NewTypeChart(relations []domain.TypeRelations) (*TypeChart, error) {
	c := &TypeChart{}
	for _, rel := range relations {
		if !rel.Type.Known() {
			continue
		}
		c.relations[rel.Type] = rel
		c.loaded.Add(rel.Type)
	}

	var missing []string
	for _, t := range domain.AllTypes() {
		if !c.loaded.Has(t) {
			missing = append(missing, t.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrIncompleteTypeChart, missing)
	}
	return c, nil
}

// LoadTypeChart lee el dataset desde la fuente y construye la tabla.
func LoadTypeChart(ctx context.Context, src TypeRelationsSource) (*TypeChart, error) {
	relations, err := src.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load type relations: %w", err)
	}
	return NewTypeChart(relations)
}

// StandardTypeChart devuelve la tabla estándar embebida.
func StandardTypeChart() *TypeChart {
	c, err := NewTypeChart(domain.StandardTypeRelations())
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup devuelve las relaciones del tipo; false para tipos desconocidos.
func (c *TypeChart) Lookup(t domain.PokemonType) (domain.TypeRelations, bool) {
	if !t.Known() || !c.loaded.Has(t) {
		return domain.TypeRelations{}, false
	}
	return c.relations[t], true
}

// Types devuelve los tipos de la tabla en orden.
func (c *TypeChart) Types() []domain.PokemonType {
	return c.loaded.Slice()
}

func (c *TypeChart) Len() int {
	return c.loaded.Len()
}
