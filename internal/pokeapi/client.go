package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pokebuilder/internal/domain"
)

// ErrNotFound indica que PokéAPI no tiene el recurso pedido.
var ErrNotFound = errors.New("pokeapi resource not found")

// Client es la fuente de datos usada por la ingesta.
type Client interface {
	GetType(ctx context.Context, name string) (domain.TypeRelations, error)
	GetPokemon(ctx context.Context, id int) (domain.PokemonDetail, error)
	GetItem(ctx context.Context, id int) (domain.Item, error)
}

// HTTPClient implementa Client contra la API REST pública.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a baseURL (por defecto https://pokeapi.co/api/v2).
func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://pokeapi.co/api/v2"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) GetType(ctx context.Context, name string) (domain.TypeRelations, error) {
	var tr typeResponse
	if err := c.get(ctx, "/type/"+strings.ToLower(name), &tr); err != nil {
		return domain.TypeRelations{}, err
	}
	t, ok := domain.ParsePokemonType(tr.Name)
	if !ok {
		return domain.TypeRelations{}, fmt.Errorf("unknown type %q", tr.Name)
	}
	dr := tr.DamageRelations
	return domain.TypeRelations{
		Type:             t,
		DoubleDamageFrom: toTypeSet(dr.DoubleDamageFrom),
		HalfDamageFrom:   toTypeSet(dr.HalfDamageFrom),
		NoDamageFrom:     toTypeSet(dr.NoDamageFrom),
		DoubleDamageTo:   toTypeSet(dr.DoubleDamageTo),
		HalfDamageTo:     toTypeSet(dr.HalfDamageTo),
		NoDamageTo:       toTypeSet(dr.NoDamageTo),
	}, nil
}

func (c *HTTPClient) GetPokemon(ctx context.Context, id int) (domain.PokemonDetail, error) {
	var pr pokemonResponse
	if err := c.get(ctx, "/pokemon/"+strconv.Itoa(id), &pr); err != nil {
		return domain.PokemonDetail{}, err
	}

	d := domain.PokemonDetail{
		Pokemon: domain.Pokemon{
			PokedexID: pr.ID,
			Name:      pr.Name,
		},
		Abilities: make([]domain.Ability, 0, len(pr.Abilities)),
		MovesPool: make([]domain.Move, 0, len(pr.Moves)),
	}

	names := make([]string, len(pr.Types))
	for i, t := range sortedSlots(pr.Types) {
		names[i] = t.Type.Name
	}
	d.Types = domain.ParsePokemonTypes(names)
	for _, t := range d.Types {
		if !t.Known() {
			c.logger.Warn("pokeapi returned unknown type", zap.Int("pokedex_id", pr.ID), zap.Strings("types", names))
			break
		}
	}

	for _, s := range pr.Stats {
		if stat, ok := domain.ParseStat(s.Stat.Name); ok {
			d.Stats.Set(stat, s.BaseStat)
		}
	}
	for _, a := range pr.Abilities {
		d.Abilities = append(d.Abilities, domain.Ability{Name: a.Ability.Name, IsHidden: a.IsHidden})
	}
	for _, m := range pr.Moves {
		method := ""
		if len(m.VersionGroupDetails) > 0 {
			method = m.VersionGroupDetails[len(m.VersionGroupDetails)-1].MoveLearnMethod.Name
		}
		d.MovesPool = append(d.MovesPool, domain.Move{Name: m.Move.Name, LearnMethod: method})
	}
	return d, nil
}

func (c *HTTPClient) GetItem(ctx context.Context, id int) (domain.Item, error) {
	var ir itemResponse
	if err := c.get(ctx, "/item/"+strconv.Itoa(id), &ir); err != nil {
		return domain.Item{}, err
	}
	item := domain.Item{
		ItemID:   ir.ID,
		Name:     ir.Name,
		Category: ir.Category.Name,
		Cost:     ir.Cost,
	}
	for _, e := range ir.EffectEntries {
		if e.Language.Name == "en" {
			item.Effect = e.ShortEffect
			break
		}
	}
	return item, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode >= 400 {
		c.logger.Warn("pokeapi error status", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("pokeapi http error: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

type namedResource struct {
	Name string `json:"name"`
}

type typeResponse struct {
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageFrom []namedResource `json:"double_damage_from"`
		HalfDamageFrom   []namedResource `json:"half_damage_from"`
		NoDamageFrom     []namedResource `json:"no_damage_from"`
		DoubleDamageTo   []namedResource `json:"double_damage_to"`
		HalfDamageTo     []namedResource `json:"half_damage_to"`
		NoDamageTo       []namedResource `json:"no_damage_to"`
	} `json:"damage_relations"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type pokemonResponse struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Types []typeSlot `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Moves []struct {
		Move                namedResource `json:"move"`
		VersionGroupDetails []struct {
			MoveLearnMethod namedResource `json:"move_learn_method"`
		} `json:"version_group_details"`
	} `json:"moves"`
}

type itemResponse struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Cost          int           `json:"cost"`
	Category      namedResource `json:"category"`
	EffectEntries []struct {
		ShortEffect string        `json:"short_effect"`
		Language    namedResource `json:"language"`
	} `json:"effect_entries"`
}

// sortedSlots ordena por slot; PokéAPI ya los devuelve ordenados pero no lo garantiza.
func sortedSlots(slots []typeSlot) []typeSlot {
	out := append([]typeSlot(nil), slots...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

func toTypeSet(list []namedResource) domain.TypeSet {
	var set domain.TypeSet
	for _, r := range list {
		if t, ok := domain.ParsePokemonType(r.Name); ok {
			set.Add(t)
		}
	}
	return set
}
