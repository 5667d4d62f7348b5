package domain

import (
	"strings"
	"time"
)

// Stat identifica una de las seis estadisticas base.
type Stat string

const (
	StatHP             Stat = "hp"
	StatAttack         Stat = "attack"
	StatDefense        Stat = "defense"
	StatSpecialAttack  Stat = "special_attack"
	StatSpecialDefense Stat = "special_defense"
	StatSpeed          Stat = "speed"
)

// AllStats mantiene el orden canonico de las estadisticas.
var AllStats = []Stat{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// statAliases acepta los nombres que usa PokéAPI ("special-attack") y abreviaturas comunes.
var statAliases = map[string]Stat{
	"hp":              StatHP,
	"attack":          StatAttack,
	"atk":             StatAttack,
	"defense":         StatDefense,
	"def":             StatDefense,
	"special_attack":  StatSpecialAttack,
	"special-attack":  StatSpecialAttack,
	"spa":             StatSpecialAttack,
	"special_defense": StatSpecialDefense,
	"special-defense": StatSpecialDefense,
	"spd":             StatSpecialDefense,
	"speed":           StatSpeed,
	"spe":             StatSpeed,
}

// ParseStat resuelve un nombre o alias de estadistica.
func ParseStat(name string) (Stat, bool) {
	s, ok := statAliases[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Label es el nombre legible de la estadistica.
func (s Stat) Label() string {
	switch s {
	case StatHP:
		return "HP"
	case StatAttack:
		return "Attack"
	case StatDefense:
		return "Defense"
	case StatSpecialAttack:
		return "Special Attack"
	case StatSpecialDefense:
		return "Special Defense"
	case StatSpeed:
		return "Speed"
	}
	return string(s)
}

type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpecialAttack:
		return s.SpecialAttack
	case StatSpecialDefense:
		return s.SpecialDefense
	case StatSpeed:
		return s.Speed
	}
	return 0
}

func (s *Stats) Set(stat Stat, value int) {
	switch stat {
	case StatHP:
		s.HP = value
	case StatAttack:
		s.Attack = value
	case StatDefense:
		s.Defense = value
	case StatSpecialAttack:
		s.SpecialAttack = value
	case StatSpecialDefense:
		s.SpecialDefense = value
	case StatSpeed:
		s.Speed = value
	}
}

// Total es la suma de las seis estadisticas base.
func (s Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// Pokemon es el registro inmutable que consume el motor.
type Pokemon struct {
	PokedexID int           `json:"pokedex_id"`
	Name      string        `json:"name"`
	Types     []PokemonType `json:"types"`
	Stats     Stats         `json:"stats"`
	IsBanned  bool          `json:"is_banned"`
}

// IsDualType indica si el Pokémon tiene dos tipos.
func (p Pokemon) IsDualType() bool {
	return len(p.Types) == 2
}

type Ability struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
}

type Move struct {
	Name        string `json:"name"`
	LearnMethod string `json:"learn_method"`
}

// PokemonDetail agrega los datos que no usa el motor (habilidades y movimientos).
type PokemonDetail struct {
	Pokemon
	Abilities []Ability `json:"abilities"`
	MovesPool []Move    `json:"moves_pool"`
}

type Item struct {
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Cost     int    `json:"cost"`
	Effect   string `json:"effect"`
}

type TeamMember struct {
	BasePokemon string         `json:"base_pokemon"`
	Nickname    string         `json:"nickname,omitempty"`
	Item        string         `json:"item,omitempty"`
	Ability     string         `json:"ability,omitempty"`
	TeraType    string         `json:"tera_type,omitempty"`
	Nature      string         `json:"nature,omitempty"`
	Moves       []string       `json:"moves"`
	EVs         map[string]int `json:"evs"`
}

type Team struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Name        string       `json:"team_name"`
	Description string       `json:"description,omitempty"`
	Format      string       `json:"format"`
	Members     []TeamMember `json:"team_members"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
