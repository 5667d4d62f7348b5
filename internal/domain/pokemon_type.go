package domain

import (
	"encoding/json"
	"strings"
)

// PokemonType es el tipo elemental. El conjunto es cerrado: cualquier nombre
// fuera de los 18 conocidos se representa como TypeUnknown.
type PokemonType uint8

const (
	TypeUnknown PokemonType = iota
	TypeNormal
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
)

// TypeCount es la cantidad de tipos conocidos.
const TypeCount = 18

var typeNames = [...]string{
	TypeUnknown:  "unknown",
	TypeNormal:   "normal",
	TypeFire:     "fire",
	TypeWater:    "water",
	TypeElectric: "electric",
	TypeGrass:    "grass",
	TypeIce:      "ice",
	TypeFighting: "fighting",
	TypePoison:   "poison",
	TypeGround:   "ground",
	TypeFlying:   "flying",
	TypePsychic:  "psychic",
	TypeBug:      "bug",
	TypeRock:     "rock",
	TypeGhost:    "ghost",
	TypeDragon:   "dragon",
	TypeDark:     "dark",
	TypeSteel:    "steel",
	TypeFairy:    "fairy",
}

var typesByName = func() map[string]PokemonType {
	m := make(map[string]PokemonType, TypeCount)
	for _, t := range AllTypes() {
		m[typeNames[t]] = t
	}
	return m
}()

// AllTypes devuelve los 18 tipos conocidos en orden de tabla.
func AllTypes() []PokemonType {
	out := make([]PokemonType, 0, TypeCount)
	for t := TypeNormal; t <= TypeFairy; t++ {
		out = append(out, t)
	}
	return out
}

// ParsePokemonType normaliza el nombre y devuelve TypeUnknown, false si no es un tipo conocido.
func ParsePokemonType(name string) (PokemonType, bool) {
	t, ok := typesByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return TypeUnknown, false
	}
	return t, true
}

// ParsePokemonTypes convierte una lista de nombres; los desconocidos se conservan como TypeUnknown.
func ParsePokemonTypes(names []string) []PokemonType {
	out := make([]PokemonType, 0, len(names))
	for _, n := range names {
		t, _ := ParsePokemonType(n)
		out = append(out, t)
	}
	return out
}

func (t PokemonType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return typeNames[TypeUnknown]
}

// Known indica si el tipo es uno de los 18 de la tabla.
func (t PokemonType) Known() bool {
	return t >= TypeNormal && t <= TypeFairy
}

func (t PokemonType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PokemonType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*t, _ = ParsePokemonType(name)
	return nil
}

// TypeNames convierte tipos a sus nombres.
func TypeNames(types []PokemonType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

// TypeSet es un conjunto de tipos indexado por valor. Se itera siempre en orden de tabla.
type TypeSet [TypeCount + 1]bool

func NewTypeSet(types ...PokemonType) TypeSet {
	var s TypeSet
	for _, t := range types {
		s.Add(t)
	}
	return s
}

func (s *TypeSet) Add(t PokemonType) {
	if int(t) < len(s) {
		s[t] = true
	}
}

func (s TypeSet) Has(t PokemonType) bool {
	return int(t) < len(s) && s[t]
}

func (s TypeSet) Len() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

// Slice devuelve los miembros en orden de tabla (TypeUnknown primero si está presente).
func (s TypeSet) Slice() []PokemonType {
	out := make([]PokemonType, 0, s.Len())
	for i, ok := range s {
		if ok {
			out = append(out, PokemonType(i))
		}
	}
	return out
}

func (s TypeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(TypeNames(s.Slice()))
}

// TypeCounter cuenta apariciones por tipo.
type TypeCounter [TypeCount + 1]int

func (c *TypeCounter) Inc(t PokemonType) {
	if int(t) < len(c) {
		c[t]++
	}
}

func (c TypeCounter) Get(t PokemonType) int {
	if int(t) < len(c) {
		return c[t]
	}
	return 0
}

// Map devuelve solo las entradas positivas, indexadas por nombre.
func (c TypeCounter) Map() map[string]int {
	out := make(map[string]int)
	for i, n := range c {
		if n > 0 {
			out[PokemonType(i).String()] = n
		}
	}
	return out
}

func (c TypeCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}
