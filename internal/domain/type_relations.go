package domain

// TypeRelations son las seis relaciones de daño de un tipo.
// Los conjuntos "From" describen al tipo defendiendo; los "To" atacando.
type TypeRelations struct {
	Type             PokemonType `json:"name"`
	DoubleDamageFrom TypeSet     `json:"double_damage_from"`
	HalfDamageFrom   TypeSet     `json:"half_damage_from"`
	NoDamageFrom     TypeSet     `json:"no_damage_from"`
	DoubleDamageTo   TypeSet     `json:"double_damage_to"`
	HalfDamageTo     TypeSet     `json:"half_damage_to"`
	NoDamageTo       TypeSet     `json:"no_damage_to"`
}

type offense struct {
	super []PokemonType
	weak  []PokemonType
	none  []PokemonType
}

// standardOffense es la tabla ofensiva de la generación 6 en adelante.
var standardOffense = map[PokemonType]offense{
	TypeNormal:   {weak: []PokemonType{TypeRock, TypeSteel}, none: []PokemonType{TypeGhost}},
	TypeFire:     {super: []PokemonType{TypeGrass, TypeIce, TypeBug, TypeSteel}, weak: []PokemonType{TypeFire, TypeWater, TypeRock, TypeDragon}},
	TypeWater:    {super: []PokemonType{TypeFire, TypeGround, TypeRock}, weak: []PokemonType{TypeWater, TypeGrass, TypeDragon}},
	TypeElectric: {super: []PokemonType{TypeWater, TypeFlying}, weak: []PokemonType{TypeElectric, TypeGrass, TypeDragon}, none: []PokemonType{TypeGround}},
	TypeGrass:    {super: []PokemonType{TypeWater, TypeGround, TypeRock}, weak: []PokemonType{TypeFire, TypeGrass, TypePoison, TypeFlying, TypeBug, TypeDragon, TypeSteel}},
	TypeIce:      {super: []PokemonType{TypeGrass, TypeGround, TypeFlying, TypeDragon}, weak: []PokemonType{TypeFire, TypeWater, TypeIce, TypeSteel}},
	TypeFighting: {super: []PokemonType{TypeNormal, TypeIce, TypeRock, TypeDark, TypeSteel}, weak: []PokemonType{TypePoison, TypeFlying, TypePsychic, TypeBug, TypeFairy}, none: []PokemonType{TypeGhost}},
	TypePoison:   {super: []PokemonType{TypeGrass, TypeFairy}, weak: []PokemonType{TypePoison, TypeGround, TypeRock, TypeGhost}, none: []PokemonType{TypeSteel}},
	TypeGround:   {super: []PokemonType{TypeFire, TypeElectric, TypePoison, TypeRock, TypeSteel}, weak: []PokemonType{TypeGrass, TypeBug}, none: []PokemonType{TypeFlying}},
	TypeFlying:   {super: []PokemonType{TypeGrass, TypeFighting, TypeBug}, weak: []PokemonType{TypeElectric, TypeRock, TypeSteel}},
	TypePsychic:  {super: []PokemonType{TypeFighting, TypePoison}, weak: []PokemonType{TypePsychic, TypeSteel}, none: []PokemonType{TypeDark}},
	TypeBug:      {super: []PokemonType{TypeGrass, TypePsychic, TypeDark}, weak: []PokemonType{TypeFire, TypeFighting, TypePoison, TypeFlying, TypeGhost, TypeSteel, TypeFairy}},
	TypeRock:     {super: []PokemonType{TypeFire, TypeIce, TypeFlying, TypeBug}, weak: []PokemonType{TypeFighting, TypeGround, TypeSteel}},
	TypeGhost:    {super: []PokemonType{TypePsychic, TypeGhost}, weak: []PokemonType{TypeDark}, none: []PokemonType{TypeNormal}},
	TypeDragon:   {super: []PokemonType{TypeDragon}, weak: []PokemonType{TypeSteel}, none: []PokemonType{TypeFairy}},
	TypeDark:     {super: []PokemonType{TypePsychic, TypeGhost}, weak: []PokemonType{TypeFighting, TypeDark, TypeFairy}},
	TypeSteel:    {super: []PokemonType{TypeIce, TypeRock, TypeFairy}, weak: []PokemonType{TypeFire, TypeWater, TypeElectric, TypeSteel}},
	TypeFairy:    {super: []PokemonType{TypeFighting, TypeDragon, TypeDark}, weak: []PokemonType{TypeFire, TypePoison, TypeSteel}},
}

// StandardTypeRelations construye las relaciones completas de los 18 tipos a partir
// de la tabla ofensiva estándar. Se usa como semilla y como fixture en tests.
func StandardTypeRelations() []TypeRelations {
	byType := make(map[PokemonType]*TypeRelations, TypeCount)
	for _, t := range AllTypes() {
		byType[t] = &TypeRelations{Type: t}
	}
	for _, attacker := range AllTypes() {
		o := standardOffense[attacker]
		for _, d := range o.super {
			byType[attacker].DoubleDamageTo.Add(d)
			byType[d].DoubleDamageFrom.Add(attacker)
		}
		for _, d := range o.weak {
			byType[attacker].HalfDamageTo.Add(d)
			byType[d].HalfDamageFrom.Add(attacker)
		}
		for _, d := range o.none {
			byType[attacker].NoDamageTo.Add(d)
			byType[d].NoDamageFrom.Add(attacker)
		}
	}

	out := make([]TypeRelations, 0, TypeCount)
	for _, t := range AllTypes() {
		out = append(out, *byType[t])
	}
	return out
}
