package http

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pokebuilder/internal/domain"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators añade las reglas propias al validador de gin.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		validatorsErr = v.RegisterValidation("pokemon_type", validPokemonType)
	})
	return validatorsErr
}

func validPokemonType(fl validator.FieldLevel) bool {
	_, ok := domain.ParsePokemonType(fl.Field().String())
	return ok
}

// parseIDList acepta ids repetidos (?team_ids=1&team_ids=4) o separados por comas.
func parseIDList(values []string) ([]int, error) {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				return nil, errors.New("invalid pokedex id: " + part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
