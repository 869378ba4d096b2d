package openmeteo

import (
	"strings"

	"coffee_backend/internal/feature/climate/domain/entity"
)

// coffeeCities are resolved without calling the geocoding API.
var coffeeCities = map[string][2]float64{
	"barueri-sp":     {-23.511, -46.876},
	"são paulo-sp":   {-23.5489, -46.6388},
	"lavras-mg":      {-21.248, -44.999},
	"varginha-mg":    {-21.551, -45.430},
	"três pontas-mg": {-21.366, -45.512},
	"guaxupé-mg":     {-21.305, -46.712},
	"boquira-ba":     {-12.823, -42.731},
	"machado-mg":     {-21.677, -45.921},
}

func knownCity(place string) (entity.Location, bool) {
	coords, ok := coffeeCities[strings.ToLower(strings.TrimSpace(place))]
	if !ok {
		return entity.Location{}, false
	}
	return entity.Location{
		Name:      place,
		Latitude:  coords[0],
		Longitude: coords[1],
		Timezone:  defaultTimezone,
	}, true
}
