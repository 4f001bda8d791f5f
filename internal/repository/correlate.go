package repository

import "restaurant-api/internal/model"

// CorrelateIDs copies generated ids from created onto inputs in place, matching
// on the natural key (Name, CuisineType, Phone; case-insensitive). Each input
// takes the first created row that matches in scan order, so inputs sharing a
// natural key all receive the same id. Inputs with no match are set to 0.
// It returns how many inputs were left uncorrelated.
//
// TODO: have sp_GetAndInsertRestaurants return the input ordinal with each id
// so correlation no longer depends on the natural key being unique.
func CorrelateIDs(inputs []model.Restaurant, created []model.Restaurant) int {
	unmatched := 0
	for i := range inputs {
		id := 0
		for j := range created {
			if model.NaturalKeyEqual(inputs[i], created[j]) {
				id = created[j].ID
				break
			}
		}
		inputs[i].ID = id
		if id == 0 {
			unmatched++
		}
	}
	return unmatched
}
