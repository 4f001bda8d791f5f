package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant-api/internal/model"
)

func key(name, cuisine, phone string) model.Restaurant {
	return model.Restaurant{Name: name, CuisineType: cuisine, Phone: phone}
}

func withID(r model.Restaurant, id int) model.Restaurant {
	r.ID = id
	return r
}

func TestCorrelateIDsDistinctKeys(t *testing.T) {
	inputs := []model.Restaurant{
		key("Pasta House", "Italian", "555-0100"),
		key("Taco Town", "Mexican", "555-0101"),
	}
	created := []model.Restaurant{
		withID(key("Taco Town", "Mexican", "555-0101"), 11),
		withID(key("Pasta House", "Italian", "555-0100"), 10),
	}

	unmatched := CorrelateIDs(inputs, created)

	assert.Equal(t, 0, unmatched)
	assert.Equal(t, 10, inputs[0].ID)
	assert.Equal(t, 11, inputs[1].ID)
}

func TestCorrelateIDsIgnoresCase(t *testing.T) {
	inputs := []model.Restaurant{key("pasta house", "ITALIAN", "555-0100")}
	created := []model.Restaurant{withID(key("Pasta House", "Italian", "555-0100"), 10)}

	assert.Equal(t, 0, CorrelateIDs(inputs, created))
	assert.Equal(t, 10, inputs[0].ID)
}

func TestCorrelateIDsDuplicateKeysTakeFirstMatch(t *testing.T) {
	inputs := []model.Restaurant{
		key("Pasta House", "Italian", "555-0100"),
		key("Pasta House", "Italian", "555-0100"),
	}
	created := []model.Restaurant{
		withID(key("Pasta House", "Italian", "555-0100"), 10),
		withID(key("Pasta House", "Italian", "555-0100"), 11),
	}

	assert.Equal(t, 0, CorrelateIDs(inputs, created))
	assert.Equal(t, 10, inputs[0].ID)
	assert.Equal(t, 10, inputs[1].ID)
}

func TestCorrelateIDsUnmatchedIsZero(t *testing.T) {
	inputs := []model.Restaurant{
		withID(key("Pasta House", "Italian", "555-0100"), 99),
		key("Ghost Kitchen", "Fusion", "555-0199"),
	}
	created := []model.Restaurant{withID(key("Pasta House", "Italian", "555-0100"), 10)}

	assert.Equal(t, 1, CorrelateIDs(inputs, created))
	assert.Equal(t, 10, inputs[0].ID)
	assert.Equal(t, 0, inputs[1].ID)
}

func TestCorrelateIDsNoCreatedRows(t *testing.T) {
	inputs := []model.Restaurant{withID(key("Pasta House", "Italian", "555-0100"), 5)}

	assert.Equal(t, 1, CorrelateIDs(inputs, nil))
	assert.Equal(t, 0, inputs[0].ID)
}
