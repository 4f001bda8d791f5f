package repository

import "strings"

const (
	GetAllRestaurantsProc         = "sp_GetAllRestaurants"
	FindRestaurantsProc           = "sp_FindRestaurants"
	GetRestaurantByIDProc         = "sp_GetRestaurantById"
	InsertRestaurantProc          = "sp_InsertRestaurant"
	GetAndInsertRestaurantsProc   = "sp_GetAndInsertRestaurants"
	InsertRestaurantAddressesProc = "sp_InsertRestaurantAddresses"
	UpdateRestaurantProc          = "sp_UpdateRestaurant"
)

const (
	RestaurantType         = "RestaurantType"
	RestaurantLocationType = "RestaurantLocationType"
)

const (
	newRestaurantsParam = "NewRestaurants"
	newAddressesParam   = "NewAddresses"
)

const schemaToken = "{{schema}}"

func withSchema(sql, schema string) string {
	return strings.ReplaceAll(sql, schemaToken, schema)
}

func qualified(schema, name string) string {
	return schema + "." + name
}

const selectRestaurantsSQL = `SELECT
	r.Id,
	r.Name,
	r.CuisineType,
	r.Website,
	r.Phone,
	rl.Street,
	rl.City,
	rl.[State],
	rl.ZipCode,
	rl.Country
FROM [{{schema}}].[Restaurants] r
	INNER JOIN [{{schema}}].[RestaurantLocation] rl
		ON rl.RestaurantId = r.Id`

const (
	getAllStatement  = selectRestaurantsSQL
	findStatement    = selectRestaurantsSQL + "\nWHERE r.Name LIKE '%' + @Name + '%'\n\tAND r.CuisineType LIKE '%' + @Cuisine + '%'"
	getByIDStatement = selectRestaurantsSQL + "\nWHERE r.Id = @Id"
)
