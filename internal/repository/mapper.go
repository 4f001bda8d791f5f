package repository

import (
	"database/sql"
	"strings"

	"restaurant-api/internal/db"
	"restaurant-api/internal/model"
)

// Column names below are the contract with the stored procedures; a renamed
// column reads as a zero value rather than failing.

func restaurantFromRow(row db.Row) model.Restaurant {
	r := model.NewRestaurant()
	r.ID = row.Int("Id")
	r.Name = row.String("Name")
	r.CuisineType = row.String("CuisineType")
	r.Website = model.NormalizeWebsite(row.String("Website"))
	r.Phone = row.String("Phone")
	return r
}

func locationFromRow(row db.Row) model.Location {
	return model.Location{
		Street:  row.String("Street"),
		City:    row.String("City"),
		State:   row.String("State"),
		ZipCode: row.String("ZipCode"),
		Country: row.String("Country"),
	}
}

func restaurantWithLocationFromRow(row db.Row) model.Restaurant {
	r := restaurantFromRow(row)
	r.Address = locationFromRow(row)
	return r
}

func restaurants(rs db.ResultSet, fn func(db.Row) model.Restaurant) []model.Restaurant {
	out := db.MapRows(rs, fn)
	if out == nil {
		return []model.Restaurant{}
	}
	return out
}

// restaurantTypeRow mirrors the RestaurantType table type column order.
type restaurantTypeRow struct {
	ID          int32
	Name        string
	CuisineType string
	Website     *string
	Phone       string
}

// restaurantLocationTypeRow mirrors the RestaurantLocationType table type column order.
type restaurantLocationTypeRow struct {
	ID           int32
	RestaurantID int32
	Street       string
	City         string
	State        string
	Country      string
	ZipCode      string
}

// New parents have no id yet; the Id column is sent as 0 and ignored by the procedure.
func restaurantTypeRowOf(r model.Restaurant) restaurantTypeRow {
	return restaurantTypeRow{
		Name:        r.Name,
		CuisineType: r.CuisineType,
		Website:     optionalString(r.Website),
		Phone:       r.Phone,
	}
}

func restaurantLocationTypeRowOf(r model.Restaurant) restaurantLocationTypeRow {
	return restaurantLocationTypeRow{
		RestaurantID: int32(r.ID),
		Street:       r.Address.Street,
		City:         r.Address.City,
		State:        r.Address.State,
		Country:      r.Address.Country,
		ZipCode:      r.Address.ZipCode,
	}
}

func registerShapes(schema string) {
	db.RegisterShape(db.RowsShape(qualified(schema, RestaurantType), restaurantTypeRowOf))
	db.RegisterShape(db.RowsShape(qualified(schema, RestaurantLocationType), restaurantLocationTypeRowOf))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nullableString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func restaurantArgs(r model.Restaurant) []any {
	return []any{
		sql.Named("Name", r.Name),
		sql.Named("Cuisine", r.CuisineType),
		sql.Named("Website", nullableString(r.Website)),
		sql.Named("Phone", r.Phone),
		sql.Named("Street", r.Address.Street),
		sql.Named("City", r.Address.City),
		sql.Named("State", r.Address.State),
		sql.Named("ZipCode", r.Address.ZipCode),
		sql.Named("Country", r.Address.Country),
	}
}
