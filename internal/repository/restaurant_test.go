package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-api/internal/db"
	"restaurant-api/internal/db/dbtest"
	"restaurant-api/internal/model"
)

var restaurantColumns = []string{
	"Id", "Name", "CuisineType", "Website", "Phone",
	"Street", "City", "State", "ZipCode", "Country",
}

func newRepo(t *testing.T) (RestaurantRepository, sqlmock.Sqlmock) {
	t.Helper()
	dbConn, mock := dbtest.New(t)
	return NewRestaurantRepository(db.NewExecutor(dbConn, "dbo", nil, nil), nil), mock
}

func sampleRestaurant() model.Restaurant {
	return model.Restaurant{
		Name:        "Pasta House",
		CuisineType: "Italian",
		Website:     "https://pasta.example/",
		Phone:       "555-0100",
		Address: model.Location{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			Country: "United States",
			ZipCode: "62701",
		},
	}
}

func TestGetAllMapsRowsAndNulls(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_GetAllRestaurants")).
		WillReturnRows(sqlmock.NewRows(restaurantColumns).
			AddRow(int64(1), "Pasta House", "Italian", "HTTPS://Pasta.Example", "555-0100", "1 Main St", "Springfield", "IL", "62701", "United States").
			AddRow(int64(2), "Taco Town", "Mexican", nil, "555-0101", nil, "Austin", "TX", "73301", "United States"))

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "https://pasta.example/", got[0].Website)
	assert.Equal(t, "Springfield", got[0].Address.City)

	assert.Equal(t, "", got[1].Website)
	assert.Equal(t, "", got[1].Address.Street)
	assert.Equal(t, "TX", got[1].Address.State)
}

func TestGetAllMissingColumnReadsAsZero(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_GetAllRestaurants")).
		WillReturnRows(sqlmock.NewRows([]string{"Id", "Name"}).AddRow(int64(3), "Bare"))

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bare", got[0].Name)
	assert.Equal(t, "", got[0].CuisineType)
	assert.Equal(t, "", got[0].Address.City)
}

func TestGetAllEmptyIsNonNil(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_GetAllRestaurants")).
		WillReturnRows(sqlmock.NewRows(restaurantColumns))

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAllByStatementUsesInlineSQL(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM [dbo].[Restaurants] r")).
		WillReturnRows(sqlmock.NewRows(restaurantColumns).
			AddRow(int64(1), "Pasta House", "Italian", nil, "555-0100", "", "Springfield", "IL", "62701", "United States"))

	got, err := repo.GetAllByStatement(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFindPassesCriteria(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_FindRestaurants")).
		WithArgs(sql.Named("Name", "pasta"), sql.Named("Cuisine", "")).
		WillReturnRows(sqlmock.NewRows(restaurantColumns).
			AddRow(int64(1), "Pasta House", "Italian", nil, "555-0100", "", "Springfield", "IL", "62701", "United States"))

	got, err := repo.Find(context.Background(), "pasta", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pasta House", got[0].Name)
}

func TestFindByStatementPassesCriteria(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("LIKE '%' + @Name + '%'")).
		WithArgs(sql.Named("Name", ""), sql.Named("Cuisine", "thai")).
		WillReturnRows(sqlmock.NewRows(restaurantColumns))

	got, err := repo.FindByStatement(context.Background(), "", "thai")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_GetRestaurantById")).
		WithArgs(sql.Named("Id", 7)).
		WillReturnRows(sqlmock.NewRows(restaurantColumns).
			AddRow(int64(7), "Pasta House", "Italian", nil, "555-0100", "", "Springfield", "IL", "62701", "United States"))

	got, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, got.Exists())
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "IL", got.Address.State)
}

func TestGetByIDAbsentIsEmpty(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.Id = @Id")).
		WithArgs(sql.Named("Id", 99)).
		WillReturnRows(sqlmock.NewRows(restaurantColumns))

	got, err := repo.GetByIDByStatement(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, got.Exists())
	assert.Equal(t, model.DefaultCountry, got.Address.Country)
}

func TestInsertReturnsGeneratedID(t *testing.T) {
	repo, mock := newRepo(t)
	r := sampleRestaurant()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_InsertRestaurant")).
		WithArgs(
			sql.Named("Name", r.Name),
			sql.Named("Cuisine", r.CuisineType),
			sql.Named("Website", r.Website),
			sql.Named("Phone", r.Phone),
			sql.Named("Street", r.Address.Street),
			sql.Named("City", r.Address.City),
			sql.Named("State", r.Address.State),
			sql.Named("ZipCode", r.Address.ZipCode),
			sql.Named("Country", r.Address.Country),
		).
		WillReturnRows(sqlmock.NewRows([]string{"Id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	id, err := repo.Insert(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 12, id)
}

func TestInsertBlankWebsiteIsNull(t *testing.T) {
	repo, mock := newRepo(t)
	r := sampleRestaurant()
	r.Website = ""

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_InsertRestaurant")).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			sql.Named("Website", nil),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"Id"}).AddRow(int64(13)))
	mock.ExpectCommit()

	id, err := repo.Insert(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 13, id)
}

func TestInsertFailureRollsBack(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_InsertRestaurant")).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	id, err := repo.Insert(context.Background(), sampleRestaurant())
	require.Error(t, err)
	assert.Equal(t, db.KindExecute, db.KindOf(err))
	assert.Equal(t, 0, id)
}

func TestInsertManySendsRestaurantTable(t *testing.T) {
	repo, mock := newRepo(t)
	a, b := sampleRestaurant(), sampleRestaurant()
	b.Name, b.Website = "Pasta Palace", ""

	table := dbtest.Table{
		TypeName: "dbo.RestaurantType",
		Rows:     2,
		Check: func(rows any) bool {
			rs, ok := rows.([]restaurantTypeRow)
			return ok && rs[0].Name == "Pasta House" && rs[0].Website != nil && rs[1].Website == nil
		},
	}
	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_GetAndInsertRestaurants")).
		WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{"Id", "Name", "CuisineType", "Website", "Phone"}).
			AddRow(int64(20), "Pasta House", "Italian", "https://pasta.example/", "555-0100").
			AddRow(int64(21), "Pasta Palace", "Italian", nil, "555-0100"))

	created, err := repo.InsertMany(context.Background(), []model.Restaurant{a, b})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 20, created[0].ID)
	assert.Equal(t, "Pasta Palace", created[1].Name)
	assert.Equal(t, model.DefaultCountry, created[1].Address.Country)
}

func TestInsertManyFailureIsEmpty(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("dbo.sp_GetAndInsertRestaurants")).
		WillReturnError(errors.New("type missing"))

	created, err := repo.InsertMany(context.Background(), []model.Restaurant{sampleRestaurant()})
	require.Error(t, err)
	assert.NotNil(t, created)
	assert.Empty(t, created)
}

func TestInsertAddressesSendsLocationTable(t *testing.T) {
	repo, mock := newRepo(t)
	a, b := sampleRestaurant(), sampleRestaurant()
	a.ID, b.ID = 20, 21

	table := dbtest.Table{
		TypeName: "dbo.RestaurantLocationType",
		Rows:     2,
		Check: func(rows any) bool {
			rs, ok := rows.([]restaurantLocationTypeRow)
			return ok && rs[0].RestaurantID == 20 && rs[1].RestaurantID == 21 && rs[1].City == "Springfield"
		},
	}
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("dbo.sp_InsertRestaurantAddresses")).
		WithArgs(table).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.InsertAddresses(context.Background(), []model.Restaurant{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpdateNonexistentIsZero(t *testing.T) {
	repo, mock := newRepo(t)
	r := sampleRestaurant()
	r.ID = 404

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("dbo.sp_UpdateRestaurant")).
		WithArgs(
			sql.Named("Id", 404),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.Update(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUpdateCommitFailure(t *testing.T) {
	repo, mock := newRepo(t)
	r := sampleRestaurant()
	r.ID = 1

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("dbo.sp_UpdateRestaurant")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit().WillReturnError(errors.New("lost"))

	n, err := repo.Update(context.Background(), r)
	require.Error(t, err)
	assert.Equal(t, db.KindCommit, db.KindOf(err))
	assert.Equal(t, 0, n)
}
