package repository

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-api/internal/db"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/model"
)

// RestaurantRepository returns empty slices and model.Empty() for "nothing
// found". A non-nil error is always a *db.ExecError and comes with the same
// empty/zero value.
type RestaurantRepository interface {
	GetAll(ctx context.Context) ([]model.Restaurant, error)
	GetAllByStatement(ctx context.Context) ([]model.Restaurant, error)
	Find(ctx context.Context, name, cuisine string) ([]model.Restaurant, error)
	FindByStatement(ctx context.Context, name, cuisine string) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id int) (model.Restaurant, error)
	GetByIDByStatement(ctx context.Context, id int) (model.Restaurant, error)
	Insert(ctx context.Context, r model.Restaurant) (int, error)
	InsertMany(ctx context.Context, rs []model.Restaurant) ([]model.Restaurant, error)
	InsertAddresses(ctx context.Context, rs []model.Restaurant) (int, error)
	Update(ctx context.Context, r model.Restaurant) (int, error)
}

type Executor interface {
	Schema() string
	ReadRows(ctx context.Context, target db.Target, args ...any) (db.ResultSet, error)
	SelectOne(ctx context.Context, target db.Target, args ...any) (db.Row, bool, error)
	ExecuteScalar(ctx context.Context, target db.Target, args ...any) (int64, error)
	ExecuteNonQuery(ctx context.Context, target db.Target, args ...any) (int64, error)
}

type sqlRestaurantRepository struct {
	exec   Executor
	log    logger.LoggerService
	schema string

	getAllSQL  string
	findSQL    string
	getByIDSQL string
}

func NewRestaurantRepository(exec Executor, log logger.LoggerService) RestaurantRepository {
	if log == nil {
		log = logger.Discard()
	}
	schema := exec.Schema()
	registerShapes(schema)
	return &sqlRestaurantRepository{
		exec:       exec,
		log:        log,
		schema:     schema,
		getAllSQL:  withSchema(getAllStatement, schema),
		findSQL:    withSchema(findStatement, schema),
		getByIDSQL: withSchema(getByIDStatement, schema),
	}
}

func (r *sqlRestaurantRepository) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	return r.list(ctx, db.Procedure(GetAllRestaurantsProc))
}

// GetAllByStatement runs inline SQL instead of the procedure.
func (r *sqlRestaurantRepository) GetAllByStatement(ctx context.Context) ([]model.Restaurant, error) {
	return r.list(ctx, db.Text(r.getAllSQL))
}

func (r *sqlRestaurantRepository) Find(ctx context.Context, name, cuisine string) ([]model.Restaurant, error) {
	return r.list(ctx, db.Procedure(FindRestaurantsProc), searchArgs(name, cuisine)...)
}

func (r *sqlRestaurantRepository) FindByStatement(ctx context.Context, name, cuisine string) ([]model.Restaurant, error) {
	return r.list(ctx, db.Text(r.findSQL), searchArgs(name, cuisine)...)
}

func (r *sqlRestaurantRepository) GetByID(ctx context.Context, id int) (model.Restaurant, error) {
	return r.one(ctx, db.Procedure(GetRestaurantByIDProc), sql.Named("Id", id))
}

func (r *sqlRestaurantRepository) GetByIDByStatement(ctx context.Context, id int) (model.Restaurant, error) {
	return r.one(ctx, db.Text(r.getByIDSQL), sql.Named("Id", id))
}

// Insert adds a restaurant and its location and returns the generated id.
func (r *sqlRestaurantRepository) Insert(ctx context.Context, rest model.Restaurant) (int, error) {
	r.log.Info("adding new restaurant")
	id, err := r.exec.ExecuteScalar(ctx, db.Procedure(InsertRestaurantProc), restaurantArgs(rest)...)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// InsertMany bulk inserts the parent rows and returns them as created,
// ids included. Locations are not written here.
func (r *sqlRestaurantRepository) InsertMany(ctx context.Context, rs []model.Restaurant) ([]model.Restaurant, error) {
	r.log.Info(fmt.Sprintf("adding %d new restaurants", len(rs)))
	param := r.table(newRestaurantsParam, RestaurantType, rs)

	out, err := r.exec.ReadRows(ctx, db.Procedure(GetAndInsertRestaurantsProc), param)
	if err != nil {
		return []model.Restaurant{}, err
	}
	return restaurants(out, restaurantFromRow), nil
}

// InsertAddresses bulk inserts one location per restaurant keyed by its id
// and returns the number of rows written.
func (r *sqlRestaurantRepository) InsertAddresses(ctx context.Context, rs []model.Restaurant) (int, error) {
	r.log.Info(fmt.Sprintf("adding %d restaurant addresses", len(rs)))
	param := r.table(newAddressesParam, RestaurantLocationType, rs)

	n, err := r.exec.ExecuteNonQuery(ctx, db.Procedure(InsertRestaurantAddressesProc), param)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Update replaces every field of an existing restaurant and its location.
func (r *sqlRestaurantRepository) Update(ctx context.Context, rest model.Restaurant) (int, error) {
	r.log.Info(fmt.Sprintf("replacing restaurant %d", rest.ID))
	args := append([]any{sql.Named("Id", rest.ID)}, restaurantArgs(rest)...)

	n, err := r.exec.ExecuteNonQuery(ctx, db.Procedure(UpdateRestaurantProc), args...)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *sqlRestaurantRepository) list(ctx context.Context, target db.Target, args ...any) ([]model.Restaurant, error) {
	rs, err := r.exec.ReadRows(ctx, target, args...)
	if err != nil {
		return []model.Restaurant{}, err
	}
	return restaurants(rs, restaurantWithLocationFromRow), nil
}

func (r *sqlRestaurantRepository) one(ctx context.Context, target db.Target, args ...any) (model.Restaurant, error) {
	row, ok, err := r.exec.SelectOne(ctx, target, args...)
	if err != nil {
		return model.Empty(), err
	}
	if !ok {
		return model.Empty(), nil
	}
	return restaurantWithLocationFromRow(row), nil
}

func (r *sqlRestaurantRepository) table(param, typeName string, rs []model.Restaurant) sql.NamedArg {
	qualifiedType := qualified(r.schema, typeName)
	if _, ok := db.LookupShape(qualifiedType); !ok {
		r.log.Warn(fmt.Sprintf("table type %s is not registered; sending an empty table", qualifiedType))
	}
	arg := db.StructuredParam(param, qualifiedType, rs)
	if n := db.TableLen(arg); n != len(rs) {
		r.log.Warn(fmt.Sprintf("table %s carries %d of %d rows", qualifiedType, n, len(rs)))
	}
	return arg
}

func searchArgs(name, cuisine string) []any {
	return []any{
		sql.Named("Name", name),
		sql.Named("Cuisine", cuisine),
	}
}
