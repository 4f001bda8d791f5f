// Package orchestration turns repository results into the payloads the HTTP
// layer returns. Failures never cross this boundary: they are logged and
// collapse to an empty list, the empty restaurant or false.
package orchestration

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"restaurant-api/internal/logger"
	"restaurant-api/internal/model"
	"restaurant-api/internal/repository"
)

type RestaurantOrchestration interface {
	GetAll(ctx context.Context) []model.Restaurant
	GetAllUsingQuery(ctx context.Context) []model.Restaurant
	Find(ctx context.Context, name, cuisine string) []model.Restaurant
	FindUsingQuery(ctx context.Context, name, cuisine string) []model.Restaurant
	// Get returns model.Empty() when id is not numeric or nothing matches.
	Get(ctx context.Context, id string) model.Restaurant
	Insert(ctx context.Context, r model.Restaurant) bool
	InsertMany(ctx context.Context, rs []model.Restaurant) bool
	Update(ctx context.Context, r model.Restaurant) bool
}

type restaurantOrchestration struct {
	repo repository.RestaurantRepository
	log  logger.LoggerService
}

func NewRestaurantOrchestration(repo repository.RestaurantRepository, log logger.LoggerService) RestaurantOrchestration {
	if log == nil {
		log = logger.Discard()
	}
	return &restaurantOrchestration{repo: repo, log: log}
}

func (o *restaurantOrchestration) GetAll(ctx context.Context) []model.Restaurant {
	o.log.Info("get all restaurants")
	rs, err := o.repo.GetAll(ctx)
	return o.list("get all restaurants", rs, err)
}

func (o *restaurantOrchestration) GetAllUsingQuery(ctx context.Context) []model.Restaurant {
	o.log.Info("get all restaurants using query")
	rs, err := o.repo.GetAllByStatement(ctx)
	return o.list("get all restaurants using query", rs, err)
}

func (o *restaurantOrchestration) Find(ctx context.Context, name, cuisine string) []model.Restaurant {
	o.log.Info("find restaurants")
	rs, err := o.repo.Find(ctx, name, cuisine)
	return o.list("find restaurants", rs, err)
}

func (o *restaurantOrchestration) FindUsingQuery(ctx context.Context, name, cuisine string) []model.Restaurant {
	o.log.Info("find restaurants using query")
	rs, err := o.repo.FindByStatement(ctx, name, cuisine)
	return o.list("find restaurants using query", rs, err)
}

func (o *restaurantOrchestration) Get(ctx context.Context, id string) model.Restaurant {
	o.log.Info("get restaurant by id")
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		o.log.Warn(fmt.Sprintf("restaurant id %q is not a positive integer", id))
		return model.Empty()
	}

	r, err := o.repo.GetByID(ctx, n)
	if err != nil {
		o.log.Error("get restaurant by id failed", err)
		return model.Empty()
	}
	if !r.Exists() {
		return model.Empty()
	}
	return r
}

// Insert reports success without exposing the generated id.
func (o *restaurantOrchestration) Insert(ctx context.Context, r model.Restaurant) bool {
	o.log.Info("adding new restaurant")
	id, err := o.repo.Insert(ctx, r)
	if err != nil {
		o.log.Error("insert restaurant failed", err)
		return false
	}
	return id > 0
}

// InsertMany writes the parents in one call, copies their generated ids back
// onto rs by natural key, then writes one address per parent. Success is
// coarse: some parents came back and at least one address was written.
func (o *restaurantOrchestration) InsertMany(ctx context.Context, rs []model.Restaurant) bool {
	o.log.Info(fmt.Sprintf("adding %d new restaurants", len(rs)))
	if len(rs) == 0 {
		return false
	}

	created, err := o.repo.InsertMany(ctx, rs)
	if err != nil {
		o.log.Error("insert restaurants failed", err)
		return false
	}

	if unmatched := repository.CorrelateIDs(rs, created); unmatched > 0 {
		o.log.Warn(fmt.Sprintf("%d of %d restaurants could not be matched to a created row", unmatched, len(rs)))
	}

	added, err := o.repo.InsertAddresses(ctx, rs)
	if err != nil {
		o.log.Error("insert restaurant addresses failed", err)
		return false
	}
	return len(created) > 0 && added > 0
}

func (o *restaurantOrchestration) Update(ctx context.Context, r model.Restaurant) bool {
	o.log.Info(fmt.Sprintf("updating restaurant %d", r.ID))
	n, err := o.repo.Update(ctx, r)
	if err != nil {
		o.log.Error("update restaurant failed", err)
		return false
	}
	return n > 0
}

func (o *restaurantOrchestration) list(op string, rs []model.Restaurant, err error) []model.Restaurant {
	if err != nil {
		o.log.Error(op+" failed", err)
		return []model.Restaurant{}
	}
	if rs == nil {
		return []model.Restaurant{}
	}
	return rs
}
