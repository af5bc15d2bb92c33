package graph

import (
	"context"
	"errors"

	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/item"
)

func (r *mutationResolver) CreateItem(ctx context.Context, data model.ItemCreateInput) (*model.Item, error) {
	it, err := r.ItemSvc.Create(ctx, currentActor(ctx), item.CreateParams{
		Title:       data.Title,
		Description: data.Description,
		Image:       data.Image,
		LargeImage:  data.LargeImage,
		Price:       data.Price,
	})
	if err != nil {
		return nil, err
	}
	return mapItem(it), nil
}

func (r *mutationResolver) UpdateItem(ctx context.Context, id string, data model.ItemUpdateInput) (*model.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	it, err := r.ItemSvc.Update(ctx, currentActor(ctx), itemID, item.UpdateParams{
		Title:       data.Title,
		Description: data.Description,
		Image:       data.Image,
		LargeImage:  data.LargeImage,
		Price:       data.Price,
	})
	if err != nil {
		return nil, err
	}
	return mapItem(it), nil
}

func (r *mutationResolver) DeleteItem(ctx context.Context, id string) (*model.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	it, err := r.ItemSvc.Delete(ctx, currentActor(ctx), itemID)
	if err != nil {
		return nil, err
	}
	return mapItem(it), nil
}

func (r *queryResolver) Items(ctx context.Context, where *model.ItemWhereInput, orderBy *model.ItemOrderByInput, skip *int, first *int) ([]*model.Item, error) {
	filter, err := toItemFilter(where)
	if err != nil {
		return nil, err
	}

	params := item.ListParams{Filter: filter, Sort: toItemSort(orderBy)}
	if skip != nil {
		params.Skip = *skip
	}
	params.First = first

	items, err := r.ItemSvc.List(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Item, len(items))
	for i, it := range items {
		out[i] = mapItem(it)
	}
	return out, nil
}

func (r *queryResolver) Item(ctx context.Context, where model.ItemWhereUniqueInput) (*model.Item, error) {
	itemID, err := parseID(where.ID)
	if err != nil {
		return nil, err
	}

	it, err := r.ItemSvc.Get(ctx, itemID)
	if errors.Is(err, item.ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapItem(it), nil
}

func (r *queryResolver) ItemsConnection(ctx context.Context, where *model.ItemWhereInput) (*model.ItemConnection, error) {
	filter, err := toItemFilter(where)
	if err != nil {
		return nil, err
	}

	n, err := r.ItemSvc.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.ItemConnection{Aggregate: &model.AggregateItem{Count: n}}, nil
}
