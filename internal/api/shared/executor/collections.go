package executor

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

func (e *executor) QueryCollections(ctx context.Context, caller dto.Caller, params *dto.CollectionQueryParams) ([]schema.Collection, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if err := requireQueryParams(params); err != nil {
		return nil, err
	}
	if params.Category == "" && params.CreatorAddress == "" {
		return nil, domain.Validationf("either category or creatorAddress must be provided.")
	}

	// The ownership override only applies once the token proves the claimed user
	if params.UserID != "" {
		if err := e.requireSubject(ctx, caller, params.UserID); err != nil {
			return nil, err
		}
	}

	return e.engine.QueryCollections(ctx, catalog.CollectionQuery{
		Category:           params.Category,
		CreatorAddress:     params.CreatorAddress,
		Chain:              params.Chain,
		CreatedByPlatform:  params.IsCreatedByPlatform,
		FilterTestOverride: params.FilterTestOverride,
		LatestOnly:         params.LatestOnly,
		ViewerID:           params.UserID,
	})
}

func (e *executor) QueryCollectionsByAddresses(ctx context.Context, caller dto.Caller, params *dto.AddressesQueryParams) ([]schema.Collection, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if err := requireQueryParams(params); err != nil {
		return nil, err
	}
	if params.Addresses == nil {
		return nil, domain.Validationf(`"addresses" parameter should be an array`)
	}
	return e.engine.QueryCollectionsByAddresses(ctx, params.Addresses)
}

func (e *executor) GetCollection(ctx context.Context, collectionID string) (schema.Collection, error) {
	return e.engine.GetCollection(ctx, collectionID)
}

func (e *executor) GetCollectionByAddress(ctx context.Context, address string) (schema.Collection, error) {
	return e.engine.GetCollectionByAddress(ctx, address)
}

func (e *executor) CreateCollection(ctx context.Context, caller dto.Caller, req dto.WriteRequest[schema.CollectionInput]) (schema.Collection, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return schema.Collection{}, err
	}
	if req.UserID == "" || req.Data.CollectionID == "" {
		return schema.Collection{}, domain.Validationf("userId & collection data must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return schema.Collection{}, err
	}
	return e.engine.CreateCollection(ctx, req.Data, req.AppID)
}

func (e *executor) UpdateCollection(ctx context.Context, caller dto.Caller, collectionID string, req dto.WriteRequest[schema.CollectionInput]) (schema.Collection, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return schema.Collection{}, err
	}
	if req.UserID == "" || collectionID == "" {
		return schema.Collection{}, domain.Validationf("userId & collectionId must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return schema.Collection{}, err
	}
	return e.engine.UpdateCollection(ctx, collectionID, req.Data, req.AppID)
}

func (e *executor) SearchCollections(ctx context.Context, caller dto.Caller, params *dto.SearchQueryParams) ([]schema.Collection, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if err := requireQueryParams(params); err != nil {
		return nil, err
	}
	if params.Keyword == "" {
		return nil, domain.Validationf("keyword must be provided.")
	}
	return e.engine.SearchCollections(ctx, catalog.SearchQuery{
		Keyword:            params.Keyword,
		Chain:              params.Chain,
		Category:           params.Category,
		FilterTestOverride: params.FilterTestOverride,
	})
}

func (e *executor) LikeCollection(ctx context.Context, caller dto.Caller, collectionID, userID string) error {
	if err := e.requireAPIKey(caller); err != nil {
		return err
	}
	if collectionID == "" || userID == "" {
		return domain.Validationf("collectionId & userId must be present.")
	}
	if err := e.requireSubject(ctx, caller, userID); err != nil {
		return err
	}
	return e.engine.LikeCollection(ctx, collectionID, userID)
}

func (e *executor) UnlikeCollection(ctx context.Context, caller dto.Caller, collectionID, userID string) error {
	if err := e.requireAPIKey(caller); err != nil {
		return err
	}
	if collectionID == "" || userID == "" {
		return domain.Validationf("collectionId & userId must be present.")
	}
	if err := e.requireSubject(ctx, caller, userID); err != nil {
		return err
	}
	return e.engine.UnlikeCollection(ctx, collectionID, userID)
}

func (e *executor) CollectionRelation(ctx context.Context, caller dto.Caller, collectionID, userID string) (catalog.Relation, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return catalog.Relation{}, err
	}
	return e.engine.CollectionRelation(ctx, collectionID, userID)
}

func (e *executor) LikedCollections(ctx context.Context, caller dto.Caller, userID, chain string) ([]schema.Collection, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.Validationf("userId must be present.")
	}
	return e.engine.LikedCollections(ctx, userID, chain)
}
