package executor

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

func (e *executor) GetUser(ctx context.Context, userID string) (schema.User, error) {
	return e.engine.GetUser(ctx, userID)
}

func (e *executor) GetUserByTag(ctx context.Context, userTag string) (schema.User, error) {
	return e.engine.GetUserByTag(ctx, userTag)
}

func (e *executor) SaveUser(ctx context.Context, caller dto.Caller, req dto.WriteRequest[schema.UserInput]) (schema.User, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return schema.User{}, err
	}
	if req.Data.UserID == "" {
		return schema.User{}, domain.Validationf("userId must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.Data.UserID); err != nil {
		return schema.User{}, err
	}
	return e.engine.SaveUser(ctx, req.Data, req.AppID)
}
