package catalog

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// GetUser returns the user, or a zero user
func (e *Engine) GetUser(ctx context.Context, userID string) (schema.User, error) {
	u, err := e.store.Users.Get(ctx, userID, nil)
	if err != nil || u == nil {
		return schema.User{}, err
	}
	return *u, nil
}

// GetUserByTag returns the first user carrying userTag, or a zero user
func (e *Engine) GetUserByTag(ctx context.Context, userTag string) (schema.User, error) {
	users, err := e.store.Users.QueryIndex(ctx, store.IndexUserTag, userTag)
	if err != nil || len(users) == 0 {
		return schema.User{}, err
	}
	return users[0], nil
}

// SaveUser creates or overwrites a user profile
func (e *Engine) SaveUser(ctx context.Context, in schema.UserInput, appID string) (schema.User, error) {
	u, err := schema.NewUser(in)
	if err != nil {
		return schema.User{}, err
	}
	if appID != "" {
		u.AppID = appID
	}
	if err := e.store.Users.Put(ctx, &u); err != nil {
		return schema.User{}, err
	}
	return u, nil
}
