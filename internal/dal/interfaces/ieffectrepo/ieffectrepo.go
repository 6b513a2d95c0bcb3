package ieffectrepo

import (
	"context"

	"github.com/eatech/platform/internal/service/models/effect"
)

// IEffectRepository is an interface for the side-effect outcome postgres
// repository.
type IEffectRepository interface {
	BulkInsert(ctx context.Context, outcomes []effect.Outcome) error
}
