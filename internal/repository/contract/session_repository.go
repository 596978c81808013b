package contract

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionStatus moves the session from -> to only if its stored status
	// still equals from. It reports false when another request got there first.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.SessionStatus) (bool, error)
}
