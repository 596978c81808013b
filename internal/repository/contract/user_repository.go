package contract

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// IncrementXP atomically adds amount to the user's xp and raises level to
	// match, returning the stored values after the update.
	IncrementXP(ctx context.Context, id uuid.UUID, amount int) (xp int, level int, err error)

	// UpdateInterests replaces the known and wanted skill lists. A nil list
	// leaves its column untouched.
	UpdateInterests(ctx context.Context, id uuid.UUID, known, wanted []string) error
	// AddKnownSkills merges skills into skills_known under a row lock and
	// returns the stored list.
	AddKnownSkills(ctx context.Context, id uuid.UUID, skills []string) ([]string, error)
	// AddVerifiedSkill appends skill to verified_skills unless it is already
	// there. Only the caller that changed the row gets true.
	AddVerifiedSkill(ctx context.Context, id uuid.UUID, skill string) (bool, error)
}
