package implementation

import (
	"context"
	"errors"
	"fmt"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/mapper"
	"collabhub-be/internal/model"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/repository/contract"
	"collabhub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("email or username already registered")
		}
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

// Update saves profile fields. XP, level and the skill lists have their own
// writers and are left untouched.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	result := r.db.WithContext(ctx).
		Model(&model.User{Id: user.Id}).
		Select("full_name", "bio", "college", "avatar_url").
		Updates(modelUser)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementXP runs a single UPDATE whose SET expressions read the pre-update
// row, so concurrent awards never lose an increment. The read-back happens in
// the same (nested) transaction, under the row lock taken by the UPDATE.
func (r *UserRepositoryImpl) IncrementXP(ctx context.Context, id uuid.UUID, amount int) (int, int, error) {
	var row struct {
		XP    int `gorm:"column:xp"`
		Level int `gorm:"column:level"`
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"xp":    gorm.Expr("xp + ?", amount),
				"level": gorm.Expr("CASE WHEN level > (xp + ?) / 100 + 1 THEN level ELSE (xp + ?) / 100 + 1 END", amount, amount),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("user %s not found", id)
		}
		return tx.Model(&model.User{}).Select("xp", "level").Where("id = ?", id).Take(&row).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return row.XP, row.Level, nil
}

func (r *UserRepositoryImpl) UpdateInterests(ctx context.Context, id uuid.UUID, known, wanted []string) error {
	updates := map[string]interface{}{}
	if known != nil {
		updates["skills_known"] = toJSON(known)
	}
	if wanted != nil {
		updates["skills_wanted"] = toJSON(wanted)
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

func (r *UserRepositoryImpl) AddKnownSkills(ctx context.Context, id uuid.UUID, skills []string) ([]string, error) {
	merged, _, err := r.appendSkills(ctx, id, "skills_known", skills)
	return merged, err
}

func (r *UserRepositoryImpl) AddVerifiedSkill(ctx context.Context, id uuid.UUID, skill string) (bool, error) {
	_, added, err := r.appendSkills(ctx, id, "verified_skills", []string{skill})
	return added, err
}

// appendSkills merges extra into one skill column while holding the row lock,
// so concurrent appends serialize and each sees the other's result.
func (r *UserRepositoryImpl) appendSkills(ctx context.Context, id uuid.UUID, column string, extra []string) ([]string, bool, error) {
	var merged []string
	changed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user %s not found", id)
			}
			return err
		}

		var current []string
		switch column {
		case "skills_known":
			current = m.SkillsKnown
		case "verified_skills":
			current = m.VerifiedSkills
		default:
			return fmt.Errorf("unknown skill column %q", column)
		}

		merged = entity.MergeSkills(current, extra)
		if len(merged) == len(current) {
			return nil
		}
		changed = true
		return tx.Model(&model.User{}).Where("id = ?", id).Update(column, toJSON(merged)).Error
	})
	if err != nil {
		return nil, false, err
	}
	return merged, changed, nil
}
