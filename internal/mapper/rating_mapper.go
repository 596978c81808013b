package mapper

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"
)

type RatingMapper struct {
	users *UserMapper
}

func NewRatingMapper() *RatingMapper {
	return &RatingMapper{users: NewUserMapper()}
}

func (m *RatingMapper) ToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		Id:          r.Id,
		RaterId:     r.RaterId,
		RatedUserId: r.RatedUserId,
		Score:       r.Score,
		Review:      r.Review,
		CreatedAt:   r.CreatedAt,
		Rater:       m.users.ToEntity(r.Rater),
	}
}

func (m *RatingMapper) ToModel(r *entity.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	return &model.Rating{
		Id:          r.Id,
		RaterId:     r.RaterId,
		RatedUserId: r.RatedUserId,
		Score:       r.Score,
		Review:      r.Review,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *RatingMapper) ToEntities(ratings []*model.Rating) []*entity.Rating {
	entities := make([]*entity.Rating, len(ratings))
	for i, r := range ratings {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
