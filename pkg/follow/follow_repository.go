package follow

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FollowRepository interface {
		Transaction(ctx context.Context, fn func(repo FollowRepository) error) error

		GetAuthorByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		FollowExists(ctx context.Context, followerID, authorID uuid.UUID) (bool, error)
		CreateFollow(ctx context.Context, followerID, authorID uuid.UUID) error
		DeleteFollow(ctx context.Context, followerID, authorID uuid.UUID) (int64, error)

		// FollowedAmong reports which of authorIDs followerID follows.
		FollowedAmong(ctx context.Context, followerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		GetFollowing(ctx context.Context, followerID uuid.UUID, page domain.PageRequest) ([]*entities.User, int64, error)
		GetRecentRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	followRepository struct {
		db *gorm.DB
	}
)

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Transaction(ctx context.Context, fn func(repo FollowRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&followRepository{db: tx})
	})
}

func (r *followRepository) GetAuthorByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *followRepository) FollowExists(ctx context.Context, followerID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) CreateFollow(ctx context.Context, followerID, authorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Omit("Follower", "Author").
		Create(&entities.Follow{FollowerID: followerID, AuthorID: authorID}).Error
}

func (r *followRepository) DeleteFollow(ctx context.Context, followerID, authorID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&entities.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) FollowedAmong(ctx context.Context, followerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("follower_id = ? AND author_id IN ?", followerID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, followerID uuid.UUID, page domain.PageRequest) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64

	query := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id IN (?)", r.db.Model(&entities.Follow{}).Select("author_id").Where("follower_id = ?", followerID)).
		Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Order("username asc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// GetRecentRecipes returns the newest recipes of authorID. A limit below one
// returns all of them.
func (r *followRepository) GetRecentRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	if limit < 1 {
		limit = -1
	}
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("published_at desc").
		Order("id asc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *followRepository) CountRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	result := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AuthorID] = row.Total
	}
	return result, nil
}
