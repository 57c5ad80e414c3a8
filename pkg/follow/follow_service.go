package follow

import (
	"context"
	"errors"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/metrics"
	"foodgram/pkg/projection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FollowService interface {
		Follow(ctx context.Context, followerID, authorID string, recipesLimit int) (domain.Subscription, error)
		Unfollow(ctx context.Context, followerID, authorID string) error
		ListFollowing(ctx context.Context, followerID string, page domain.PageRequest, recipesLimit int) (domain.Page[domain.Subscription], error)
	}

	followService struct {
		followRepository FollowRepository
	}
)

func NewFollowService(followRepository FollowRepository) FollowService {
	return &followService{followRepository: followRepository}
}

func (s *followService) Follow(ctx context.Context, followerID, authorID string, recipesLimit int) (domain.Subscription, error) {
	follower, author, err := parseEdge(followerID, authorID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if follower == author {
		return domain.Subscription{}, domain.ErrSelfFollow
	}

	var user *entities.User
	err = s.followRepository.Transaction(ctx, func(repo FollowRepository) error {
		var err error
		if user, err = findAuthor(ctx, repo, author); err != nil {
			return err
		}

		exists, err := repo.FollowExists(ctx, follower, author)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyFollowing
		}

		if err := repo.CreateFollow(ctx, follower, author); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyFollowing
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	metrics.FollowToggles.WithLabelValues("follow").Inc()

	subs, err := s.subscriptions(ctx, []*entities.User{user}, recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	return subs[0], nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, authorID string) error {
	follower, author, err := parseEdge(followerID, authorID)
	if err != nil {
		return err
	}

	err = s.followRepository.Transaction(ctx, func(repo FollowRepository) error {
		if _, err := findAuthor(ctx, repo, author); err != nil {
			return err
		}
		removed, err := repo.DeleteFollow(ctx, follower, author)
		if err != nil {
			return err
		}
		if removed == 0 {
			return domain.ErrNotFollowing
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.FollowToggles.WithLabelValues("unfollow").Inc()
	return nil
}

func (s *followService) ListFollowing(ctx context.Context, followerID string, page domain.PageRequest, recipesLimit int) (domain.Page[domain.Subscription], error) {
	follower, err := uuid.Parse(followerID)
	if err != nil {
		return domain.Page[domain.Subscription]{}, domain.ErrParseUUID
	}
	page = page.Normalize()

	authors, count, err := s.followRepository.GetFollowing(ctx, follower, page)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}

	subs, err := s.subscriptions(ctx, authors, recipesLimit)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}
	return domain.NewPage(subs, count, page), nil
}

// subscriptions builds the follower's view of each author. Every author here
// is followed, so is_subscribed is always true.
func (s *followService) subscriptions(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.Subscription, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.followRepository.CountRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Subscription, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.followRepository.GetRecentRecipes(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Subscription{
			UserProfile:  projection.ToUserProfile(a, true),
			Recipes:      projection.ToRecipeMinifiedList(recipes),
			RecipesCount: counts[a.ID],
		})
	}
	return out, nil
}

func findAuthor(ctx context.Context, repo FollowRepository, id uuid.UUID) (*entities.User, error) {
	user, err := repo.GetAuthorByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func parseEdge(followerID, authorID string) (uuid.UUID, uuid.UUID, error) {
	follower, err := uuid.Parse(followerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	author, err := uuid.Parse(authorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrUserNotFound
	}
	return follower, author, nil
}
