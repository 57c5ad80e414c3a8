package user

import (
	"context"
	"errors"
	"strings"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/follow"
	"foodgram/pkg/jwt"
	"foodgram/pkg/projection"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const avatarFolder = "avatars"

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserProfile, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserProfile, error)
		GetUser(ctx context.Context, id string, viewerID string) (domain.UserProfile, error)
		ListUsers(ctx context.Context, page domain.PageRequest, viewerID string) (domain.Page[domain.UserProfile], error)
		SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error
		UpdateAvatar(ctx context.Context, userID string, req domain.AvatarRequest) (domain.AvatarResponse, error)
		DeleteAvatar(ctx context.Context, userID string) error
	}

	userService struct {
		userRepository   UserRepository
		followRepository follow.FollowRepository
		jwtService       jwt.JWTService
		storage          storage.ImageStorage
	}
)

func NewUserService(
	userRepository UserRepository,
	followRepository follow.FollowRepository,
	jwtService jwt.JWTService,
	imageStorage storage.ImageStorage,
) UserService {
	return &userService{
		userRepository:   userRepository,
		followRepository: followRepository,
		jwtService:       jwtService,
		storage:          imageStorage,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserProfile, error) {
	req.Email = strings.TrimSpace(req.Email)

	if exists, err := s.userRepository.EmailExists(ctx, req.Email); err != nil {
		return domain.UserProfile{}, err
	} else if exists {
		return domain.UserProfile{}, domain.ErrEmailTaken
	}
	if exists, err := s.userRepository.UsernameExists(ctx, req.Username); err != nil {
		return domain.UserProfile{}, err
	} else if exists {
		return domain.UserProfile{}, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserProfile{}, err
	}

	user := &entities.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserProfile{}, domain.ErrUsernameTaken
		}
		return domain.UserProfile{}, err
	}

	return projection.ToUserProfile(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserProfile, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return projection.ToUserProfile(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, id string, viewerID string) (domain.UserProfile, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profiles, err := s.profiles(ctx, []*entities.User{user}, viewerID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profiles[0], nil
}

func (s *userService) ListUsers(ctx context.Context, page domain.PageRequest, viewerID string) (domain.Page[domain.UserProfile], error) {
	page = page.Normalize()
	users, count, err := s.userRepository.GetUsers(ctx, page)
	if err != nil {
		return domain.Page[domain.UserProfile]{}, err
	}

	profiles, err := s.profiles(ctx, users, viewerID)
	if err != nil {
		return domain.Page[domain.UserProfile]{}, err
	}
	return domain.NewPage(profiles, count, page), nil
}

func (s *userService) SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, req domain.AvatarRequest) (domain.AvatarResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.AvatarResponse{}, err
	}

	img, err := storage.DecodeBase64Image(req.Avatar)
	if err != nil {
		return domain.AvatarResponse{}, err
	}
	url, err := s.storage.Upload(ctx, avatarFolder, img)
	if err != nil {
		return domain.AvatarResponse{}, err
	}

	if err := s.userRepository.UpdateAvatar(ctx, user.ID, url); err != nil {
		s.discardImage(ctx, url)
		return domain.AvatarResponse{}, err
	}
	s.discardImage(ctx, user.AvatarURL)

	return domain.AvatarResponse{Avatar: url}, nil
}

// DeleteAvatar clears the avatar. Users without one are left as is.
func (s *userService) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.AvatarURL == "" {
		return nil
	}

	if err := s.userRepository.UpdateAvatar(ctx, user.ID, ""); err != nil {
		return err
	}
	s.discardImage(ctx, user.AvatarURL)
	return nil
}

func (s *userService) findUser(ctx context.Context, id string) (*entities.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepository.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) profiles(ctx context.Context, users []*entities.User, viewerID string) ([]domain.UserProfile, error) {
	followed := map[uuid.UUID]bool{}
	if viewer, err := uuid.Parse(viewerID); err == nil {
		ids := make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		if followed, err = s.followRepository.FollowedAmong(ctx, viewer, ids); err != nil {
			return nil, err
		}
	}

	out := make([]domain.UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, projection.ToUserProfile(u, followed[u.ID]))
	}
	return out, nil
}

func (s *userService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.storage.Delete(ctx, url); err != nil {
		log.Warnf("failed to delete avatar %s: %v", url, err)
	}
}
