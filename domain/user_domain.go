package domain

import "fmt"

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessLogout        = "logout successful"
	MessageSuccessGetUser       = "success get user"
	MessageSuccessGetUsers      = "success get users"
	MessageSuccessSetPassword   = "password changed successfully"
	MessageSuccessUpdateAvatar  = "avatar updated successfully"
	MessageSuccessDeleteAvatar  = "avatar deleted successfully"
	MessageSuccessFollow        = "subscribed successfully"
	MessageSuccessUnfollow      = "unsubscribed successfully"
	MessageSuccessGetFollowings = "success get subscriptions"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetUser       = "failed to get user"
	MessageFailedGetUsers      = "failed to get users"
	MessageFailedSetPassword   = "failed to change password"
	MessageFailedUpdateAvatar  = "failed to update avatar"
	MessageFailedDeleteAvatar  = "failed to delete avatar"
	MessageFailedFollow        = "failed to subscribe"
	MessageFailedUnfollow      = "failed to unsubscribe"
	MessageFailedGetFollowings = "failed to get subscriptions"

	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", ErrConflict)
	ErrUsernameTaken      = fmt.Errorf("%w: username is already taken", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrValidation)
	ErrWrongPassword      = fmt.Errorf("%w: current password is incorrect", ErrValidation)
	ErrSelfFollow         = fmt.Errorf("%w: cannot subscribe to yourself", ErrValidation)
	ErrAlreadyFollowing   = fmt.Errorf("%w: already subscribed to this user", ErrConflict)
	ErrNotFollowing       = fmt.Errorf("%w: not subscribed to this user", ErrNotFound)
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	}

	AvatarRequest struct {
		Avatar string `json:"avatar" validate:"required"`
	}

	AvatarResponse struct {
		Avatar string `json:"avatar"`
	}

	UserProfile struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
		Avatar       string `json:"avatar"`
	}

	// Subscription is an author profile as seen from a follower, with a
	// preview of the author's most recent recipes.
	Subscription struct {
		UserProfile
		Recipes      []RecipeMinified `json:"recipes"`
		RecipesCount int64            `json:"recipes_count"`
	}
)
