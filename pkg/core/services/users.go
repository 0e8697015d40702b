package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// The built-in admin account can never be deactivated or deleted
const rootAdminUsername = "admin"

// UserStore defines the database operations needed for account management
type UserStore interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	InsertUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, username string) error
}

// NewUserInput carries the fields for a new account
type NewUserInput struct {
	Username  string
	Password  string
	Role      model.Role
	Gender    string
	Email     string
	Telephone string
}

// CreateUser registers a new account with a bcrypt-hashed password. Admin only.
func CreateUser(
	ctx context.Context,
	database UserStore,
	logger *zap.Logger,
	input NewUserInput,
	actingUser model.User,
) (*model.User, error) {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return nil, err
	}

	errs := validation.FieldErrors{}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		errs["username"] = "Username is required"
	}
	if input.Password == "" {
		errs["password"] = "Password is required"
	}
	if !input.Role.IsValid() {
		errs["role"] = "Role must be admin, teamLead, dataAnalyst or cashController"
	}
	if !errs.Empty() {
		return nil, validationFailed(errs)
	}

	existing, err := database.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if existing != nil {
		return nil, validationFailed(validation.FieldErrors{"username": "Username already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         input.Role,
		Active:       true,
		Gender:       input.Gender,
		Email:        input.Email,
		Telephone:    input.Telephone,
	}

	if err := database.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return user, nil
}

// SetUserActive toggles an account's active flag. Admin only; the root admin
// account cannot be deactivated.
func SetUserActive(
	ctx context.Context,
	database UserStore,
	logger *zap.Logger,
	username string,
	active bool,
	actingUser model.User,
) error {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return err
	}

	if username == rootAdminUsername && !active {
		return &PermissionError{Reason: "the admin account cannot be deactivated"}
	}

	user, err := database.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return &NotFoundError{Kind: "user", ID: username}
	}

	user.Active = active
	if err := database.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User active flag changed",
		zap.String("username", username),
		zap.Bool("active", active))

	return nil
}

// DeleteUser removes an account. Admin only; the root admin account cannot
// be deleted.
func DeleteUser(
	ctx context.Context,
	database UserStore,
	logger *zap.Logger,
	username string,
	actingUser model.User,
) error {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return err
	}

	if username == rootAdminUsername {
		return &PermissionError{Reason: "the admin account cannot be deleted"}
	}

	user, err := database.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return &NotFoundError{Kind: "user", ID: username}
	}

	if err := database.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info("User deleted", zap.String("username", username))
	return nil
}

// ResetPassword replaces an account's password hash. Admin only.
func ResetPassword(
	ctx context.Context,
	database UserStore,
	logger *zap.Logger,
	username, newPassword string,
	actingUser model.User,
) error {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return err
	}

	if newPassword == "" {
		return validationFailed(validation.FieldErrors{"password": "Password is required"})
	}

	user, err := database.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return &NotFoundError{Kind: "user", ID: username}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := database.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("Password reset", zap.String("username", username))
	return nil
}

// Authenticate checks credentials and returns the account. Deactivated
// accounts are rejected even with a correct password.
func Authenticate(
	ctx context.Context,
	database UserStore,
	logger *zap.Logger,
	username, password string,
) (*model.User, error) {
	user, err := database.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, &PermissionError{Reason: "invalid username or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug("Password mismatch", zap.String("username", username))
		return nil, &PermissionError{Reason: "invalid username or password"}
	}

	if !user.Active {
		return nil, &PermissionError{Reason: "account is deactivated"}
	}

	return user, nil
}
