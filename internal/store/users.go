package store

import (
	"context"                         // Request scoped operations
	"errors"                          // Error classification
	"fitness_tracker/internal/domain" // Domain models and errors
	"fitness_tracker/internal/utils"  // Password hashing
	"fmt"                             // Error wrapping
	"strings"                         // Input normalization

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// placeholderEmailDomain is used for accounts registered without an email
const placeholderEmailDomain = "users.fitness.local"

// Users is the credential store
type Users struct {
	db   *gorm.DB // Database handle
	cost int      // Bcrypt cost
}

// NewUsers creates a credential store hashing with the given bcrypt cost
func NewUsers(db *gorm.DB, cost int) *Users {
	return &Users{db: db, cost: cost}
}

// PlaceholderEmail derives the synthetic address stored for users without an email
func PlaceholderEmail(username string) string {
	return username + "@" + placeholderEmailDomain
}

// isPlaceholderEmail reports whether email sits on the reserved placeholder domain
func isPlaceholderEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+placeholderEmailDomain)
}

// Register creates a new user with a hashed password
func (s *Users) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username)) // Lowercase username to ensure uniqueness
	email = strings.TrimSpace(email)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	emailProvided := email != ""
	if emailProvided && isPlaceholderEmail(email) {
		// Placeholder addresses belong to the username they are derived from
		return nil, fmt.Errorf("%w: email domain %s is reserved", domain.ErrValidation, placeholderEmailDomain)
	}
	if !emailProvided {
		email = PlaceholderEmail(username)
	}

	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, Email: email, PasswordHash: hash}

	err = s.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateUsername
		}
		if emailProvided {
			if err := tx.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domain.ErrDuplicateEmail
			}
		}
		return tx.Create(&user).Error
	})
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, domain.ErrDuplicateUsername), errors.Is(err, domain.ErrDuplicateEmail):
		return nil, err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Lost a race against a concurrent registration
		return nil, s.duplicateKind(ctx, username)
	default:
		return nil, fmt.Errorf("create user: %w", err)
	}
}

// duplicateKind tells which unique field a failed insert collided on
func (s *Users) duplicateKind(ctx context.Context, username string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return domain.ErrDuplicateUsername
	}
	return domain.ErrDuplicateEmail
}

// Verify checks a username/password pair; any mismatch is ErrInvalidCredentials
func (s *Users) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithField("username", username).Debug("login rejected: unknown user")
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	// Compare provided password with stored hash
	if !utils.CheckPassword(user.PasswordHash, password) {
		logrus.WithField("user_id", user.ID).Debug("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

// Get loads a user by id
func (s *Users) Get(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// ChangePassword replaces the password after checking the current one
func (s *Users) ChangePassword(ctx context.Context, id uint, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(next, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := s.db.WithContext(context.WithoutCancel(ctx)).Model(&domain.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user together with every owned workout and its entries
func (s *Users) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&domain.Workout{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("workout_id IN (?)", owned).Delete(&domain.WorkoutEntry{}).Error; err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Workout{}).Error; err != nil {
			return fmt.Errorf("delete workouts: %w", err)
		}
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
