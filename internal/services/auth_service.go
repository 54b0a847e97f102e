package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/mailer"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 10 * time.Minute

// AuthService handles business logic for accounts, authentication and
// authorization.
type AuthService struct {
	userRepo    repositories.UserRepository
	mail        mailer.Sender
	jwtSecret   []byte
	adminSecret string
	clientURL   string
	tokenDurat  time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mail mailer.Sender, jwtSecret, adminSecret, clientURL string, tokenDuration time.Duration) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		mail:        mail,
		jwtSecret:   []byte(jwtSecret),
		adminSecret: adminSecret,
		clientURL:   clientURL,
		tokenDurat:  tokenDuration,
	}
}

// Register creates a new account with a bcrypt-hashed password. The role is
// admin only when the caller presents the configured admin secret.
func (s *AuthService) Register(name, email, password, adminSecret string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email is already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if adminSecret != "" && s.adminSecret != "" &&
		subtle.ConstantTimeCompare([]byte(adminSecret), []byte(s.adminSecret)) == 1 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password and returns a signed JWT. The
// same message is returned for an unknown email and a wrong password.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":  time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// UpdateMe updates the caller's profile fields. Password changes go through
// UpdateMyPassword instead.
func (s *AuthService) UpdateMe(userID, name, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(email)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			return nil, apperr.Conflict("email is already registered")
		}
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateMyPassword changes the caller's password after verifying the
// current one.
func (s *AuthService) UpdateMyPassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperr.Unauthorized("your current password is wrong")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ForgotPassword stores a hashed single-use reset token and emails the
// plain token to the user. If the email cannot be sent, the stored token is
// rolled back so a token that never reached the user cannot be redeemed.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("there is no user with that email address")
		}
		return err
	}

	plainToken, tokenHash, err := newResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = tokenHash
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/resetPassword/%s", s.clientURL, plainToken)
	message := fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password to:\n\n%s\n\nIf you didn't forget your password, please ignore this email!", resetURL)

	if err := s.mail.Send(user.Email, "Your Password Reset Token (Valid for 10 min)", message); err != nil {
		// Rollback: a stale token must not be redeemable without a matching
		// email having been sent.
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		if rbErr := s.userRepo.Update(user); rbErr != nil {
			log.Printf("Failed to roll back reset token for user %s: %v", user.ID, rbErr)
		}
		return apperr.Wrap(http.StatusInternalServerError,
			"there was an error sending the email, try again later", err)
	}
	return nil
}

// ResetPassword redeems a reset token and sets the new password. The token
// is single-use: its stored hash is cleared on success.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	hash := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(hash[:])

	user, err := s.userRepo.GetByResetTokenHash(tokenHash)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.BadRequest("token is invalid or has expired")
		}
		return err
	}
	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return apperr.BadRequest("token is invalid or has expired")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// newResetToken returns a random plain token and the SHA-256 hex hash that
// is stored in its place.
func newResetToken() (plain string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	sum := sha256.Sum256([]byte(plain))
	return plain, hex.EncodeToString(sum[:]), nil
}
