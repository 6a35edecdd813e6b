package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

const resetCodeTTL = 15 * time.Minute

type AuthService struct {
	db     *gorm.DB
	mailer utils.Mailer
}

func NewAuthService(db *gorm.DB, mailer utils.Mailer) *AuthService {
	return &AuthService{db: db, mailer: mailer}
}

type RegisterInput struct {
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	Name       string            `json:"name"`
	Age        *int              `json:"age"`
	Height     *float64          `json:"height"`
	Weight     *float64          `json:"weight"`
	CoachStyle models.CoachStyle `json:"coachStyle"`
}

// Register creates the user together with default privacy settings in
// one transaction and returns a signed bearer token. Emails are stored
// lowercase so duplicate checks are case-insensitive.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, "", utils.NewValidationError("Email, password, and name are required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", utils.NewConflictError("User with this email already exists")
	}

	coachStyle := in.CoachStyle
	if coachStyle == "" {
		coachStyle = models.CoachEncouraging
	}
	if !coachStyle.Valid() {
		return nil, "", utils.NewValidationError("Unknown coach style")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:                  email,
		PasswordHash:           hash,
		Name:                   in.Name,
		Age:                    in.Age,
		Height:                 in.Height,
		CurrentWeight:          in.Weight,
		CoachStyle:             coachStyle,
		EmailVerificationToken: utils.NewInviteToken(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		settings := models.DefaultPrivacySettings(user.ID)
		return tx.Create(&settings).Error
	})
	if err != nil {
		return nil, "", err
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerificationEmail(user.Email, user.EmailVerificationToken); err != nil {
			logrus.WithField("user_id", user.ID).Warn("verification email not sent")
		}
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login answers the same 401 for unknown emails and wrong passwords.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", utils.NewValidationError("Email and password are required")
	}

	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", utils.NewAuthenticationError("Invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", utils.NewAuthenticationError("Invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Me(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestPasswordReset stores a short-lived code and emails it. The
// caller's response is uniform whether or not the account exists.
func (s *AuthService) RequestPasswordReset(email string) error {
	if email == "" {
		return utils.NewValidationError("Email is required")
	}

	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code := utils.NewResetCode(6)
	expires := time.Now().Add(resetCodeTTL)
	user.PasswordResetToken = code
	user.PasswordResetExpires = &expires
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendResetCode(user.Email, code); err != nil {
			logrus.WithField("user_id", user.ID).Warn("reset email not sent")
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(code, newPassword string) error {
	if code == "" || newPassword == "" {
		return utils.NewValidationError("Token and password are required")
	}

	var user models.User
	err := s.db.Where("password_reset_token = ?", code).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewValidationError("Invalid or expired token")
	}
	if err != nil {
		return err
	}
	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return utils.NewValidationError("Invalid or expired token")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":          hash,
		"password_reset_token":   "",
		"password_reset_expires": nil,
	}).Error
}

func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return utils.NewValidationError("Verification token is required")
	}

	var user models.User
	err := s.db.Where("email_verification_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewValidationError("Invalid verification token")
	}
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"email_verified":           true,
		"email_verification_token": "",
	}).Error
}
