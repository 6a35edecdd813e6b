package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

type UserService struct {
	db       *gorm.DB
	families *FamilyService
}

func NewUserService(db *gorm.DB, families *FamilyService) *UserService {
	return &UserService{db: db, families: families}
}

type Profile struct {
	User            models.User            `json:"user"`
	PrivacySettings models.PrivacySettings `json:"privacySettings"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, err
	}

	var privacy models.PrivacySettings
	if err := s.db.Where("user_id = ?", userID).First(&privacy).Error; err != nil {
		return nil, err
	}

	return &Profile{User: user, PrivacySettings: privacy}, nil
}

type UpdateProfileInput struct {
	Name   *string  `json:"name"`
	Age    *int     `json:"age"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

func (s *UserService) UpdateProfile(userID uint, in UpdateProfileInput) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, utils.NewValidationError("Name cannot be empty")
		}
		user.Name = *in.Name
	}
	if in.Age != nil {
		if *in.Age <= 0 {
			return nil, utils.NewValidationError("Age must be a positive number")
		}
		user.Age = in.Age
	}
	if in.Height != nil {
		if *in.Height <= 0 {
			return nil, utils.NewValidationError("Height must be a positive number")
		}
		user.Height = in.Height
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			return nil, utils.NewValidationError("Weight must be a positive number")
		}
		user.CurrentWeight = in.Weight
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdatePrivacyInput struct {
	WaterIntakeShared *bool `json:"waterIntakeShared"`
	ExerciseShared    *bool `json:"exerciseShared"`
	WeightShared      *bool `json:"weightShared"`
	SleepShared       *bool `json:"sleepShared"`
	VitalSignsShared  *bool `json:"vitalSignsShared"`
	GoalsShared       *bool `json:"goalsShared"`
}

func (s *UserService) UpdatePrivacySettings(userID uint, in UpdatePrivacyInput) (*models.PrivacySettings, error) {
	var privacy models.PrivacySettings
	if err := s.db.Where("user_id = ?", userID).First(&privacy).Error; err != nil {
		return nil, err
	}

	if in.WaterIntakeShared != nil {
		privacy.WaterIntakeShared = *in.WaterIntakeShared
	}
	if in.ExerciseShared != nil {
		privacy.ExerciseShared = *in.ExerciseShared
	}
	if in.WeightShared != nil {
		privacy.WeightShared = *in.WeightShared
	}
	if in.SleepShared != nil {
		privacy.SleepShared = *in.SleepShared
	}
	if in.VitalSignsShared != nil {
		privacy.VitalSignsShared = *in.VitalSignsShared
	}
	if in.GoalsShared != nil {
		privacy.GoalsShared = *in.GoalsShared
	}

	// Save with explicit column updates so false values persist.
	err := s.db.Model(&privacy).Updates(map[string]interface{}{
		"water_intake_shared": privacy.WaterIntakeShared,
		"exercise_shared":     privacy.ExerciseShared,
		"weight_shared":       privacy.WeightShared,
		"sleep_shared":        privacy.SleepShared,
		"vital_signs_shared":  privacy.VitalSignsShared,
		"goals_shared":        privacy.GoalsShared,
	}).Error
	if err != nil {
		return nil, err
	}
	return &privacy, nil
}

func (s *UserService) UpdateCoachStyle(userID uint, style models.CoachStyle) (*models.User, error) {
	if !style.Valid() {
		return nil, utils.NewValidationError("Unknown coach style")
	}

	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, err
	}

	user.CoachStyle = style
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAccount removes the user and everything they own. If they
// belong to a family, the membership is resolved first so admin
// handoff happens the same way as leaving.
func (s *UserService) DeleteAccount(userID uint) error {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return err
	}

	if membership, err := s.families.membershipOf(userID); err != nil {
		return err
	} else if membership != nil {
		if err := s.families.Leave(userID, membership.FamilyID); err != nil {
			return err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&models.WaterLog{}, &models.ExerciseLog{}, &models.WeightLog{},
			&models.SleepLog{}, &models.BloodPressureLog{},
			&models.HeartRateLog{}, &models.TemperatureLog{},
			&models.Goal{}, &models.Reminder{}, &models.PrivacySettings{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("email = ?", user.Email).
			Delete(&models.FamilyInvitation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return err
	}

	logrus.WithField("user_id", userID).Info("account deleted")
	return nil
}
