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

const inviteTTL = 7 * 24 * time.Hour

type FamilyService struct {
	db         *gorm.DB
	mailer     utils.Mailer
	dashboards *DashboardService
}

func NewFamilyService(db *gorm.DB, mailer utils.Mailer, dashboards *DashboardService) *FamilyService {
	return &FamilyService{db: db, mailer: mailer, dashboards: dashboards}
}

// Create makes the caller the admin and first member. A user belongs
// to at most one family.
func (s *FamilyService) Create(userID uint, name string) (*models.Family, error) {
	if strings.TrimSpace(name) == "" {
		return nil, utils.NewValidationError("Family name is required")
	}

	if existing, err := s.membershipOf(userID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, utils.NewConflictError("You already belong to a family")
	}

	family := models.Family{Name: strings.TrimSpace(name), AdminID: userID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		member := models.FamilyMember{
			FamilyID: family.ID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &family, nil
}

type FamilyMemberView struct {
	UserID   uint      `json:"userId"`
	Name     string    `json:"name"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"joinedAt"`
}

type FamilyView struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	AdminID   uint               `json:"adminId"`
	CreatedAt time.Time          `json:"createdAt"`
	Members   []FamilyMemberView `json:"members"`
}

// Get returns the family roster; only members may look.
func (s *FamilyService) Get(viewerID, familyID uint) (*FamilyView, error) {
	family, err := s.requireMember(viewerID, familyID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberViews(family)
	if err != nil {
		return nil, err
	}

	return &FamilyView{
		ID:        family.ID,
		Name:      family.Name,
		AdminID:   family.AdminID,
		CreatedAt: family.CreatedAt,
		Members:   members,
	}, nil
}

// Dashboard assembles each member's daily summary, filtered by that
// member's privacy settings. Hidden categories are omitted keys, never
// nulls, so clients can tell "hidden" from "nothing logged". Viewers
// always see their own data in full.
func (s *FamilyService) Dashboard(viewerID, familyID uint, now time.Time) ([]map[string]interface{}, error) {
	family, err := s.requireMember(viewerID, familyID)
	if err != nil {
		return nil, err
	}

	var memberships []models.FamilyMember
	if err := s.db.Where("family_id = ?", familyID).
		Order("joined_at ASC").Find(&memberships).Error; err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0, len(memberships))
	for _, m := range memberships {
		var user models.User
		if err := s.db.First(&user, m.UserID).Error; err != nil {
			return nil, err
		}

		var privacy models.PrivacySettings
		if err := s.db.Where("user_id = ?", m.UserID).First(&privacy).Error; err != nil {
			return nil, err
		}

		summary, err := s.dashboards.Summary(m.UserID, now)
		if err != nil {
			return nil, err
		}

		self := m.UserID == viewerID
		entry := map[string]interface{}{
			"userId":   m.UserID,
			"name":     user.Name,
			"isAdmin":  m.UserID == family.AdminID,
			"joinedAt": m.JoinedAt,
		}
		if self || privacy.Allows(models.KindWater) {
			entry["water"] = summary.Water
		}
		if self || privacy.Allows(models.KindExercise) {
			entry["exercise"] = summary.Exercise
		}
		if self || privacy.Allows(models.KindWeight) {
			entry["weight"] = summary.Weight
		}
		if self || privacy.Allows(models.KindSleep) {
			entry["sleep"] = summary.Sleep
		}
		// All three vitals kinds share one flag.
		if self || privacy.Allows(models.KindHeartRate) {
			entry["vitalSigns"] = summary.VitalSigns
		}
		if self || privacy.GoalsShared {
			goals, err := s.visibleGoals(m.UserID, self)
			if err != nil {
				return nil, err
			}
			entry["goals"] = goals
		}
		out = append(out, entry)
	}
	return out, nil
}

// visibleGoals returns all goals for the owner and only shared ones
// for everyone else.
func (s *FamilyService) visibleGoals(userID uint, self bool) ([]models.Goal, error) {
	q := s.db.Where("user_id = ?", userID)
	if !self {
		q = q.Where("is_shared = ?", true)
	}
	var goals []models.Goal
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

// Invite issues a tokenized invitation and emails it; admin only.
func (s *FamilyService) Invite(adminID, familyID uint, email string) (*models.FamilyInvitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, utils.NewValidationError("Email is required")
	}

	family, err := s.requireMember(adminID, familyID)
	if err != nil {
		return nil, err
	}
	if family.AdminID != adminID {
		return nil, utils.NewAuthorizationError("Only the family admin can invite members")
	}

	invite := models.FamilyInvitation{
		FamilyID:  familyID,
		Email:     email,
		Token:     utils.NewInviteToken(),
		ExpiresAt: time.Now().Add(inviteTTL),
	}
	if err := s.db.Create(&invite).Error; err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendFamilyInvite(email, family.Name, invite.Token); err != nil {
			logrus.WithFields(logrus.Fields{"family_id": familyID, "email": email}).
				Warn("invite email not sent")
		}
	}
	return &invite, nil
}

// AcceptInvite joins the invitee to the family and consumes the token.
func (s *FamilyService) AcceptInvite(userID uint, userEmail, token string) (*models.Family, error) {
	var invite models.FamilyInvitation
	err := s.db.Where("token = ?", token).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Invitation not found")
	}
	if err != nil {
		return nil, err
	}

	if invite.Expired(time.Now()) {
		return nil, utils.NewValidationError("Invitation has expired")
	}
	if !strings.EqualFold(invite.Email, userEmail) {
		return nil, utils.NewAuthorizationError("Invitation was issued to a different email")
	}

	if existing, err := s.membershipOf(userID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, utils.NewConflictError("You already belong to a family")
	}

	var family models.Family
	if err := s.db.First(&family, invite.FamilyID).Error; err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		member := models.FamilyMember{
			FamilyID: invite.FamilyID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Delete(&invite).Error
	})
	if err != nil {
		return nil, err
	}
	return &family, nil
}

// RemoveMember ejects a non-admin member; admin only. Admins leave via
// Leave so the family always keeps exactly one admin.
func (s *FamilyService) RemoveMember(adminID, familyID, memberUserID uint) error {
	family, err := s.requireMember(adminID, familyID)
	if err != nil {
		return err
	}
	if family.AdminID != adminID {
		return utils.NewAuthorizationError("Only the family admin can remove members")
	}
	if memberUserID == family.AdminID {
		return utils.NewValidationError("The admin cannot be removed; leave the family instead")
	}

	res := s.db.Where("family_id = ? AND user_id = ?", familyID, memberUserID).
		Delete(&models.FamilyMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Member not found in this family")
	}
	return nil
}

// Leave removes the caller. A departing admin hands the role to the
// earliest-joined remaining member; the last member leaving deletes
// the family.
func (s *FamilyService) Leave(userID, familyID uint) error {
	family, err := s.requireMember(userID, familyID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("family_id = ? AND user_id = ?", familyID, userID).
			Delete(&models.FamilyMember{}).Error; err != nil {
			return err
		}

		var remaining []models.FamilyMember
		if err := tx.Where("family_id = ?", familyID).
			Order("joined_at ASC").Find(&remaining).Error; err != nil {
			return err
		}

		if len(remaining) == 0 {
			if err := tx.Where("family_id = ?", familyID).
				Delete(&models.FamilyInvitation{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Family{}, familyID).Error
		}

		if family.AdminID == userID {
			return tx.Model(&models.Family{}).Where("id = ?", familyID).
				Update("admin_id", remaining[0].UserID).Error
		}
		return nil
	})
}

func (s *FamilyService) memberViews(family *models.Family) ([]FamilyMemberView, error) {
	var memberships []models.FamilyMember
	if err := s.db.Where("family_id = ?", family.ID).
		Order("joined_at ASC").Find(&memberships).Error; err != nil {
		return nil, err
	}

	views := make([]FamilyMemberView, 0, len(memberships))
	for _, m := range memberships {
		var user models.User
		if err := s.db.First(&user, m.UserID).Error; err != nil {
			return nil, err
		}
		views = append(views, FamilyMemberView{
			UserID:   m.UserID,
			Name:     user.Name,
			IsAdmin:  m.UserID == family.AdminID,
			JoinedAt: m.JoinedAt,
		})
	}
	return views, nil
}

// requireMember loads the family and confirms the viewer belongs to it.
func (s *FamilyService) requireMember(userID, familyID uint) (*models.Family, error) {
	var family models.Family
	err := s.db.First(&family, familyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Family not found")
	}
	if err != nil {
		return nil, err
	}

	var n int64
	if err := s.db.Model(&models.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.NewAuthorizationError("You are not a member of this family")
	}
	return &family, nil
}

// membershipOf returns the user's membership, or nil when they have
// none.
func (s *FamilyService) membershipOf(userID uint) (*models.FamilyMember, error) {
	var member models.FamilyMember
	err := s.db.Where("user_id = ?", userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}
