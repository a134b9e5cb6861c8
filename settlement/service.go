package settlement

import (
	"errors"
	"time"

	"pinball-backend/models"
	"pinball-backend/utils"

	"gorm.io/gorm"
)

var ErrSettlementNotFound = errors.New("settlement not found")

// EntityService manages Settlement records: the explicit, user-driven
// counterpart to the calculator's derived views.
type EntityService struct {
	db *gorm.DB
}

func NewEntityService(db *gorm.DB) *EntityService {
	return &EntityService{db: db}
}

// derivedStatus maps the amount comparison onto the settlement state
// machine. Confirmed never comes out of here; it is set only by Confirm.
func derivedStatus(due, paid float64) string {
	switch {
	case paid >= due && paid > 0:
		return models.SettlementPaid
	case paid > 0:
		return models.SettlementPartial
	default:
		return models.SettlementPending
	}
}

func (s *EntityService) Create(showID uint, amountDue, amountPaid float64, currency, notes string) (*models.Settlement, error) {
	amountDue = utils.Round2(amountDue)
	amountPaid = utils.Round2(amountPaid)

	st := models.Settlement{
		ShowID:     showID,
		AmountDue:  amountDue,
		AmountPaid: amountPaid,
		Balance:    utils.Round2(amountDue - amountPaid),
		Currency:   currency,
		Status:     derivedStatus(amountDue, amountPaid),
		Notes:      notes,
	}
	if err := s.db.Create(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// Update changes the amounts and recomputes balance and status, except on a
// Confirmed settlement, whose status is final.
func (s *EntityService) Update(id uint, amountDue, amountPaid *float64, notes *string) (*models.Settlement, error) {
	var st models.Settlement
	if err := s.db.First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettlementNotFound
		}
		return nil, err
	}

	if amountDue != nil {
		st.AmountDue = utils.Round2(*amountDue)
	}
	if amountPaid != nil {
		st.AmountPaid = utils.Round2(*amountPaid)
	}
	if notes != nil {
		st.Notes = *notes
	}
	st.Balance = utils.Round2(st.AmountDue - st.AmountPaid)
	if st.Status != models.SettlementConfirmed {
		st.Status = derivedStatus(st.AmountDue, st.AmountPaid)
	}

	if err := s.db.Save(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// Confirm is an operator attestation. It moves the settlement to Confirmed
// regardless of what the amounts say, records who and when, and is terminal.
func (s *EntityService) Confirm(id uint, confirmedBy string) (*models.Settlement, error) {
	var st models.Settlement
	if err := s.db.First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettlementNotFound
		}
		return nil, err
	}

	now := time.Now()
	st.Status = models.SettlementConfirmed
	st.ConfirmedBy = confirmedBy
	st.ConfirmedAt = &now

	if err := s.db.Save(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
