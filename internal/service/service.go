package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/apperror"
	"meetowner_crm/pkg/utils/validation"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Clock returns the current instant. Tests pin it.
type Clock func() time.Time

// LeadService implements the lead lifecycle: creation, assignment, follow-up
// history and booking. Every call uses the injected pool; multi-statement
// operations run in a single transaction.
type LeadService struct {
	db       *gorm.DB
	clock    Clock
	loc      *time.Location
	validate *validation.Validator
}

type Options struct {
	Clock       Clock
	Location    *time.Location
	PhoneRegion string
}

func NewLeadService(db *gorm.DB, opts Options) *LeadService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PhoneRegion == "" {
		opts.PhoneRegion = "IN"
	}
	return &LeadService{
		db:       db,
		clock:    opts.Clock,
		loc:      opts.Location,
		validate: validation.New(opts.PhoneRegion),
	}
}

// Scope identifies the tenant that owns a lead.
type Scope struct {
	UserType uint
	UserID   uint
}

// stamp is one instant rendered into the date and time columns.
type stamp struct {
	Date string
	Time string
}

func (s *LeadService) now() stamp {
	t := s.clock().In(s.loc)
	return stamp{Date: t.Format(dateLayout), Time: t.Format(timeLayout)}
}

// Today is the current date in the service time zone.
func (s *LeadService) Today() string {
	return s.now().Date
}

// checkInput runs struct validation and maps failures onto the error
// taxonomy. Missing fields are reported before malformed ones.
func (s *LeadService) checkInput(in interface{}) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fe *validation.FieldErrors
	if !errors.As(err, &fe) {
		return apperror.Validation(err.Error())
	}
	if len(fe.Missing) > 0 {
		return apperror.MissingFields(fe.Missing...)
	}
	return apperror.Validation("Invalid value for: "+strings.Join(fe.Invalid, ", "), fe.Invalid...)
}

// exists reports whether any row of model matches the condition.
func exists(ctx context.Context, db *gorm.DB, m interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(m).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *LeadService) userExists(ctx context.Context, id uint, userType *uint) (bool, error) {
	if userType != nil {
		return exists(ctx, s.db, &model.CRMUser{}, "id = ? AND user_type = ?", id, *userType)
	}
	return exists(ctx, s.db, &model.CRMUser{}, "id = ?", id)
}

// normalizeDate trims timestamps from drivers that return DATE columns as
// full RFC 3339 values.
func normalizeDate(d string) string {
	if len(d) > len(dateLayout) {
		return d[:len(dateLayout)]
	}
	return d
}

func normalizeLeadDates(l *model.Lead) {
	l.CreatedDate = normalizeDate(l.CreatedDate)
	l.UpdatedDate = normalizeDate(l.UpdatedDate)
	if l.AssignedDate != nil {
		d := normalizeDate(*l.AssignedDate)
		l.AssignedDate = &d
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
