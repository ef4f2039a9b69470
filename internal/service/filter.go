package service

import (
	"strconv"

	"meetowner_crm/pkg/apperror"
)

// StatusFilterKind selects how ListLeads narrows by status.
type StatusFilterKind int

const (
	StatusAny StatusFilterKind = iota
	// StatusTodayCreated matches leads created today.
	StatusTodayCreated
	// StatusTodayFollowUp matches leads with a next action touched today.
	StatusTodayFollowUp
	// StatusExact matches a stored status id.
	StatusExact
)

// Legacy status_id query values that select pseudo statuses instead of
// stored ones.
const (
	legacyTodayLeads     = 0
	legacyTodayFollowUps = 2
)

type StatusFilter struct {
	Kind     StatusFilterKind
	StatusID uint
}

func AnyStatus() StatusFilter { return StatusFilter{Kind: StatusAny} }
func TodayCreated() StatusFilter { return StatusFilter{Kind: StatusTodayCreated} }
func TodayFollowUps() StatusFilter { return StatusFilter{Kind: StatusTodayFollowUp} }
func ByStatus(id uint) StatusFilter { return StatusFilter{Kind: StatusExact, StatusID: id} }

// ParseStatusFilter reads the HTTP query. view ("today", "followups") wins
// over status_id; status_id 0 and 2 keep their legacy pseudo-status meaning.
func ParseStatusFilter(view, statusID string) (StatusFilter, error) {
	switch view {
	case "today":
		return TodayCreated(), nil
	case "followups":
		return TodayFollowUps(), nil
	case "", "all":
	default:
		return StatusFilter{}, apperror.Validation("view must be one of: all, today, followups", "view")
	}

	if statusID == "" {
		return AnyStatus(), nil
	}
	id, err := strconv.ParseUint(statusID, 10, 64)
	if err != nil {
		return StatusFilter{}, apperror.Validation("status_id must be a valid integer", "status_id")
	}
	switch id {
	case legacyTodayLeads:
		return TodayCreated(), nil
	case legacyTodayFollowUps:
		return TodayFollowUps(), nil
	}
	return ByStatus(uint(id)), nil
}

// Assignee narrows results to one employee. Both parts must be set.
type Assignee struct {
	UserType uint
	ID       uint
}

type LeadFilter struct {
	Status   StatusFilter
	Assignee *Assignee
}

type BookedFilter struct {
	LeadID   *uint
	Assignee *Assignee
}
