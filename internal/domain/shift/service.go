package shift

import (
	"context"
	"slices"
	"strings"
)

type Service struct {
	repo Repository
	auth Authorizer
}

func NewService(repo Repository, auth Authorizer) *Service {
	return &Service{repo: repo, auth: auth}
}

// Approve turns a shift response into a shift. The response is left as is,
// so approving it again is rejected by the duplicate-shift check.
func (s *Service) Approve(ctx context.Context, actorUserID, responseID int64) (*Shift, error) {
	response, err := s.repo.GetResponse(ctx, responseID)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, response.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, actorUserID, request.GroupID); err != nil {
		return nil, err
	}

	if !response.Complete() {
		return nil, ErrResponseIncomplete
	}

	shift := Shift{
		EmployeeID: response.EmployeeID,
		GroupID:    request.GroupID,
		Date:       DateOnly(*response.PreferredDate),
		StartTime:  *response.PreferredStart,
		EndTime:    *response.PreferredEnd,
	}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		return insertUnique(ctx, tx, &shift)
	})
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *Service) CreateShift(ctx context.Context, input CreateShiftInput) (*Shift, error) {
	start, end, err := normalizeRange(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, input.ActorUserID, input.GroupID); err != nil {
		return nil, err
	}

	var result Shift
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.EmployeeExists(ctx, input.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrEmployeeNotFound
		}

		shift := Shift{
			EmployeeID: input.EmployeeID,
			GroupID:    input.GroupID,
			Date:       DateOnly(input.Date),
			StartTime:  start,
			EndTime:    end,
		}
		if err := insertUnique(ctx, tx, &shift); err != nil {
			return err
		}
		result = shift
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) GetShift(ctx context.Context, shiftID int64) (*Shift, error) {
	return s.repo.GetShift(ctx, shiftID)
}

// ListShifts is unscoped; salary estimation and the caller's own shifts use it.
func (s *Service) ListShifts(ctx context.Context, filter ListFilter) ([]Shift, error) {
	return s.repo.ListShifts(ctx, filter)
}

// ListGroupShifts lists shifts in the groups the actor belongs to.
func (s *Service) ListGroupShifts(ctx context.Context, actorUserID int64, filter ListFilter) ([]Shift, error) {
	groupIDs, err := s.visibleGroups(ctx, actorUserID, filter.GroupID)
	if err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return []Shift{}, nil
	}
	filter.GroupIDs = groupIDs
	return s.repo.ListShifts(ctx, filter)
}

func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*Request, error) {
	if err := s.requireAdmin(ctx, input.ActorUserID, input.GroupID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	request := Request{
		GroupID:     input.GroupID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   input.ActorUserID,
	}
	if err := s.repo.CreateRequest(ctx, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListRequests lists requests in the groups the actor belongs to, optionally
// narrowed to one of them.
func (s *Service) ListRequests(ctx context.Context, actorUserID int64, groupID *int64) ([]Request, error) {
	groupIDs, err := s.visibleGroups(ctx, actorUserID, groupID)
	if err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return []Request{}, nil
	}
	return s.repo.ListRequests(ctx, groupIDs)
}

func (s *Service) SubmitResponse(ctx context.Context, input SubmitResponseInput) (*Response, error) {
	request, err := s.repo.GetRequest(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	member, err := s.auth.IsMember(ctx, input.ActorUserID, request.GroupID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	response := Response{
		RequestID:  request.ID,
		EmployeeID: input.EmployeeID,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if input.PreferredDate != nil {
		date := DateOnly(*input.PreferredDate)
		response.PreferredDate = &date
	}
	if input.PreferredStart != nil {
		start, err := NormalizeClock(*input.PreferredStart)
		if err != nil {
			return nil, err
		}
		response.PreferredStart = &start
	}
	if input.PreferredEnd != nil {
		end, err := NormalizeClock(*input.PreferredEnd)
		if err != nil {
			return nil, err
		}
		response.PreferredEnd = &end
	}
	if response.PreferredStart != nil && response.PreferredEnd != nil {
		if _, _, err := normalizeRange(*response.PreferredStart, *response.PreferredEnd); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateResponse(ctx, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *Service) ListResponses(ctx context.Context, actorUserID, requestID int64) ([]Response, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	member, err := s.auth.IsMember(ctx, actorUserID, request.GroupID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}
	return s.repo.ListResponses(ctx, requestID)
}

func (s *Service) requireAdmin(ctx context.Context, userID, groupID int64) error {
	exists, err := s.auth.GroupExists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrGroupNotFound
	}
	ok, err := s.auth.IsGroupAdmin(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotGroupAdmin
	}
	return nil
}

// visibleGroups returns the actor's groups, or just requested when the actor
// belongs to it.
func (s *Service) visibleGroups(ctx context.Context, userID int64, requested *int64) ([]int64, error) {
	groupIDs, err := s.auth.MemberGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requested == nil {
		return groupIDs, nil
	}
	if !slices.Contains(groupIDs, *requested) {
		return nil, ErrNotGroupMember
	}
	return []int64{*requested}, nil
}

// insertUnique checks the employee/slot key before inserting; the repository
// maps a unique-index violation from a concurrent writer to ErrShiftConflict.
func insertUnique(ctx context.Context, tx Repository, shift *Shift) error {
	exists, err := tx.ShiftExists(ctx, shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime)
	if err != nil {
		return err
	}
	if exists {
		return ErrShiftConflict
	}
	return tx.CreateShift(ctx, shift)
}

func normalizeRange(start, end string) (string, string, error) {
	normalizedStart, err := NormalizeClock(start)
	if err != nil {
		return "", "", err
	}
	normalizedEnd, err := NormalizeClock(end)
	if err != nil {
		return "", "", err
	}
	span, err := ClockSpanMinutes(normalizedStart, normalizedEnd)
	if err != nil {
		return "", "", err
	}
	if span <= 0 {
		return "", "", ErrInvalidTimeRange
	}
	return normalizedStart, normalizedEnd, nil
}
