package swap

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	auth Authorizer
	now  func() time.Time
}

func NewService(repo Repository, auth Authorizer) *Service {
	return &Service{repo: repo, auth: auth, now: time.Now}
}

func (s *Service) CreateSwap(ctx context.Context, input CreateInput) (*Swap, error) {
	var result Swap
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		shift, err := tx.GetShift(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		if shift.EmployeeID != input.RequesterID {
			return ErrNotShiftOwner
		}

		pending, err := tx.HasPendingSwap(ctx, shift.ID)
		if err != nil {
			return err
		}
		if pending {
			return ErrSwapPending
		}

		swap := Swap{
			ShiftID:     shift.ID,
			RequesterID: input.RequesterID,
			Reason:      strings.TrimSpace(input.Reason),
			Status:      StatusPending,
		}
		if err := tx.CreateSwap(ctx, &swap); err != nil {
			return err
		}
		result = swap
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetSwapStatus resolves a pending swap. Approval hands the shift to the new
// employee and appends one history row; rejection leaves the shift alone.
func (s *Service) SetSwapStatus(ctx context.Context, input SetStatusInput) (*Swap, error) {
	if input.Status != StatusApproved && input.Status != StatusRejected {
		return nil, ErrInvalidStatus
	}
	if input.Status == StatusApproved && input.NewEmployeeID == nil {
		return nil, ErrNewEmployeeRequired
	}

	swap, err := s.repo.GetSwap(ctx, input.SwapID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetShift(ctx, swap.ShiftID)
	if err != nil {
		return nil, err
	}

	admin, err := s.auth.IsGroupAdmin(ctx, input.ActorUserID, current.GroupID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotGroupAdmin
	}

	if swap.Terminal() {
		return nil, ErrSwapResolved
	}

	var assignee *int64
	if input.Status == StatusApproved {
		assignee = input.NewEmployeeID
	}
	now := s.now().UTC()

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		shift, err := tx.GetShift(ctx, swap.ShiftID)
		if err != nil {
			return err
		}

		if input.Status == StatusApproved {
			newEmployeeID := *input.NewEmployeeID
			exists, err := tx.EmployeeExists(ctx, newEmployeeID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrEmployeeNotFound
			}
			if newEmployeeID == shift.EmployeeID {
				return ErrSameEmployee
			}
			taken, err := tx.ShiftSlotTaken(ctx, newEmployeeID, shift.Date, shift.StartTime, shift.EndTime)
			if err != nil {
				return err
			}
			if taken {
				return ErrShiftConflict
			}
		}

		updated, err := tx.ResolveSwap(ctx, swap.ID, input.Status, assignee, input.ActorName, now)
		if err != nil {
			return err
		}
		if !updated {
			return ErrSwapResolved
		}

		if input.Status != StatusApproved {
			return nil
		}
		if err := tx.ReassignShift(ctx, shift.ID, *assignee); err != nil {
			return err
		}
		return tx.AppendHistory(ctx, &History{
			ShiftID:       shift.ID,
			OldEmployeeID: shift.EmployeeID,
			NewEmployeeID: *assignee,
			ChangedBy:     input.ActorName,
			ChangedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	swap.Status = input.Status
	swap.NewEmployeeID = assignee
	resolvedBy := input.ActorName
	swap.ResolvedBy = &resolvedBy
	swap.ResolvedAt = &now
	return swap, nil
}

// ListSwaps lists swaps on shifts of the groups the actor belongs to.
func (s *Service) ListSwaps(ctx context.Context, actorUserID int64, status string) ([]Swap, error) {
	status = strings.TrimSpace(status)
	if status != "" && status != StatusPending && status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}
	groupIDs, err := s.auth.MemberGroupIDs(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return []Swap{}, nil
	}
	return s.repo.ListSwaps(ctx, status, groupIDs)
}

func (s *Service) ShiftHistory(ctx context.Context, actorUserID, shiftID int64) ([]History, error) {
	shift, err := s.repo.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	member, err := s.auth.IsMember(ctx, actorUserID, shift.GroupID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}
	return s.repo.ListHistory(ctx, shiftID)
}
