package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

// MaxGoalDays keeps goal deadlines within the storable timestamp range.
const MaxGoalDays = 36500

type goalStore interface {
	Create(ctx context.Context, g *models.Goal) error
	Get(ctx context.Context, goalID string) (*models.Goal, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Goal, error)
	Update(ctx context.Context, g *models.Goal) error
	Delete(ctx context.Context, goalID string) error
}

type goalService struct {
	goals    goalStore
	accounts accountGetter
	clockNow func() time.Time
}

func NewGoalService(goals goalStore, accounts accountGetter) *goalService {
	return &goalService{goals: goals, accounts: accounts, clockNow: time.Now}
}

// SetGoal creates a savings goal against one of the caller's accounts. The
// deadline is durationDays from now and dailyAmount the target spread
// evenly over that period, rounded to cents.
func (s *goalService) SetGoal(ctx context.Context, uid string, req dto.SetGoalRequest) (*models.Goal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.NewValidationError("goal name is required")
	}
	if !positiveAmount(req.TargetAmount) {
		return nil, errs.NewValidationError("target amount must be a positive number")
	}
	if req.DurationDays <= 0 {
		return nil, errs.NewValidationError("duration must be at least one day")
	}
	if req.DurationDays > MaxGoalDays {
		return nil, errs.NewValidationError(fmt.Sprintf("duration must be at most %d days", MaxGoalDays))
	}
	if _, err := ownedAccount(ctx, s.accounts, req.AccountID, uid); err != nil {
		return nil, err
	}

	now := s.clockNow()
	g := &models.Goal{
		UserID:       uid,
		AccountID:    req.AccountID,
		Name:         name,
		TargetAmount: req.TargetAmount,
		Deadline:     now.AddDate(0, 0, req.DurationDays),
		DailyAmount:  dailyAmount(req.TargetAmount, req.DurationDays),
		DurationDays: req.DurationDays,
		CreatedAt:    now,
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("goal created", "goal_id", g.ID, "account_id", g.AccountID)
	return g, nil
}

// ListGoals returns the caller's goals, newest first.
func (s *goalService) ListGoals(ctx context.Context, uid string) ([]*models.Goal, error) {
	goals, err := s.goals.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(goals, func(a, b *models.Goal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return goals, nil
}

// UpdateGoal renames a goal or changes its target. currentAmount only moves
// through ContributeToGoal.
func (s *goalService) UpdateGoal(ctx context.Context, goalID, uid string, req dto.UpdateGoalRequest) (*models.Goal, error) {
	g, err := s.ownedGoal(ctx, goalID, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.NewValidationError("goal name cannot be empty")
		}
		g.Name = name
	}
	if req.TargetAmount != nil {
		if !positiveAmount(*req.TargetAmount) {
			return nil, errs.NewValidationError("target amount must be a positive number")
		}
		g.TargetAmount = *req.TargetAmount
		if g.DurationDays > 0 {
			g.DailyAmount = dailyAmount(g.TargetAmount, g.DurationDays)
		}
	}

	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("goal updated", "goal_id", g.ID)
	return g, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID, uid string) error {
	if _, err := s.ownedGoal(ctx, goalID, uid); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, goalID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("goal deleted", "goal_id", goalID)
	return nil
}

func (s *goalService) ownedGoal(ctx context.Context, goalID, uid string) (*models.Goal, error) {
	if goalID == "" {
		return nil, errs.NewValidationError("goal id is required")
	}
	g, err := s.goals.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(g.UserID, uid, "goal"); err != nil {
		return nil, err
	}
	return g, nil
}

func dailyAmount(target float64, days int) float64 {
	return decimal.NewFromFloat(target).
		Div(decimal.NewFromInt(int64(days))).
		Round(2).
		InexactFloat64()
}
