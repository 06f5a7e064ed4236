package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velora-hq/velora-api/internal/analytics"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"github.com/velora-hq/velora-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInviteNotFound = errors.New("invite not found")
	ErrEmailRequired  = errors.New("email is required")
	ErrNotAnInvestor  = errors.New("member is not an investor")
)

// InvestorService manages investor invites, investor memberships, and the
// read-only investor view.
type InvestorService struct {
	inviteRepo    repository.InvestorInviteRepository
	workspaceRepo repository.WorkspaceRepository
	financeRepo   repository.FinanceRepository
	taskRepo      repository.TaskRepository
	milestoneRepo repository.MilestoneRepository
	userRepo      repository.UserRepository
}

// NewInvestorService creates a new InvestorService
func NewInvestorService(
	inviteRepo repository.InvestorInviteRepository,
	workspaceRepo repository.WorkspaceRepository,
	financeRepo repository.FinanceRepository,
	taskRepo repository.TaskRepository,
	milestoneRepo repository.MilestoneRepository,
	userRepo repository.UserRepository,
) *InvestorService {
	return &InvestorService{
		inviteRepo:    inviteRepo,
		workspaceRepo: workspaceRepo,
		financeRepo:   financeRepo,
		taskRepo:      taskRepo,
		milestoneRepo: milestoneRepo,
		userRepo:      userRepo,
	}
}

// InviteInvestorInput represents input for creating an investor invite
type InviteInvestorInput struct {
	WorkspaceID uint64
	Email       string
	Name        string
	CreatedBy   uint64
}

// InviteInvestor creates a single-use invite code addressed to an
// investor. Invite codes share the workspace code's format but live in
// their own namespace.
func (s *InvestorService) InviteInvestor(input InviteInvestorInput) (*models.InvestorInvite, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	invite := &models.InvestorInvite{
		WorkspaceID: input.WorkspaceID,
		Email:       email,
		Name:        strings.TrimSpace(input.Name),
		Status:      models.InviteStatusPending,
		CreatedBy:   input.CreatedBy,
	}

	var err error
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		invite.InviteCode = utils.GenerateInviteCode()
		err = s.inviteRepo.Create(invite)
		if err == nil {
			return invite, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	return nil, fmt.Errorf("failed to create investor invite: %w", err)
}

// InvestorEntry is one row of the investor roster: either an accepted
// investor member or a still-pending invite.
type InvestorEntry struct {
	UserID   *uint64             `json:"user_id,omitempty"`
	Email    string              `json:"email"`
	Name     string              `json:"name"`
	Status   models.InviteStatus `json:"status"`
	InviteID *uint64             `json:"invite_id,omitempty"`
}

// ListInvestors returns the investor roster: members holding the
// investor role followed by pending invites.
func (s *InvestorService) ListInvestors(workspaceID uint64) ([]InvestorEntry, error) {
	members, err := s.workspaceRepo.ListMembersByRole(workspaceID, models.RoleInvestor)
	if err != nil {
		return nil, fmt.Errorf("failed to list investor members: %w", err)
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load investor users: %w", err)
	}
	usersByID := make(map[uint64]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	entries := make([]InvestorEntry, 0, len(members))
	for _, m := range members {
		userID := m.UserID
		entry := InvestorEntry{
			UserID: &userID,
			Status: models.InviteStatusAccepted,
		}
		if u, ok := usersByID[m.UserID]; ok {
			entry.Email = u.Email
			entry.Name = u.FullName
		}
		entries = append(entries, entry)
	}

	pending, err := s.inviteRepo.ListPendingByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invites: %w", err)
	}
	for _, inv := range pending {
		inviteID := inv.ID
		entries = append(entries, InvestorEntry{
			Email:    inv.Email,
			Name:     inv.Name,
			Status:   models.InviteStatusPending,
			InviteID: &inviteID,
		})
	}

	return entries, nil
}

// AcceptInvite consumes an investor invite and adds the user to the
// workspace with the investor role. Investor joins are exempt from the
// free plan member limit. A second accept of the same code fails as a
// not-found.
func (s *InvestorService) AcceptInvite(userID uint64, code string) (*models.Workspace, error) {
	invite, err := s.inviteRepo.FindPendingByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}

	workspace, err := s.workspaceRepo.FindByID(invite.WorkspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if _, err := s.workspaceRepo.FindMember(workspace.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	// Consume the invite first; the status-guarded update loses cleanly
	// if another accept got there in between.
	consumed, err := s.inviteRepo.MarkAccepted(invite.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to accept invite: %w", err)
	}
	if !consumed {
		return nil, ErrInviteNotFound
	}

	member := &models.Membership{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        models.RoleInvestor,
		JoinedAt:    time.Now(),
	}
	if err := s.workspaceRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add investor member: %w", err)
	}

	return workspace, nil
}

// RemoveInvestor removes an investor-role member from the workspace
func (s *InvestorService) RemoveInvestor(workspaceID, targetUserID uint64) error {
	member, err := s.workspaceRepo.FindMember(workspaceID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member.Role != models.RoleInvestor {
		return ErrNotAnInvestor
	}
	if err := s.workspaceRepo.RemoveMember(workspaceID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove investor: %w", err)
	}
	return nil
}

// InvestorView assembles the aggregate-only view served to investor
// members. Individual tasks, feedback entries, and member identities are
// never included.
func (s *InvestorService) InvestorView(workspaceID uint64) (*analytics.InvestorView, error) {
	workspace, err := s.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	income, err := s.financeRepo.ListIncome(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	expenses, err := s.financeRepo.ListExpenses(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	investments, err := s.financeRepo.ListInvestments(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	members, err := s.workspaceRepo.ListMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	milestones, err := s.milestoneRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	tasks, err := s.taskRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	view := analytics.ComputeInvestorView(*workspace, income, expenses, investments, members, milestones, tasks)
	return &view, nil
}
