package services

import (
	"context"
	"io"
	"time"

	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/storage"
)

// mockSessionRepository is an in-memory implementation of SessionRepository
type mockSessionRepository struct {
	sessions      map[string]*models.Session
	createErr     error
	getErr        error
	deleteErr     error
	deleteExpired int
	deleteExpErr  error
	deletedTokens []string
	purgedAt      time.Time
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*models.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *mockSessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	session, ok := m.sessions[token]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}

func (m *mockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedTokens = append(m.deletedTokens, token)
	delete(m.sessions, token)
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	m.purgedAt = now
	if m.deleteExpErr != nil {
		return 0, m.deleteExpErr
	}
	return m.deleteExpired, nil
}

// mockUserRepository is a mock implementation of the user repository interfaces
type mockUserRepository struct {
	users            map[int]*models.User
	getErr           error
	createErr        error
	updateErr        error
	existsByEmail    bool
	existsByEmailErr error
	points           int
	pointsErr        error
	listUsers        []models.UserListItem
	listTotal        int
	listErr          error
	created          []*models.User
	updated          *models.User
	listArgs         []any
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[int]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = len(m.created) + 100
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmail, m.existsByEmailErr
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = user
	return nil
}

func (m *mockUserRepository) GetPoints(ctx context.Context, id int) (int, error) {
	return m.points, m.pointsErr
}

func (m *mockUserRepository) ListUsers(ctx context.Context, search string, page, limit int) ([]models.UserListItem, int, error) {
	m.listArgs = []any{search, page, limit}
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listUsers, m.listTotal, nil
}

// mockImageStore is a mock implementation of ImageStore
type mockImageStore struct {
	url        string
	assetID    string
	uploadErr  error
	deleteErr  error
	uploaded   []storage.MediaType
	deletedIDs []string
}

func (m *mockImageStore) Upload(ctx context.Context, mediaType storage.MediaType, reader io.Reader, filename string) (string, string, error) {
	if m.uploadErr != nil {
		return "", "", m.uploadErr
	}
	m.uploaded = append(m.uploaded, mediaType)
	return m.url, m.assetID, nil
}

func (m *mockImageStore) Delete(ctx context.Context, assetID string) error {
	m.deletedIDs = append(m.deletedIDs, assetID)
	return m.deleteErr
}

// mockItemRepository is a mock implementation of ItemRepository and ItemLedgerRepository
type mockItemRepository struct {
	item           *models.RecycleItem
	items          []models.RecycleItem
	err            error
	updateErr      error
	deleteErr      error
	createTotal    int
	createErr      error
	creditedPoints int
	historyFilter  models.ItemFilter
	deleted        bool
	updated        *models.RecycleItem
	updatedAt      time.Time
	getCalls       int
}

func (m *mockItemRepository) CreateWithPoints(ctx context.Context, item *models.RecycleItem, points int) (int, error) {
	m.creditedPoints = points
	if m.createErr != nil {
		return 0, m.createErr
	}
	item.ID = 1
	item.Status = models.ItemStatusPending
	return m.createTotal, nil
}

func (m *mockItemRepository) ListByUser(ctx context.Context, userID int) ([]models.RecycleItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockItemRepository) GetByIDAndUser(ctx context.Context, id, userID int) (*models.RecycleItem, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.item == nil || m.item.ID != id || m.item.UserID != userID {
		return nil, models.ErrNotFound
	}
	copied := *m.item
	return &copied, nil
}

func (m *mockItemRepository) History(ctx context.Context, userID int, filter models.ItemFilter) ([]models.RecycleItem, error) {
	m.historyFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *models.RecycleItem) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = item
	// The stored row gets a fresh updated_at like the ON UPDATE column does
	stored := *item
	stored.UpdatedAt = m.updatedAt
	m.item = &stored
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id, userID int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = true
	return nil
}

// mockRewardRepository is an in-memory implementation of RewardRepository that mirrors the transactional rules
type mockRewardRepository struct {
	rewards     map[int]models.Reward
	balances    map[int]int
	redemptions []models.Redemption
	listErr     error
	createErr   error
	redeemErr   error
}

func (m *mockRewardRepository) List(ctx context.Context) ([]models.Reward, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	rewards := make([]models.Reward, 0, len(m.rewards))
	for _, r := range m.rewards {
		rewards = append(rewards, r)
	}
	return rewards, nil
}

func (m *mockRewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	if m.createErr != nil {
		return m.createErr
	}
	reward.ID = len(m.rewards) + 1
	return nil
}

func (m *mockRewardRepository) Redeem(ctx context.Context, userID, rewardID int) (*models.Redemption, int, error) {
	if m.redeemErr != nil {
		return nil, 0, m.redeemErr
	}
	reward, ok := m.rewards[rewardID]
	if !ok {
		return nil, 0, models.ErrRewardNotFound
	}
	if m.balances[userID] < reward.Points {
		return nil, 0, models.ErrInsufficientPoints
	}
	m.balances[userID] -= reward.Points
	redemption := models.Redemption{ID: len(m.redemptions) + 1, UserID: userID, RewardID: rewardID, PointsSpent: reward.Points}
	m.redemptions = append(m.redemptions, redemption)
	return &redemption, m.balances[userID], nil
}

func (m *mockRewardRepository) History(ctx context.Context, userID int) ([]models.RedemptionHistoryItem, error) {
	history := make([]models.RedemptionHistoryItem, 0)
	for _, r := range m.redemptions {
		if r.UserID == userID {
			history = append(history, models.RedemptionHistoryItem{ID: r.ID, RewardID: r.RewardID, PointsSpent: r.PointsSpent})
		}
	}
	return history, nil
}

// mockPickupRepository is a mock implementation of PickupRepository and NextPickupRepository
type mockPickupRepository struct {
	pickups     []models.PickupRequest
	pickup      *models.PickupRequest
	err         error
	nextPending *time.Time
	created     *models.PickupRequest
	listStatus  models.PickupStatus
}

func (m *mockPickupRepository) Create(ctx context.Context, pickup *models.PickupRequest) error {
	if m.err != nil {
		return m.err
	}
	pickup.ID = 1
	pickup.Status = models.PickupStatusPending
	m.created = pickup
	return nil
}

func (m *mockPickupRepository) ListByUser(ctx context.Context, userID int) ([]models.PickupRequest, error) {
	return m.pickups, m.err
}

func (m *mockPickupRepository) List(ctx context.Context, status models.PickupStatus) ([]models.PickupRequest, error) {
	m.listStatus = status
	return m.pickups, m.err
}

func (m *mockPickupRepository) UpdateStatus(ctx context.Context, id int, status models.PickupStatus) (*models.PickupRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.pickup == nil || m.pickup.ID != id {
		return nil, models.ErrNotFound
	}
	m.pickup.Status = status
	return m.pickup, nil
}

func (m *mockPickupRepository) NextPending(ctx context.Context, userID int) (*time.Time, error) {
	return m.nextPending, m.err
}

// mockReportRepository is a mock implementation of ReportRepository
type mockReportRepository struct {
	userDashboard  *models.UserDashboard
	adminDashboard *models.AdminDashboard
	report         *models.RecyclingReport
	err            error
	since          time.Time
	reportPage     []int
}

func (m *mockReportRepository) UserDashboard(ctx context.Context, userID int) (*models.UserDashboard, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.userDashboard, nil
}

func (m *mockReportRepository) AdminDashboard(ctx context.Context, since time.Time) (*models.AdminDashboard, error) {
	m.since = since
	if m.err != nil {
		return nil, m.err
	}
	return m.adminDashboard, nil
}

func (m *mockReportRepository) RecyclingReport(ctx context.Context, page, limit int) (*models.RecyclingReport, error) {
	m.reportPage = []int{page, limit}
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockSubmissionRepository is a mock implementation of SubmissionRepository
type mockSubmissionRepository struct {
	submissions []models.SubmissionListItem
	total       int
	item        *models.RecycleItem
	err         error
	filter      models.SubmissionFilter
}

func (m *mockSubmissionRepository) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionListItem, int, error) {
	m.filter = filter
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.submissions, m.total, nil
}

func (m *mockSubmissionRepository) UpdateStatus(ctx context.Context, id int, status models.ItemStatus) (*models.RecycleItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.item == nil || m.item.ID != id {
		return nil, models.ErrNotFound
	}
	m.item.Status = status
	return m.item, nil
}
