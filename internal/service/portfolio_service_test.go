package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kawanlib/internal/model"
)

type fakePortfolioRepo struct {
	portfolios map[int]*model.Portfolio
	nextID     int
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{portfolios: map[int]*model.Portfolio{}, nextID: 1}
}

func (r *fakePortfolioRepo) Create(_ context.Context, p *model.Portfolio) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.portfolios[p.ID] = &cp
	return nil
}

func (r *fakePortfolioRepo) FindByID(_ context.Context, id int) (*model.Portfolio, error) {
	p, ok := r.portfolios[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePortfolioRepo) FindByUser(_ context.Context, userID int) ([]model.Portfolio, error) {
	var out []model.Portfolio
	for _, p := range r.portfolios {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePortfolioRepo) Update(_ context.Context, p *model.Portfolio) error {
	cp := *p
	r.portfolios[p.ID] = &cp
	return nil
}

func (r *fakePortfolioRepo) Delete(_ context.Context, id int) error {
	delete(r.portfolios, id)
	return nil
}

func (r *fakePortfolioRepo) UpdateFileKey(_ context.Context, id int, fileKey *string) error {
	p, ok := r.portfolios[id]
	if !ok {
		return assert.AnError
	}
	p.FileKey = fileKey
	return nil
}

func newTestPortfolioService() (PortfolioService, *fakePortfolioRepo) {
	repo := newFakePortfolioRepo()
	// No entry in these tests has an attached file, so no FileStore is needed.
	return NewPortfolioService(repo, nil), repo
}

func TestPortfolioService_CreateAndGet(t *testing.T) {
	svc, _ := newTestPortfolioService()

	created, err := svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "Library catalog app"})
	require.NoError(t, err)
	assert.Equal(t, 5, created.UserID)

	got, err := svc.GetPortfolioByID(context.Background(), created.ID, 5, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "Library catalog app", got.Title)
}

func TestPortfolioService_Get_OtherUserForbidden(t *testing.T) {
	svc, _ := newTestPortfolioService()
	created, err := svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "Library catalog app"})
	require.NoError(t, err)

	_, err = svc.GetPortfolioByID(context.Background(), created.ID, 6, model.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPortfolioService_Get_AdminAllowed(t *testing.T) {
	svc, _ := newTestPortfolioService()
	created, err := svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "Library catalog app"})
	require.NoError(t, err)

	got, err := svc.GetPortfolioByID(context.Background(), created.ID, 1, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestPortfolioService_Get_NotFound(t *testing.T) {
	svc, _ := newTestPortfolioService()

	_, err := svc.GetPortfolioByID(context.Background(), 99, 5, model.RoleUser)
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
}

func TestPortfolioService_GetUserPortfolios(t *testing.T) {
	svc, _ := newTestPortfolioService()
	_, err := svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "First"})
	require.NoError(t, err)
	_, err = svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "Second"})
	require.NoError(t, err)
	_, err = svc.CreatePortfolio(context.Background(), 6, model.CreatePortfolioRequest{Title: "Someone else's"})
	require.NoError(t, err)

	portfolios, err := svc.GetUserPortfolios(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, portfolios, 2)
}

func TestPortfolioService_Update_OwnerOnly(t *testing.T) {
	svc, _ := newTestPortfolioService()
	created, err := svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "Old title"})
	require.NoError(t, err)

	newTitle := "New title"
	updated, err := svc.UpdatePortfolio(context.Background(), created.ID, 5, model.UpdatePortfolioRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)

	// Even an admin cannot edit someone else's entry
	_, err = svc.UpdatePortfolio(context.Background(), created.ID, 1, model.UpdatePortfolioRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPortfolioService_Delete(t *testing.T) {
	svc, repo := newTestPortfolioService()
	created, err := svc.CreatePortfolio(context.Background(), 5, model.CreatePortfolioRequest{Title: "Library catalog app"})
	require.NoError(t, err)

	err = svc.DeletePortfolio(context.Background(), created.ID, 6, model.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeletePortfolio(context.Background(), created.ID, 5, model.RoleUser))
	assert.Empty(t, repo.portfolios)
}
