package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kawanlib/internal/model"
	"kawanlib/internal/repository"
)

type fakeEmployeeRepo struct {
	employees map[int]*model.Employee
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[int]*model.Employee{}, nextID: 1}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	for _, existing := range r.employees {
		if existing.NIP == e.NIP {
			return repository.ErrDuplicate
		}
	}
	e.ID = r.nextID
	r.nextID++
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id int) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) FindAll(_ context.Context, filters model.EmployeeFilters) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if filters.Department != nil && e.Department != *filters.Department {
			continue
		}
		if filters.Status != nil && e.Status != *filters.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id int) error {
	delete(r.employees, id)
	return nil
}

func createEmployeeRequest(nip string) model.CreateEmployeeRequest {
	return model.CreateEmployeeRequest{
		NIP:        nip,
		Name:       "Dewi Lestari",
		Position:   "Librarian",
		Department: "Collections",
		HireDate:   time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	employee, err := svc.CreateEmployee(context.Background(), createEmployeeRequest("198703012010012001"))

	require.NoError(t, err)
	assert.NotZero(t, employee.ID)
	// Status defaults to active when omitted
	assert.Equal(t, model.EmployeeStatusActive, employee.Status)
}

func TestEmployeeService_CreateEmployee_DuplicateNIP(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.CreateEmployee(context.Background(), createEmployeeRequest("198703012010012001"))
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), createEmployeeRequest("198703012010012001"))
	assert.ErrorIs(t, err, ErrNIPTaken)
}

func TestEmployeeService_GetEmployeeByID_NotFound(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.GetEmployeeByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_GetEmployees_Filtered(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	_, err := svc.CreateEmployee(context.Background(), createEmployeeRequest("198703012010012001"))
	require.NoError(t, err)
	other := createEmployeeRequest("199001152015031002")
	other.Department = "Circulation"
	_, err = svc.CreateEmployee(context.Background(), other)
	require.NoError(t, err)

	dept := "Collections"
	employees, err := svc.GetEmployees(context.Background(), model.EmployeeFilters{Department: &dept})

	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Collections", employees[0].Department)
}

func TestEmployeeService_UpdateEmployee_PartialFields(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())
	created, err := svc.CreateEmployee(context.Background(), createEmployeeRequest("198703012010012001"))
	require.NoError(t, err)

	newPosition := "Head Librarian"
	updated, err := svc.UpdateEmployee(context.Background(), created.ID, model.UpdateEmployeeRequest{Position: &newPosition})

	require.NoError(t, err)
	assert.Equal(t, "Head Librarian", updated.Position)
	// Untouched fields keep their values
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.NIP, updated.NIP)
}

func TestEmployeeService_UpdateEmployee_NotFound(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	name := "Dewi Lestari"
	_, err := svc.UpdateEmployee(context.Background(), 99, model.UpdateEmployeeRequest{Name: &name})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	created, err := svc.CreateEmployee(context.Background(), createEmployeeRequest("198703012010012001"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(context.Background(), created.ID))
	assert.Empty(t, repo.employees)

	err = svc.DeleteEmployee(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
