package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrportal/internal/leave"
	leaveerrors "go-hrportal/internal/leave/errors"
	leavebalanceerrors "go-hrportal/internal/leavebalance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	submitFn       func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn       func(ctx context.Context, employeeID string, canReadAll bool) ([]leave.LeaveResponse, error)
	getByIDFn      func(ctx context.Context, id string) (leave.LeaveResponse, error)
	updateReasonFn func(ctx context.Context, actorID, id string, req leave.UpdateLeaveReasonRequest) (leave.LeaveResponse, error)
	approveFn      func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	rejectFn       func(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error)
	cancelFn       func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, employeeID string, canReadAll bool) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, employeeID, canReadAll)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) UpdateReason(ctx context.Context, actorID, id string, req leave.UpdateLeaveReasonRequest) (leave.LeaveResponse, error) {
	return f.updateReasonFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, rejectionReason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorID, id)
}

func TestLeaveHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		employeeID := uuid.New().String()
		leaveTypeID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					Status:     leave.StatusPending,
					TotalDays:  5,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + employeeID + `","leave_type_id":"` + leaveTypeID + `","start_date":"2026-03-10","end_date":"2026-03-14","reason":"family trip"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("employee_id", actorID)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), employeeID)
		assert.Contains(t, w.Body.String(), leave.StatusPending)
	})

	t.Run("validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("employee_id", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("insufficient balance maps to unprocessable", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leavebalanceerrors.ErrInsufficientBalance
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + uuid.New().String() + `","leave_type_id":"` + uuid.New().String() + `","start_date":"2026-03-10","end_date":"2026-03-14"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("employee_id", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("employee scope", func(t *testing.T) {
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, eid string, canReadAll bool) ([]leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.False(t, canReadAll)
				return []leave.LeaveResponse{{ID: uuid.New().String(), EmployeeID: eid}}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
		c.Set("employee_id", employeeID)
		c.Set("role", "employee")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("privileged reader with employee filter", func(t *testing.T) {
		filterID := uuid.New().String()

		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, eid string, canReadAll bool) ([]leave.LeaveResponse, error) {
				assert.Equal(t, filterID, eid)
				assert.False(t, canReadAll)
				return nil, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?employee_id="+filterID, nil)
		c.Set("employee_id", uuid.New().String())
		c.Set("role", "hr")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("privileged reader without filter sees all", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, eid string, canReadAll bool) ([]leave.LeaveResponse, error) {
				assert.True(t, canReadAll)
				return nil, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
		c.Set("employee_id", uuid.New().String())
		c.Set("role", "admin")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		leaveID := uuid.New().String()
		req := httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reject passes reason through", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
				assert.Equal(t, "dates clash", rejectionReason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", strings.NewReader(`{"rejection_reason":"dates clash"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid transition maps to bad request", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/cancel", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Cancel(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+leaveID, nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
