// internal/app/features/admin/employees.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/reelhub/internal/app/store/employees"
	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/inputval"
	"github.com/dalemusser/reelhub/internal/app/system/normalize"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"
	"github.com/dalemusser/reelhub/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type addEmployeeRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Post       string `json:"post"`
	Department string `json:"department"`
	Address    string `json:"address"`
	Salary     string `json:"salary"`
	DOB        string `json:"dob"` // DD-MM-YYYY
	AadharNo   string `json:"aadharNo"`
	PanNo      string `json:"panNo"`
	Role       string `json:"role"`
}

// HandleAddEmployee handles POST /api/admin/addEmployee. The validation
// order is fixed so clients always see the first problem in a predictable
// sequence.
func (h *Handler) HandleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var req addEmployeeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	required := []struct{ name, value string }{
		{"name", req.Name},
		{"phone", req.Phone},
		{"email", req.Email},
		{"password", req.Password},
		{"department", req.Department},
		{"post", req.Post},
		{"address", req.Address},
		{"salary", req.Salary},
		{"dob", req.DOB},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		httpjson.Fail(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	email := normalize.Email(req.Email)
	if !inputval.IsValidEmail(email) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Employees.ExistsByEmail(ctx, email)
	if err != nil {
		httpjson.Internal(w, h.Log, "employee exists check", err)
		return
	}
	if exists {
		httpjson.Fail(w, http.StatusConflict, "Employee already exists")
		return
	}

	if !inputval.IsValidPhone(req.Phone) {
		httpjson.Fail(w, http.StatusBadRequest, "Phone number must be 10 digits")
		return
	}
	if req.AadharNo != "" && !inputval.IsValidAadhaar(req.AadharNo) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid Aadhaar number")
		return
	}
	pan := inputval.NormalizePAN(req.PanNo)
	if pan != "" && !inputval.IsValidPAN(pan) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid PAN number")
		return
	}

	salary, err := inputval.ParseSalary(req.Salary)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid salary amount")
		return
	}

	dob, err := inputval.ParseDOB(req.DOB)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid date of birth format")
		return
	}
	age := inputval.AgeAt(dob, time.Now())
	if !inputval.ValidEmployeeAge(age) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid employee age")
		return
	}

	if !models.ValidDepartment(req.Department) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid department")
		return
	}
	if !models.ValidPost(req.Post) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid post")
		return
	}
	if req.Role != "" && req.Role != models.RoleAdmin && req.Role != models.RoleEmployee {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid role type.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		httpjson.Internal(w, h.Log, "hash employee password", err)
		return
	}

	emp, err := h.Employees.Create(ctx, models.Employee{
		Name:       normalize.Name(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      email,
		Password:   string(hash),
		Post:       req.Post,
		Department: req.Department,
		Address:    normalize.FreeText(req.Address),
		Salary:     salary,
		Age:        age,
		DOB:        dob,
		AadharNo:   strings.TrimSpace(req.AadharNo),
		PanNo:      pan,
		Role:       req.Role,
	})
	if err != nil {
		if errors.Is(err, employeestore.ErrDuplicate) {
			httpjson.Fail(w, http.StatusConflict, "Employee already exists")
			return
		}
		httpjson.Internal(w, h.Log, "create employee", err)
		return
	}

	emp.Password = ""
	h.notifyAdmins("employee_added", httpjson.M{"empId": emp.EmpID, "name": emp.Name})
	httpjson.OK(w, http.StatusCreated, httpjson.M{"message": "Employee created successfully", "data": emp})
}

type updateEmployeeRequest struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	Post        *string  `json:"post"`
	Department  *string  `json:"department"`
	Address     *string  `json:"address"`
	Salary      *float64 `json:"salary"`
	TotalLeaves *int     `json:"totalLeaves"`
	Status      *string  `json:"status"`
}

// HandleUpdateEmployee handles PATCH /api/admin/updateEmployee/{empId}.
// Only the supplied fields change; role and the elevation window have
// their own endpoints.
func (h *Handler) HandleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empId")

	var req updateEmployeeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = normalize.Name(*req.Name)
	}
	if req.Phone != nil {
		if !inputval.IsValidPhone(*req.Phone) {
			httpjson.Fail(w, http.StatusBadRequest, "Phone number must be 10 digits")
			return
		}
		set["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		email := normalize.Email(*req.Email)
		if !inputval.IsValidEmail(email) {
			httpjson.Fail(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		set["email"] = email
	}
	if req.Post != nil {
		if !models.ValidPost(*req.Post) {
			httpjson.Fail(w, http.StatusBadRequest, "Invalid post")
			return
		}
		set["post"] = *req.Post
	}
	if req.Department != nil {
		if !models.ValidDepartment(*req.Department) {
			httpjson.Fail(w, http.StatusBadRequest, "Invalid department")
			return
		}
		set["department"] = *req.Department
	}
	if req.Address != nil {
		set["address"] = normalize.FreeText(*req.Address)
	}
	if req.Salary != nil {
		if *req.Salary < 0 {
			httpjson.Fail(w, http.StatusBadRequest, "Invalid salary amount")
			return
		}
		set["salary"] = *req.Salary
	}
	if req.TotalLeaves != nil {
		set["totalLeaves"] = *req.TotalLeaves
	}
	if req.Status != nil {
		switch *req.Status {
		case models.EmployeeActive, models.EmployeeInactive, models.EmployeeTerminated, models.EmployeeResigned:
			set["status"] = *req.Status
		default:
			httpjson.Fail(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	if len(set) == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emp, err := h.Employees.UpdateByEmpID(ctx, empID, set)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Fail(w, http.StatusNotFound, "Employee not found")
		case errors.Is(err, employeestore.ErrDuplicate):
			httpjson.Fail(w, http.StatusConflict, "Employee already exists")
		default:
			httpjson.Internal(w, h.Log, "update employee", err)
		}
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Employee updated", "data": emp})
}

// HandleDeleteEmployee handles DELETE /api/admin/deleteEmployee/{empId}.
func (h *Handler) HandleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empId")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Employees.DeleteByEmpID(ctx, empID)
	if err != nil {
		httpjson.Internal(w, h.Log, "delete employee", err)
		return
	}
	if n == 0 {
		httpjson.Fail(w, http.StatusNotFound, "Employee not found")
		return
	}

	h.notifyAdmins("employee_deleted", httpjson.M{"empId": empID})
	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Employee deleted"})
}

// HandleFetchEmployees handles GET /api/admin/fetchEmployees.
func (h *Handler) HandleFetchEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Employees.List(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "list employees", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": list})
}

// HandleMakeAdmin handles POST /api/admin/makeAdmin/{empId}.
func (h *Handler) HandleMakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.updateRole(w, r, h.Employees.MakeAdmin, "Admin access granted")
}

// HandleRemoveAdmin handles POST /api/admin/removeAdmin/{empId}.
func (h *Handler) HandleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.updateRole(w, r, h.Employees.RemoveAdmin, "Admin access removed")
}

// HandleRemoveAdminAccessPeriod handles POST
// /api/admin/removeAdminAccessPeriod/{empId}.
func (h *Handler) HandleRemoveAdminAccessPeriod(w http.ResponseWriter, r *http.Request) {
	h.updateRole(w, r, h.Employees.ClearAccessWindow, "Admin period removed")
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (models.Employee, error), message string) {
	empID := chi.URLParam(r, "empId")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emp, err := op(ctx, empID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		httpjson.Internal(w, h.Log, "update employee privilege", err)
		return
	}

	h.notifyAdmins("employee_privilege_changed", httpjson.M{"empId": emp.EmpID, "role": emp.Role})
	httpjson.OK(w, http.StatusOK, httpjson.M{"message": message, "data": emp})
}

type accessPeriodRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// HandleGiveAdminAccessForPeriod handles POST
// /api/admin/giveAdminAccessForPeriod/{empId}. The employee keeps the
// employee role; privilege lapses by itself when the window ends.
func (h *Handler) HandleGiveAdminAccessForPeriod(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empId")

	var req accessPeriodRequest
	if err := httpjson.Decode(r, &req); err != nil || req.StartDate == "" || req.EndDate == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Start and end date required")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid start date")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid end date")
		return
	}
	if !end.After(start) {
		httpjson.Fail(w, http.StatusBadRequest, "End date must be after start date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emp, err := h.Employees.SetAccessWindow(ctx, empID, start, end)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		httpjson.Internal(w, h.Log, "set access window", err)
		return
	}

	h.notifyAdmins("employee_privilege_changed", httpjson.M{"empId": emp.EmpID, "role": emp.Role})
	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Temporary admin access granted", "data": emp})
}
