package gateway

import (
	"context"
	"encoding/json"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/config"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

// Clients holds one long-lived connection per downstream service,
// established once at startup.
type Clients struct {
	Auth       *AuthClient
	Employee   *EmployeeClient
	Attendance *AttendanceClient
	Upload     *UploadClient
}

func NewClients(cfg config.Config) *Clients {
	return &Clients{
		Auth:       &AuthClient{rpc: rpc.NewClient(cfg.AuthURL)},
		Employee:   &EmployeeClient{rpc: rpc.NewClient(cfg.EmployeeURL)},
		Attendance: &AttendanceClient{rpc: rpc.NewClient(cfg.AttendanceURL)},
		Upload:     &UploadClient{rpc: rpc.NewClient(cfg.UploadURL)},
	}
}

type idPayload struct {
	ID string `json:"id"`
}

type updateEmployeePayload struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

type createAttendancePayload struct {
	EmployeeID string          `json:"employeeId"`
	Data       json.RawMessage `json:"data"`
}

type employeeAttendancePayload struct {
	EmployeeID string `json:"employeeId"`
}

type filePayload struct {
	Buffer       []byte `json:"buffer"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

type AuthClient struct {
	rpc *rpc.Client
}

func (a *AuthClient) Login(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rpc.Call(ctx, "login", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AuthClient) ValidateUser(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rpc.Call(ctx, "validate_user", idPayload{ID: id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type EmployeeClient struct {
	rpc *rpc.Client
}

func (e *EmployeeClient) Create(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := e.rpc.Call(ctx, "create_employee", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *EmployeeClient) GetAll(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := e.rpc.Call(ctx, "get_all_employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *EmployeeClient) Get(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := e.rpc.Call(ctx, "get_employee", idPayload{ID: id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *EmployeeClient) Update(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := e.rpc.Call(ctx, "update_employee", updateEmployeePayload{ID: id, Data: body}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *EmployeeClient) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := e.rpc.Call(ctx, "delete_employee", idPayload{ID: id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type AttendanceClient struct {
	rpc *rpc.Client
}

func (a *AttendanceClient) Create(ctx context.Context, employeeID string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rpc.Call(ctx, "create_attendance", createAttendancePayload{EmployeeID: employeeID, Data: body}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AttendanceClient) GetAll(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rpc.Call(ctx, "get_all_attendance", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AttendanceClient) GetByEmployee(ctx context.Context, employeeID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rpc.Call(ctx, "get_employee_attendance", employeeAttendancePayload{EmployeeID: employeeID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AttendanceClient) Get(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rpc.Call(ctx, "get_attendance", idPayload{ID: id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type UploadClient struct {
	rpc *rpc.Client
}

func (u *UploadClient) UploadFile(ctx context.Context, file filePayload) (json.RawMessage, error) {
	var out json.RawMessage
	if err := u.rpc.Call(ctx, "upload_file", file, &out); err != nil {
		return nil, err
	}
	return out, nil
}
