// Package codec normalizes the employee payload shapes accepted at the service
// boundary into domain.Employee values.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/empsync/empsync-service/internal/domain"
)

var (
	// ErrMalformed marks a payload that is not valid JSON or has no employee list.
	ErrMalformed = errors.New("malformed employee payload")
	// ErrUnsuccessful marks an envelope that explicitly reports success=false.
	ErrUnsuccessful = errors.New("backend reported failure")
)

const dateLayout = "2006-01-02"

// Number accepts a JSON number or a numeric string. Anything else decodes to 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Number(v)
		}
		return nil
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil {
		*n = Number(v)
	}
	return nil
}

// Date accepts "2006-01-02" or RFC3339. Unparseable values decode to the zero time.
type Date time.Time

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date(time.Time{})
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = Date(t)
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = Date(t)
	}
	return nil
}

// MarshalJSON writes the date-only form, or null for the zero time.
func (d Date) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(dateLayout) + `"`), nil
}

// ID accepts string or numeric identifiers.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*id = ID(s)
		return nil
	}
	*id = ID(string(data))
	return nil
}

// EmployeeRecord is the wire form of an employee.
type EmployeeRecord struct {
	ID         ID      `json:"id"`
	LegacyID   ID      `json:"_id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Gender     string  `json:"gender"`
	Salary     Number  `json:"salary"`
	Bonus      Number  `json:"bonus"`
	PF         Number  `json:"pf"`
	Tax        Number  `json:"tax"`
	Status     string  `json:"status"`
	JoinDate   Date    `json:"joinDate"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
}

type envelope struct {
	Success   *bool            `json:"success"`
	Employees []EmployeeRecord `json:"employees"`
	Data      []EmployeeRecord `json:"data"`
	Message   string           `json:"message"`
}

// DecodeEmployees accepts {success, employees}, {employees}, {data} or a bare
// array and returns the employees in domain form.
func DecodeEmployees(payload []byte) ([]domain.Employee, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	var records []EmployeeRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if env.Success != nil && !*env.Success {
			if env.Message != "" {
				return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, env.Message)
			}
			return nil, ErrUnsuccessful
		}
		switch {
		case env.Employees != nil:
			records = env.Employees
		case env.Data != nil:
			records = env.Data
		default:
			return nil, fmt.Errorf("%w: no employee list", ErrMalformed)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected token %q", ErrMalformed, trimmed[0])
	}

	employees := make([]domain.Employee, 0, len(records))
	for _, rec := range records {
		employees = append(employees, rec.ToDomain())
	}
	return employees, nil
}

// EncodeEmployees writes the bare-array shape.
func EncodeEmployees(employees []domain.Employee) ([]byte, error) {
	records := make([]EmployeeRecord, 0, len(employees))
	for i := range employees {
		records = append(records, FromDomain(employees[i]))
	}
	return json.Marshal(records)
}

// ToDomain converts a wire record.
func (r EmployeeRecord) ToDomain() domain.Employee {
	id := string(r.ID)
	if id == "" {
		id = string(r.LegacyID)
	}
	status := domain.EmployeeStatus(strings.TrimSpace(r.Status))
	if !status.Valid() {
		if strings.EqualFold(string(status), string(domain.EmployeeStatusInactive)) {
			status = domain.EmployeeStatusInactive
		} else {
			status = domain.EmployeeStatusActive
		}
	}
	return domain.Employee{
		ID:         id,
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.TrimSpace(r.Email),
		Department: strings.TrimSpace(r.Department),
		Position:   strings.TrimSpace(r.Position),
		Gender:     strings.TrimSpace(r.Gender),
		Salary:     float64(r.Salary),
		Bonus:      float64(r.Bonus),
		PF:         float64(r.PF),
		Tax:        float64(r.Tax),
		Status:     status,
		JoinDate:   time.Time(r.JoinDate),
		Phone:      r.Phone,
		Address:    r.Address,
	}
}

// FromDomain converts a domain employee to its wire record.
func FromDomain(e domain.Employee) EmployeeRecord {
	return EmployeeRecord{
		ID:         ID(e.ID),
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Gender:     e.Gender,
		Salary:     Number(e.Salary),
		Bonus:      Number(e.Bonus),
		PF:         Number(e.PF),
		Tax:        Number(e.Tax),
		Status:     string(e.Status),
		JoinDate:   Date(e.JoinDate),
		Phone:      e.Phone,
		Address:    e.Address,
	}
}

// EmployeeCodec stores employee snapshots in the bare-array shape.
type EmployeeCodec struct{}

// Encode implements loader.Codec.
func (EmployeeCodec) Encode(items []domain.Employee) ([]byte, error) {
	return EncodeEmployees(items)
}

// Decode implements loader.Codec.
func (EmployeeCodec) Decode(raw []byte) ([]domain.Employee, error) {
	return DecodeEmployees(raw)
}
