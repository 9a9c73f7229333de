package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/domain"
)

func TestDecodeEmployees_Envelope(t *testing.T) {
	payload := []byte(`{"success":true,"employees":[
		{"id":"e1","name":"Asha","email":"asha@example.com","department":"Engineering","gender":"Female","salary":50000,"status":"Active","joinDate":"2023-04-01"},
		{"_id":42,"name":"Ravi","salary":"70000","bonus":"1,500","status":"Inactive"}
	]}`)

	employees, err := DecodeEmployees(payload)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	require.Equal(t, "e1", employees[0].ID)
	require.Equal(t, 50000.0, employees[0].Salary)
	require.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), employees[0].JoinDate)

	require.Equal(t, "42", employees[1].ID)
	require.Equal(t, 70000.0, employees[1].Salary)
	require.Equal(t, 1500.0, employees[1].Bonus)
	require.Equal(t, domain.EmployeeStatusInactive, employees[1].Status)
}

func TestDecodeEmployees_BareArrayAndDataEnvelope(t *testing.T) {
	bare, err := DecodeEmployees([]byte(`[{"id":"a","salary":1}]`))
	require.NoError(t, err)
	require.Len(t, bare, 1)

	wrapped, err := DecodeEmployees([]byte(`{"data":[{"id":"a"},{"id":"b"}]}`))
	require.NoError(t, err)
	require.Len(t, wrapped, 2)
}

func TestDecodeEmployees_NonNumericFieldsBecomeZero(t *testing.T) {
	employees, err := DecodeEmployees([]byte(`[{"id":"x","salary":"bad","tax":true,"pf":null,"joinDate":"yesterday"}]`))
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Zero(t, employees[0].Salary)
	require.Zero(t, employees[0].Tax)
	require.Zero(t, employees[0].PF)
	require.True(t, employees[0].JoinDate.IsZero())
	require.Equal(t, domain.EmployeeStatusActive, employees[0].Status)
}

func TestDecodeEmployees_Failures(t *testing.T) {
	_, err := DecodeEmployees([]byte(`{"success":false,"message":"db down"}`))
	require.ErrorIs(t, err, ErrUnsuccessful)

	_, err = DecodeEmployees([]byte(`{not json`))
	require.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeEmployees([]byte(`{"success":true}`))
	require.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeEmployees([]byte(`   `))
	require.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeEmployees([]byte(`"employees"`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestEncodeEmployees_RoundTripsThroughDecode(t *testing.T) {
	phone := "+1-555-0100"
	in := []domain.Employee{{
		ID:         "e1",
		Name:       "Asha",
		Email:      "asha@example.com",
		Department: "Engineering",
		Salary:     52000.5,
		Status:     domain.EmployeeStatusActive,
		JoinDate:   time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		Phone:      &phone,
	}}

	raw, err := EncodeEmployees(in)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"joinDate":"2022-01-10"`)

	out, err := DecodeEmployees(raw)
	require.NoError(t, err)
	require.Equal(t, in, out)
}
