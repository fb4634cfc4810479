package user

import (
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	name := strings.Repeat("ü", 150)
	req := CreateUserRequest{Username: "employee2", Password: "password123", FullName: &name}
	require.NoError(t, req.Validate())
	assert.Equal(t, string(RoleEmployee), req.Role)

	long := strings.Repeat("ü", 151)
	req = CreateUserRequest{Username: "employee2", Password: "short", FullName: &long, Role: "owner"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	fields := verrs.ToMap()
	assert.Equal(t, "password must be at least 8 characters", fields["password"])
	assert.Equal(t, "full_name must not exceed 150 characters", fields["full_name"])
	assert.Contains(t, fields, "role")
}
