package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "operations manager", input: "operations-manager", want: RoleOperationsManager},
		{name: "processing worker", input: "processing-worker", want: RoleProcessingWorker},
		{name: "packing staff", input: "packing-staff", want: RolePackingStaff},
		{name: "finance clerk", input: "finance-clerk", want: RoleFinanceClerk},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "warehouse-admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, RoleUnset, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid())
	}
	assert.False(t, RoleUnset.Valid())
	assert.False(t, Role("admin").Valid())
}
