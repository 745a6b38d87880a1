package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestRole_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Role
	}{
		{name: "plain string", in: `"ADMIN"`, want: RoleAdmin},
		{name: "object form", in: `{"roleName":"MODERATOR","roleId":2}`, want: RoleModerator},
		{name: "null", in: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Role
			require.NoError(t, json.Unmarshal([]byte(tt.in), &r))
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestRole_UnmarshalJSON_UnknownShapesFallBackToUser(t *testing.T) {
	for _, in := range []string{`42`, `true`, `[1]`, `{"roleName":7}`} {
		r := RoleAdmin
		require.NoError(t, json.Unmarshal([]byte(in), &r), in)
		assert.Equal(t, Role(""), r, in)
		assert.Equal(t, "USER", r.Name(), in)
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"u-1"`, "u-1"},
		{`42`, "42"},
		{`1.5`, "1.5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestRole_NameAndIsAdmin(t *testing.T) {
	assert.Equal(t, "USER", Role("").Name())
	assert.Equal(t, "ADMIN", RoleAdmin.Name())

	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, Role("moderator").IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("").IsAdmin())
}
