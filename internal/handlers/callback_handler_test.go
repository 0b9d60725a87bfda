package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spkbot/internal/constants"
)

func TestParseAdminTarget(t *testing.T) {
	cases := []struct {
		data       string
		wantID     int64
		wantPrefix string
	}{
		{"admin_user_42", 42, constants.CALLBACK_PREFIX_ADMIN_USER},
		{"admin_bonus_42", 42, constants.CALLBACK_PREFIX_ADMIN_BONUS},
		{"admin_deduct_7", 7, constants.CALLBACK_PREFIX_ADMIN_DEDUCT},
		{"admin_reset_7", 7, constants.CALLBACK_PREFIX_ADMIN_RESET},
		{"admin_history_100500", 100500, constants.CALLBACK_PREFIX_ADMIN_HISTORY},
		{"admin_delete_13", 13, constants.CALLBACK_PREFIX_ADMIN_DELETE},
		{"confirm_delete_13", 13, constants.CALLBACK_PREFIX_DELETE_YES},
		{"cancel_delete_13", 13, constants.CALLBACK_PREFIX_DELETE_NO},
	}
	for _, tc := range cases {
		id, prefix, ok := parseAdminTarget(tc.data)
		assert.True(t, ok, "data: %q", tc.data)
		assert.Equal(t, tc.wantID, id, "data: %q", tc.data)
		assert.Equal(t, tc.wantPrefix, prefix, "data: %q", tc.data)
	}
}

func TestParseAdminTargetRejectsForeignCallbacks(t *testing.T) {
	for _, data := range []string{
		// Одиночные коллбэки панели не должны распознаваться как целевые.
		constants.CALLBACK_ADMIN_MAIN,
		constants.CALLBACK_ADMIN_USERS,
		constants.CALLBACK_BROADCAST_CONFIRM,
		constants.CALLBACK_BROADCAST_CANCEL,
		"admin_user_abc",
		"claim_ok_token",
		"main_menu",
		"",
	} {
		_, _, ok := parseAdminTarget(data)
		assert.False(t, ok, "data: %q", data)
	}
}
