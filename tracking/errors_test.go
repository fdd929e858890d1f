package tracking

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"declined", ErrUserDeclinedInstallation, "Please install the AR runtime"},
		{"apk", fmt.Errorf("create: %w", ErrAPKTooOld), "Please update the AR runtime"},
		{"sdk", ErrSDKTooOld, "Please update this app"},
		{"device", ErrDeviceNotCompatible, "This device does not support AR"},
		{"camera", ErrCameraNotAvailable, "Camera not available. Try restarting the app."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeGeneric(t *testing.T) {
	got := Describe(errors.New("boom"))
	if !strings.HasPrefix(got, "Failed to create AR session") || !strings.Contains(got, "boom") {
		t.Errorf("Describe() = %q", got)
	}
}
