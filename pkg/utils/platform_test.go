//go:build !mobile

package utils

import "testing"

func TestIsMobileEmulation(t *testing.T) {
	t.Setenv("STOREFRONT_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("STOREFRONT_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour STOREFRONT_MOBILE_EMULATE=1")
	}
}
