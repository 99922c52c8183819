package util

import "testing"

func TestGetEnvString(t *testing.T) {
	t.Setenv("WIKI2CRM_TEST_STRING", "value")

	if got := GetEnvString("WIKI2CRM_TEST_STRING", "fallback"); got != "value" {
		t.Errorf("Expected value, got %s", got)
	}
	if got := GetEnvString("WIKI2CRM_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("WIKI2CRM_TEST_INT", "20")
	t.Setenv("WIKI2CRM_TEST_INT_BAD", "twenty")

	if got := GetEnvInt("WIKI2CRM_TEST_INT", 5); got != 20 {
		t.Errorf("Expected 20, got %d", got)
	}
	if got := GetEnvInt("WIKI2CRM_TEST_INT_BAD", 5); got != 5 {
		t.Errorf("Expected fallback for unparseable value, got %d", got)
	}
	if got := GetEnvInt("WIKI2CRM_TEST_UNSET", 5); got != 5 {
		t.Errorf("Expected fallback for unset key, got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("WIKI2CRM_TEST_BOOL", "true")
	t.Setenv("WIKI2CRM_TEST_BOOL_BAD", "yes")

	if got := GetEnvBool("WIKI2CRM_TEST_BOOL", false); got != true {
		t.Error("Expected true")
	}
	if got := GetEnvBool("WIKI2CRM_TEST_BOOL_BAD", false); got != false {
		t.Error("Expected fallback for non true/false value")
	}
	if got := GetEnvBool("WIKI2CRM_TEST_UNSET", true); got != true {
		t.Error("Expected fallback for unset key")
	}
}
