package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "module not found")
		if err.Error() != "[NOT_FOUND] module not found" {
			t.Errorf("expected [NOT_FOUND] module not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeParseError, "syntax tree contains errors")
		expected := "[PARSE_ERROR] syntax tree contains errors: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeConfigError, "unknown rule id")
		if !IsCode(err, CodeConfigError) {
			t.Error("expected IsCode to return true for CodeConfigError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeRuleError, "rule evaluation panicked")
		if !IsCode(err, CodeRuleError) {
			t.Error("expected IsCode to return true for wrapped CodeRuleError")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeParseError, "syntax tree contains errors")
		err = AddContext(err, CtxPath, "app/models/user.js")
		if !IsCode(err, CodeParseError) {
			t.Error("expected code to survive AddContext")
		}
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected DomainError")
		}
		if de.Context[CtxPath] != "app/models/user.js" {
			t.Errorf("expected path context, got %v", de.Context)
		}
	})
}
