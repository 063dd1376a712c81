package config

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.ESLevel != 2015 || o.Width != 80 || o.Truthy != TruthyJS {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestNewAppliesOverrides(t *testing.T) {
	o := New(WithESLevel(2022), WithTruthy(TruthyRuby), WithUnderscoredPrivate(true))
	if o.ESLevel != 2022 || o.Truthy != TruthyRuby || !o.UnderscoredPrivate {
		t.Fatalf("overrides not applied: %+v", o)
	}
}

func TestValidateRejectsNonPositiveWidth(t *testing.T) {
	o := New(WithWidth(0))
	if err := o.Validate(); err == nil {
		t.Fatal("expected an error for zero width")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile("/nonexistent/profile.yaml"); err == nil {
		t.Fatal("expected an error for a missing profile file")
	}
}
