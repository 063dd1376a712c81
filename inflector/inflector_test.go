package inflector

import "testing"

func TestPluralizeIrregular(t *testing.T) {
	cases := map[string]string{
		"person": "people",
		"ox":      "oxen",
		"child":   "children",
	}
	for in, want := range cases {
		if got := Pluralize(in); got != want {
			t.Errorf("Pluralize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSingularizeIrregular(t *testing.T) {
	if got := Singularize("people"); got != "person" {
		t.Errorf("Singularize(people) = %q", got)
	}
}

func TestUncountables(t *testing.T) {
	if Pluralize("sheep") != "sheep" {
		t.Errorf("sheep should be uncountable")
	}
	if Singularize("series") != "series" {
		t.Errorf("series should be uncountable")
	}
}

func TestPluralizeRegular(t *testing.T) {
	cases := map[string]string{
		"cat":   "cats",
		"box":   "boxes",
		"city":  "cities",
		"quiz":  "quizzes",
		"wolf":  "wolves",
	}
	for in, want := range cases {
		if got := Pluralize(in); got != want {
			t.Errorf("Pluralize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"HTTPServer": "http_server",
		"UserID":     "user_id",
		"Simple":     "simple",
	}
	for in, want := range cases {
		if got := Underscore(in); got != want {
			t.Errorf("Underscore(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	if got := Classify("user_accounts"); got != "UserAccount" {
		t.Errorf("Classify(user_accounts) = %q", got)
	}
}
