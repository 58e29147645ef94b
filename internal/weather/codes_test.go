package weather

import "testing"

func TestMapWeatherCodeIsTotal(t *testing.T) {
	for code := -5; code <= 120; code++ {
		got := MapWeatherCode(code)
		if !got.Valid() {
			t.Fatalf("code %d mapped to undefined condition %q", code, got)
		}
	}
}

func TestMapWeatherCodeIsDeterministic(t *testing.T) {
	for code := 0; code <= MaxWeatherCode; code++ {
		first := MapWeatherCode(code)
		for i := 0; i < 3; i++ {
			if again := MapWeatherCode(code); again != first {
				t.Fatalf("code %d: got %q then %q", code, first, again)
			}
		}
	}
}

func TestMapWeatherCodeGroups(t *testing.T) {
	tests := []struct {
		codes []int
		want  Condition
	}{
		{[]int{0}, ConditionSunny},
		{[]int{1, 2}, ConditionPartlyCloudy},
		{[]int{3, 45, 48}, ConditionCloudy},
		{[]int{51, 53, 55, 56, 57, 61, 63, 65, 66, 67}, ConditionRaining},
		{[]int{71, 73, 75, 77, 85, 86}, ConditionSnowing},
		{[]int{80, 81, 82, 95, 96, 99}, ConditionRaining},
		// Codes not assigned to any group fall back to the default.
		{[]int{4, 10, 44, 46, 50, 68, 70, 78, 83, 84, 87, 94, 100, -1}, ConditionPartlyCloudy},
	}

	for _, tt := range tests {
		for _, code := range tt.codes {
			if got := MapWeatherCode(code); got != tt.want {
				t.Errorf("MapWeatherCode(%d) = %q, want %q", code, got, tt.want)
			}
		}
	}
}

func TestMapCodeNull(t *testing.T) {
	if got := mapCode(nil); got != ConditionPartlyCloudy {
		t.Fatalf("expected %q for null code, got %q", ConditionPartlyCloudy, got)
	}
	zero := 0
	if got := mapCode(&zero); got != ConditionSunny {
		t.Fatalf("expected %q for code 0, got %q", ConditionSunny, got)
	}
}

func TestWindyIsPartOfVocabulary(t *testing.T) {
	if !ConditionWindy.Valid() {
		t.Fatalf("windy must be a valid condition")
	}
	if Condition("stormy").Valid() {
		t.Fatalf("unexpected condition accepted")
	}
}
