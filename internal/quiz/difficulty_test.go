package quiz

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		tier      Tier
		label     string
		poolLimit int
		include   int
		exclude   int
	}{
		{TierEasy, "🍏 Легкий", 10, 3, 0},
		{TierMedium, "🍊 Средний", 20, 0, 1},
		{TierHard, "🌶️ Сложный", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			level, err := Resolve(tt.tier)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.tier, err)
			}
			if level.Label != tt.label {
				t.Errorf("label = %q, want %q", level.Label, tt.label)
			}
			if level.PoolLimit != tt.poolLimit {
				t.Errorf("pool limit = %d, want %d", level.PoolLimit, tt.poolLimit)
			}
			if len(level.Filter.Include) != tt.include {
				t.Errorf("include list has %d entries, want %d", len(level.Filter.Include), tt.include)
			}
			if len(level.Filter.Exclude) != tt.exclude {
				t.Errorf("exclude list has %d entries, want %d", len(level.Filter.Exclude), tt.exclude)
			}
		})
	}
}

func TestResolveUnknownTier(t *testing.T) {
	if _, err := Resolve(Tier("expert")); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("Resolve(expert) error = %v, want ErrUnknownTier", err)
	}
	if _, err := Resolve(Tier("")); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("Resolve(\"\") error = %v, want ErrUnknownTier", err)
	}
}

func TestEasyFilterTargetsSimpleCategories(t *testing.T) {
	level, err := Resolve(TierEasy)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{CategoryColor: true, CategoryPronoun: true, CategoryNumber: true}
	for _, cat := range level.Filter.Include {
		if !want[cat] {
			t.Errorf("unexpected category %q in easy filter", cat)
		}
		delete(want, cat)
	}
	for cat := range want {
		t.Errorf("easy filter missing category %q", cat)
	}
}

func TestMediumFilterExcludesAdvanced(t *testing.T) {
	level, err := Resolve(TierMedium)
	if err != nil {
		t.Fatal(err)
	}
	if len(level.Filter.Exclude) != 1 || level.Filter.Exclude[0] != CategoryAdvanced {
		t.Fatalf("medium exclude = %v, want [%s]", level.Filter.Exclude, CategoryAdvanced)
	}
}

func TestHardFilterIsEmpty(t *testing.T) {
	level, err := Resolve(TierHard)
	if err != nil {
		t.Fatal(err)
	}
	if !level.Filter.IsEmpty() {
		t.Fatalf("hard filter = %+v, want empty", level.Filter)
	}
}

func TestTierOrDefault(t *testing.T) {
	tests := []struct {
		stored string
		want   Tier
	}{
		{"easy", TierEasy},
		{"medium", TierMedium},
		{"hard", TierHard},
		{"", DefaultTier},
		{"nightmare", DefaultTier},
		{"EASY", DefaultTier}, // stored values are lowercase
	}
	for _, tt := range tests {
		if got := TierOrDefault(tt.stored); got != tt.want {
			t.Errorf("TierOrDefault(%q) = %q, want %q", tt.stored, got, tt.want)
		}
	}
}

func TestLevelsOrder(t *testing.T) {
	all := Levels()
	want := []Tier{TierEasy, TierMedium, TierHard}
	if len(all) != len(want) {
		t.Fatalf("Levels() returned %d entries, want %d", len(all), len(want))
	}
	for i, tier := range want {
		if all[i].Tier != tier {
			t.Errorf("Levels()[%d] = %q, want %q", i, all[i].Tier, tier)
		}
	}
}
