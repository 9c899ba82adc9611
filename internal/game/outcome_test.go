package game

import "testing"

func TestClassify_Priority(t *testing.T) {
	cases := []struct {
		name      string
		c         Counters
		candidate DeathCause
		want      DeathCause
	}{
		{"glutton beats berserker", Counters{Consumed: 10, Kills: 12, TimesHit: 1}, CauseSnake, CauseGlutton},
		{"berserker beats merchantman", Counters{Kills: 10, Collected: 11, TimesHit: 1}, CauseFrog, CauseBerserker},
		{"merchantman", Counters{Collected: 10, TimesHit: 2}, CauseSpider, CauseMerchantman},
		{"pacifist", Counters{}, CauseDefault, CausePacifist},
		{"pacifist beats candidate", Counters{Consumed: 3}, CauseFrog, CausePacifist},
		{"jackpot", Counters{Consumed: 7, Collected: 7, RocksRemaining: 7, TimesHit: 4, Kills: 2}, CauseFrog, CauseJackpot},
		{"candidate", Counters{TimesHit: 4, Kills: 1}, CauseGhost, CauseGhost},
		{"default", Counters{TimesHit: 4}, CauseDefault, CauseDefault},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.c, tc.candidate); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCauseCodes(t *testing.T) {
	want := map[DeathCause]int{
		CauseDefault: 0, CauseDrown: 1, CauseFrog: 2, CauseSpider: 3, CauseSnake: 4, CauseGhost: 5,
		CauseGlutton: 100, CauseBerserker: 101, CauseMerchantman: 102, CausePacifist: 103, CauseJackpot: 104,
	}
	for _, c := range AllCauses {
		if c.Code() != want[c] {
			t.Fatalf("%s: code %d, want %d", c, c.Code(), want[c])
		}
		back, ok := CauseFromCode(c.Code())
		if !ok || back != c {
			t.Fatalf("CauseFromCode(%d) = %s, %v", c.Code(), back, ok)
		}
	}
	if _, ok := CauseFromCode(6); ok {
		t.Fatal("code 6 should be unknown")
	}
}
