package common

import "testing"

func TestCommission(t *testing.T) {
	cases := []struct {
		amount int64
		want   int64
	}{
		{100000, 100},
		{50000, 50},
		{1000, 1},
		{999, 0},
		{1, 0},
	}

	for _, tc := range cases {
		if got := Commission(tc.amount); got != tc.want {
			t.Errorf("Commission(%d) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
