package types

import "testing"

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"USD", USD(4900), 4900, "usd", "$49.00"},
		{"EUR", EUR(19900), 19900, "eur", "€199.00"},
		{"GBP", GBP(9900), 9900, "gbp", "£99.00"},
		{"STX", STX(5000000), 5000000, "stx", "5.000000 STX"},
		{"STX fractional", STX(1500000), 1500000, "stx", "1.500000 STX"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
		{"Zero STX", Zero("STX"), 0, "stx", "0.000000 STX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return USD(100).Add(USD(200)) }, USD(300)},
		{"Subtract", func() Money { return USD(500).Subtract(USD(200)) }, USD(300)},
		{"Multiply", func() Money { return USD(100).Multiply(3) }, USD(300)},
		{"Negate", func() Money { return USD(100).Negate() }, USD(-100)},
		{"Complex", func() Money {
			return STX(1000000).Add(STX(500000)).Multiply(2).Subtract(STX(1000000))
		}, STX(2000000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneySplit(t *testing.T) {
	tests := []struct {
		name    string
		amount  Money
		percent int64
		net     int64
		fee     int64
	}{
		{"ExactSplit", STX(10000000), 5, 9500000, 500000},
		{"FloorsRemainderToNet", STX(101), 5, 96, 5},
		{"SmallAmount", STX(19), 5, 19, 0},
		{"ZeroAmount", STX(0), 5, 0, 0},
		{"ZeroPercent", STX(1000), 0, 1000, 0},
		{"FullPercent", STX(1000), 100, 0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, fee := tt.amount.Split(tt.percent)
			if net.Amount != tt.net {
				t.Errorf("net: got %d, want %d", net.Amount, tt.net)
			}
			if fee.Amount != tt.fee {
				t.Errorf("fee: got %d, want %d", fee.Amount, tt.fee)
			}
		})
	}
}

// Conservation: net + fee must equal the original amount exactly,
// for every amount and every fee rate.
func TestMoneySplitConservation(t *testing.T) {
	for amount := int64(0); amount < 1000; amount++ {
		for _, pct := range []int64{0, 1, 5, 10, 33, 50, 99, 100} {
			net, fee := STX(amount).Split(pct)
			if net.Amount+fee.Amount != amount {
				t.Fatalf("amount=%d pct=%d: net %d + fee %d != %d",
					amount, pct, net.Amount, fee.Amount, amount)
			}
			if fee.Amount != amount*pct/100 {
				t.Fatalf("amount=%d pct=%d: fee %d not floored", amount, pct, fee.Amount)
			}
		}
	}
}

func TestMoneySplitBadPercent(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for out-of-range percent")
		}
	}()

	_, _ = STX(100).Split(101)
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	// This should panic
	_ = USD(100).Add(EUR(100))
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", USD(100), USD(100), false, false, true},
		{"Less", USD(50), USD(100), true, false, false},
		{"Greater", USD(200), USD(100), false, true, false},
		{"Zero equal", STX(0), Zero("stx"), false, false, true},
		{"Negative less", USD(-100), USD(100), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestMoneySum(t *testing.T) {
	got := Sum(STX(100), STX(200), STX(300))
	if !got.Equal(STX(600)) {
		t.Errorf("Sum: got %v, want %v", got, STX(600))
	}
}
