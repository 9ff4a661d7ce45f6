package bignum

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func mustParse(t *testing.T, s string, capacity int) *Decimal {
	t.Helper()
	d, err := Parse(s, capacity)
	if err != nil {
		t.Fatalf("Parse(%q, %d): %v", s, capacity, err)
	}
	return d
}

func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{"zero plus zero", "0", "0", "0"},
		{"zero identity", "42", "0", "42"},
		{"single digits", "3", "4", "7"},
		{"carry into new digit", "5", "5", "10"},
		{"carry chain", "999", "1", "1000"},
		{"different lengths", "12345", "678", "13023"},
		{"both end in nine", "89", "89", "178"},
		{"F(11)+F(12)", "89", "144", "233"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x := mustParse(t, tt.x, DefaultCapacity)
			y := mustParse(t, tt.y, DefaultCapacity)

			got := Add(x, y)
			if got.String() != tt.want {
				t.Errorf("Add(%s, %s) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
			if x.String() != tt.x || y.String() != tt.y {
				t.Errorf("operands mutated: x=%s y=%s", x, y)
			}
		})
	}
}

func TestAdd_TruncatesAtCapacity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{"carry dropped", "999", "1", "0"},
		{"carry dropped with leading zero", "500", "501", "1"},
		{"carry dropped keeps digits", "999", "999", "998"},
		{"no overflow at full width", "500", "499", "999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x := mustParse(t, tt.x, 3)
			y := mustParse(t, tt.y, 3)
			if got := Add(x, y).String(); got != tt.want {
				t.Errorf("Add(%s, %s) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestAddChecked(t *testing.T) {
	t.Parallel()

	t.Run("fits", func(t *testing.T) {
		t.Parallel()
		sum, err := AddChecked(mustParse(t, "500", 3), mustParse(t, "499", 3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sum.String() != "999" {
			t.Errorf("sum = %s, want 999", sum)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		t.Parallel()
		sum, err := AddChecked(mustParse(t, "999", 3), mustParse(t, "1", 3))
		if !errors.Is(err, ErrOverflow) {
			t.Fatalf("error = %v, want ErrOverflow", err)
		}
		if sum != nil {
			t.Errorf("sum = %s, want nil", sum)
		}
	})
}

func TestAdd_MixedCapacity(t *testing.T) {
	t.Parallel()
	x := mustParse(t, "99", 2)
	y := mustParse(t, "1", 5)

	sum := Add(x, y)
	if sum.Capacity() != 5 {
		t.Errorf("Capacity() = %d, want 5", sum.Capacity())
	}
	if sum.String() != "100" {
		t.Errorf("sum = %s, want 100", sum)
	}
}

func TestAddInto_Aliasing(t *testing.T) {
	t.Parallel()
	z := mustParse(t, "9", 4)
	for i := 0; i < 3; i++ {
		AddInto(z, z, z)
	}
	if z.String() != "72" {
		t.Errorf("z = %s, want 72", z)
	}
}

// digitString trims generator output to a valid operand for capacity.
func digitString(s string, capacity int) string {
	if len(s) > capacity {
		s = s[:capacity]
	}
	if s == "" {
		return "0"
	}
	return s
}

func TestAdd_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Add is commutative", prop.ForAll(
		func(a, b string) bool {
			x, _ := Parse(digitString(a, DefaultCapacity), DefaultCapacity)
			y, _ := Parse(digitString(b, DefaultCapacity), DefaultCapacity)
			return Add(x, y).String() == Add(y, x).String()
		},
		gen.NumString(), gen.NumString(),
	))

	properties.Property("Zero is the identity", prop.ForAll(
		func(a string) bool {
			x, _ := Parse(digitString(a, DefaultCapacity), DefaultCapacity)
			return Add(x, Zero()).String() == x.String() && Add(Zero(), x).String() == x.String()
		},
		gen.NumString(),
	))

	properties.Property("Add matches math/big below capacity", prop.ForAll(
		func(a, b string) bool {
			as, bs := digitString(a, DefaultCapacity-1), digitString(b, DefaultCapacity-1)
			x, _ := Parse(as, DefaultCapacity)
			y, _ := Parse(bs, DefaultCapacity)

			bx, _ := new(big.Int).SetString(as, 10)
			by, _ := new(big.Int).SetString(bs, 10)
			want := new(big.Int).Add(bx, by).String()

			sum, err := AddChecked(x, y)
			return err == nil && sum.String() == want
		},
		gen.NumString(), gen.NumString(),
	))

	properties.Property("truncated sum is the sum mod 10^capacity", prop.ForAll(
		func(a, b string) bool {
			const capacity = 8
			as, bs := digitString(a, capacity), digitString(b, capacity)
			x, _ := Parse(as, capacity)
			y, _ := Parse(bs, capacity)

			bx, _ := new(big.Int).SetString(as, 10)
			by, _ := new(big.Int).SetString(bs, 10)
			mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(capacity), nil)
			want := new(big.Int).Add(bx, by)
			want.Mod(want, mod)

			return Add(x, y).String() == want.String()
		},
		gen.NumString(), gen.NumString(),
	))

	properties.TestingRun(t)
}

func BenchmarkAdd(b *testing.B) {
	x, _ := Parse(strings.Repeat("9", DefaultCapacity-1), DefaultCapacity)
	y := One()
	b.ReportAllocs()
	for b.Loop() {
		_ = Add(x, y)
	}
}
