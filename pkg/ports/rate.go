package ports

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxRateDen bounds the denominator recovered from a float frame rate.
const maxRateDen = 10000

// Rate is an exact frame rate of Num/Den frames per second.
// The zero value means unknown.
type Rate struct {
	Num int
	Den int
}

// NewRate returns num/den in lowest terms. Non-positive input yields the zero Rate.
func NewRate(num, den int) Rate {
	if num <= 0 || den <= 0 {
		return Rate{}
	}
	a, b := num, den
	for b != 0 {
		a, b = b, a%b
	}
	return Rate{Num: num / a, Den: den / a}
}

// Valid reports whether r is a positive rate.
func (r Rate) Valid() bool {
	return r.Num > 0 && r.Den > 0
}

// Float returns r as frames per second, 0 when r is not valid.
func (r Rate) Float() float64 {
	if !r.Valid() {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Equal compares rates by value, so 60/2 equals 30/1.
func (r Rate) Equal(o Rate) bool {
	return int64(r.Num)*int64(o.Den) == int64(o.Num)*int64(r.Den)
}

// String formats r the way ffmpeg accepts it on the command line.
func (r Rate) String() string {
	return strconv.Itoa(r.Num) + "/" + strconv.Itoa(r.Den)
}

// ParseRate parses "30000/1001" or a plain number such as "25".
// "0/0", which ffprobe reports for unknown rates, is an error.
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	num, den, found := strings.Cut(s, "/")
	if !found {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return Rate{}, fmt.Errorf("invalid frame rate %q", s)
		}
		return RateFromFloat(f), nil
	}
	n, err1 := strconv.Atoi(num)
	d, err2 := strconv.Atoi(den)
	r := NewRate(n, d)
	if err1 != nil || err2 != nil || !r.Valid() {
		return Rate{}, fmt.Errorf("invalid frame rate %q", s)
	}
	return r, nil
}

// RateFromFloat recovers the simplest fraction within rounding error of fps,
// so 29.97002997 becomes 30000/1001 and 25 becomes 25/1.
func RateFromFloat(fps float64) Rate {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return Rate{}
	}

	// Continued fraction convergents h/k.
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	x := fps
	for {
		a := int64(math.Floor(x))
		h2, k2 := a*h1+h0, a*k1+k0
		if k2 > maxRateDen {
			break
		}
		h0, h1, k0, k1 = h1, h2, k1, k2
		frac := x - float64(a)
		if math.Abs(float64(h1)/float64(k1)-fps) <= 1e-9*fps || frac < 1e-12 {
			break
		}
		x = 1 / frac
	}
	if k1 == 0 || h1 <= 0 {
		return Rate{}
	}
	return Rate{Num: int(h1), Den: int(k1)}
}
