package freqfilter

import (
	"fmt"
	"sort"
)

// Params carries the union of parameters accepted by the filter bank.
// Each filter reads only the fields it needs.
type Params struct {
	Cutoff float64
	Order  int
	Sigma  float64
}

var constructors = map[string]func(Params) Filter{
	IdealLowPass{}.Name():        func(p Params) Filter { return IdealLowPass{Cutoff: p.Cutoff} },
	IdealHighPass{}.Name():       func(p Params) Filter { return IdealHighPass{Cutoff: p.Cutoff} },
	ButterworthLowPass{}.Name():  func(p Params) Filter { return ButterworthLowPass{Cutoff: p.Cutoff, Order: p.Order} },
	ButterworthHighPass{}.Name(): func(p Params) Filter { return ButterworthHighPass{Cutoff: p.Cutoff, Order: p.Order} },
	GaussianLowPass{}.Name():     func(p Params) Filter { return GaussianLowPass{Sigma: p.Sigma} },
	GaussianHighPass{}.Name():    func(p Params) Filter { return GaussianHighPass{Sigma: p.Sigma} },
}

// New builds and validates a filter of the given kind, e.g. "butterworth-lowpass".
func New(kind string, p Params) (Filter, error) {
	build, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown filter %q (want one of %v)", ErrInvalidParameter, kind, Kinds())
	}
	f := build(p)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Kinds lists the filter names accepted by New in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
