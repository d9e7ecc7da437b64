package internal

// Operator turns one upstream emission into zero or one downstream value.
// Returning false suppresses the emission.
type Operator interface {
	Run(v any, present bool) (any, bool)
}

type OperatorFunc func(v any, present bool) (any, bool)

func (f OperatorFunc) Run(v any, present bool) (any, bool) { return f(v, present) }

// MapOperator applies fn to present values. fn may itself suppress by
// returning false.
type MapOperator struct {
	Fn func(any) (any, bool)
}

func (o MapOperator) Run(v any, present bool) (any, bool) {
	if !present {
		return nil, false
	}

	return o.Fn(v)
}

// NonNullOperator drops absent values.
type NonNullOperator struct{}

func (NonNullOperator) Run(v any, present bool) (any, bool) {
	return v, present
}

// FilterOperator keeps present values matching Pred.
type FilterOperator struct {
	Pred func(any) bool
}

func (o FilterOperator) Run(v any, present bool) (any, bool) {
	if !present || !o.Pred(v) {
		return nil, false
	}

	return v, true
}

// IdentityOperator passes values through untouched. Single nodes use it.
type IdentityOperator struct{}

func (IdentityOperator) Run(v any, present bool) (any, bool) {
	return v, present
}
