package live

import "github.com/AnatoleLucet/live/internal"

// Operator turns one upstream value into zero or one downstream value.
// Returning an absent value suppresses the emission: the node keeps its
// value and version and nobody is notified.
//
// Operators must be pure, they run exactly once per accepted upstream write.
type Operator[In, Out any] interface {
	Run(in Optional[In]) Optional[Out]
}

// OperatorFunc adapts a function to Operator.
type OperatorFunc[In, Out any] func(in Optional[In]) Optional[Out]

func (f OperatorFunc[In, Out]) Run(in Optional[In]) Optional[Out] { return f(in) }

func derive[In, Out any](src Source[In], op internal.Operator, single bool, opts []Option) *Live[Out] {
	if src == nil {
		panic("live: nil source")
	}

	up := src.base()
	cfg := newConfig(opts)

	return &Live[Out]{up.Runtime().NewNode(up, op, single, cfg.name)}
}

// Map transforms every present value of src with fn.
func Map[In, Out any](src Source[In], fn func(In) Out, opts ...Option) *Live[Out] {
	return derive[In, Out](src, internal.MapOperator{Fn: func(v any) (any, bool) {
		return fn(as[In](v)), true
	}}, false, opts)
}

// MapOptional is like Map but fn can drop a value by returning false.
func MapOptional[In, Out any](src Source[In], fn func(In) (Out, bool), opts ...Option) *Live[Out] {
	return derive[In, Out](src, internal.MapOperator{Fn: func(v any) (any, bool) {
		return fn(as[In](v))
	}}, false, opts)
}

// NonNull drops the absent values of src.
func NonNull[T any](src Source[T], opts ...Option) *Live[T] {
	return derive[T, T](src, internal.NonNullOperator{}, false, opts)
}

// Filter keeps the values of src matching pred.
func Filter[T any](src Source[T], pred func(T) bool, opts ...Option) *Live[T] {
	return derive[T, T](src, internal.FilterOperator{Pred: func(v any) bool {
		return pred(as[T](v))
	}}, false, opts)
}

// Single turns src into an event: each observer only receives values emitted
// after it started observing, and a new observer never gets the current value.
// Every node derived from a single node is single too.
func Single[T any](src Source[T], opts ...Option) *Live[T] {
	return derive[T, T](src, internal.IdentityOperator{}, true, opts)
}

// Apply derives a node running a custom operator.
func Apply[In, Out any](src Source[In], op Operator[In, Out], opts ...Option) *Live[Out] {
	if op == nil {
		panic("live: nil operator")
	}

	return derive[In, Out](src, internal.OperatorFunc(func(v any, present bool) (any, bool) {
		return op.Run(optionalOf[In](v, present)).Get()
	}), false, opts)
}
