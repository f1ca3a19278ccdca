package storage

import "fmt"

// Op is an elementwise binary operation.
type Op uint8

const (
	Add Op = iota
	Sub
	Mul
	Div
)

func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(o))
	}
}

func (o Op) additive() bool { return o == Add || o == Sub }

func eval[F Float](o Op, x, y F) F {
	switch o {
	case Add:
		return x + y
	case Sub:
		return x - y
	case Mul:
		return x * y
	default:
		return x / y
	}
}

// Apply returns op(a, b) as new storage; a and b are not modified.
func Apply[F Float](op Op, a, b Vector[F]) (Vector[F], error) {
	if err := CheckLen(a.Len(), b.Len()); err != nil {
		return nil, err
	}
	return ApplyInPlace(op, a.Clone(), b)
}

// ApplyInPlace stores op(dst, src) and returns the vector holding the result.
// That is dst itself unless dst is Sparse and src is Dense, in which case the
// result is a new Dense and dst is left untouched. Nothing is written when
// the lengths disagree.
func ApplyInPlace[F Float](op Op, dst, src Vector[F]) (Vector[F], error) {
	if err := CheckLen(dst.Len(), src.Len()); err != nil {
		return nil, err
	}
	switch d := dst.(type) {
	case *Dense[F]:
		d.apply(op, src)
		return d, nil
	case *Sparse[F]:
		if s, ok := src.(*Sparse[F]); ok {
			d.merge(op, s)
			return d, nil
		}
		if !op.additive() {
			return d.scatter(op, src.(*Dense[F])), nil
		}
		dd := d.ToDense()
		dd.apply(op, src)
		return dd, nil
	default:
		return nil, fmt.Errorf("storage: unsupported vector %T", dst)
	}
}
