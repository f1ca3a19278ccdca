package storage

import "gonum.org/v1/gonum/floats"

// Dense kernels. float64 buffers go through gonum; everything else (float32
// and named float types) takes the generic loop.

func asFloat64s[F Float](s []F) ([]float64, bool) {
	f, ok := any(s).([]float64)
	return f, ok
}

func addInto[F Float](dst, src []F) {
	if d, ok := asFloat64s(dst); ok {
		s, _ := asFloat64s(src)
		floats.Add(d, s)
		return
	}
	for i := range dst {
		dst[i] += src[i]
	}
}

func subInto[F Float](dst, src []F) {
	if d, ok := asFloat64s(dst); ok {
		s, _ := asFloat64s(src)
		floats.Sub(d, s)
		return
	}
	for i := range dst {
		dst[i] -= src[i]
	}
}

func mulInto[F Float](dst, src []F) {
	if d, ok := asFloat64s(dst); ok {
		s, _ := asFloat64s(src)
		floats.Mul(d, s)
		return
	}
	for i := range dst {
		dst[i] *= src[i]
	}
}

func divInto[F Float](dst, src []F) {
	if d, ok := asFloat64s(dst); ok {
		s, _ := asFloat64s(src)
		floats.Div(d, s)
		return
	}
	for i := range dst {
		dst[i] /= src[i]
	}
}

func sum[F Float](s []F) F {
	if f, ok := asFloat64s(s); ok {
		return F(floats.Sum(f))
	}
	var total F
	for _, v := range s {
		total += v
	}
	return total
}

func scale[F Float](c F, dst []F) {
	if d, ok := asFloat64s(dst); ok {
		floats.Scale(float64(c), d)
		return
	}
	for i := range dst {
		dst[i] *= c
	}
}

func addConst[F Float](c F, dst []F) {
	if d, ok := asFloat64s(dst); ok {
		floats.AddConst(float64(c), d)
		return
	}
	for i := range dst {
		dst[i] += c
	}
}
