package quantities

import (
	"fmt"

	"github.com/hupe1980/quantities/codec"
	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// VectorSnapshot is the interchange form of a vector. Values are SI
// magnitudes; sparse snapshots list the stored positions in Indices.
type VectorSnapshot struct {
	Kind    string          `json:"kind"`
	Unit    unit.Descriptor `json:"unit"`
	Storage string          `json:"storage"`
	Length  int             `json:"length"`
	Indices []uint32        `json:"indices,omitempty"`
	Values  []float64       `json:"values"`
}

// MatrixSnapshot is the interchange form of a matrix, stored row-major.
type MatrixSnapshot struct {
	Kind    string          `json:"kind"`
	Unit    unit.Descriptor `json:"unit"`
	Storage string          `json:"storage"`
	Rows    int             `json:"rows"`
	Cols    int             `json:"cols"`
	Indices []uint32        `json:"indices,omitempty"`
	Values  []float64       `json:"values"`
}

// Snapshot returns the interchange form of the container.
func (v vector[Q, F]) Snapshot() VectorSnapshot {
	idx, vals := snapshotData(v.data())
	return VectorSnapshot{
		Kind:    v.kind.String(),
		Unit:    v.unit.Descriptor(),
		Storage: v.StorageType().String(),
		Length:  v.Len(),
		Indices: idx,
		Values:  vals,
	}
}

// Snapshot returns the interchange form of the container.
func (m matrix[Q, F]) Snapshot() MatrixSnapshot {
	data := m.data()
	idx, vals := snapshotData(data.Data())
	return MatrixSnapshot{
		Kind:    m.kind.String(),
		Unit:    m.unit.Descriptor(),
		Storage: data.Type().String(),
		Rows:    data.Rows(),
		Cols:    data.Cols(),
		Indices: idx,
		Values:  vals,
	}
}

func snapshotData[F Float](data storage.Vector[F]) ([]uint32, []float64) {
	if s, ok := data.(*storage.Sparse[F]); ok {
		return s.Indices(), widen(s.StoredValues())
	}
	return nil, widen(data.Values())
}

func widen[F Float](in []F) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	return out
}

func narrow[F Float](in []float64) []F {
	out := make([]F, len(in))
	for i, x := range in {
		out[i] = F(x)
	}
	return out
}

func restoreData[F Float](storageName string, length int, idx []uint32, vals []float64) (storage.Vector[F], error) {
	st, err := ParseStorageType(storageName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	if st == Dense {
		if len(idx) != 0 {
			return nil, fmt.Errorf("%w: dense snapshot carries indices", ErrConstruction)
		}
		if len(vals) != length {
			return nil, &SizeMismatchError{Expected: length, Actual: len(vals)}
		}
		return storage.DenseFrom(narrow[F](vals)), nil
	}
	s, err := storage.SparseFrom(length, append([]uint32(nil), idx...), narrow[F](vals))
	if err != nil {
		return nil, translateError(err)
	}
	return s, nil
}

func restoreHeader[Q unit.Quantity](kindName string, want Kind, d unit.Descriptor) (unit.Unit[Q], error) {
	k, err := ParseKind(kindName)
	if err != nil {
		return unit.Unit[Q]{}, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	if k != want {
		return unit.Unit[Q]{}, fmt.Errorf("%w: snapshot is %s, want %s", ErrKindMismatch, k, want)
	}
	u, err := unit.FromDescriptor[Q](d)
	if err != nil {
		return unit.Unit[Q]{}, translateError(err)
	}
	return u, nil
}

func restoreVector[Q unit.Quantity, F Float](s VectorSnapshot, k Kind) (vector[Q, F], error) {
	u, err := restoreHeader[Q](s.Kind, k, s.Unit)
	if err != nil {
		return vector[Q, F]{}, err
	}
	data, err := restoreData[F](s.Storage, s.Length, s.Indices, s.Values)
	if err != nil {
		return vector[Q, F]{}, err
	}
	return wrapVector(data, u, k), nil
}

func restoreMatrix[Q unit.Quantity, F Float](s MatrixSnapshot, k Kind) (matrix[Q, F], error) {
	u, err := restoreHeader[Q](s.Kind, k, s.Unit)
	if err != nil {
		return matrix[Q, F]{}, err
	}
	n, err := storage.Cells(s.Rows, s.Cols)
	if err != nil {
		return matrix[Q, F]{}, translateError(err)
	}
	data, err := restoreData[F](s.Storage, n, s.Indices, s.Values)
	if err != nil {
		return matrix[Q, F]{}, err
	}
	m, err := storage.MatrixFrom(s.Rows, s.Cols, data)
	if err != nil {
		return matrix[Q, F]{}, translateError(err)
	}
	return wrapMatrix(m, u, k), nil
}

// RelVectorFromSnapshot restores a relative vector.
func RelVectorFromSnapshot[Q unit.Quantity, F Float](s VectorSnapshot) (RelVector[Q, F], error) {
	v, err := restoreVector[Q, F](s, Relative)
	return RelVector[Q, F]{v}, err
}

// AbsVectorFromSnapshot restores an absolute vector.
func AbsVectorFromSnapshot[Q unit.Quantity, F Float](s VectorSnapshot) (AbsVector[Q, F], error) {
	v, err := restoreVector[Q, F](s, Absolute)
	return AbsVector[Q, F]{v}, err
}

// RelMatrixFromSnapshot restores a relative matrix.
func RelMatrixFromSnapshot[Q unit.Quantity, F Float](s MatrixSnapshot) (RelMatrix[Q, F], error) {
	m, err := restoreMatrix[Q, F](s, Relative)
	return RelMatrix[Q, F]{m}, err
}

// AbsMatrixFromSnapshot restores an absolute matrix.
func AbsMatrixFromSnapshot[Q unit.Quantity, F Float](s MatrixSnapshot) (AbsMatrix[Q, F], error) {
	m, err := restoreMatrix[Q, F](s, Absolute)
	return AbsMatrix[Q, F]{m}, err
}

// VectorSnapshotter is implemented by every vector container.
type VectorSnapshotter interface {
	Snapshot() VectorSnapshot
}

// MatrixSnapshotter is implemented by every matrix container.
type MatrixSnapshotter interface {
	Snapshot() MatrixSnapshot
}

// EncodeVector encodes the snapshot of v with c. A nil codec selects
// codec.Default.
func EncodeVector(c codec.Codec, v VectorSnapshotter) ([]byte, error) {
	return codecOrDefault(c).Marshal(v.Snapshot())
}

// EncodeMatrix encodes the snapshot of m with c.
func EncodeMatrix(c codec.Codec, m MatrixSnapshotter) ([]byte, error) {
	return codecOrDefault(c).Marshal(m.Snapshot())
}

// DecodeRelVector decodes a relative vector encoded by EncodeVector.
func DecodeRelVector[Q unit.Quantity, F Float](c codec.Codec, data []byte) (RelVector[Q, F], error) {
	var s VectorSnapshot
	if err := codecOrDefault(c).Unmarshal(data, &s); err != nil {
		return RelVector[Q, F]{}, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return RelVectorFromSnapshot[Q, F](s)
}

// DecodeAbsVector decodes an absolute vector encoded by EncodeVector.
func DecodeAbsVector[Q unit.Quantity, F Float](c codec.Codec, data []byte) (AbsVector[Q, F], error) {
	var s VectorSnapshot
	if err := codecOrDefault(c).Unmarshal(data, &s); err != nil {
		return AbsVector[Q, F]{}, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return AbsVectorFromSnapshot[Q, F](s)
}

// DecodeRelMatrix decodes a relative matrix encoded by EncodeMatrix.
func DecodeRelMatrix[Q unit.Quantity, F Float](c codec.Codec, data []byte) (RelMatrix[Q, F], error) {
	var s MatrixSnapshot
	if err := codecOrDefault(c).Unmarshal(data, &s); err != nil {
		return RelMatrix[Q, F]{}, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return RelMatrixFromSnapshot[Q, F](s)
}

// DecodeAbsMatrix decodes an absolute matrix encoded by EncodeMatrix.
func DecodeAbsMatrix[Q unit.Quantity, F Float](c codec.Codec, data []byte) (AbsMatrix[Q, F], error) {
	var s MatrixSnapshot
	if err := codecOrDefault(c).Unmarshal(data, &s); err != nil {
		return AbsMatrix[Q, F]{}, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return AbsMatrixFromSnapshot[Q, F](s)
}

func codecOrDefault(c codec.Codec) codec.Codec {
	if c == nil {
		return codec.Default
	}
	return c
}
