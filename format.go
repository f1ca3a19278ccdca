package quantities

import (
	"strconv"
	"strings"
)

// FormatOptions controls the printable representation of containers.
type FormatOptions struct {
	// Verbose prefixes the output with mutability, kind and storage, e.g.
	// "Immutable Rel Dense ".
	Verbose bool
	// WithUnit appends the unit abbreviation.
	WithUnit bool
	// Precision is the number of decimals. Negative values select the
	// shortest representation that round-trips.
	Precision int
}

func header(mutable bool, k Kind, st StorageType) string {
	m := "Immutable"
	if mutable {
		m = "Mutable"
	}
	return m + " " + k.String() + " " + st.String() + " "
}

func formatVector[F Float](values []F, abbrev, head string, opts FormatOptions) string {
	var sb strings.Builder
	if opts.Verbose {
		sb.WriteString(head)
	}
	writeRow(&sb, values, opts.Precision)
	writeUnit(&sb, abbrev, opts)
	return sb.String()
}

func formatMatrix[F Float](rows [][]F, abbrev, head string, opts FormatOptions) string {
	var sb strings.Builder
	if opts.Verbose {
		sb.WriteString(head)
	}
	sb.WriteByte('[')
	for r, row := range rows {
		if r > 0 {
			sb.WriteByte(' ')
		}
		writeRow(&sb, row, opts.Precision)
	}
	sb.WriteByte(']')
	writeUnit(&sb, abbrev, opts)
	return sb.String()
}

func writeRow[F Float](sb *strings.Builder, values []F, precision int) {
	sb.WriteByte('[')
	for i, x := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(float64(x), 'f', precisionArg(precision), bitSize[F]()))
	}
	sb.WriteByte(']')
}

func writeUnit(sb *strings.Builder, abbrev string, opts FormatOptions) {
	if opts.WithUnit && abbrev != "" {
		sb.WriteByte(' ')
		sb.WriteString(abbrev)
	}
}

func bitSize[F Float]() int {
	var x F
	if _, ok := any(x).(float32); ok {
		return 32
	}
	return 64
}
