package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Quantity string    `json:"quantity"`
	Indices  []uint32  `json:"indices,omitempty"`
	Values   []float64 `json:"values"`
}

func TestCodecs(t *testing.T) {
	in := payload{Quantity: "Length", Indices: []uint32{1, 4}, Values: []float64{2.5, -1}}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	in := payload{Quantity: "Mass", Values: []float64{0, 1.25, 3}}
	assert.Equal(t, MustMarshal(JSON{}, in), MustMarshal(GoJSON{}, in))
	assert.Equal(t, MustMarshal(nil, in), MustMarshal(Default, in))
}

func TestCompressRoundTrip(t *testing.T) {
	repetitive := bytes.Repeat([]byte(`{"values":[0,0,0,0,1.5]}`), 200)
	tiny := []byte(`{}`)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			for _, data := range [][]byte{repetitive, tiny, {}} {
				env, err := Compress(data, c)
				require.NoError(t, err)
				assert.Equal(t, byte(c), env[0])

				out, err := Decompress(env)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(out))
				assert.True(t, bytes.Equal(data, out))
			}
		})
	}
}

func TestCompressShrinksRepetitivePayload(t *testing.T) {
	data := bytes.Repeat([]byte("0.000 "), 1000)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		env, err := Compress(data, c)
		require.NoError(t, err)
		assert.Less(t, len(env), len(data)/2, c.String())
	}

	env, err := Compress(data, CompressionNone)
	require.NoError(t, err)
	assert.Len(t, env, headerSize+len(data))
}

func TestDecompressCorrupt(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorruptEnvelope)

	env, err := Compress(bytes.Repeat([]byte("ab"), 500), CompressionZSTD)
	require.NoError(t, err)
	_, err = Decompress(env[:len(env)-10])
	assert.ErrorIs(t, err, ErrCorruptEnvelope)

	bad := append([]byte(nil), env...)
	bad[0] = 9
	_, err = Decompress(bad)
	assert.ErrorIs(t, err, ErrCorruptEnvelope)
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{"": CompressionNone, "LZ4": CompressionLZ4, " zstd ": CompressionZSTD} {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCompression("gzip")
	assert.Error(t, err)
}
