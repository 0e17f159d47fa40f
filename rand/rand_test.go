package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMTBadSeed(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGeneratorSlice([]uint64{})
	assert.Nil(gen)
	assert.Error(err)
}

func TestMTCanonicalSeed(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGeneratorSlice([]uint64{0x12345, 0x23456, 0x34567, 0x45678})
	assert.NotNil(gen)
	assert.NoError(err)
	defer gen.Stop()

	origTestSeq := []uint64{
		7266447313870364031,
		4946485549665804864,
		16945909448695747420,
		16394063075524226720,
		4873882236456199058,
	}

	for _, v := range origTestSeq {
		assert.Equal(v, gen.Uint64())
	}
}

func TestSameSeedSameStream(t *testing.T) {
	assert := assert.New(t)

	g1, err := NewGenerator(42)
	assert.NoError(err)
	defer g1.Stop()
	g2, err := NewGenerator(42)
	assert.NoError(err)
	defer g2.Stop()
	g3, err := NewGenerator(43)
	assert.NoError(err)
	defer g3.Stop()

	differ := false
	for i := 0; i < 4096; i++ {
		v1 := g1.Uint64()
		assert.Equal(v1, g2.Uint64())
		if v1 != g3.Uint64() {
			differ = true
		}
	}
	assert.True(differ)
}

func TestStopNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen, err := NewGenerator(99)
	assert.NoError(t, err)
	gen.Uint64()
	gen.Stop()
	gen.Stop() // second stop is a no-op
}

func BenchmarkGenerator(b *testing.B) {
	gen, err := NewGenerator(42)
	if err != nil {
		b.Fatalf("Could not init PRNG %v", err)
	}
	defer gen.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Uint64()
	}
}
