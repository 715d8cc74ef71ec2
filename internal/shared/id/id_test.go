package id

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	assert.NotEqual(t, id1.String(), id2.String())
	assert.Len(t, gen.GenerateString(), 26)
}

func TestTypedIDFormat(t *testing.T) {
	ids := map[string]string{
		RequestPrefix: NewRequestID().String(),
		TracePrefix:   NewTraceID().String(),
		SpanPrefix:    NewSpanID().String(),
	}

	for prefix, id := range ids {
		parts := strings.Split(id, "_")
		require.Len(t, parts, 2, "ID should have format 'prefix_ulid': %s", id)
		assert.Equal(t, prefix, parts[0])
		assert.True(t, IsValid(parts[1]), "ULID part should be valid: %s", parts[1])
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(NewGenerator().GenerateString()))

	for _, invalid := range []string{"", "invalid", "1234567890", "zzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		assert.False(t, IsValid(invalid), "ID should be invalid: %s", invalid)
	}
}

func TestParseRequestID(t *testing.T) {
	generated := NewRequestID()
	parsed, ok := ParseRequestID(generated.String())
	require.True(t, ok)
	assert.Equal(t, generated, parsed)

	for _, invalid := range []string{
		"",
		"req_",
		"req_not-a-ulid",
		NewGenerator().GenerateString(),
		NewTraceID().String(),
		"req_" + NewGenerator().GenerateString() + "\nforged",
	} {
		_, ok := ParseRequestID(invalid)
		assert.False(t, ok, "request ID should be rejected: %q", invalid)
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	idChan := make(chan string, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- gen.GenerateString()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[string]bool)
	for id := range idChan {
		assert.False(t, seen[id], "duplicate ID: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*idsPerGoroutine)
}

func TestDefaultGenerator(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func BenchmarkGenerateWithPrefix(b *testing.B) {
	gen := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gen.GenerateWithPrefix(RequestPrefix)
	}
}
