package presence

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Replace(t *testing.T) {
	req := require.New(t)
	logger := zerolog.Nop()

	var notified [][]string
	reg := NewRegistry(Config{
		Logger:   &logger,
		OnChange: func(roster []string) { notified = append(notified, roster) },
	})
	req.Empty(reg.Current())

	reg.Replace([]string{"alice", "bob"})
	req.Equal([]string{"alice", "bob"}, reg.Current())

	reg.Replace([]string{"bob"})
	req.Equal([]string{"bob"}, reg.Current())

	// identical content still notifies
	reg.Replace([]string{"bob"})
	req.Equal([][]string{{"alice", "bob"}, {"bob"}, {"bob"}}, notified)

	reg.Clear()
	req.Empty(reg.Current())
	req.Len(notified, 4)
	req.Empty(notified[3])
}

func TestRegistry_Isolation(t *testing.T) {
	req := require.New(t)
	logger := zerolog.Nop()
	reg := NewRegistry(Config{Logger: &logger})

	in := []string{"alice", "bob"}
	reg.Replace(in)
	in[0] = "mallory"
	req.Equal([]string{"alice", "bob"}, reg.Current())

	out := reg.Current()
	out[1] = "eve"
	req.Equal([]string{"alice", "bob"}, reg.Current())
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	logger := zerolog.Nop()
	reg := NewRegistry(Config{Logger: &logger})
	rosters := [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}}

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			reg.Replace(rosters[i%len(rosters)])
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			got := reg.Current()
			// always a full snapshot, never a partial one
			assert.Contains(t, [][]string{{}, {"a"}, {"a", "b"}, {"a", "b", "c"}}, got)
		}
	}()
	wg.Wait()
}
