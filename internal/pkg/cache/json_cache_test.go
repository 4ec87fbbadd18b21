package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type entry struct {
	Name string `json:"name"`
}

func TestJSONCache_NilIsNoop(t *testing.T) {
	c := NewJSONCache[entry](nil, "course", time.Minute, zerolog.Nop())
	assert.Nil(t, c)

	ctx := context.Background()
	c.Set(ctx, 1, &entry{Name: "x"})
	c.Invalidate(ctx, 1, 2)

	got, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "course:42", Key("course", 42))
}
