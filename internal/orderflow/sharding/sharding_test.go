package sharding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"microservices-demo/internal/orderflow/sharding"
)

func TestGetShard_StableAndInRange(t *testing.T) {
	router := sharding.NewShardRouter(3)

	for id := 0; id < 100; id++ {
		shard := router.GetShard(id)
		assert.GreaterOrEqual(t, shard, 0)
		assert.Less(t, shard, 3)
		assert.Equal(t, shard, router.GetShard(id), "routing must be deterministic")
	}
}

func TestGetShard_SingleShard(t *testing.T) {
	router := sharding.NewShardRouter(1)

	for _, id := range []int{0, 1, 7, 1000} {
		assert.Equal(t, 0, router.GetShard(id))
	}
}

func TestNewShardRouter_ClampsToOne(t *testing.T) {
	assert.Equal(t, 1, sharding.NewShardRouter(0).ShardCount)
	assert.Equal(t, 0, sharding.NewShardRouter(0).GetShard(42))
}

func TestGetShard_NegativeID(t *testing.T) {
	router := sharding.NewShardRouter(3)

	shard := router.GetShard(-7)
	assert.GreaterOrEqual(t, shard, 0)
	assert.Less(t, shard, 3)
}
