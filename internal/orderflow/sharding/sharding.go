package sharding

// ShardRouter maps a user ID onto one of the order database shards. Sharding
// by user keeps all of a user's orders on one shard, so listing by user never
// fans out. With a single shard (the default) every ID maps to shard 0.
type ShardRouter struct {
	ShardCount int // Number of shards
}

func NewShardRouter(shardCount int) *ShardRouter {
	if shardCount < 1 {
		shardCount = 1
	}
	return &ShardRouter{ShardCount: shardCount}
}

func (r *ShardRouter) GetShard(userID int) int {
	if userID < 0 {
		userID = -userID
	}
	return userID % r.ShardCount
}
