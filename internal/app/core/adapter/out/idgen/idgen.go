package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
)

const (
	KindUUID      = "uuid"
	KindSequence  = "sequence"
	KindSnowflake = "snowflake"
)

// UUIDGenerator 以 128-bit 隨機 UUID 作為交易 ID
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator 全程序遞增的交易 ID (T000001, T000002 ...)
// 使用 atomic 避免並發碰撞
type SequenceGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s%06d", g.prefix, g.next.Add(1))
}

// SnowflakeGenerator 依時間排序的 64-bit ID，多個程序以 node 區分
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator node 範圍 0 ~ 1023
func NewSnowflakeGenerator(node int64) (*SnowflakeGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeGenerator{node: n}, nil
}

func (g *SnowflakeGenerator) NewID() string {
	return g.node.Generate().String()
}

// New 依設定名稱建立產生器，node 只用於 snowflake
func New(kind string, node int64) (usecase.IDGenerator, error) {
	switch kind {
	case KindUUID, "":
		return NewUUIDGenerator(), nil
	case KindSequence:
		return NewSequenceGenerator("T"), nil
	case KindSnowflake:
		return NewSnowflakeGenerator(node)
	default:
		return nil, fmt.Errorf("unknown id generator %q", kind)
	}
}

var (
	_ usecase.IDGenerator = UUIDGenerator{}
	_ usecase.IDGenerator = (*SequenceGenerator)(nil)
	_ usecase.IDGenerator = (*SnowflakeGenerator)(nil)
)
