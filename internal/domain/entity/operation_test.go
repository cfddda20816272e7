package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockyard/internal/domain/entity"
)

func TestParseDockOperation(t *testing.T) {
	ops := []entity.DockOperation{
		entity.OpFill, entity.OpLeft, entity.OpRight, entity.OpTop, entity.OpBottom, entity.OpWindow,
	}
	for _, op := range ops {
		got, ok := entity.ParseDockOperation(op.String())
		assert.True(t, ok, op.String())
		assert.Equal(t, op, got)
	}

	_, ok := entity.ParseDockOperation("diagonal")
	assert.False(t, ok)
}

func TestParseDragAction(t *testing.T) {
	got, ok := entity.ParseDragAction("link")
	assert.True(t, ok)
	assert.Equal(t, entity.ActionLink, got)

	_, ok = entity.ParseDragAction("drag")
	assert.False(t, ok)
}

func TestDockOperation_IsSplit(t *testing.T) {
	assert.True(t, entity.OpLeft.IsSplit())
	assert.True(t, entity.OpBottom.IsSplit())
	assert.False(t, entity.OpFill.IsSplit())
	assert.False(t, entity.OpWindow.IsSplit())
}
