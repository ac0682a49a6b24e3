package services

import (
	"testing"

	"github.com/campushare/campushare-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestToggleCounts(t *testing.T) {
	tests := []struct {
		name        string
		likes       int
		dislikes    int
		current     string
		incoming    string
		wantOp      string
		wantLikes   int
		wantDislike int
	}{
		{"first like", 0, 0, "", models.ReactionLike, reactionOpCreate, 1, 0},
		{"first dislike", 2, 0, "", models.ReactionDislike, reactionOpCreate, 2, 1},
		{"like again removes", 3, 1, models.ReactionLike, models.ReactionLike, reactionOpDelete, 2, 1},
		{"dislike again removes", 0, 1, models.ReactionDislike, models.ReactionDislike, reactionOpDelete, 0, 0},
		{"like to dislike swaps", 3, 1, models.ReactionLike, models.ReactionDislike, reactionOpSwap, 2, 2},
		{"dislike to like swaps", 3, 1, models.ReactionDislike, models.ReactionLike, reactionOpSwap, 4, 0},
		{"remove clamps at zero", 0, 0, models.ReactionLike, models.ReactionLike, reactionOpDelete, 0, 0},
		{"swap clamps stale zero", 0, 0, models.ReactionDislike, models.ReactionLike, reactionOpSwap, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likes, dislikes := tt.likes, tt.dislikes
			op := toggleCounts(&likes, &dislikes, tt.current, tt.incoming)
			assert.Equal(t, tt.wantOp, op)
			assert.Equal(t, tt.wantLikes, likes, "likes")
			assert.Equal(t, tt.wantDislike, dislikes, "dislikes")
		})
	}
}
