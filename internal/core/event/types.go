package event

import "github.com/skyraid/skyraid/internal/core/ecs"

// Level lifecycle.

type LevelCompleted struct {
	Level string
	Score int
}

type LevelLost struct {
	Level string
	Score int
}

type LevelPaused struct{ Level string }

type LevelResumed struct{ Level string }

// Gameplay outcomes raised by the collision phase.

type EnemyKilled struct {
	EntityID ecs.EntityID
	Kind     string
	Score    int
}

type ItemCollected struct {
	EntityID ecs.EntityID
	Effect   string
	Amount   int
}

type EntityDestroyed struct {
	EntityID ecs.EntityID
	Kind     string
}
