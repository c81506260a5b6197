package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase           { return r.phase }
func (r recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"evaluate", PhaseEvaluate, &log})
	r.Register(recorder{"commit", PhaseCommit, &log})
	r.Register(recorder{"spawn", PhaseSpawn, &log})
	r.Register(recorder{"collide", PhaseCollision, &log})
	r.Register(recorder{"update-a", PhaseUpdate, &log})
	r.Register(recorder{"update-b", PhaseUpdate, &log})

	r.Tick(50 * time.Millisecond)
	assert.Equal(t, []string{"spawn", "update-a", "update-b", "collide", "commit", "evaluate"}, log)
}

func TestRunnerLateRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"commit", PhaseCommit, &log})
	r.Tick(0)
	r.Register(recorder{"spawn", PhaseSpawn, &log})
	r.Tick(0)

	assert.Equal(t, []string{"commit", "spawn", "commit"}, log)
	assert.Equal(t, "commit", PhaseCommit.String())
}
